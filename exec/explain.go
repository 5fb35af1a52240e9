package exec

import (
	"fmt"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"strings"
)

// Explain plans expr against t the same way the matching operator would and
// returns the plan together with the header count in effect. aggExpr is only
// used with the GROUP_BY rule.
func (self *Engine) Explain(
	t table.Table,
	rule int,
	expr string,
	aggExpr string,
	hc ...int,
) (*plan.Plan, int, error) {
	switch rule {
	case sql.RuleWhere, sql.RuleSelect, sql.RuleOrderBy, sql.RuleGroupBy:
	default:
		return nil, 0, fmt.Errorf("rule %s cannot be explained on its own", sql.RuleName(rule))
	}

	header, _, cnt, err := self.prepare(t, hc)
	if err != nil {
		return nil, 0, err
	}
	hrow := header.HeaderRow(cnt)

	code, err := parse(expr, rule)
	if err != nil {
		return nil, 0, err
	}

	var p *plan.Plan
	switch rule {
	case sql.RuleWhere, sql.RuleSelect, sql.RuleOrderBy:
		p, err = plan.PlanCode(code, hrow, self.Host)
	case sql.RuleGroupBy:
		var aggCode *sql.Code
		if strings.TrimSpace(aggExpr) != "" {
			if aggCode, err = parse(aggExpr, sql.RuleAgg); err != nil {
				return nil, 0, err
			}
		}
		p, err = plan.PlanGroupBy(code, aggCode, hrow)
	}
	if err != nil {
		return nil, 0, err
	}
	return p, cnt, nil
}
