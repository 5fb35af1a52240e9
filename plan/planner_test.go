package plan

import (
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestPlanWhere(t *testing.T) {
	assert := assert.New(t)
	h := header("name", "age")
	looked := 0
	host := HostFunc(func(addr string) (table.Cell, error) {
		looked++
		return table.Num(10), nil
	})

	c := compAST("*age < #A5 AND *name = 'Bob'", sql.RuleWhere)
	p, err := PlanCode(c, h, host)
	assert.Nil(err)
	assert.Equal(1, looked)
	assert.True(p.HasFilter())
	assert.False(p.HasOutput())
	assert.Equal("((*B < 10) AND (*A = 'Bob'))", sql.PrintExpr(p.Filter.Cond))

	// the same code can be planned again, against another header
	p2, err := PlanCode(c, header("age", "name"), host)
	assert.Nil(err)
	assert.Equal(2, looked)
	assert.Equal("((*A < 10) AND (*B = 'Bob'))", sql.PrintExpr(p2.Filter.Cond))
	assert.Equal("((*B < 10) AND (*A = 'Bob'))", sql.PrintExpr(p.Filter.Cond))
}

func TestPlanSelect(t *testing.T) {
	assert := assert.New(t)
	h := header("name", "age")

	c := compAST("*age AS StudentAge, *name, 'Hello'", sql.RuleSelect)
	p, err := PlanCode(c, h, nil)
	assert.Nil(err)
	assert.True(p.HasOutput())
	assert.Equal(3, len(p.Output.VarList))
	assert.Equal([]string{"StudentAge", "", ""}, p.Output.VarAlias)
	assert.Equal("*B", sql.PrintExpr(p.Output.VarList[0]))
	assert.Equal("*A", sql.PrintExpr(p.Output.VarList[1]))
	assert.Equal("'Hello'", sql.PrintExpr(p.Output.VarList[2]))
}

func TestPlanSort(t *testing.T) {
	assert := assert.New(t)
	h := header("name", "age")

	c := compAST("*name DESC, *age", sql.RuleOrderBy)
	p, err := PlanCode(c, h, nil)
	assert.Nil(err)
	assert.True(p.HasSort())
	assert.Equal(2, len(p.Sort.VarList))
	assert.True(p.Sort.VarList[0].Desc)
	assert.Equal("A", p.Sort.VarList[0].Column.CanName.Letter)
	assert.False(p.Sort.VarList[1].Desc)
	assert.Equal("B", p.Sort.VarList[1].Column.CanName.Letter)
}

func TestPlanPrint(t *testing.T) {
	assert := assert.New(t)
	h := header("name", "age")

	p, err := PlanGroupBy(
		compAST("*name", sql.RuleGroupBy),
		compAST("$SUM(*age), $COUNT(1)", sql.RuleAgg),
		h,
	)
	assert.Nil(err)
	assert.Equal(
		`##> Columns
age: B
name: A
##> GroupBy
1. *A
##> Agg
1. $SUM(*B) => SUM B
2. $COUNT(1) => COUNT 1
`,
		p.Print())
}
