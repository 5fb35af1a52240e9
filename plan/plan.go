package plan

import (
	"errors"
	"fmt"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
)

var (
	// a column or cell reference that cannot be resolved where it shows up
	ErrResolve = errors.New("resolve")

	// the code is grammatically fine but makes no sense for the operator
	ErrSema = errors.New("sema")
)

// Error of the planning phase, printed as `stage(<stage>): <msg>`.
type Error struct {
	Stage string
	Msg   string
	Kind  error
}

func (self *Error) Error() string {
	return fmt.Sprintf("stage(%s): %s", self.Stage, self.Msg)
}

func (self *Error) Is(target error) bool {
	return target == self.Kind
}

func (self *Error) Unwrap() error {
	return self.Kind
}

// Filter phase, WHERE
type Filter struct {
	Cond sql.Expr
}

// Output phase, SELECT. VarAlias has the same length as VarList, empty string
// means no alias
type Output struct {
	VarList  []sql.Expr
	VarAlias []string
}

type GroupBy struct {
	VarList []sql.Expr // list of expression used as the group key
}

type SortVar struct {
	Column *sql.Column
	Desc   bool
}

// Sorting phase, ORDER_BY
type Sort struct {
	VarList []SortVar
}

// Planner configuration.
type Config struct {
	// column used by a LEFT_JOIN key, the key code must be a single column
	SingleColumn bool
}

// Plan is the resolved form of one or more parsed codes against a specific
// table header. The parsed code is never modified, every piece in the plan is
// a resolved copy.
type Plan struct {
	Config Config

	Header  table.Row // first header row, nil when the table has no header
	Columns ColumnMap

	Filter  *Filter
	Output  *Output
	GroupBy *GroupBy
	Agg     *Agg
	Sort    *Sort

	// --------------------------------------------------------------------------
	// private data
	host Host
}

func newPlan(header table.Row, host Host) *Plan {
	return &Plan{
		Header:  header,
		Columns: BuildColumnMap(header),
		host:    host,
	}
}

// PlanCode resolves the code against the header row. Cell references are
// looked up through host once, right here, and frozen into constants.
func PlanCode(c *sql.Code, header table.Row, host Host) (*Plan, error) {
	p := newPlan(header, host)
	if err := p.plan(c); err != nil {
		return nil, err
	}
	return p, nil
}

// PlanGroupBy plans a group key code together with its aggregation code.
func PlanGroupBy(group *sql.Code, agg *sql.Code, header table.Row) (*Plan, error) {
	p := newPlan(header, nil)
	if err := p.plan(group); err != nil {
		return nil, err
	}
	if agg != nil {
		if err := p.plan(agg); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// PlanKey plans a join key, the code must be a single column.
func PlanKey(c *sql.Code, header table.Row) (*Plan, error) {
	p := newPlan(header, nil)
	p.Config.SingleColumn = true
	if err := p.plan(c); err != nil {
		return nil, err
	}
	return p, nil
}

func (self *Plan) HasFilter() bool  { return self.Filter != nil }
func (self *Plan) HasOutput() bool  { return self.Output != nil }
func (self *Plan) HasGroupBy() bool { return self.GroupBy != nil }
func (self *Plan) HasAgg() bool     { return self.Agg != nil && len(self.Agg.VarList) > 0 }
func (self *Plan) HasSort() bool    { return self.Sort != nil }

// KeyColumn is the single column of a plan made by PlanKey
func (self *Plan) KeyColumn() *sql.Column {
	if self.GroupBy == nil || len(self.GroupBy.VarList) != 1 {
		return nil
	}
	col, _ := self.GroupBy.VarList[0].(*sql.Column)
	return col
}

func (self *Plan) err(stage string, f string, args ...interface{}) error {
	return &Error{
		Stage: stage,
		Msg:   fmt.Sprintf(f, args...),
		Kind:  ErrSema,
	}
}

func (self *Plan) errResolve(stage string, f string, args ...interface{}) error {
	return &Error{
		Stage: stage,
		Msg:   fmt.Sprintf(f, args...),
		Kind:  ErrResolve,
	}
}
