package cg

import (
	"fmt"
	"github.com/dianpeng/sheetql/plan"
)

type Config struct {
	Separator   string // input and output field separator, defaults to a tab
	HeaderCount int    // leading rows treated as header
}

// Generate compiles a resolved plan into a standalone awk program reading
// separator delimited rows. WHERE, SELECT and GROUP_BY plans are supported,
// cell references must already be frozen by the planner.
func Generate(x *plan.Plan, config *Config) (string, error) {
	if config == nil {
		config = &Config{HeaderCount: 1}
	}
	if config.HeaderCount < 0 {
		return "", fmt.Errorf("invalid header count %d", config.HeaderCount)
	}
	g := &queryCodeGen{
		query:  x,
		config: config,
	}
	return g.Gen()
}

// codegen from plan to *awk* code
type queryCodeGen struct {
	query  *plan.Plan
	config *Config
	w      awkWriter
}

func (self *queryCodeGen) sep() string {
	if self.config.Separator == "" {
		return "\t"
	}
	return self.config.Separator
}

func (self *queryCodeGen) genBegin() {
	self.w.Open("BEGIN")
	self.w.Line("FS = %s", awkString(self.sep()))
	self.w.Line("OFS = %s", awkString(self.sep()))
	self.w.Close()
	self.w.Line("")
}

func (self *queryCodeGen) Gen() (string, error) {
	q := self.query
	var err error

	self.genBegin()
	switch {
	case q.HasFilter():
		err = self.genWhere()
	case q.HasOutput():
		err = self.genOutput()
	case q.HasGroupBy():
		err = self.genGroupBy()
	case q.HasSort():
		err = fmt.Errorf("ORDER_BY cannot be compiled to awk")
	default:
		err = fmt.Errorf("nothing to compile")
	}
	if err != nil {
		return "", err
	}

	self.w.Chunk(awkRuntime)
	return self.w.String(), nil
}

// header rows pass through as is
func (self *queryCodeGen) genWhere() error {
	cond, err := genExpr(self.query.Filter.Cond)
	if err != nil {
		return err
	}
	if h := self.config.HeaderCount; h > 0 {
		self.w.Line("NR <= %d { print; next }", h)
	}
	self.w.Line("%s { print }", cond.truthy())
	return nil
}
