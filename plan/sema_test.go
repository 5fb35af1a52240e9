package plan

import (
	"errors"
	"github.com/dianpeng/sheetql/sql"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestSemaCellRef(t *testing.T) {
	assert := assert.New(t)
	h := header("name", "age")
	host := MapHost{}

	for _, x := range []struct {
		code string
		rule int
	}{
		{"*A, #A5", sql.RuleSelect},
		{"(*A > #B2) AS big", sql.RuleSelect},
		{"$SUM(#A1)", sql.RuleAgg},
	} {
		c := compAST(x.code, x.rule)
		assert.True(c != nil)
		_, err := PlanCode(c, h, host)
		assert.NotNil(err)
		assert.True(errors.Is(err, ErrResolve))
		assert.False(errors.Is(err, ErrSema))
	}
}

func TestSemaCall(t *testing.T) {
	assert := assert.New(t)
	h := header("name", "age")

	for _, x := range []struct {
		code string
		rule int
	}{
		{"$COUNT(*A) > 1", sql.RuleWhere},
		{"*A, $SUM(*B)", sql.RuleSelect},
		{"$SUM($COUNT(*A))", sql.RuleAgg},
	} {
		c := compAST(x.code, x.rule)
		assert.True(c != nil)
		_, err := PlanCode(c, h, nil)
		assert.NotNil(err)
		assert.True(errors.Is(err, ErrSema))
	}

	{
		c := compAST("$SUM($COUNT(*A))", sql.RuleAgg)
		_, err := PlanCode(c, h, nil)
		assert.Equal("stage(sema): [agg]: nested aggregation $SUM is not allowed", err.Error())
	}
}

func TestSemaKey(t *testing.T) {
	assert := assert.New(t)
	h := header("id", "name")
	{
		p, err := PlanKey(compAST("*id", sql.RuleGroupBy), h)
		assert.Nil(err)
		col := p.KeyColumn()
		assert.NotNil(col)
		assert.Equal("A", col.CanName.Letter)
	}
	{
		_, err := PlanKey(compAST("*id, *name", sql.RuleGroupBy), h)
		assert.True(errors.Is(err, ErrSema))
	}
	{
		_, err := PlanKey(compAST("1", sql.RuleGroupBy), h)
		assert.True(errors.Is(err, ErrSema))
	}
}
