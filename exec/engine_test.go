package exec

import (
	"errors"
	"github.com/dianpeng/sheetql/plan"
	"github.com/dianpeng/sheetql/sql"
	"github.com/dianpeng/sheetql/table"
	"github.com/stretchr/testify/assert"
	"math"
	"testing"
)

type fixedDefaults struct {
	count int
	err   error
}

func (self *fixedDefaults) HeaderCount() (int, error) {
	return self.count, self.err
}

func tab(v ...[]interface{}) table.Table {
	return table.MustNew(v)
}

func row(v ...interface{}) []interface{} {
	return v
}

func students() table.Table {
	return tab(
		row("name", "age"),
		row("Alice", 2),
		row("Bob", 4),
		row("Alice", 10),
	)
}

func TestSelect(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil, nil)
	{
		out, err := e.Select(students(), "*B, *A")
		assert.Nil(err)
		assert.Equal(tab(
			row("age", "name"),
			row(2, "Alice"),
			row(4, "Bob"),
			row(10, "Alice"),
		), out)
	}
	{
		out, err := e.Select(students(), "*B, *name")
		assert.Nil(err)
		assert.Equal(tab(
			row("age", "name"),
			row(2, "Alice"),
			row(4, "Bob"),
			row(10, "Alice"),
		), out)
	}
	{
		out, err := e.Select(students(), "*B AS StudentAge, *name AS 'My Name', *name")
		assert.Nil(err)
		assert.Equal(tab(
			row("StudentAge", "My Name", "name"),
			row(2, "Alice", "Alice"),
			row(4, "Bob", "Bob"),
			row(10, "Alice", "Alice"),
		), out)
	}
	{
		out, err := e.Select(students(), "*B AS StudentAge, 1, 'Hello'")
		assert.Nil(err)
		assert.Equal(tab(
			row("StudentAge", 1, "Hello"),
			row(2, 1, "Hello"),
			row(4, 1, "Hello"),
			row(10, 1, "Hello"),
		), out)
	}
	{
		out, err := e.Select(students(), "*age > 3 AS old")
		assert.Nil(err)
		assert.Equal(tab(
			row("old"),
			row(false),
			row(true),
			row(true),
		), out)
	}
	{
		// no header at all, titles fall back to the column letter
		out, err := e.Select(students(), "*B, *A AS nm", 0)
		assert.Nil(err)
		assert.Equal(tab(
			row("B", "nm"),
			row("age", "name"),
			row(2, "Alice"),
			row(4, "Bob"),
			row(10, "Alice"),
		), out)
	}
	{
		// two header rows collapse into one built from the first
		out, err := e.Select(tab(
			row("name", "age"),
			row("text", "years"),
			row("Bob", 4),
		), "*age AS a, *name", 2)
		assert.Nil(err)
		assert.Equal(tab(
			row("a", "name"),
			row(4, "Bob"),
		), out)
	}
	{
		// empty header cells use the letter
		out, err := e.Select(tab(row("", "age"), row("Bob", 4)), "*A, *B")
		assert.Nil(err)
		assert.Equal(tab(row("A", "age"), row("Bob", 4)), out)
	}
	{
		// header only
		out, err := e.Select(tab(row("name", "age")), "*B")
		assert.Nil(err)
		assert.Equal(tab(row("age")), out)
	}
	{
		_, err := e.Select(students(), "*C")
		assert.True(errors.Is(err, ErrEval))
	}
	{
		_, err := e.Select(students(), "*B, #A1")
		assert.True(errors.Is(err, plan.ErrResolve))
	}
}

func TestWhere(t *testing.T) {
	assert := assert.New(t)
	host := plan.MapHost{"A5": table.Num(10)}
	e := NewEngine(host, nil)

	{
		out, err := e.Where(students(), "*A='Bob'")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Bob", 4)), out)
	}
	{
		out, err := e.Where(students(), "*age=10")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Alice", 10)), out)
	}

	data := tab(row("name", "age"), row("Alice", 2), row("Alice", 10), row("Bob", 4))
	{
		out, err := e.Where(data, "*age < 10 AND *age >= 1.5")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Alice", 2), row("Bob", 4)), out)
	}
	{
		out, err := e.Where(data, "*name > 'Amu'")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Bob", 4)), out)
	}
	{
		out, err := e.Where(data, "*age < #A5")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Alice", 2), row("Bob", 4)), out)
	}

	flags := tab(
		row("name", "age", "is new"),
		row("Alice", 2, true),
		row("Alice", 10, false),
		row("Bob", 4, true),
	)
	{
		out, err := e.Where(flags, "*'is new' = TRUE")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age", "is new"), row("Alice", 2, true), row("Bob", 4, true)), out)
	}
	{
		out, err := e.Where(flags, "*'is new' = FALSE OR *name='Bob'")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age", "is new"), row("Alice", 10, false), row("Bob", 4, true)), out)
	}
	{
		out, err := e.Where(flags, "*'is new' = TRUE AND *name='Alice'")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age", "is new"), row("Alice", 2, true)), out)
	}
	{
		// bare column is tested for truthiness
		out, err := e.Where(flags, "*C")
		assert.Nil(err)
		assert.Equal(3, len(out))
	}
	{
		// values of different kinds are never equal
		out, err := e.Where(tab(row("v"), row("10"), row(10)), "*A = 10")
		assert.Nil(err)
		assert.Equal(tab(row("v"), row(10)), out)
	}
	{
		_, err := e.Where(data, "*age <")
		_, ok := err.(*sql.ParseError)
		assert.True(ok)
	}
	{
		_, err := NewEngine(nil, nil).Where(data, "*age < #A5")
		assert.True(errors.Is(err, plan.ErrResolve))
	}
	{
		// short circuit, the right side would fail
		out, err := e.Where(data, "*name = 'Bob' AND *Z = 1")
		assert.NotNil(err)
		assert.Nil(out)

		out, err = e.Where(tab(row("name"), row("Alice")), "*name = 'Bob' AND *Z = 1")
		assert.Nil(err)
		assert.Equal(tab(row("name")), out)
	}
}

// every row either shows up in the output or fails the predicate
func TestWherePartition(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil, nil)
	data := tab(
		row("a", "b"),
		row(1, "x"),
		row(2, "y"),
		row(3, "x"),
		row(4, "z"),
		row(5, "x"),
	)
	for _, p := range []string{
		"*a > 2",
		"*b = 'x' OR *a = 2",
		"(*a >= 2 AND *a <= 4) AND *b = 'x'",
		"*a < 0",
	} {
		out, err := e.Where(data, p)
		assert.Nil(err)

		code, err := sql.Parse(p, sql.RuleWhere)
		assert.Nil(err)
		pl, err := plan.PlanCode(code, data[0], nil)
		assert.Nil(err)

		kept := map[int]bool{}
		for _, r := range out[1:] {
			kept[int(r[0].Num)] = true
		}
		for _, r := range data[1:] {
			ok, err := EvalPredicate(pl.Filter.Cond, r)
			assert.Nil(err)
			assert.Equal(ok, kept[int(r[0].Num)])
		}
	}
}

func TestOrderBy(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil, nil)
	data := tab(row("name", "age"), row("Alice", 21), row("Bob", 4), row("Alice", 10))
	{
		out, err := e.OrderBy(data, "*age DESC")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Alice", 21), row("Alice", 10), row("Bob", 4)), out)
	}
	{
		out, err := e.OrderBy(data, "*B ASC")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Bob", 4), row("Alice", 10), row("Alice", 21)), out)
	}
	{
		out, err := e.OrderBy(
			tab(row("name", "age"), row("Alice", 21), row("Bob", 40), row("Alice", 10)),
			"*name DESC, *age ASC")
		assert.Nil(err)
		assert.Equal(tab(row("name", "age"), row("Bob", 40), row("Alice", 10), row("Alice", 21)), out)
	}
	{
		// stable on equal keys
		out, err := e.OrderBy(
			tab(row("k", "i"), row(1, "a"), row(0, "b"), row(1, "c"), row(0, "d"), row(1, "e")),
			"*k")
		assert.Nil(err)
		assert.Equal(tab(row("k", "i"), row(0, "b"), row(0, "d"), row(1, "a"), row(1, "c"), row(1, "e")), out)
	}
	{
		// mixed kinds use a fixed kind order
		out, err := e.OrderBy(tab(row("v"), row("x"), row(2), row(true), row(nil)), "*v")
		assert.Nil(err)
		assert.Equal(tab(row("v"), row(nil), row(true), row(2), row("x")), out)
	}
	{
		_, err := e.OrderBy(data, "*C")
		assert.True(errors.Is(err, ErrEval))
	}
}

func TestGroupBy(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil, nil)
	{
		out, err := e.GroupBy(
			tab(row("name", "age"), row("Alice", 21), row("Bob", 4), row("Alice", 10)),
			"*name",
			"$SUM(*age), $COUNT(1)")
		assert.Nil(err)
		assert.Equal(tab(
			row("name", "SUM B", "COUNT 1"),
			row("Alice", 31, 2),
			row("Bob", 4, 1),
		), out)
	}
	{
		out, err := e.GroupBy(
			tab(
				row("name", "city", "age"),
				row("Alice", "Bombay", 21),
				row("Bob", "Delhi", 4),
				row("Alice", "Bombay", 4),
				row("Alice", "Delhi", 10),
			),
			"*A,*B",
			"$COUNT(1)")
		assert.Nil(err)
		assert.Equal(tab(
			row("name", "city", "COUNT 1"),
			row("Alice", "Bombay", 2),
			row("Bob", "Delhi", 1),
			row("Alice", "Delhi", 1),
		), out)
	}
	{
		// decimal sum
		out, err := e.GroupBy(tab(row("k", "v"), row("a", 0.1), row("a", 0.2)), "*k", "$SUM(*v)")
		assert.Nil(err)
		assert.Equal(tab(row("k", "SUM B"), row("a", 0.3)), out)
	}
	{
		// COUNT only counts truthy values
		out, err := e.GroupBy(
			tab(row("k", "v"), row("a", 0), row("a", ""), row("a", "x"), row("a", false), row(nil, 3)),
			"*k",
			"$COUNT(*v)")
		assert.Nil(err)
		assert.Equal(tab(row("k", "COUNT B"), row("a", 1), row(nil, 1)), out)
	}
	{
		// number and string keys are distinct groups
		out, err := e.GroupBy(tab(row("k"), row(1), row("1"), row(1)), "*k", "$COUNT(1)")
		assert.Nil(err)
		assert.Equal(tab(row("k", "COUNT 1"), row(1, 2), row("1", 1)), out)
	}
	{
		out, err := e.GroupBy(tab(row("k"), row("a"), row("b"), row("a")), "*k", "")
		assert.Nil(err)
		assert.Equal(tab(row("k"), row("a"), row("b")), out)
	}
	{
		out, err := e.GroupBy(tab(row("a", 1), row("b", 2), row("a", 3)), "*A", "$SUM(*B)", 0)
		assert.Nil(err)
		assert.Equal(tab(row("A", "SUM B"), row("a", 4), row("b", 2)), out)
	}
	{
		// two header rows, the title comes from the first
		out, err := e.GroupBy(
			tab(row("name", "age"), row("text", "years"), row("Alice", 2), row("Alice", 3)),
			"*name",
			"$COUNT(1)",
			2)
		assert.Nil(err)
		assert.Equal(tab(row("name", "COUNT 1"), row("Alice", 2)), out)
	}
	{
		_, err := e.GroupBy(tab(row("k", "v"), row("a", "x")), "*k", "$SUM(*v)")
		assert.True(errors.Is(err, ErrEval))
	}
	{
		_, err := e.GroupBy(tab(row("k", "v"), row("a", 1)), "*k", "$AVG(*v)")
		assert.True(errors.Is(err, ErrEval))
	}
	{
		_, err := e.GroupBy(tab(row("k", "v"), row("a", 1)), "*k", "$COUNT()")
		assert.True(errors.Is(err, ErrEval))
	}
}

// groups cover every row exactly once and the aggregations match
func TestGroupByNegativeZero(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil, nil)
	data := tab(row("k"), row(0), row(math.Copysign(0, -1)))

	out, err := e.GroupBy(data, "*A", "$COUNT(1)")
	assert.Nil(err)
	assert.Equal(2, len(out))
	assert.Equal(float64(2), out[1][1].Num)

	// same rows WHERE treats as equal
	out, err = e.Where(data, "*A = 0")
	assert.Nil(err)
	assert.Equal(3, len(out))
}

func TestGroupByCover(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil, nil)
	data := tab(
		row("k", "v"),
		row("x", 1),
		row("y", 2),
		row("x", 3),
		row("z", 4),
		row("y", 5),
		row("x", 6),
	)
	out, err := e.GroupBy(data, "*k", "$COUNT(1), $SUM(*v)")
	assert.Nil(err)

	total := 0
	keys := map[string]bool{}
	for _, r := range out[1:] {
		assert.False(keys[r[0].Str])
		keys[r[0].Str] = true

		cnt, sum := 0, 0.0
		for _, d := range data[1:] {
			if d[0].Str == r[0].Str {
				cnt++
				sum += d[1].Num
			}
		}
		assert.Equal(float64(cnt), r[1].Num)
		assert.Equal(sum, r[2].Num)
		total += cnt
	}
	assert.Equal(len(data)-1, total)
}

func TestLeftJoin(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(nil, nil)

	students := tab(
		row("name", "age", "school id"),
		row("Alice", 21, "S.1"),
		row("Bob", 4, "S.1"),
		row("Cathy", 10, "S.2"),
		row("Darwin", 15, "S.4"),
	)
	schools := tab(
		row("id", "city"),
		row("S.1", "BOM"),
		row("S.2", "BLR"),
		row("S.3", "DEL"),
	)
	{
		out, err := e.LeftJoin(students, "*'school id'", schools, "*id")
		assert.Nil(err)
		assert.Equal(tab(
			row("name", "age", "school id", "id", "city"),
			row("Alice", 21, "S.1", "S.1", "BOM"),
			row("Bob", 4, "S.1", "S.1", "BOM"),
			row("Cathy", 10, "S.2", "S.2", "BLR"),
			row("Darwin", 15, "S.4"),
		), out)

		// inputs are left alone
		assert.Equal(3, len(students[1]))
	}
	{
		// last duplicate wins
		out, err := e.LeftJoin(
			tab(row("k"), row(1)),
			"*k",
			tab(row("id", "v"), row(1, "first"), row(1, "last")),
			"*A")
		assert.Nil(err)
		assert.Equal(tab(row("k", "id", "v"), row(1, 1, "last")), out)
	}
	{
		out, err := e.LeftJoin(
			tab(row("k"), row(math.Copysign(0, -1))),
			"*k",
			tab(row("id", "v"), row(0, "zero")),
			"*A")
		assert.Nil(err)
		assert.Equal(2, len(out))
		assert.Equal(3, len(out[1]))
		assert.Equal("zero", out[1][2].Str)
	}
	{
		_, err := e.LeftJoin(students, "*A, *B", schools, "*id")
		assert.True(errors.Is(err, plan.ErrSema))
	}
	{
		_, err := e.LeftJoin(students, "*Z", schools, "*id")
		assert.True(errors.Is(err, ErrEval))
	}
}

func TestHeaderCount(t *testing.T) {
	assert := assert.New(t)
	data := tab(row("h1"), row("h2"), row("x"), row("y"))
	{
		e := NewEngine(nil, &fixedDefaults{count: 2})
		out, err := e.Where(data, "*A = 'h2'")
		assert.Nil(err)
		// h2 is a header row now
		assert.Equal(tab(row("h1"), row("h2")), out)
	}
	{
		e := NewEngine(nil, &fixedDefaults{count: 2})
		out, err := e.Where(data, "*A = 'h2'", 1)
		assert.Nil(err)
		assert.Equal(tab(row("h1"), row("h2")), out)
	}
	{
		fail := errors.New("store is down")
		e := NewEngine(nil, &fixedDefaults{err: fail})
		_, err := e.Where(data, "*A = 'x'")
		assert.True(err == fail)
	}
	{
		_, err := NewEngine(nil, nil).Where(data, "*A = 'x'", -1)
		assert.NotNil(err)
	}
}

func TestExplain(t *testing.T) {
	assert := assert.New(t)
	e := NewEngine(plan.MapHost{"A1": table.Num(3)}, nil)
	{
		p, cnt, err := e.Explain(students(), sql.RuleWhere, "*age > #A1", "")
		assert.Nil(err)
		assert.Equal(1, cnt)
		assert.Contains(p.Print(), "Cond: (*B > 3)")
	}
	{
		p, cnt, err := e.Explain(students(), sql.RuleGroupBy, "*name", "$SUM(*age)", 0)
		assert.Nil(err)
		assert.Equal(0, cnt)
		assert.True(p.HasGroupBy())
		assert.True(p.HasAgg())
	}
	{
		_, _, err := e.Explain(students(), sql.RuleAgg, "$SUM(*age)", "")
		assert.NotNil(err)
	}
	{
		// unknown rules are errors, never panics
		for _, rule := range []int{-1, 9} {
			var err error
			assert.NotPanics(func() {
				_, _, err = e.Explain(students(), rule, "*A", "")
			})
			assert.NotNil(err)
		}
	}
}
