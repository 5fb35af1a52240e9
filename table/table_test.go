package table

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestLetter(t *testing.T) {
	assert := assert.New(t)
	assert.Equal("A", ColumnLetter(0))
	assert.Equal("B", ColumnLetter(1))
	assert.Equal("Z", ColumnLetter(25))
	assert.Equal("AA", ColumnLetter(26))
	assert.Equal("AZ", ColumnLetter(51))
	assert.Equal("BA", ColumnLetter(52))

	assert.Equal(0, LetterIndex("A"))
	assert.Equal(1, LetterIndex("b"))
	assert.Equal(26, LetterIndex("AA"))
	assert.Equal(52, LetterIndex(" BA "))
	assert.Equal(-1, LetterIndex("A1"))
	assert.Equal(-1, LetterIndex(""))

	for i := 0; i < 800; i++ {
		assert.Equal(i, LetterIndex(ColumnLetter(i)))
	}
}

func TestAddress(t *testing.T) {
	assert := assert.New(t)
	{
		c, r, err := ParseAddress("A5")
		assert.Nil(err)
		assert.Equal(0, c)
		assert.Equal(4, r)
	}
	{
		c, r, err := ParseAddress("ab12")
		assert.Nil(err)
		assert.Equal(27, c)
		assert.Equal(11, r)
	}
	{
		_, _, err := ParseAddress("A")
		assert.NotNil(err)
		_, _, err = ParseAddress("12")
		assert.NotNil(err)
		_, _, err = ParseAddress("A0")
		assert.NotNil(err)
	}
}

func TestCell(t *testing.T) {
	assert := assert.New(t)

	c, err := FromValue(int32(4))
	assert.Nil(err)
	assert.Equal(Num(4), c)
	assert.Equal("4", c.String())
	assert.Equal("2.5", Num(2.5).String())
	assert.Equal("TRUE", Bool(true).String())
	assert.Equal("", Null().String())

	_, err = FromValue(struct{}{})
	assert.NotNil(err)

	assert.False(Num(0).Truthy())
	assert.False(Str("").Truthy())
	assert.False(Bool(false).Truthy())
	assert.False(Null().Truthy())
	assert.True(Num(-1).Truthy())
	assert.True(Str("0").Truthy())
}

func TestCompare(t *testing.T) {
	assert := assert.New(t)
	{
		r, ok := Compare(Num(1), Num(2))
		assert.True(ok)
		assert.Equal(-1, r)
	}
	{
		r, ok := Compare(Str("Bob"), Str("Amu"))
		assert.True(ok)
		assert.Equal(1, r)
	}
	{
		r, ok := Compare(Bool(false), Bool(true))
		assert.True(ok)
		assert.Equal(-1, r)
	}
	{
		_, ok := Compare(Num(10), Str("10"))
		assert.False(ok)
		assert.False(Equal(Num(10), Str("10")))
	}

	assert.Equal(-1, Order(Null(), Bool(false)))
	assert.Equal(-1, Order(Bool(true), Num(-5)))
	assert.Equal(-1, Order(Num(100), Str("")))
	assert.Equal(1, Order(Str("b"), Str("a")))
	assert.Equal(0, Order(Num(3), Num(3)))
}

func TestSplit(t *testing.T) {
	assert := assert.New(t)
	tab := MustNew([][]interface{}{{"name", "age"}, {"Alice", 2}, {"Bob", 4}})

	h, d := tab.Split(1)
	assert.Equal(1, len(h))
	assert.Equal(2, len(d))
	assert.Equal(Str("Alice"), d[0][0])

	h, d = tab.Split(0)
	assert.Equal(0, len(h))
	assert.Equal(3, len(d))

	h, d = tab.Split(10)
	assert.Equal(3, len(h))
	assert.Equal(0, len(d))

	assert.Equal(tab, Prepend(tab[:1], tab[1:]))
	assert.Nil(tab.HeaderRow(0))
	assert.Equal(tab[0], tab.HeaderRow(1))

	assert.Equal([]interface{}{"Bob", 4.0}, tab[2].Values())
}

func TestParse(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Num(10), Parse("10"))
	assert.Equal(Num(-1.5), Parse("-1.5"))
	assert.Equal(Num(0.5), Parse(".5"))
	assert.Equal(Num(1e3), Parse("1e3"))
	assert.Equal(Bool(true), Parse("TRUE"))
	assert.Equal(Bool(false), Parse("false"))
	assert.Equal(Str(""), Parse(""))
	assert.Equal(Str("NaN"), Parse("NaN"))
	assert.Equal(Str("0x10"), Parse("0x10"))
	assert.Equal(Str("1e999"), Parse("1e999"))
	assert.Equal(Str("S.1"), Parse("S.1"))
}
