package sql

import (
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestWhitespace(t *testing.T) {
	assert := assert.New(t)
	{
		l := newLexer(" \t\r\n x")
		l.whitespace()
		assert.Equal(5, l.Cursor)
		assert.Equal(5, l.maxFailPos)
		assert.Equal([]Expectation{expWhitespace}, l.maxExpected)
	}
	{
		l := newLexer("x")
		l.whitespace()
		assert.Equal(0, l.Cursor)
		assert.Equal([]Expectation{expWhitespace}, l.maxExpected)
	}
}

func TestInteger(t *testing.T) {
	assert := assert.New(t)
	{
		l := newLexer("-123x")
		v, ok := l.integer()
		assert.True(ok)
		assert.Equal("-123", v)
		assert.Equal(4, l.Cursor)
		// digits are silent
		assert.Equal(0, len(l.maxExpected))
	}
	{
		l := newLexer("-x")
		_, ok := l.integer()
		assert.False(ok)
		assert.Equal(0, l.Cursor)
		assert.Equal([]Expectation{expInteger}, l.maxExpected)
	}
	{
		l := newLexer("--1")
		_, ok := l.integer()
		assert.False(ok)
	}
}

func TestText(t *testing.T) {
	assert := assert.New(t)
	{
		l := newLexer("'hello world' rest")
		v, ok := l.text()
		assert.True(ok)
		assert.Equal("hello world", v)
		assert.Equal(13, l.Cursor)
	}
	{
		l := newLexer("''")
		v, ok := l.text()
		assert.True(ok)
		assert.Equal("", v)
	}
	{
		l := newLexer("'open")
		_, ok := l.text()
		assert.False(ok)
		assert.Equal(0, l.Cursor)
		assert.Equal(5, l.maxFailPos)
	}
	{
		l := newLexer("'日本'")
		v, ok := l.text()
		assert.True(ok)
		assert.Equal("日本", v)
	}
}

func TestIdent(t *testing.T) {
	assert := assert.New(t)
	{
		l := newLexer("abc_1*#2 x")
		v, ok := l.ident()
		assert.True(ok)
		assert.Equal("abc_1*#2", v)
	}
	{
		l := newLexer("'school id'")
		v, ok := l.quotedName()
		assert.True(ok)
		assert.Equal("school id", v)
	}
	{
		l := newLexer("'a.b'")
		_, ok := l.quotedName()
		assert.False(ok)
		assert.Equal(0, l.Cursor)
	}
}

func TestFailTracking(t *testing.T) {
	assert := assert.New(t)
	l := newLexer("abc")
	l.fail(literalExpectation("x"))
	l.Cursor = 2
	l.fail(literalExpectation("y"))
	assert.Equal(2, l.maxFailPos)
	assert.Equal([]Expectation{literalExpectation("y")}, l.maxExpected)

	// nearer failures are dropped
	l.Cursor = 1
	l.fail(literalExpectation("z"))
	assert.Equal(1, len(l.maxExpected))

	// silent
	l.Cursor = 3
	l.silent++
	l.fail(literalExpectation("w"))
	l.silent--
	assert.Equal(2, l.maxFailPos)

	l.fail(endExpectation())
	assert.Equal(3, l.maxFailPos)
}

func TestMessage(t *testing.T) {
	assert := assert.New(t)
	r := '\n'
	assert.Equal(
		`Expected "a" but "\n" found.`,
		buildMessage([]Expectation{literalExpectation("a")}, &r))
	assert.Equal(
		`Expected "a" or integer but end of input found.`,
		buildMessage([]Expectation{literalExpectation("a"), expInteger}, nil))
	assert.Equal(`\\ \" \t \x01`, escapeLiteral("\\ \" \t \x01"))

	assert.Equal(Position{Offset: 4, Line: 2, Column: 2}, positionOf("ab\ncd", 4))
	assert.Equal(Position{Offset: 6, Line: 1, Column: 3}, positionOf("日本x", 6))
}
