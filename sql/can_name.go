package sql

import (
	"fmt"
)

const (
	CanNameFree = iota
	CanNameLetter
)

// CanName is the canonical name of a column reference, ie the positional
// letter it ends up pointing to once the header names are resolved.
type CanName struct {
	Type   int
	Letter string // uppercase column letter, A, B, ..., AA
	Index  int    // zero based index of the letter
}

func (self *CanName) Set(letter string, idx int) {
	if self.IsSettled() {
		panic("This CanName has been settled")
	}
	self.Letter = letter
	self.Index = idx
	self.Type = CanNameLetter
}

func (self *CanName) IsFree() bool    { return self.Type == CanNameFree }
func (self *CanName) IsSettled() bool { return !self.IsFree() }

func (self *CanName) String() string {
	switch self.Type {
	case CanNameLetter:
		return fmt.Sprintf("[letter: %s(%d)]", self.Letter, self.Index)
	default:
		return "[free]"
	}
}
