package repository

import "strings"

// setClause accumulates column assignments for a partial UPDATE. Only the
// fields a caller actually provided are added, so an update touches nothing
// else. Column names come from the repositories themselves, never from
// request input.
type setClause struct {
	cols []string
	args []any
}

func (s *setClause) add(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *setClause) empty() bool { return len(s.cols) == 0 }

// assignments renders the "a = ?, b = ?" fragment for the SET keyword.
func (s *setClause) assignments() string { return strings.Join(s.cols, ", ") }
