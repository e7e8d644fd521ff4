// Package selection holds the click buffer that editor commands consume.
package selection

import "strings"

// Stack is a LIFO buffer of element ids.
//
// Entries are consumed by commands: whatever PopOne and PopTwo return is gone
// from the stack, whether or not the caller ends up using it. A command that
// rejects its operands does not push them back.
//
// The stack does not validate ids; it may hold ids of elements that were
// removed after they were clicked.
type Stack struct {
	items []string
}

// NewStack creates an empty stack
func NewStack() *Stack {
	return &Stack{}
}

// Push appends an id on top of the stack
func (s *Stack) Push(id string) {
	s.items = append(s.items, id)
}

// PopOne removes and returns the most recently pushed id.
// Returns false if the stack is empty.
func (s *Stack) PopOne() (string, bool) {
	if len(s.items) == 0 {
		return "", false
	}
	top := s.items[len(s.items)-1]
	s.items = s.items[:len(s.items)-1]
	return top, true
}

// PopTwo removes the two most recently pushed ids.
// first is the top of the stack (clicked last), second the one below it.
// Returns false and leaves the stack untouched if it holds fewer than two entries.
func (s *Stack) PopTwo() (first, second string, ok bool) {
	if len(s.items) < 2 {
		return "", "", false
	}
	first, _ = s.PopOne()
	second, _ = s.PopOne()
	return first, second, true
}

// RemoveByID removes every occurrence of id and returns how many were removed
func (s *Stack) RemoveByID(id string) int {
	kept := s.items[:0]
	removed := 0
	for _, item := range s.items {
		if item == id {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return removed
}

// Len returns the number of entries
func (s *Stack) Len() int {
	return len(s.items)
}

// Snapshot returns a copy of the entries, bottom first
func (s *Stack) Snapshot() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}

// Normalize strips the sub-shape qualifier from a clicked shape id.
// The id is read as a dot-separated path and exactly one trailing segment is dropped:
// "node1.circle" -> "node1", "a.b.c" -> "a.b", "node1" -> "".
func Normalize(raw string) string {
	i := strings.LastIndex(raw, ".")
	if i < 0 {
		return ""
	}
	return raw[:i]
}
