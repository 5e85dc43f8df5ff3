// Package resource builds the per-grammar keyword and operator tables.
// A Set is built once per grammar and is read-only afterwards, so engines
// running on different goroutines share it without locking.
package resource

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"brace/internal/grammar"
	"brace/internal/token"
)

// Category names one keyword/operator table.
type Category uint8

const (
	// Headers open a control or declaration construct.
	Headers Category = iota
	// NonParenHeaders are headers not followed by a parenthesised condition.
	NonParenHeaders
	// PreBlockStatements introduce a definition block (class, namespace, ...).
	PreBlockStatements
	// PreCommandHeaders may sit between a definition's ')' and its '{'.
	PreCommandHeaders
	// PreDefinitionHeaders mark a statement as a type or namespace definition.
	PreDefinitionHeaders
	// IndentableHeaders start statements whose continuation aligns after the word.
	IndentableHeaders
	// AssignmentOperators are the assignment forms.
	AssignmentOperators
	// NonAssignmentOperators are multi-character operators other than assignments.
	NonAssignmentOperators
	// Operators is every operator, longest first.
	Operators
	// CastOperators are the C++ named casts.
	CastOperators

	numCategories
)

var categoryNames = [numCategories]string{
	Headers:                "headers",
	NonParenHeaders:        "non-paren-headers",
	PreBlockStatements:     "pre-block-statements",
	PreCommandHeaders:      "pre-command-headers",
	PreDefinitionHeaders:   "pre-definition-headers",
	IndentableHeaders:      "indentable-headers",
	AssignmentOperators:    "assignment-operators",
	NonAssignmentOperators: "non-assignment-operators",
	Operators:              "operators",
	CastOperators:          "cast-operators",
}

func (c Category) String() string {
	if c >= numCategories {
		return "unknown"
	}
	return categoryNames[c]
}

// Categories lists all categories in table order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := Category(0); c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

// ParseCategory resolves a category by its dump name.
func ParseCategory(s string) (Category, error) {
	for c := Category(0); c < numCategories; c++ {
		if categoryNames[c] == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown table %q", s)
}

// MacroPair is a begin/end macro couple whose body gets one extra indent.
type MacroPair struct {
	Begin string
	End   string
}

// Set holds every table for one grammar.
type Set struct {
	grammar grammar.Grammar
	lists   [numCategories][]token.Kind
	members [numCategories]map[token.Kind]struct{}
	macros  []MacroPair
}

var (
	setsOnce [grammar.Max + 1]sync.Once
	sets     [grammar.Max + 1]*Set
)

// For returns the shared table set for g. Unknown grammars fall back to C.
func For(g grammar.Grammar) *Set {
	if g == grammar.Unknown || g > grammar.Max {
		g = grammar.C
	}
	setsOnce[g].Do(func() {
		sets[g] = build(g)
	})
	return sets[g]
}

// Grammar returns the grammar the set was built for.
func (s *Set) Grammar() grammar.Grammar { return s.grammar }

// List returns the category ordered longest spelling first.
// The slice is shared; callers must not modify it.
func (s *Set) List(c Category) []token.Kind {
	if c >= numCategories {
		return nil
	}
	return s.lists[c]
}

// Has reports whether k belongs to category c.
func (s *Set) Has(c Category, k token.Kind) bool {
	if c >= numCategories || k == token.None {
		return false
	}
	_, ok := s.members[c][k]
	return ok
}

// Macros returns the indentable macro pairs (C family only).
func (s *Set) Macros() []MacroPair { return s.macros }

// Dump writes one category, one spelling per line.
func (s *Set) Dump(w io.Writer, c Category) error {
	for _, k := range s.List(c) {
		if _, err := fmt.Fprintln(w, k.Text()); err != nil {
			return err
		}
	}
	return nil
}

// DumpString renders a category as Dump would.
func (s *Set) DumpString(c Category) string {
	var sb strings.Builder
	_ = s.Dump(&sb, c)
	return sb.String()
}

func (s *Set) put(c Category, kinds ...token.Kind) {
	if s.members[c] == nil {
		s.members[c] = make(map[token.Kind]struct{})
	}
	for _, k := range kinds {
		if _, dup := s.members[c][k]; dup {
			continue
		}
		s.members[c][k] = struct{}{}
		s.lists[c] = append(s.lists[c], k)
	}
}

// sortLongestFirst orders by descending spelling length, then alphabetically,
// so a linear scan yields the longest match first.
func sortLongestFirst(kinds []token.Kind) {
	sort.SliceStable(kinds, func(i, j int) bool {
		a, b := kinds[i].Text(), kinds[j].Text()
		if len(a) != len(b) {
			return len(a) > len(b)
		}
		return a < b
	})
}
