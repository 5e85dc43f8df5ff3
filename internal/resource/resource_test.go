package resource

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brace/internal/grammar"
	"brace/internal/token"
)

func TestGoldenDumps(t *testing.T) {
	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	set := For(grammar.C)
	g.Assert(t, "c_headers", []byte(set.DumpString(Headers)))
	g.Assert(t, "c_operators", []byte(set.DumpString(Operators)))
}

func TestForIsSharedPerGrammar(t *testing.T) {
	a := For(grammar.Java)
	b := For(grammar.Java)
	assert.Same(t, a, b)
	assert.NotSame(t, a, For(grammar.CSharp))
	assert.Equal(t, grammar.C, For(grammar.Unknown).Grammar())
}

func TestListsAreLongestFirst(t *testing.T) {
	for _, g := range grammar.All {
		set := For(g)
		for _, c := range Categories() {
			list := set.List(c)
			for i := 1; i < len(list); i++ {
				require.GreaterOrEqual(t, len(list[i-1].Text()), len(list[i].Text()),
					"%s/%s not sorted at %d", g, c, i)
			}
		}
	}
}

func TestGrammarSpecificMembers(t *testing.T) {
	cases := []struct {
		g    grammar.Grammar
		c    Category
		k    token.Kind
		want bool
	}{
		{grammar.Java, Headers, token.Synchronized, true},
		{grammar.C, Headers, token.Synchronized, false},
		{grammar.CSharp, Headers, token.Foreach, true},
		{grammar.ObjC, Headers, token.AtAutoreleasepool, true},
		{grammar.GSC, Headers, token.Try, false},
		{grammar.JS, Operators, token.StrictEq, true},
		{grammar.C, Operators, token.StrictEq, false},
		{grammar.Java, Operators, token.Ushr, true},
		{grammar.C, CastOperators, token.StaticCast, true},
		{grammar.ObjC, CastOperators, token.StaticCast, false},
		{grammar.C, PreBlockStatements, token.Namespace, true},
		{grammar.Java, PreCommandHeaders, token.Throws, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, For(tc.g).Has(tc.c, tc.k), "%s %s %s", tc.g, tc.c, tc.k)
	}
}

func TestMacrosOnlyForC(t *testing.T) {
	assert.NotEmpty(t, For(grammar.C).Macros())
	assert.Empty(t, For(grammar.Java).Macros())
}

func TestParseCategory(t *testing.T) {
	c, err := ParseCategory("cast-operators")
	require.NoError(t, err)
	assert.Equal(t, CastOperators, c)
	_, err = ParseCategory("nope")
	assert.Error(t, err)
}
