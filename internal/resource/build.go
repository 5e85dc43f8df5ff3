package resource

import (
	"brace/internal/grammar"
	"brace/internal/token"
)

func build(g grammar.Grammar) *Set {
	s := &Set{grammar: g}
	buildHeaders(s, g)
	buildNonParenHeaders(s, g)
	buildPreBlockStatements(s, g)
	buildPreCommandHeaders(s, g)
	buildPreDefinitionHeaders(s, g)
	buildIndentableHeaders(s, g)
	buildAssignmentOperators(s, g)
	buildNonAssignmentOperators(s, g)
	buildOperators(s, g)
	buildCastOperators(s, g)
	buildMacros(s, g)
	for c := range s.lists {
		sortLongestFirst(s.lists[c])
		if s.members[c] == nil {
			s.members[c] = map[token.Kind]struct{}{}
		}
	}
	return s
}

func buildHeaders(s *Set, g grammar.Grammar) {
	s.put(Headers, token.If, token.Else, token.For, token.While, token.Do, token.Switch)
	switch {
	case g.IsObjCStyle():
		s.put(Headers, token.Try, token.Catch,
			token.AtTry, token.AtCatch, token.AtFinally, token.AtSynchronized, token.AtAutoreleasepool)
	case g.IsGSCStyle():
		// no exceptions in the script dialect
	case g.IsCStyle():
		s.put(Headers, token.Try, token.Catch, token.QForeach, token.QForever, token.Foreach, token.Forever)
	case g.IsJavaStyle():
		s.put(Headers, token.Try, token.Catch, token.Finally, token.Synchronized)
	case g.IsSharpStyle():
		s.put(Headers, token.Try, token.Catch, token.Finally, token.Foreach, token.Lock,
			token.Using, token.Fixed, token.Unsafe, token.Get, token.Set, token.Add, token.Remove)
	case g.IsJSStyle():
		s.put(Headers, token.Try, token.Catch, token.Finally, token.With)
	}
}

func buildNonParenHeaders(s *Set, g grammar.Grammar) {
	s.put(NonParenHeaders, token.Else, token.Do)
	switch {
	case g.IsObjCStyle():
		s.put(NonParenHeaders, token.Try, token.AtTry, token.AtFinally, token.AtAutoreleasepool)
	case g.IsGSCStyle():
	case g.IsCStyle():
		s.put(NonParenHeaders, token.Try, token.QForever, token.Forever)
	case g.IsJavaStyle():
		s.put(NonParenHeaders, token.Try, token.Finally)
	case g.IsSharpStyle():
		s.put(NonParenHeaders, token.Try, token.Finally, token.Unsafe,
			token.Get, token.Set, token.Add, token.Remove)
	case g.IsJSStyle():
		s.put(NonParenHeaders, token.Try, token.Finally)
	}
}

func buildPreBlockStatements(s *Set, g grammar.Grammar) {
	switch {
	case g.IsObjCStyle():
		s.put(PreBlockStatements, token.Class, token.Struct, token.Union,
			token.AtInterface, token.AtImplementation, token.AtProtocol)
	case g.IsCStyle():
		s.put(PreBlockStatements, token.Class, token.Struct, token.Union, token.Namespace)
	case g.IsJavaStyle():
		s.put(PreBlockStatements, token.Class, token.Interface, token.Record)
	case g.IsSharpStyle():
		s.put(PreBlockStatements, token.Class, token.Struct, token.Interface, token.Namespace,
			token.Record, token.Where)
	case g.IsJSStyle():
		s.put(PreBlockStatements, token.Class)
	}
}

func buildPreCommandHeaders(s *Set, g grammar.Grammar) {
	switch {
	case g.IsObjCStyle():
		s.put(PreCommandHeaders, token.Const, token.Volatile)
	case g.IsCStyle():
		s.put(PreCommandHeaders, token.Const, token.Volatile, token.Noexcept,
			token.Override, token.Final, token.Sealed)
	case g.IsJavaStyle():
		s.put(PreCommandHeaders, token.Throws)
	case g.IsSharpStyle():
		s.put(PreCommandHeaders, token.Where)
	}
}

func buildPreDefinitionHeaders(s *Set, g grammar.Grammar) {
	switch {
	case g.IsObjCStyle():
		s.put(PreDefinitionHeaders, token.Class, token.Struct, token.Union,
			token.AtInterface, token.AtImplementation, token.AtProtocol)
	case g.IsCStyle():
		s.put(PreDefinitionHeaders, token.Class, token.Struct, token.Union, token.Namespace)
	case g.IsJavaStyle():
		s.put(PreDefinitionHeaders, token.Class, token.Interface, token.Record)
	case g.IsSharpStyle():
		s.put(PreDefinitionHeaders, token.Class, token.Struct, token.Interface,
			token.Namespace, token.Record)
	case g.IsJSStyle():
		s.put(PreDefinitionHeaders, token.Class, token.Function)
	}
}

func buildIndentableHeaders(s *Set, g grammar.Grammar) {
	s.put(IndentableHeaders, token.Return)
	if !g.IsGSCStyle() {
		s.put(IndentableHeaders, token.Throw)
	}
}

func buildAssignmentOperators(s *Set, g grammar.Grammar) {
	s.put(AssignmentOperators,
		token.Assign, token.PlusAssign, token.MinusAssign, token.StarAssign,
		token.SlashAssign, token.PercentAssign, token.AmpAssign, token.PipeAssign,
		token.CaretAssign, token.ShlAssign, token.ShrAssign)
	switch {
	case g.IsJavaStyle():
		s.put(AssignmentOperators, token.UshrAssign)
	case g.IsSharpStyle():
		s.put(AssignmentOperators, token.NullAssign)
	case g.IsJSStyle():
		s.put(AssignmentOperators, token.UshrAssign, token.PowAssign, token.NullAssign,
			token.AndAssign, token.OrAssign)
	}
}

func buildNonAssignmentOperators(s *Set, g grammar.Grammar) {
	s.put(NonAssignmentOperators,
		token.Eq, token.Ne, token.Le, token.Ge, token.AndAnd, token.OrOr,
		token.Shl, token.Shr, token.Inc, token.Dec, token.Arrow)
	switch {
	case g.IsCStyle():
		s.put(NonAssignmentOperators, token.Scope, token.ArrowStar, token.DotStar,
			token.Ellipsis, token.Spaceship)
	case g.IsJavaStyle():
		s.put(NonAssignmentOperators, token.Ushr, token.Scope, token.Ellipsis)
	case g.IsSharpStyle():
		s.put(NonAssignmentOperators, token.Scope, token.Lambda, token.NullCoalesce, token.NullCond)
	case g.IsJSStyle():
		s.put(NonAssignmentOperators, token.Ushr, token.StrictEq, token.StrictNe,
			token.Lambda, token.NullCoalesce, token.NullCond, token.Pow, token.Ellipsis)
	}
}

func buildOperators(s *Set, g grammar.Grammar) {
	s.put(Operators, s.lists[AssignmentOperators]...)
	s.put(Operators, s.lists[NonAssignmentOperators]...)
	s.put(Operators,
		token.Lt, token.Gt, token.Plus, token.Minus, token.Star, token.Slash,
		token.Percent, token.Amp, token.Pipe, token.Caret, token.Tilde, token.Not,
		token.Question, token.Colon, token.Dot)
}

func buildCastOperators(s *Set, g grammar.Grammar) {
	if g != grammar.C {
		return
	}
	s.put(CastOperators, token.ConstCast, token.DynamicCast, token.ReinterpretCast, token.StaticCast)
}

var defaultMacros = []MacroPair{
	{Begin: "BEGIN_EVENT_TABLE", End: "END_EVENT_TABLE"},
	{Begin: "wxBEGIN_EVENT_TABLE", End: "wxEND_EVENT_TABLE"},
	{Begin: "BEGIN_DISPATCH_MAP", End: "END_DISPATCH_MAP"},
	{Begin: "BEGIN_EVENT_MAP", End: "END_EVENT_MAP"},
	{Begin: "BEGIN_MESSAGE_MAP", End: "END_MESSAGE_MAP"},
	{Begin: "BEGIN_MSG_MAP", End: "END_MSG_MAP"},
	{Begin: "BEGIN_OBJECT_MAP", End: "END_OBJECT_MAP"},
	{Begin: "BEGIN_PROPERTY_MAP", End: "END_PROPERTY_MAP"},
	{Begin: "BEGIN_TEMPLATE_MESSAGE_MAP", End: "END_MESSAGE_MAP"},
}

func buildMacros(s *Set, g grammar.Grammar) {
	if g != grammar.C {
		return
	}
	s.macros = append(s.macros, defaultMacros...)
}
