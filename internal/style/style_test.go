package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetAppliesUnlessExplicit(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("style", "allman"))
	o.Reconcile()
	assert.Equal(t, BraceBreak, o.BraceMode)

	o = New()
	require.NoError(t, o.Set("style", "allman"))
	require.NoError(t, o.Set("brace-mode", "attach"))
	o.Reconcile()
	assert.Equal(t, BraceAttach, o.BraceMode)
}

func TestPresetAliases(t *testing.T) {
	p, err := ParsePreset("K&R")
	require.NoError(t, err)
	assert.Equal(t, PresetKR, p)

	p, err = ParsePreset("bsd")
	require.NoError(t, err)
	assert.Equal(t, PresetAllman, p)

	_, err = ParsePreset("nope")
	assert.Error(t, err)
}

func TestStroustrupPreset(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("style", "stroustrup"))
	o.Reconcile()
	assert.Equal(t, BraceLinux, o.BraceMode)
	assert.True(t, o.AttachNamespaces)
	assert.True(t, o.AttachClasses)
	assert.True(t, o.BreakClosingBraces)
}

func TestLaterSettingWins(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("add-braces", "true"))
	require.NoError(t, o.Set("remove-braces", "true"))
	o.Reconcile()
	assert.False(t, o.AddBraces)
	assert.True(t, o.RemoveBraces)

	o = New()
	require.NoError(t, o.Set("remove-braces", ""))
	require.NoError(t, o.Set("add-braces", ""))
	o.Reconcile()
	assert.True(t, o.AddBraces)
	assert.False(t, o.RemoveBraces)

	o = New()
	require.NoError(t, o.Set("unpad-paren", "yes"))
	require.NoError(t, o.Set("pad-paren-in", "yes"))
	o.Reconcile()
	assert.True(t, o.PadParenIn)
	assert.False(t, o.UnpadParen)
}

func TestDependentSettings(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("indent-classes", "on"))
	require.NoError(t, o.Set("indent-modifiers", "on"))
	require.NoError(t, o.Set("add-one-line-braces", "on"))
	require.NoError(t, o.Set("align-pointer", "name"))
	o.Reconcile()
	assert.True(t, o.IndentClasses)
	assert.False(t, o.IndentModifiers)
	assert.True(t, o.KeepOneLineBlocks)
	assert.Equal(t, AlignName, o.AlignReference)
}

func TestClamps(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("indent-length", "1"))
	require.NoError(t, o.Set("continuation-indent", "9"))
	require.NoError(t, o.Set("max-continuation-indent", "500"))
	require.NoError(t, o.Set("max-code-length", "10"))
	o.Reconcile()
	assert.Equal(t, 2, o.IndentLength)
	assert.Equal(t, 2, o.TabLength)
	assert.Equal(t, 4, o.ContinuationIndent)
	assert.Equal(t, 120, o.MaxContinuationIndent)
	assert.Equal(t, 50, o.MaxCodeLength)

	o = New()
	o.Reconcile()
	assert.Equal(t, 0, o.MaxCodeLength)
	assert.Equal(t, 4, o.TabLength)
	assert.Equal(t, 8, o.MinConditional.Columns(o.IndentLength))
}

func TestSetErrors(t *testing.T) {
	o := New()
	assert.Error(t, o.Set("no-such-option", "1"))
	assert.Error(t, o.Set("pad-oper", "maybe"))
	assert.Error(t, o.Set("indent-length", "four"))
	assert.Error(t, o.Set("align-pointer", "pointer"))
	assert.Error(t, o.Set("indentable-macros", "BEGIN"))
	assert.Empty(t, o.Explicit())
}

func TestSetNormalizesKeys(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("PAD_OPER", ""))
	assert.True(t, o.PadOper)
	assert.True(t, o.IsSet("pad-oper"))
	assert.Equal(t, []string{"pad-oper"}, o.Explicit())
}

func TestIndentableMacros(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("indentable-macros", "BEGIN_X:END_X, BEGIN_Y:END_Y"))
	assert.Equal(t, [][2]string{{"BEGIN_X", "END_X"}, {"BEGIN_Y", "END_Y"}}, o.IndentableMacros)
}

func TestCloneIsIndependent(t *testing.T) {
	o := New()
	require.NoError(t, o.Set("pad-oper", ""))
	c := o.Clone()
	require.NoError(t, c.Set("pad-comma", ""))
	assert.False(t, o.IsSet("pad-comma"))
	assert.True(t, c.IsSet("pad-oper"))
}

func TestIndentString(t *testing.T) {
	o := New()
	o.Reconcile()
	assert.Equal(t, "    ", o.IndentString())
	require.NoError(t, o.Set("indent", "tab"))
	assert.Equal(t, "\t", o.IndentString())
}

func TestKeysCoverEveryPresetKey(t *testing.T) {
	keys := map[string]bool{}
	for _, k := range Keys() {
		keys[k] = true
	}
	for p, defs := range presetDefaults {
		for k := range defs {
			assert.Truef(t, keys[k], "preset %s uses unknown key %s", p, k)
		}
	}
}

func TestIsBool(t *testing.T) {
	assert.True(t, IsBool("pad-oper"))
	assert.True(t, IsBool("Break_ElseIfs"))
	assert.False(t, IsBool("break-blocks"))
	assert.False(t, IsBool("indent-length"))
	assert.False(t, IsBool("lineend"))
	assert.False(t, IsBool("indentable-macros"))
	assert.False(t, IsBool("no-such-key"))
}
