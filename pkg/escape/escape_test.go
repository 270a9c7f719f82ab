package escape_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cedarfront/cedarfront/pkg/escape"
)

func TestUnescapeStrBorrowedWhenNoEscapes(t *testing.T) {
	value, borrowed, errs := escape.UnescapeStr(`"hello world"`, 0)
	require.Empty(t, errs)
	assert.True(t, borrowed)
	assert.Equal(t, "hello world", value)
}

func TestUnescapeStrDecodesStandardEscapes(t *testing.T) {
	value, borrowed, errs := escape.UnescapeStr(`"a\nb\tc\\d\"e"`, 0)
	require.Empty(t, errs)
	assert.False(t, borrowed)
	assert.Equal(t, "a\nb\tc\\d\"e", value)
}

func TestUnescapeStrHexEscape(t *testing.T) {
	value, _, errs := escape.UnescapeStr(`"\x41"`, 0)
	require.Empty(t, errs)
	assert.Equal(t, "A", value)
}

func TestUnescapeStrHexOutOfRange(t *testing.T) {
	_, _, errs := escape.UnescapeStr(`"\xFF"`, 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.OutOfRangeHexEscape, errs[0].Kind)
}

func TestUnescapeStrUnicodeEscape(t *testing.T) {
	value, _, errs := escape.UnescapeStr(`"\u{48}\u{65}\u{6C}\u{6C}\u{6F}"`, 0)
	require.Empty(t, errs)
	assert.Equal(t, "Hello", value)
}

func TestUnescapeStrUnicodeEscapeWithSeparators(t *testing.T) {
	value, _, errs := escape.UnescapeStr(`"\u{1F_600}"`, 0)
	require.Empty(t, errs)
	assert.Equal(t, "\U0001F600", value)
}

func TestUnescapeStrUnicodeSurrogateRejected(t *testing.T) {
	_, _, errs := escape.UnescapeStr(`"\u{D800}"`, 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.OutOfRangeUnicodeEscape, errs[0].Kind)
}

func TestUnescapeStrLoneSlash(t *testing.T) {
	_, _, errs := escape.UnescapeStr("\"a\\", 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.LoneSlash, errs[0].Kind)
}

func TestUnescapeStrInvalidEscape(t *testing.T) {
	_, _, errs := escape.UnescapeStr(`"\q"`, 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.InvalidEscape, errs[0].Kind)
}

func TestUnescapeStrBareCarriageReturn(t *testing.T) {
	_, _, errs := escape.UnescapeStr("\"a\rb\"", 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.BareCarriageReturn, errs[0].Kind)
}

func TestUnescapeStrAccumulatesAllErrors(t *testing.T) {
	_, _, errs := escape.UnescapeStr(`"\q\xZZ"`, 0)
	require.Len(t, errs, 2)
}

func TestUnescapeStrHexInvalidFirstDigitSpanStopsEarly(t *testing.T) {
	_, _, errs := escape.UnescapeStr(`"\xGG"`, 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.InvalidHexEscape, errs[0].Kind)
	assert.Equal(t, 1, errs[0].Start)
	assert.Equal(t, 4, errs[0].End)
}

func TestUnescapeStrUnicodeLeadingUnderscoreRejected(t *testing.T) {
	_, _, errs := escape.UnescapeStr(`"\u{_1}"`, 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.InvalidUnicodeEscape, errs[0].Kind)
	assert.Equal(t, 1, errs[0].Start)
	assert.Equal(t, 5, errs[0].End)
}

func TestUnescapeStrUnicodeTooManyDigitsIsOutOfRange(t *testing.T) {
	_, _, errs := escape.UnescapeStr(`"\u{1000000}"`, 0)
	require.Len(t, errs, 1)
	assert.Equal(t, escape.OutOfRangeUnicodeEscape, errs[0].Kind)
}

func TestUnescapePatternSplitsLiteralsAndWildcards(t *testing.T) {
	elements, errs := escape.UnescapePattern(`"a\*b*c"`, 0)
	require.Empty(t, errs)
	require.Len(t, elements, 3)
	assert.Equal(t, escape.PatternLiteral, elements[0].Kind)
	assert.Equal(t, "a*b", elements[0].Text)
	assert.Equal(t, escape.PatternWildcard, elements[1].Kind)
	assert.Equal(t, escape.PatternLiteral, elements[2].Kind)
	assert.Equal(t, "c", elements[2].Text)
}

func TestUnescapePatternAllWildcard(t *testing.T) {
	elements, errs := escape.UnescapePattern(`"*"`, 0)
	require.Empty(t, errs)
	require.Len(t, elements, 1)
	assert.Equal(t, escape.PatternWildcard, elements[0].Kind)
}

func TestUnescapePatternEmpty(t *testing.T) {
	elements, errs := escape.UnescapePattern(`""`, 0)
	require.Empty(t, errs)
	assert.Empty(t, elements)
}
