package lexer

// ASCII fast-path classification tables, 256 entries each so the hot
// loop is a single array index rather than a multi-way branch (§4.4).
var (
	isIdentStartASCII    [256]bool
	isIdentContinueASCII [256]bool
	isDigitASCII         [256]bool
	isHexDigitASCII      [256]bool
	isASCIIWhitespace    [256]bool
)

func init() {
	for b := byte('a'); b <= 'z'; b++ {
		isIdentStartASCII[b] = true
		isIdentContinueASCII[b] = true
	}
	for b := byte('A'); b <= 'Z'; b++ {
		isIdentStartASCII[b] = true
		isIdentContinueASCII[b] = true
	}
	isIdentStartASCII['_'] = true
	isIdentContinueASCII['_'] = true
	for b := byte('0'); b <= '9'; b++ {
		isIdentContinueASCII[b] = true
		isDigitASCII[b] = true
		isHexDigitASCII[b] = true
	}
	for b := byte('a'); b <= 'f'; b++ {
		isHexDigitASCII[b] = true
	}
	for b := byte('A'); b <= 'F'; b++ {
		isHexDigitASCII[b] = true
	}
	isASCIIWhitespace[' '] = true
	isASCIIWhitespace['\t'] = true
	isASCIIWhitespace['\v'] = true
	isASCIIWhitespace['\f'] = true
}
