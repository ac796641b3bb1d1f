package parse

// Scanners for the identifier grammar of the C standard (ISO/IEC 9899:2017
// section 6.4.2.1). Each function tries to match its production at a byte
// offset into the buffer and returns the offset one past the match. On a
// failed match the returned offset is the one passed in.

func nondigit(src []byte, off int) (int, bool) {
	if off >= len(src) {
		return off, false
	}
	if c := src[off]; isAlpha(c) || c == '_' {
		return off + 1, true
	}
	return off, false
}

func digit(src []byte, off int) (int, bool) {
	if off >= len(src) || !isNumeric(src[off]) {
		return off, false
	}
	return off + 1, true
}

func hexDigit(src []byte, off int) (int, bool) {
	if off >= len(src) || !isHexDigit(src[off]) {
		return off, false
	}
	return off + 1, true
}

// hexQuad matches exactly four consecutive hexadecimal digits.
func hexQuad(src []byte, off int) (int, bool) {
	end := off
	for i := 0; i < 4; i++ {
		var ok bool
		if end, ok = hexDigit(src, end); !ok {
			return off, false
		}
	}
	return end, true
}

// universalCharacterName matches \u followed by one hex quad or \U
// followed by two.
func universalCharacterName(src []byte, off int) (int, bool) {
	if off+1 >= len(src) || src[off] != '\\' {
		return off, false
	}
	var quads int
	switch src[off+1] {
	case 'u':
		quads = 1
	case 'U':
		quads = 2
	default:
		return off, false
	}
	end := off + 2
	for i := 0; i < quads; i++ {
		var ok bool
		if end, ok = hexQuad(src, end); !ok {
			return off, false
		}
	}
	return end, true
}

func identifierNondigit(src []byte, off int) (int, bool) {
	if end, ok := nondigit(src, off); ok {
		return end, true
	}
	return universalCharacterName(src, off)
}

// identifier matches an identifier-nondigit followed by any number of
// identifier-nondigits and digits. The match is maximal, it ends at the
// first byte that continues neither production. A leading digit never
// matches.
func identifier(src []byte, off int) (int, bool) {
	end, ok := identifierNondigit(src, off)
	if !ok {
		return off, false
	}
	for {
		if next, ok := identifierNondigit(src, end); ok {
			end = next
			continue
		}
		if next, ok := digit(src, end); ok {
			end = next
			continue
		}
		return end, true
	}
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNumeric(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isNumeric(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func isWhiteSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
