package style

import "strings"

// alphaNumeral renders n (1-based) in bijective base-26: a..z, aa, ab, ...
// There is no zero digit, so this is not positional base-26; 27 is "aa",
// not "a0".
func alphaNumeral(n int, upper bool) string {
	if n < 1 {
		return "?"
	}
	var b []byte
	for n > 0 {
		n--
		b = append([]byte{byte('a' + n%26)}, b...)
		n /= 26
	}
	s := string(b)
	if upper {
		return strings.ToUpper(s)
	}
	return s
}

var romanValues = []struct {
	value int
	sym   string
}{
	{1000, "m"}, {900, "cm"}, {500, "d"}, {400, "cd"},
	{100, "c"}, {90, "xc"}, {50, "l"}, {40, "xl"},
	{10, "x"}, {9, "ix"}, {5, "v"}, {4, "iv"}, {1, "i"},
}

// romanNumeral renders n (1-based) as a standard subtractive Roman numeral.
func romanNumeral(n int, upper bool) string {
	if n < 1 {
		return "?"
	}
	var b strings.Builder
	for _, rv := range romanValues {
		for n >= rv.value {
			b.WriteString(rv.sym)
			n -= rv.value
		}
	}
	s := b.String()
	if upper {
		return strings.ToUpper(s)
	}
	return s
}
