package pdf

import (
	"bytes"
	"regexp"
	"strings"
	"unicode"
)

// literalPattern matches PDF string literals such as (Hello).
var literalPattern = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// streamText collects the string operands of text-showing operators
// (Tj, TJ, ' and ") from a content stream. Positioning operators become
// whitespace.
func streamText(data []byte) string {
	var b strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			writeLiterals(&b, line)
		case bytes.HasSuffix(line, []byte("'")), bytes.HasSuffix(line, []byte(`"`)):
			if bytes.Contains(line, []byte("(")) {
				b.WriteByte('\n')
				writeLiterals(&b, line)
			}
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			b.WriteByte(' ')
		case bytes.Equal(line, []byte("T*")):
			b.WriteByte('\n')
		}
	}

	return collapseSpace(b.String())
}

func writeLiterals(b *strings.Builder, line []byte) {
	for _, m := range literalPattern.FindAllSubmatch(line, -1) {
		b.WriteString(unescape(m[1]))
	}
}

// unescape decodes the backslash escapes of a PDF string literal.
func unescape(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 == len(raw) {
			b.WriteByte(c)
			continue
		}

		i++
		switch raw[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			val := 0
			for n := 0; n < 3 && i < len(raw) && raw[i] >= '0' && raw[i] <= '7'; n++ {
				val = val*8 + int(raw[i]-'0')
				i++
			}
			i--
			b.WriteByte(byte(val))
		default:
			b.WriteByte(raw[i])
		}
	}
	return b.String()
}

// collapseSpace keeps printable runes and folds whitespace runs to a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			if !space && b.Len() > 0 {
				b.WriteByte(' ')
				space = true
			}
		case unicode.IsPrint(r):
			b.WriteRune(r)
			space = false
		}
	}
	return strings.TrimSpace(b.String())
}
