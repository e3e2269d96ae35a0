// Package glob converts shell-style patterns to regular expressions.
//
//	*       any run of characters except /
//	**      any run of characters including /
//	?       one character except /
//	[abc]   character class, [!abc] negated
//	{a,b}   alternation, may nest
package glob

import (
	"regexp"
	"strings"
)

// ToRegex returns an anchored regular expression for pattern.
func ToRegex(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	write(&b, pattern)
	b.WriteString("$")
	return b.String()
}

func Compile(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(ToRegex(pattern))
}

func Match(pattern, s string) (bool, error) {
	re, err := Compile(pattern)
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}

func write(b *strings.Builder, pattern string) {
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch c {
		case '*':
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				i++
				if i+1 < len(pattern) && pattern[i+1] == '/' {
					i++
					b.WriteString("(.*/)?")
				} else {
					b.WriteString(".*")
				}
				continue
			}
			b.WriteString("[^/]*")
		case '?':
			b.WriteString("[^/]")
		case '[':
			end := strings.IndexByte(pattern[i+1:], ']')
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			class := pattern[i+1 : i+1+end]
			b.WriteByte('[')
			if strings.HasPrefix(class, "!") {
				b.WriteByte('^')
				class = class[1:]
			}
			b.WriteString(strings.ReplaceAll(class, `\`, `\\`))
			b.WriteByte(']')
			i += end + 1
		case '{':
			end := closingBrace(pattern, i)
			if end < 0 {
				b.WriteString(`\{`)
				continue
			}
			b.WriteString("(")
			for j, alt := range splitAlternates(pattern[i+1 : end]) {
				if j > 0 {
					b.WriteString("|")
				}
				write(b, alt)
			}
			b.WriteString(")")
			i = end
		case '\\':
			if i+1 < len(pattern) {
				i++
				b.WriteString(regexp.QuoteMeta(string(pattern[i])))
			} else {
				b.WriteString(`\\`)
			}
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
}

// closingBrace returns the index of the brace closing the one at open,
// or -1.
func closingBrace(pattern string, open int) int {
	depth := 0
	for i := open; i < len(pattern); i++ {
		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitAlternates splits on top level commas.
func splitAlternates(s string) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}
