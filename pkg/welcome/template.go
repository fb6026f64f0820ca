// Package welcome greets new members with a per-guild configurable message.
package welcome

import "strings"

// Substitute expands $name and ${name} placeholders from vars. "$$" yields a
// literal "$". Placeholders with no entry in vars are left untouched, so an
// operator's typo degrades to visible text instead of an error.
func Substitute(template string, vars map[string]string) string {
	var b strings.Builder
	b.Grow(len(template))

	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' {
			b.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(template) {
			b.WriteByte('$')
			break
		}

		next := template[i+1]
		switch {
		case next == '$':
			b.WriteByte('$')
			i += 2
		case next == '{':
			end := strings.IndexByte(template[i+2:], '}')
			if end < 0 {
				b.WriteString(template[i:])
				i = len(template)
				break
			}
			name := template[i+2 : i+2+end]
			if value, ok := vars[name]; ok && isIdentifier(name) {
				b.WriteString(value)
			} else {
				b.WriteString(template[i : i+3+end])
			}
			i += 3 + end
		default:
			name := identifierAt(template[i+1:])
			if name == "" {
				b.WriteByte('$')
				i++
				break
			}
			if value, ok := vars[name]; ok {
				b.WriteString(value)
			} else {
				b.WriteString(template[i : i+1+len(name)])
			}
			i += 1 + len(name)
		}
	}
	return b.String()
}

func isIdentifier(s string) bool {
	return s != "" && s == identifierAt(s)
}

// identifierAt returns the longest identifier prefix of s.
func identifierAt(s string) string {
	n := 0
	for n < len(s) {
		c := s[n]
		alpha := c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		digit := c >= '0' && c <= '9'
		if !alpha && !(digit && n > 0) {
			break
		}
		n++
	}
	return s[:n]
}
