// Package named scans SQL text for named placeholders like ":name".
//
// Placeholders inside quoted literals and identifiers are left alone,
// and PostgreSQL style casts ("::type") are not placeholders.
package named

import "strings"

// IsName reports whether s can be used as a placeholder name.
func IsName(s string) bool {
	if s == "" || !isNameStart(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isNameChar(s[i]) {
			return false
		}
	}
	return true
}

// Replace calls fn for every placeholder in query and substitutes the
// whole token (colon included) with the returned text.
func Replace(query string, fn func(name string) string) string {
	var sb strings.Builder
	sb.Grow(len(query))
	for i := 0; i < len(query); {
		c := query[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			j := skipQuoted(query, i)
			sb.WriteString(query[i:j])
			i = j
		case c == ':' && i+1 < len(query) && query[i+1] == ':':
			sb.WriteString("::")
			i += 2
		case c == ':' && i+1 < len(query) && isNameStart(query[i+1]):
			j := i + 2
			for j < len(query) && isNameChar(query[j]) {
				j++
			}
			sb.WriteString(fn(query[i+1 : j]))
			i = j
		default:
			sb.WriteByte(c)
			i++
		}
	}
	return sb.String()
}

// Rename rewrites placeholders according to renames, keeping the others.
func Rename(query string, renames map[string]string) string {
	if len(renames) == 0 {
		return query
	}
	return Replace(query, func(name string) string {
		if to, ok := renames[name]; ok {
			return ":" + to
		}
		return ":" + name
	})
}

// Names returns the placeholder names of query in order of appearance.
func Names(query string) []string {
	var names []string
	Replace(query, func(name string) string {
		names = append(names, name)
		return ""
	})
	return names
}

// skipQuoted returns the index right after the literal starting at i.
// A quote is escaped by doubling it; backslashes are plain characters.
func skipQuoted(s string, i int) int {
	q := s[i]
	j := i + 1
	for j < len(s) {
		if s[j] == q {
			if j+1 < len(s) && s[j+1] == q {
				j += 2
				continue
			}
			return j + 1
		}
		j++
	}
	return len(s)
}

func isNameStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isNameChar(c byte) bool {
	return isNameStart(c) || ('0' <= c && c <= '9')
}
