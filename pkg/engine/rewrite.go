package engine

// rewriteQualifiers maps `ns::name` qualifiers in script source onto member
// access before compilation, so the scripting surface keeps the `::` scope
// separator the console and editor documentation use. Occurrences inside
// string literals, template literals and comments are left untouched.
// Regular-expression literals are not recognized.
func rewriteQualifiers(src string) string {
	const (
		stateCode = iota
		stateString
		stateTemplate
		stateLineComment
		stateBlockComment
	)

	out := make([]byte, 0, len(src))
	state := stateCode
	var quote byte

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch state {
		case stateCode:
			switch {
			case c == '"' || c == '\'':
				state = stateString
				quote = c
			case c == '`':
				state = stateTemplate
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				state = stateLineComment
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				state = stateBlockComment
			case c == ':' && i+1 < len(src) && src[i+1] == ':' &&
				i > 0 && isIdentChar(src[i-1]) &&
				i+2 < len(src) && isIdentStart(src[i+2]):
				out = append(out, '.')
				i++
				continue
			}
		case stateString:
			if c == '\\' && i+1 < len(src) {
				out = append(out, c, src[i+1])
				i++
				continue
			}
			if c == quote || c == '\n' {
				state = stateCode
			}
		case stateTemplate:
			if c == '\\' && i+1 < len(src) {
				out = append(out, c, src[i+1])
				i++
				continue
			}
			if c == '`' {
				state = stateCode
			}
		case stateLineComment:
			if c == '\n' {
				state = stateCode
			}
		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out = append(out, c, src[i+1])
				i++
				state = stateCode
				continue
			}
		}

		out = append(out, c)
	}

	return string(out)
}

func isIdentStart(c byte) bool {
	return c == '_' || c == '$' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}
