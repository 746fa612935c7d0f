package engine

// baseKeywords is the fixed keyword and literal list of the base scripting
// language. It is independent of which capability packages are enabled.
var baseKeywords = []string{
	"break", "case", "catch", "class", "const", "continue", "debugger",
	"default", "delete", "do", "else", "extends", "false", "finally", "for",
	"function", "if", "in", "instanceof", "let", "new", "null", "of",
	"return", "super", "switch", "this", "throw", "true", "try", "typeof",
	"undefined", "var", "void", "while",
}

// Keywords returns the base-language keyword list.
func Keywords() []string {
	out := make([]string, len(baseKeywords))
	copy(out, baseKeywords)
	return out
}
