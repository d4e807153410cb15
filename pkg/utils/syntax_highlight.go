// Package utils provides utility functions shared by the csrgen packages.
package utils

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// C syntax highlighting colors
var (
	cKeywordColor      = color.New(color.FgMagenta, color.Bold)
	cTypeColor         = color.New(color.FgCyan)
	cStringColor       = color.New(color.FgGreen)
	cNumberColor       = color.New(color.FgYellow)
	cCommentColor      = color.New(color.FgHiBlack)
	cPreprocessorColor = color.New(color.FgBlue)
	cFunctionColor     = color.New(color.FgHiYellow)
)

// C language keywords, including the GNU extensions used by inline assembly accessors
var cKeywords = map[string]bool{
	"break": true, "case": true, "const": true, "continue": true,
	"default": true, "do": true, "else": true, "enum": true,
	"extern": true, "for": true, "if": true, "inline": true,
	"return": true, "sizeof": true, "static": true, "struct": true,
	"switch": true, "typedef": true, "union": true, "volatile": true,
	"while": true, "__asm__": true, "__volatile__": true,
	"_Static_assert": true,
}

// C type keywords
var cTypes = map[string]bool{
	"void": true, "char": true, "short": true, "int": true,
	"long": true, "unsigned": true, "bool": true,
	"uint8_t": true, "uint16_t": true, "uint32_t": true, "uint64_t": true,
	"uint_xlen_t": true, "uint_csr32_t": true, "uint_csr64_t": true,
}

// Patterns for syntax elements, in priority order. Earlier matches win over later overlapping ones.
var cPatterns = []struct {
	pattern *regexp.Regexp
	color   *color.Color
	group   int
}{
	{regexp.MustCompile(`(?s)/\*.*?\*/`), cCommentColor, 0},
	{regexp.MustCompile(`(?m)//.*$`), cCommentColor, 0},
	{regexp.MustCompile(`"(?:[^"\\]|\\.)*"`), cStringColor, 0},
	{regexp.MustCompile(`(?m)^\s*#\s*\w+`), cPreprocessorColor, 0},
	{regexp.MustCompile(`\b(?:0[xX][0-9a-fA-F]+|[0-9]+)[uUlL]*\b`), cNumberColor, 0},
	{regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\s*\(`), cFunctionColor, 1},
	{regexp.MustCompile(`\b[a-zA-Z_][a-zA-Z0-9_]*\b`), nil, 0},
}

// token represents a syntax-highlighted token
type token struct {
	color *color.Color
	start int
	end   int
}

// HighlightCCode applies syntax highlighting to C source code and returns the colored string
func HighlightCCode(code string) string {
	if code == "" {
		return ""
	}

	var tokens []token

	for _, p := range cPatterns {
		for _, match := range p.pattern.FindAllStringSubmatchIndex(code, -1) {
			start, end := match[2*p.group], match[2*p.group+1]
			if start < 0 || overlapsAny(start, end, tokens) {
				continue
			}

			c := p.color
			word := code[start:end]

			// Keywords and types are never highlighted as function calls
			if c == nil || c == cFunctionColor {
				switch {
				case cKeywords[word]:
					c = cKeywordColor
				case cTypes[word]:
					c = cTypeColor
				}
			}

			if c != nil {
				tokens = append(tokens, token{color: c, start: start, end: end})
			}
		}
	}

	return buildHighlightedString(code, tokens)
}

// overlapsAny checks if a range overlaps with any existing token
func overlapsAny(start, end int, tokens []token) bool {
	for _, t := range tokens {
		if start < t.end && end > t.start {
			return true
		}
	}
	return false
}

// buildHighlightedString constructs the final string with color codes
func buildHighlightedString(code string, tokens []token) string {
	if len(tokens) == 0 {
		return code
	}

	sortTokens(tokens)

	var result strings.Builder
	pos := 0

	for _, t := range tokens {
		if t.start > pos {
			result.WriteString(code[pos:t.start])
		}
		result.WriteString(t.color.Sprint(code[t.start:t.end]))
		pos = t.end
	}

	if pos < len(code) {
		result.WriteString(code[pos:])
	}

	return result.String()
}

// sortTokens sorts tokens by start position
func sortTokens(tokens []token) {
	for i := 1; i < len(tokens); i++ {
		key := tokens[i]
		j := i - 1
		for j >= 0 && tokens[j].start > key.start {
			tokens[j+1] = tokens[j]
			j--
		}
		tokens[j+1] = key
	}
}
