package analyzer

import (
	"regexp"
	"strings"

	"github.com/codetone-labs/codetone-api/internal/models"
)

// fragmentSplit separates a code line into classifiable fragments. Commas,
// semicolons and parentheses act as separators alongside whitespace, so a
// call like `add(a, b)` yields the bare identifier `add`.
var fragmentSplit = regexp.MustCompile(`[\s,;()]+`)

var numberPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

var commentMarkers = []string{"//", "#", "--", "/*", "*"}

const operatorChars = "+-*/=<>!&|%^~:.?@"

// keywordKinds maps recognized keywords to token kinds. Function-defining
// keywords (function, def, func, fn) classify as plain keywords; the function
// kind is reserved for the identifier that carries the call parenthesis, so a
// definition line yields exactly one function token.
var keywordKinds = map[string]models.TokenKind{
	"for": models.TokenLoop, "while": models.TokenLoop, "loop": models.TokenLoop,
	"foreach": models.TokenLoop, "repeat": models.TokenLoop, "until": models.TokenLoop,

	"if": models.TokenConditional, "else": models.TokenConditional,
	"elif": models.TokenConditional, "elsif": models.TokenConditional,
	"switch": models.TokenConditional, "case": models.TokenConditional,
	"when": models.TokenConditional, "unless": models.TokenConditional,
	"match": models.TokenConditional,

	"var": models.TokenVariable, "let": models.TokenVariable,
	"const": models.TokenVariable, "val": models.TokenVariable,
	"mut": models.TokenVariable,

	"class": models.TokenClass, "struct": models.TokenClass,
	"interface": models.TokenClass, "trait": models.TokenClass,
	"enum": models.TokenClass, "impl": models.TokenClass,

	"import": models.TokenImport, "require": models.TokenImport,
	"include": models.TokenImport, "use": models.TokenImport,
	"using": models.TokenImport, "from": models.TokenImport,

	"return": models.TokenReturn, "yield": models.TokenReturn,

	"throw": models.TokenError, "catch": models.TokenError,
	"try": models.TokenError, "except": models.TokenError,
	"panic": models.TokenError, "raise": models.TokenError,
	"rescue": models.TokenError, "error": models.TokenError,

	"function": models.TokenKeyword, "def": models.TokenKeyword,
	"func": models.TokenKeyword, "fn": models.TokenKeyword,
	"lambda": models.TokenKeyword, "public": models.TokenKeyword,
	"private": models.TokenKeyword, "protected": models.TokenKeyword,
	"static": models.TokenKeyword, "void": models.TokenKeyword,
	"new": models.TokenKeyword, "this": models.TokenKeyword,
	"self": models.TokenKeyword, "async": models.TokenKeyword,
	"await": models.TokenKeyword, "package": models.TokenKeyword,
	"namespace": models.TokenKeyword, "module": models.TokenKeyword,
	"end": models.TokenKeyword, "do": models.TokenKeyword,
	"then": models.TokenKeyword, "begin": models.TokenKeyword,
	"export": models.TokenKeyword, "defer": models.TokenKeyword,
}

// Analyze scans source text into tokens, aggregate metrics and a structure
// tree. It is a total function: any input, including the empty string,
// produces a valid analysis.
func Analyze(source, languageHint string) models.CodeAnalysis {
	language := languageHint
	if language == "" {
		language = DetectLanguage(source)
	}

	if source == "" {
		return models.CodeAnalysis{Language: language, Tokens: []models.Token{}, Structures: []*models.CodeStructure{}}
	}

	tokens := tokenize(source)
	return models.CodeAnalysis{
		Language:   language,
		Tokens:     tokens,
		Metrics:    computeMetrics(source, tokens),
		Structures: extractStructures(tokens),
	}
}

func tokenize(source string) []models.Token {
	lines := strings.Split(source, "\n")
	tokens := make([]models.Token, 0, len(lines)*4)
	depth := 0

	for i, line := range lines {
		lineNo := i + 1
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			tokens = append(tokens, models.Token{Kind: models.TokenWhitespace, Line: lineNo, Depth: depth})
			continue
		}

		if isCommentLine(trimmed) {
			tokens = append(tokens, models.Token{
				Kind:   models.TokenComment,
				Text:   trimmed,
				Line:   lineNo,
				Column: strings.Index(line, trimmed[:1]),
				Depth:  depth,
			})
			depth = nextDepth(depth, line)
			continue
		}

		searchFrom := 0
		for _, frag := range fragmentSplit.Split(trimmed, -1) {
			if frag == "" {
				continue
			}
			col := strings.Index(line[searchFrom:], frag)
			if col >= 0 {
				col += searchFrom
				searchFrom = col + len(frag)
			} else {
				col = 0
			}
			tokens = append(tokens, models.Token{
				Kind:   classifyFragment(frag, line),
				Text:   frag,
				Line:   lineNo,
				Column: col,
				Depth:  depth,
			})
		}

		depth = nextDepth(depth, line)
	}

	return tokens
}

// nextDepth applies a line's bracket balance to the running nesting depth,
// floored at zero.
func nextDepth(depth int, line string) int {
	depth += strings.Count(line, "{") + strings.Count(line, "(") + strings.Count(line, "[")
	depth -= strings.Count(line, "}") + strings.Count(line, ")") + strings.Count(line, "]")
	if depth < 0 {
		depth = 0
	}
	return depth
}

func isCommentLine(trimmed string) bool {
	for _, marker := range commentMarkers {
		if strings.HasPrefix(trimmed, marker) {
			return true
		}
	}
	return false
}

func classifyFragment(frag, line string) models.TokenKind {
	switch {
	case frag[0] == '"' || frag[0] == '\'' || frag[0] == '`':
		return models.TokenString
	case numberPattern.MatchString(frag):
		return models.TokenNumber
	case isAllOperatorChars(frag):
		return models.TokenOperator
	case frag == "{" || frag == "[":
		return models.TokenBracketOpen
	case frag == "}" || frag == "]":
		return models.TokenBracketClose
	}
	if kind, ok := keywordKinds[frag]; ok {
		return kind
	}
	if isIdentifier(frag) && strings.Contains(line, frag+"(") {
		return models.TokenFunction
	}
	return models.TokenUnknown
}

func isAllOperatorChars(frag string) bool {
	for _, r := range frag {
		if !strings.ContainsRune(operatorChars, r) {
			return false
		}
	}
	return true
}

func isIdentifier(frag string) bool {
	for i, r := range frag {
		alpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
		if i == 0 && !alpha {
			return false
		}
		if !alpha && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}
