package analyzer

import (
	"strings"
	"testing"

	"github.com/codetone-labs/codetone-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze_FunctionDefinitionLine(t *testing.T) {
	analysis := Analyze("function add(a, b) { return a + b; }", "")

	expectedKinds := []models.TokenKind{
		models.TokenKeyword,      // function
		models.TokenFunction,     // add
		models.TokenUnknown,      // a
		models.TokenUnknown,      // b
		models.TokenBracketOpen,  // {
		models.TokenReturn,       // return
		models.TokenUnknown,      // a
		models.TokenOperator,     // +
		models.TokenUnknown,      // b
		models.TokenBracketClose, // }
	}

	require.Len(t, analysis.Tokens, len(expectedKinds))
	for i, kind := range expectedKinds {
		assert.Equal(t, kind, analysis.Tokens[i].Kind, "token %d (%q)", i, analysis.Tokens[i].Text)
	}

	// The defining keyword stays a keyword; only the named identifier counts
	// as a function, so a definition line yields exactly one.
	assert.Equal(t, "add", analysis.Tokens[1].Text)
	assert.Equal(t, 1, analysis.Metrics.FunctionCount)
	assert.Equal(t, 1, analysis.Metrics.LineCount)
	assert.Equal(t, "javascript", analysis.Language)
}

func TestAnalyze_EmptySource(t *testing.T) {
	analysis := Analyze("", "")

	assert.Equal(t, "unknown", analysis.Language)
	assert.Empty(t, analysis.Tokens)
	assert.Empty(t, analysis.Structures)
	assert.Equal(t, models.CodeMetrics{}, analysis.Metrics)
}

func TestAnalyze_LanguageHintWins(t *testing.T) {
	analysis := Analyze("function add(a, b) { return a + b; }", "typescript")
	assert.Equal(t, "typescript", analysis.Language)
}

func TestTokenize_DepthTracking(t *testing.T) {
	source := strings.Join([]string{
		"if (x) {",
		"  while (y) {",
		"    z",
		"  }",
		"}",
	}, "\n")

	analysis := Analyze(source, "javascript")

	depthByLine := map[int]int{}
	for _, tok := range analysis.Tokens {
		depthByLine[tok.Line] = tok.Depth
	}

	assert.Equal(t, 0, depthByLine[1])
	assert.Equal(t, 1, depthByLine[2])
	assert.Equal(t, 2, depthByLine[3])
	assert.Equal(t, 2, depthByLine[4])
	assert.Equal(t, 1, depthByLine[5])

	assert.Equal(t, 2, analysis.Metrics.MaxNestingDepth)
	assert.Equal(t, 1, analysis.Metrics.LoopCount)
	assert.Equal(t, 1, analysis.Metrics.ConditionalCount)
}

func TestTokenize_DepthNeverNegative(t *testing.T) {
	analysis := Analyze("}\n}\nx", "")
	for _, tok := range analysis.Tokens {
		assert.GreaterOrEqual(t, tok.Depth, 0)
	}
}

func TestTokenize_CommentAndBlankLines(t *testing.T) {
	source := strings.Join([]string{
		"// leading comment",
		"",
		"# another style",
		"x",
	}, "\n")

	analysis := Analyze(source, "javascript")
	require.Len(t, analysis.Tokens, 4)

	assert.Equal(t, models.TokenComment, analysis.Tokens[0].Kind)
	assert.Equal(t, "// leading comment", analysis.Tokens[0].Text)
	assert.Equal(t, models.TokenWhitespace, analysis.Tokens[1].Kind)
	assert.Equal(t, models.TokenComment, analysis.Tokens[2].Kind)
	assert.Equal(t, models.TokenUnknown, analysis.Tokens[3].Kind)
}

func TestClassifyFragment(t *testing.T) {
	tests := []struct {
		name     string
		frag     string
		line     string
		expected models.TokenKind
	}{
		{"string literal", `"hello"`, `x = "hello"`, models.TokenString},
		{"integer", "42", "x = 42", models.TokenNumber},
		{"float", "3.14", "x = 3.14", models.TokenNumber},
		{"operator", "==", "a == b", models.TokenOperator},
		{"compound operator", ":=", "a := b", models.TokenOperator},
		{"open brace", "{", "{", models.TokenBracketOpen},
		{"close bracket", "]", "]", models.TokenBracketClose},
		{"loop keyword", "for", "for i", models.TokenLoop},
		{"conditional keyword", "unless", "unless x", models.TokenConditional},
		{"variable keyword", "let", "let x", models.TokenVariable},
		{"class keyword", "struct", "struct Foo", models.TokenClass},
		{"import keyword", "require", "require 'json'", models.TokenImport},
		{"error keyword", "catch", "catch (e)", models.TokenError},
		{"call identifier", "add", "add(1, 2)", models.TokenFunction},
		{"plain identifier", "total", "total = 1", models.TokenUnknown},
		{"defining keyword", "def", "def add():", models.TokenKeyword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, classifyFragment(tt.frag, tt.line))
		})
	}
}

func TestComplexityScore_Caps(t *testing.T) {
	m := models.CodeMetrics{
		MaxNestingDepth:  10, // 50 raw, capped to 30
		LoopCount:        10,
		ConditionalCount: 10, // 60 raw, capped to 30
		FunctionCount:    10, // 40 raw, capped to 20
	}
	assert.Equal(t, 100, complexityScore(m, 1000))
	assert.Equal(t, 0, complexityScore(models.CodeMetrics{}, 0))
}

func TestComplexityScore_Components(t *testing.T) {
	m := models.CodeMetrics{
		MaxNestingDepth:  2, // 10
		LoopCount:        1,
		ConditionalCount: 2, // 9
		FunctionCount:    1, // 4
	}
	// 25 code lines add 5
	assert.Equal(t, 28, complexityScore(m, 25))
}

func TestAnalyze_ComplexityBounds(t *testing.T) {
	// Every line opens a brace, so nesting depth keeps climbing.
	var b strings.Builder
	for i := 0; i < 200; i++ {
		b.WriteString("if (x) { fire()\n")
	}
	analysis := Analyze(b.String(), "")

	assert.LessOrEqual(t, analysis.Metrics.Complexity, 100)
	assert.GreaterOrEqual(t, analysis.Metrics.Complexity, 0)
	assert.Equal(t, 100, analysis.Metrics.Complexity)
}
