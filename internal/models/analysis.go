package models

// TokenKind classifies a source fragment produced by the analyzer.
type TokenKind string

const (
	TokenFunction     TokenKind = "function"
	TokenLoop         TokenKind = "loop"
	TokenConditional  TokenKind = "conditional"
	TokenVariable     TokenKind = "variable"
	TokenClass        TokenKind = "class"
	TokenString       TokenKind = "string"
	TokenNumber       TokenKind = "number"
	TokenOperator     TokenKind = "operator"
	TokenComment      TokenKind = "comment"
	TokenImport       TokenKind = "import"
	TokenReturn       TokenKind = "return"
	TokenError        TokenKind = "error"
	TokenBracketOpen  TokenKind = "bracket_open"
	TokenBracketClose TokenKind = "bracket_close"
	TokenWhitespace   TokenKind = "whitespace"
	TokenKeyword      TokenKind = "keyword"
	TokenUnknown      TokenKind = "unknown"
)

// Token is a single typed fragment of source text. Tokens are emitted in
// source order; order drives musical time progression.
type Token struct {
	Kind   TokenKind `json:"kind"`
	Text   string    `json:"text"`
	Line   int       `json:"line"`
	Column int       `json:"column"`
	Depth  int       `json:"depth"` // bracket nesting depth, never negative
}

// CodeMetrics aggregates counts over a token stream.
type CodeMetrics struct {
	LineCount        int `json:"lineCount"`
	FunctionCount    int `json:"functionCount"`
	LoopCount        int `json:"loopCount"`
	ConditionalCount int `json:"conditionalCount"`
	ClassCount       int `json:"classCount"`
	ImportCount      int `json:"importCount"`
	ErrorCount       int `json:"errorCount"`
	MaxNestingDepth  int `json:"maxNestingDepth"`
	Complexity       int `json:"complexity"` // 0-100
}

// CodeStructure is one node of the nested structure tree (functions, classes,
// loops and conditionals nested by line containment).
type CodeStructure struct {
	Kind      TokenKind        `json:"kind"`
	Name      string           `json:"name"`
	StartLine int              `json:"startLine"`
	EndLine   int              `json:"endLine"`
	Depth     int              `json:"depth"`
	Children  []*CodeStructure `json:"children,omitempty"`
}

// CodeAnalysis is the complete analyzer output for one source text.
type CodeAnalysis struct {
	Language   string           `json:"language"`
	Tokens     []Token          `json:"tokens"`
	Metrics    CodeMetrics      `json:"metrics"`
	Structures []*CodeStructure `json:"structures"`
}

// DiffStats aggregates a parsed unified diff.
type DiffStats struct {
	AddedLines   int      `json:"addedLines"`
	RemovedLines int      `json:"removedLines"`
	ContextLines int      `json:"contextLines"`
	ChangeRatio  float64  `json:"changeRatio"` // added/(added+removed), 0.5 when no changes
	Files        []string `json:"files,omitempty"`
}

// TotalChanges returns added plus removed line count.
func (d DiffStats) TotalChanges() int {
	return d.AddedLines + d.RemovedLines
}
