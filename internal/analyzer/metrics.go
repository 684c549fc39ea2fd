package analyzer

import (
	"strings"

	"github.com/codetone-labs/codetone-api/internal/models"
)

// Complexity score caps; each component saturates independently before the
// clamped sum.
const (
	nestingCap   = 30
	branchingCap = 30
	sizeCap      = 20
	functionsCap = 20
)

func computeMetrics(source string, tokens []models.Token) models.CodeMetrics {
	lines := strings.Split(source, "\n")
	m := models.CodeMetrics{LineCount: len(lines)}

	codeLines := 0
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			codeLines++
		}
	}

	for _, tok := range tokens {
		switch tok.Kind {
		case models.TokenFunction:
			m.FunctionCount++
		case models.TokenLoop:
			m.LoopCount++
		case models.TokenConditional:
			m.ConditionalCount++
		case models.TokenClass:
			m.ClassCount++
		case models.TokenImport:
			m.ImportCount++
		case models.TokenError:
			m.ErrorCount++
		}
		if tok.Depth > m.MaxNestingDepth {
			m.MaxNestingDepth = tok.Depth
		}
	}

	m.Complexity = complexityScore(m, codeLines)
	return m
}

func complexityScore(m models.CodeMetrics, codeLines int) int {
	score := capAt(m.MaxNestingDepth*5, nestingCap) +
		capAt((m.LoopCount+m.ConditionalCount)*3, branchingCap) +
		capAt(codeLines/5, sizeCap) +
		capAt(m.FunctionCount*4, functionsCap)

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func capAt(v, cap int) int {
	if v > cap {
		return cap
	}
	return v
}
