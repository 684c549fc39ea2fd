package sonifier

import (
	"fmt"

	"github.com/codetone-labs/codetone-api/internal/analyzer"
	"github.com/codetone-labs/codetone-api/internal/models"
)

// SonifyCode runs the full analyze-map-assemble pipeline on one source text.
// It is pure and total: identical input yields an identical composition.
func SonifyCode(source, languageHint, styleName string) models.Composition {
	analysis := analyzer.Analyze(source, languageHint)
	return SonifyAnalysis(source, analysis, styleName)
}

// SonifyAnalysis maps an existing analysis to a composition; callers that
// already ran the analyzer avoid scanning twice.
func SonifyAnalysis(source string, analysis models.CodeAnalysis, styleName string) models.Composition {
	style := StyleByName(styleName)
	mapper := NewMapper(analysis.Metrics.Complexity, style)
	notes := mapper.MapTokens(analysis.Tokens)

	key, scale := moodForLanguage(analysis.Language)
	meta := models.CompositionMetadata{
		SourceLanguage: analysis.Language,
		LineCount:      analysis.Metrics.LineCount,
		Complexity:     analysis.Metrics.Complexity,
		ContentHash:    contentHash(source),
		Interpretation: interpret(analysis, style),
	}

	return Assemble(notes, mapper.Tempo(), key, scale, codeTitle(analysis.Language, key, scale), meta)
}

// SonifyDiffText converts a unified diff into a composition, returning the
// diff statistics and a human-readable summary alongside.
func SonifyDiffText(diffText, styleName string) (models.Composition, models.DiffStats, string) {
	lines, stats := parseDiff(diffText)
	key, scale := diffMood(stats)
	tempo := diffTempo(stats)

	notes := mapDiffLines(lines, rootPitchClass(key), tempo)

	complexity := stats.TotalChanges() * 3
	if complexity > 100 {
		complexity = 100
	}

	meta := models.CompositionMetadata{
		SourceLanguage: "unknown", // diffs carry no language tag
		LineCount:      len(lines),
		Complexity:     complexity,
		ContentHash:    contentHash(diffText),
		Interpretation: diffSummary(stats),
	}

	title := fmt.Sprintf("Changeset in %s %s", key, scale)
	comp := Assemble(notes, tempo, key, scale, title, meta)
	return comp, stats, diffSummary(stats)
}

// SonifyVersionPair analyzes both versions independently, synthesizes an
// index-paired pseudo-diff between them, and sonifies that diff. The two
// analyses feed the summary only; the composition keeps the diff path's
// metadata, including the unknown source language.
func SonifyVersionPair(oldSource, newSource, styleName string) (models.Composition, models.DiffStats, string) {
	oldAnalysis := analyzer.Analyze(oldSource, "")
	newAnalysis := analyzer.Analyze(newSource, "")

	comp, stats, summary := SonifyDiffText(synthesizeDiff(oldSource, newSource), styleName)

	summary = fmt.Sprintf("%s. Complexity moved from %d to %d (%s)",
		summary, oldAnalysis.Metrics.Complexity, newAnalysis.Metrics.Complexity, newAnalysis.Language)
	comp.Metadata.Interpretation = summary

	return comp, stats, summary
}
