package analyzer

import "github.com/codetone-labs/codetone-api/internal/models"

var structuralKinds = map[models.TokenKind]bool{
	models.TokenFunction:    true,
	models.TokenLoop:        true,
	models.TokenConditional: true,
	models.TokenClass:       true,
}

// extractStructures builds the nested structure tree. Each structural token
// opens a structure that ends at the first later token with a strictly
// smaller depth (or at the last token). Structures are then nested by line
// containment: a later structure is placed under the most recently created
// root whose line range contains it, otherwise it becomes a new root.
func extractStructures(tokens []models.Token) []*models.CodeStructure {
	var all []*models.CodeStructure

	for i, tok := range tokens {
		if !structuralKinds[tok.Kind] {
			continue
		}

		name := tok.Text
		if i+1 < len(tokens) && tokens[i+1].Kind == models.TokenUnknown && tokens[i+1].Text != "" {
			name = tokens[i+1].Text
		}

		endLine := tokens[len(tokens)-1].Line
		for j := i + 1; j < len(tokens); j++ {
			if tokens[j].Depth < tok.Depth {
				endLine = tokens[j].Line
				break
			}
		}

		all = append(all, &models.CodeStructure{
			Kind:      tok.Kind,
			Name:      name,
			StartLine: tok.Line,
			EndLine:   endLine,
			Depth:     tok.Depth,
		})
	}

	roots := make([]*models.CodeStructure, 0, len(all))
	for _, s := range all {
		placed := false
		for r := len(roots) - 1; r >= 0; r-- {
			if contains(roots[r], s) {
				roots[r].Children = append(roots[r].Children, s)
				placed = true
				break
			}
		}
		if !placed {
			roots = append(roots, s)
		}
	}

	return roots
}

func contains(parent, child *models.CodeStructure) bool {
	return child.StartLine > parent.StartLine && child.EndLine <= parent.EndLine
}
