package analyzer

import (
	"strings"
	"testing"

	"github.com/codetone-labs/codetone-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStructures_NestedConditional(t *testing.T) {
	source := strings.Join([]string{
		"function outer() {",
		"  if (ready) {",
		"    return 1",
		"  }",
		"}",
	}, "\n")

	analysis := Analyze(source, "javascript")

	require.Len(t, analysis.Structures, 1)
	root := analysis.Structures[0]

	assert.Equal(t, models.TokenFunction, root.Kind)
	assert.Equal(t, "outer", root.Name)
	assert.Equal(t, 1, root.StartLine)
	assert.Equal(t, 5, root.EndLine)
	assert.Equal(t, 0, root.Depth)

	require.Len(t, root.Children, 1)
	child := root.Children[0]
	assert.Equal(t, models.TokenConditional, child.Kind)
	assert.Equal(t, 2, child.StartLine)
	assert.Equal(t, 1, child.Depth)
}

func TestExtractStructures_SiblingsShareParent(t *testing.T) {
	source := strings.Join([]string{
		"function outer() {",
		"  for (i) {",
		"    x",
		"  }",
		"  while (j) {",
		"    y",
		"  }",
		"}",
	}, "\n")

	analysis := Analyze(source, "javascript")

	require.Len(t, analysis.Structures, 1)
	root := analysis.Structures[0]
	assert.Equal(t, "outer", root.Name)

	require.Len(t, root.Children, 2)
	assert.Equal(t, models.TokenLoop, root.Children[0].Kind)
	assert.Equal(t, 2, root.Children[0].StartLine)
	assert.Equal(t, models.TokenLoop, root.Children[1].Kind)
	assert.Equal(t, 5, root.Children[1].StartLine)
}

func TestExtractStructures_NoStructuralTokens(t *testing.T) {
	analysis := Analyze("x = 1\ny = 2", "")
	assert.Empty(t, analysis.Structures)
}
