package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{
			name:     "javascript",
			source:   "function greet(name) {\n  const msg = 'hi'\n  console.log(msg)\n}",
			expected: "javascript",
		},
		{
			name:     "typescript",
			source:   "export interface User {\n  name: string\n  age: number\n}",
			expected: "typescript",
		},
		{
			name:     "python",
			source:   "import os\n\ndef main():\n    print(os.getcwd())",
			expected: "python",
		},
		{
			name:     "go",
			source:   "package main\n\nfunc main() {\n\tx := 1\n\tfmt.Println(x)\n}",
			expected: "go",
		},
		{
			name:     "rust",
			source:   "fn main() {\n    let mut total = 0;\n    println!(\"{}\", total);\n}",
			expected: "rust",
		},
		{
			name:     "java",
			source:   "public class Main {\n  public static void main(String[] args) {\n    System.out.println(new Thing());\n  }\n}",
			expected: "java",
		},
		{
			name:     "ruby",
			source:   "require 'json'\n\ndef greet\n  puts 'hi'\nend",
			expected: "ruby",
		},
		{
			name:     "empty input",
			source:   "",
			expected: "unknown",
		},
		{
			name:     "plain prose",
			source:   "the quick brown fox jumps over the lazy dog",
			expected: "unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectLanguage(tt.source))
		})
	}
}

func TestDetectLanguage_TieKeepsEarlierEntry(t *testing.T) {
	// "let" scores one point for javascript; nothing else matches, so the
	// earlier signature wins any would-be tie.
	assert.Equal(t, "javascript", DetectLanguage("let total"))
}
