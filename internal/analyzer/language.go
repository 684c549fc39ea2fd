package analyzer

import "regexp"

// languageSignature scores one candidate language by counting how many of its
// regular-expression signatures match the source text.
type languageSignature struct {
	name     string
	patterns []*regexp.Regexp
}

// Order matters: ties are broken by enumeration order.
var languageSignatures = []languageSignature{
	{
		name: "javascript",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bfunction\s+\w+`),
			regexp.MustCompile(`\b(const|let)\s+\w+`),
			regexp.MustCompile(`=>`),
			regexp.MustCompile(`console\.log`),
		},
	},
	{
		name: "typescript",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`:\s*(string|number|boolean|void)\b`),
			regexp.MustCompile(`\binterface\s+\w+`),
			regexp.MustCompile(`\bexport\s+(type|interface|class)\b`),
			regexp.MustCompile(`<[A-Z]\w*>`),
		},
	},
	{
		name: "python",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*def\s+\w+`),
			regexp.MustCompile(`(?m)^\s*(import|from)\s+\w+`),
			regexp.MustCompile(`\bself\.`),
			regexp.MustCompile(`print\(`),
		},
	},
	{
		name: "go",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bfunc\s+\w+`),
			regexp.MustCompile(`(?m)^package\s+\w+`),
			regexp.MustCompile(`:=`),
			regexp.MustCompile(`\bfmt\.`),
		},
	},
	{
		name: "rust",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bfn\s+\w+`),
			regexp.MustCompile(`\blet\s+mut\b`),
			regexp.MustCompile(`\w+::\w+`),
			regexp.MustCompile(`println!`),
		},
	},
	{
		name: "java",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\bpublic\s+(class|static)\b`),
			regexp.MustCompile(`System\.out`),
			regexp.MustCompile(`\bprivate\s+\w+\s+\w+`),
			regexp.MustCompile(`\bnew\s+[A-Z]\w*\(`),
		},
	},
	{
		name: "ruby",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?m)^\s*def\s+\w+\s*$`),
			regexp.MustCompile(`(?m)^\s*end\s*$`),
			regexp.MustCompile(`\bputs\s`),
			regexp.MustCompile(`\brequire\s`),
		},
	},
}

// DetectLanguage picks the language whose signatures score highest against
// the whole text. Zero matches yields "unknown"; ties keep the earlier entry.
func DetectLanguage(source string) string {
	best := "unknown"
	bestScore := 0
	for _, sig := range languageSignatures {
		score := 0
		for _, re := range sig.patterns {
			if re.MatchString(source) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = sig.name
		}
	}
	return best
}
