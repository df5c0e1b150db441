package intent

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	tokenPattern  = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)
	clausePattern = regexp.MustCompile(`(?i)\band\b|\?|\.|,`)
)

// normalize folds compatibility forms and lowercases. A cases.Caser keeps
// state, so a fresh one is built per call.
func normalize(s string) string {
	return cases.Lower(language.Und).String(norm.NFKC.String(s))
}

func tokenize(s string) []string {
	return tokenPattern.FindAllString(normalize(s), -1)
}

// analyze turns a document into its word n-grams.
func analyze(doc string, ngramMin, ngramMax int) []string {
	tokens := tokenize(doc)
	var terms []string
	for n := ngramMin; n <= ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Clauses breaks an utterance into the clauses PredictMulti scores
// separately.
func Clauses(text string) []string {
	var out []string
	for _, part := range clausePattern.Split(text, -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
