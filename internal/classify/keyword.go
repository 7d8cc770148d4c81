package classify

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball/english"

	"github.com/agenthands/ghrank/internal/core/model"
)

// KeywordClassifier counts keyword hits over normalised description tokens.
type KeywordClassifier struct {
	Top int
}

func NewKeywordClassifier(top int) *KeywordClassifier {
	if top <= 0 {
		top = DefaultTop
	}
	return &KeywordClassifier{Top: top}
}

func (k *KeywordClassifier) Classify(_ context.Context, descriptions []string) []string {
	counts := k.Count(descriptions)
	out := make([]string, 0, len(counts))
	for _, c := range counts {
		if c.Count == 0 {
			break
		}
		if len(out) == k.Top {
			break
		}
		out = append(out, c.Name)
	}
	return out
}

// Count returns every category with its hit count, highest first.
// Ties keep the declaration order of the categories.
func (k *KeywordClassifier) Count(descriptions []string) []model.CategoryCount {
	counts := make([]model.CategoryCount, len(categories))
	for i, c := range categories {
		counts[i].Name = c.name
	}

	for _, d := range descriptions {
		tokens := tokenize(d)
		for i := 0; i < len(tokens); i++ {
			if i+1 < len(tokens) {
				if idx := match(tokens[i] + " " + tokens[i+1]); idx >= 0 {
					counts[idx].Count++
					i++
					continue
				}
			}
			if idx := match(tokens[i]); idx >= 0 {
				counts[idx].Count++
			}
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func match(term string) int {
	key := stemPhrase(term)
	for i, c := range categories {
		if _, ok := c.keywords[key]; ok {
			return i
		}
	}
	return -1
}

// tokenize lowercases s, splits it on anything that is not a letter or digit
// and drops stopwords and tokens of two characters or fewer.
func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) <= 2 {
			continue
		}
		if _, stop := stopwords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

func stemPhrase(term string) string {
	parts := strings.Split(term, " ")
	for i, p := range parts {
		parts[i] = stem(p)
	}
	return strings.Join(parts, " ")
}

// stem reduces w to its Porter2 English stem.
func stem(w string) string {
	return english.Stem(w, false)
}

var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		about above after again against all also and any are aren because been before
		being below between both but can cannot could did didn does doesn doing down
		during each few for from further had has have having her here hers herself him
		himself his how into isn its itself just let more most must not now off once only
		other ought our ours ourselves out over own same she should some such than that
		the their theirs them themselves then there these they this those through too
		under until very was wasn were what when where which while who whom why will with
		won would you your yours yourself yourselves using use used simple based via
	`) {
		stopwords[w] = struct{}{}
	}
}
