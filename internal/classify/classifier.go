package classify

import "context"

// Classifier assigns topical categories to a user from free-text descriptions,
// most relevant first. Implementations never fail; they return an empty slice instead.
type Classifier interface {
	Classify(ctx context.Context, descriptions []string) []string
}

const DefaultTop = 4

type category struct {
	name     string
	keywords map[string]struct{}
}

// newCategory keys keywords by their stemmed form so inflected tokens match.
func newCategory(name string, keywords ...string) category {
	c := category{name: name, keywords: make(map[string]struct{}, len(keywords))}
	for _, k := range keywords {
		c.keywords[stemPhrase(k)] = struct{}{}
	}
	return c
}

// categories are checked in order; a token counts for the first one that knows it.
var categories = []category{
	newCategory("Machine Learning", "machine learning", "deep learning", "neural network"),
	newCategory("Web Development", "web", "html", "css", "javascript", "react", "angular", "vue", "frontend", "backend"),
	newCategory("Mobile Development", "mobile", "android", "ios", "swift", "java", "kotlin"),
	newCategory("DevOps", "devops", "docker", "kubernetes", "aws", "azure", "gcp"),
	newCategory("Security", "security", "encryption", "penetration testing", "owasp"),
	newCategory("Game Development", "unity", "unreal", "game development", "game design"),
}

// Categories lists every category name a classifier may return.
func Categories() []string {
	names := make([]string, len(categories))
	for i, c := range categories {
		names[i] = c.name
	}
	return names
}

func isCategory(name string) bool {
	for _, c := range categories {
		if c.name == name {
			return true
		}
	}
	return false
}
