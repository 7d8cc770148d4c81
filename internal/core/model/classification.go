package model

// CategoryCount is a topical category with the number of keyword hits behind it.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// ClassifiedCategories matches the JSON object the LLM classifier is asked to return.
type ClassifiedCategories struct {
	Categories []string `json:"categories"`
}
