package entities

// FixerDocument is the flattened fixer record kept in the search index
type FixerDocument struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Services []string `json:"services"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
}

// FixerSearchResult is one search hit with its relevance score
type FixerSearchResult struct {
	Fixer *FixerDocument `json:"fixer"`
	Score float64        `json:"score"`
}
