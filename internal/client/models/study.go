package models

// Deck is a flashcard deck summary as listed by GET /decks.
type Deck struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CardCount   int    `json:"cardCount"`
	DueCount    int    `json:"dueCount"`
}

// Streak is the study streak shown next to the prompt.
type Streak struct {
	Current int    `json:"current"`
	Longest int    `json:"longest"`
	Stage   string `json:"stage,omitempty"`
}
