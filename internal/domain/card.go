package domain

import "time"

// Card is a flashcard describing a library function.
type Card struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	FunctionName string    `json:"function_name"`
	Description  string    `json:"description"`
	Parameters   []string  `json:"parameters"`
	ExampleCode  string    `json:"example_code"`
	CreatedAt    time.Time `json:"created_at"`
}
