package models

// QuestionID identifies a stored question
type QuestionID int32

// Question represents a stored question
type Question struct {
	ID      QuestionID `json:"id"`
	Title   string     `json:"title"`
	Content string     `json:"content"`
	Tags    []string   `json:"tags,omitempty"`
}

// NewQuestion is a question that has not been stored yet
type NewQuestion struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags,omitempty"`
}
