package models

// AnswerID identifies a stored answer
type AnswerID int32

// Answer represents a stored answer to a question
type Answer struct {
	ID         AnswerID   `json:"id"`
	Content    string     `json:"content"`
	QuestionID QuestionID `json:"question_id"`
}

// NewAnswer is an answer that has not been stored yet
type NewAnswer struct {
	Content    string     `json:"content"`
	QuestionID QuestionID `json:"question_id"`
}
