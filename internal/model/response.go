package model

import "time"

// Response is one graded answer. Append-only; a unique index on
// (testId, section, questionId) makes duplicate submissions no-ops.
type Response struct {
	ID            string    `json:"id" bson:"_id,omitempty"`
	TestID        string    `json:"testId" bson:"testId"`
	Section       Section   `json:"section" bson:"section"`
	QuestionID    string    `json:"questionId" bson:"questionId"`
	SelectedIndex int       `json:"selectedIndex" bson:"selectedIndex"` // canonical option order
	Correct       bool      `json:"correct" bson:"correct"`
	TimeSpentMs   int64     `json:"timeSpentMs" bson:"timeSpentMs"`
	AnsweredAt    time.Time `json:"answeredAt" bson:"answeredAt"`
}
