package model

import "time"

// ParentSurvey is the intake questionnaire filled in by a parent before a
// placement test is provisioned. Fields are free-form text; the placement
// seeder is responsible for making sense of them.
type ParentSurvey struct {
	ID        string     `json:"id" bson:"_id,omitempty"`
	StudentID string     `json:"studentId" bson:"studentId"`
	Data      SurveyData `json:"data" bson:"data"`
	CreatedAt time.Time  `json:"createdAt" bson:"createdAt"`
}

// SurveyData is the raw questionnaire payload.
type SurveyData struct {
	Grade             string   `json:"grade" bson:"grade"`                           // e.g. "중2", "elementary 4"
	Academies         []string `json:"academies" bson:"academies"`                   // current supplementary academies
	HighestScore      string   `json:"highestScore" bson:"highestScore"`             // best past English score, free-form
	WeeklyReadingBook string   `json:"weeklyReadingBooks" bson:"weeklyReadingBooks"` // books read per week, free-form
	StrongestSubject  string   `json:"strongestSubject" bson:"strongestSubject"`
	WeakestSubject    string   `json:"weakestSubject" bson:"weakestSubject"`
	Motivation        string   `json:"motivation" bson:"motivation"` // study background / homework preference
}
