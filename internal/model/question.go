package model

// Question is one item from the content pool. Options are stored in their
// canonical order; the shuffled presentation order is never persisted.
type Question struct {
	ID           string   `json:"id" bson:"_id,omitempty"`
	Section      Section  `json:"section" bson:"section"`
	Level        int      `json:"level" bson:"level"`
	Sublevel     string   `json:"sublevel" bson:"sublevel"`
	Stem         string   `json:"stem" bson:"stem"`
	Options      []string `json:"options" bson:"options"`
	CorrectIndex int      `json:"correctIndex" bson:"correctIndex"`
	PassageID    string   `json:"passageId,omitempty" bson:"passageId,omitempty"`
	SkillTags    []string `json:"skillTags,omitempty" bson:"skillTags,omitempty"`
	MediaURL     string   `json:"mediaUrl,omitempty" bson:"mediaUrl,omitempty"`
	Instructions string   `json:"instructions,omitempty" bson:"instructions,omitempty"`
	Active       bool     `json:"active" bson:"active"`
}

// Passage is a reading text shared by several questions.
type Passage struct {
	ID       string  `json:"id" bson:"_id,omitempty"`
	Section  Section `json:"section" bson:"section"`
	Level    int     `json:"level" bson:"level"`
	Sublevel string  `json:"sublevel" bson:"sublevel"`
	Title    string  `json:"title" bson:"title"`
	Body     string  `json:"body" bson:"body"`
	Active   bool    `json:"active" bson:"active"`
}
