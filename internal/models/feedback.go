package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Sentiment labels. A stored record always carries one of these four;
// the classifier itself only ever produces the first three.
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
	LabelUnknown  = "unknown"
)

type Sentiment struct {
	Label string  `bson:"label" json:"label"`
	Score float64 `bson:"score" json:"score"`
}

// UnknownSentiment is the sentinel stored when classification did not
// complete. Writes never fail on classifier trouble; they carry this instead.
func UnknownSentiment() Sentiment {
	return Sentiment{Label: LabelUnknown, Score: 0.5}
}

// ValidLabel reports whether s is one of the four stored label values.
func ValidLabel(s string) bool {
	switch s {
	case LabelPositive, LabelNeutral, LabelNegative, LabelUnknown:
		return true
	}
	return false
}

type Feedback struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	User      string        `bson:"user" json:"user"`
	Message   string        `bson:"message" json:"message"`
	Sentiment Sentiment     `bson:"sentiment" json:"sentiment"`
	CreatedAt time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updated_at" json:"updatedAt"`
}
