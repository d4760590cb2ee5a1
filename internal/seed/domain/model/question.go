package model

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// QuestionModelName is the registry name of the Question model
const QuestionModelName = "Question"

// QuestionCollectionName is the collection the Question model is stored in
const QuestionCollectionName = "questions"

// Answer is one selectable answer of a quiz question
type Answer struct {
	Text      string `json:"text" bson:"text" yaml:"text"`
	IsCorrect bool   `json:"isCorrect" bson:"isCorrect" yaml:"isCorrect"`
}

// Question is a multiple-choice quiz question
type Question struct {
	ID        primitive.ObjectID `json:"_id" bson:"_id,omitempty" yaml:"-"`
	Question  string             `json:"question" bson:"question" yaml:"question"`
	Answers   []Answer           `json:"answers" bson:"answers" yaml:"answers"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt" yaml:"-"`
}

// CorrectAnswers returns how many answers are flagged correct
func (q *Question) CorrectAnswers() int {
	n := 0
	for _, a := range q.Answers {
		if a.IsCorrect {
			n++
		}
	}
	return n
}

// HasText reports whether the question has non-blank text
func (q *Question) HasText() bool {
	return strings.TrimSpace(q.Question) != ""
}
