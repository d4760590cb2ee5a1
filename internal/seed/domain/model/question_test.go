package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuestion_CorrectAnswers(t *testing.T) {
	q := Question{
		Question: "What is the output of print(2 ** 3)?",
		Answers: []Answer{
			{Text: "6", IsCorrect: false},
			{Text: "8", IsCorrect: true},
			{Text: "9", IsCorrect: false},
		},
	}
	assert.Equal(t, 1, q.CorrectAnswers())
	assert.True(t, q.HasText())

	blank := Question{Question: "   "}
	assert.False(t, blank.HasText())
	assert.Equal(t, 0, blank.CorrectAnswers())
}

func TestHasCollection(t *testing.T) {
	descriptors := []CollectionDescriptor{{Name: "users", Type: "collection"}, {Name: "questions", Type: "collection"}}
	assert.True(t, HasCollection(descriptors, "questions"))
	assert.False(t, HasCollection(descriptors, "answers"))
	assert.False(t, HasCollection(nil, "questions"))
}
