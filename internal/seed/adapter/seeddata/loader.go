package seeddata

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"os"

	"techquiz-server/internal/seed/domain/model"
	apperrors "techquiz-server/internal/shared/errors"

	"gopkg.in/yaml.v3"
)

// minAnswers is the smallest answer set a multiple-choice question can have
const minAnswers = 2

//go:embed questions.yaml
var defaultQuestions []byte

type questionFile struct {
	Questions []model.Question `yaml:"questions"`
}

// FileSource loads questions from a YAML file, or the embedded sample set
// when Path is empty. It implements repository.QuestionSource.
type FileSource struct {
	Path string
}

// NewFileSource creates a source for path. An empty path selects the embedded data.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// LoadQuestions implements repository.QuestionSource
func (s *FileSource) LoadQuestions(ctx context.Context) ([]model.Question, error) {
	return LoadQuestions(s.Path)
}

// LoadQuestions reads and validates the questions at path
func LoadQuestions(path string) ([]model.Question, error) {
	data := defaultQuestions
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read seed file: %w", err)
		}
		data = raw
	}
	return ParseQuestions(data)
}

// ParseQuestions decodes a YAML document of the form {questions: [...]}.
// Unknown fields are rejected.
func ParseQuestions(data []byte) ([]model.Question, error) {
	var file questionFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		return nil, apperrors.NewValidationError("failed to parse seed data").WithCause(err)
	}

	if err := ValidateQuestions(file.Questions); err != nil {
		return nil, err
	}
	return file.Questions, nil
}

// ValidateQuestions checks that every question has text, at least two
// answers and exactly one correct answer.
func ValidateQuestions(questions []model.Question) error {
	ve := apperrors.NewValidationErrors()
	if len(questions) == 0 {
		ve.Add("questions", "at least one question is required", nil)
	}

	for i, q := range questions {
		field := fmt.Sprintf("questions[%d]", i)
		if !q.HasText() {
			ve.Add(field+".question", "question text is required", q.Question)
		}
		if len(q.Answers) < minAnswers {
			ve.Add(field+".answers", fmt.Sprintf("at least %d answers are required", minAnswers), len(q.Answers))
		}
		for j, a := range q.Answers {
			if a.Text == "" {
				ve.Add(fmt.Sprintf("%s.answers[%d].text", field, j), "answer text is required", nil)
			}
		}
		if n := q.CorrectAnswers(); n != 1 {
			ve.Add(field+".answers", fmt.Sprintf("exactly one correct answer is required, found %d", n), n)
		}
	}

	if ve.HasErrors() {
		return ve.ToAppError()
	}
	return nil
}
