package grading

import (
	"fmt"

	"github.com/dmutua84/learnhub/models"
	"github.com/google/uuid"
)

// GradeObjective scores MULTIPLE_CHOICE and TRUE_FALSE answers by exact option
// match. It is pure and idempotent: the same question and selection always
// produce the same award and feedback.
func GradeObjective(question models.Question, selectedOptionID *uuid.UUID) (float64, string) {
	correct := firstCorrectOption(question.Options)
	if correct == nil {
		// Question authoring validates exactly one correct option, so this
		// only happens for legacy or hand-edited data.
		return 0, "This question has no answer key configured."
	}

	if selectedOptionID != nil && *selectedOptionID == correct.ID {
		return float64(question.Points), "Correct answer!"
	}
	return 0, fmt.Sprintf("Incorrect. The correct answer was: %s", correct.Text)
}

func firstCorrectOption(options []models.QuestionOption) *models.QuestionOption {
	for i := range options {
		if options[i].IsCorrect {
			return &options[i]
		}
	}
	return nil
}
