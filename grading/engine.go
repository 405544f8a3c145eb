package grading

import (
	"context"
	"time"

	"github.com/dmutua84/learnhub/models"
	"github.com/google/uuid"
)

// Engine routes each answered question to the scorer for its type.
type Engine struct {
	freeText *FreeTextGrader
}

func NewEngine(client CompletionClient, timeout time.Duration) *Engine {
	return &Engine{
		freeText: &FreeTextGrader{Client: client, Timeout: timeout},
	}
}

// Grade returns the points earned for one answered question together with a
// feedback string. It never returns an error: grading failures are converted
// into a point value and feedback so a single bad question can not abort the
// whole submission.
func (e *Engine) Grade(ctx context.Context, question models.Question, selectedOptionID *uuid.UUID, text string) (float64, string) {
	switch {
	case models.IsObjective(question.Type):
		return GradeObjective(question, selectedOptionID)
	case models.IsFreeText(question.Type):
		return e.freeText.Grade(ctx, question, text)
	default:
		return 0, "This question type cannot be graded automatically."
	}
}
