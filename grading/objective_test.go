package grading

import (
	"strings"
	"testing"

	"github.com/dmutua84/learnhub/models"
	"github.com/google/uuid"
)

func multipleChoiceQuestion(points int) models.Question {
	return models.Question{
		ID:     uuid.New(),
		Text:   "What is the capital of France?",
		Type:   models.QuestionTypeMultipleChoice,
		Points: points,
		Options: []models.QuestionOption{
			{ID: uuid.New(), Text: "Berlin", IsCorrect: false},
			{ID: uuid.New(), Text: "Paris", IsCorrect: true},
			{ID: uuid.New(), Text: "Madrid", IsCorrect: false},
		},
	}
}

func TestGradeObjectiveCorrectSelection(t *testing.T) {
	q := multipleChoiceQuestion(10)
	correctID := q.Options[1].ID

	earned, feedback := GradeObjective(q, &correctID)
	if earned != 10 {
		t.Fatalf("earned = %v, want 10", earned)
	}
	if feedback != "Correct answer!" {
		t.Fatalf("feedback = %q", feedback)
	}
}

func TestGradeObjectiveWrongSelectionNamesCorrectOption(t *testing.T) {
	q := multipleChoiceQuestion(10)
	wrongID := q.Options[0].ID

	earned, feedback := GradeObjective(q, &wrongID)
	if earned != 0 {
		t.Fatalf("earned = %v, want 0", earned)
	}
	if !strings.Contains(feedback, "Paris") {
		t.Fatalf("feedback %q should name the correct option", feedback)
	}
}

func TestGradeObjectiveNoSelection(t *testing.T) {
	q := multipleChoiceQuestion(5)

	earned, feedback := GradeObjective(q, nil)
	if earned != 0 {
		t.Fatalf("earned = %v, want 0", earned)
	}
	if !strings.HasPrefix(feedback, "Incorrect.") {
		t.Fatalf("feedback = %q", feedback)
	}
}

func TestGradeObjectiveNoAnswerKey(t *testing.T) {
	q := multipleChoiceQuestion(5)
	for i := range q.Options {
		q.Options[i].IsCorrect = false
	}
	selected := q.Options[0].ID

	earned, _ := GradeObjective(q, &selected)
	if earned != 0 {
		t.Fatalf("earned = %v, want 0", earned)
	}
}

func TestGradeObjectiveIsIdempotent(t *testing.T) {
	q := multipleChoiceQuestion(10)
	correctID := q.Options[1].ID

	firstEarned, firstFeedback := GradeObjective(q, &correctID)
	for i := 0; i < 10; i++ {
		earned, feedback := GradeObjective(q, &correctID)
		if earned != firstEarned || feedback != firstFeedback {
			t.Fatalf("run %d: got (%v, %q), want (%v, %q)", i, earned, feedback, firstEarned, firstFeedback)
		}
	}
}
