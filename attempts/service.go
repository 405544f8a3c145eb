package attempts

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/dmutua84/learnhub/models"
	"github.com/google/uuid"
)

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrAttemptNotFound  = errors.New("quiz attempt not found")
	ErrAlreadySubmitted = errors.New("quiz has already been submitted")
)

// AnswerInput is one submitted answer. SelectedOptionID carries the choice for
// objective questions, Text the response for free-text ones; the question's
// type decides which of the two the grader reads.
type AnswerInput struct {
	QuestionID       uuid.UUID  `json:"question_id"`
	SelectedOptionID *uuid.UUID `json:"selected_option_id"`
	Text             string     `json:"text"`
}

type Store interface {
	FindQuiz(ctx context.Context, quizID uuid.UUID) (*models.Quiz, error)
	FindQuestions(ctx context.Context, quizID uuid.UUID) ([]models.Question, error)
	VoidOpenAttempts(ctx context.Context, userID, quizID uuid.UUID, completedAt time.Time) error
	CreateAttempt(ctx context.Context, userID, quizID uuid.UUID, startedAt time.Time) (*models.QuizAttempt, error)
	FindAttempt(ctx context.Context, attemptID uuid.UUID) (*models.QuizAttempt, error)
	FinalizeAttempt(ctx context.Context, attemptID uuid.UUID, score int, completedAt time.Time, answers []models.Answer) error
}

// Grader is satisfied by grading.Engine.
type Grader interface {
	Grade(ctx context.Context, question models.Question, selectedOptionID *uuid.UUID, text string) (float64, string)
}

// Service owns the attempt lifecycle: starting an attempt (voiding any stale
// open one first) and finalizing a submission into an immutable scored record.
type Service struct {
	store  Store
	grader Grader
}

func NewService(store Store, grader Grader) *Service {
	return &Service{store: store, grader: grader}
}

// StartAttempt voids every open attempt the student still has on this quiz,
// then creates a fresh one. A student who refreshes or restarts must never end
// up with two live attempts that could both be submitted later.
func (s *Service) StartAttempt(ctx context.Context, userID, quizID uuid.UUID) (*models.QuizAttempt, error) {
	if _, err := s.store.FindQuiz(ctx, quizID); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.store.VoidOpenAttempts(ctx, userID, quizID, now); err != nil {
		return nil, err
	}

	return s.store.CreateAttempt(ctx, userID, quizID, now)
}

// SubmitAttempt grades the submitted answers and finalizes the attempt. It
// returns the score percentage. Answers referencing questions that are not on
// the quiz are skipped; total points count only the questions actually
// answered. The store's conditional update is the sole guard against a second
// submission racing this one.
func (s *Service) SubmitAttempt(ctx context.Context, userID, quizID, attemptID uuid.UUID, answers []AnswerInput) (int, error) {
	attempt, err := s.store.FindAttempt(ctx, attemptID)
	if err != nil {
		return 0, err
	}
	if attempt.UserID != userID || attempt.QuizID != quizID {
		return 0, ErrAttemptNotFound
	}
	if attempt.Submitted {
		return 0, ErrAlreadySubmitted
	}

	questions, err := s.store.FindQuestions(ctx, quizID)
	if err != nil {
		return 0, err
	}
	questionsByID := make(map[uuid.UUID]models.Question, len(questions))
	for _, q := range questions {
		questionsByID[q.ID] = q
	}

	var totalPoints, earnedPoints float64
	graded := make([]models.Answer, 0, len(answers))

	for _, input := range answers {
		question, ok := questionsByID[input.QuestionID]
		if !ok {
			continue
		}

		totalPoints += float64(question.Points)
		earned, feedback := s.grader.Grade(ctx, question, input.SelectedOptionID, input.Text)
		earnedPoints += earned

		var text *string
		if input.Text != "" {
			t := input.Text
			text = &t
		}
		graded = append(graded, models.Answer{
			QuestionID:       question.ID,
			AttemptID:        attempt.ID,
			SelectedOptionID: input.SelectedOptionID,
			Text:             text,
			Feedback:         feedback,
		})
	}

	score := 0
	if totalPoints > 0 {
		score = int(math.Round(earnedPoints / totalPoints * 100))
	}

	if err := s.store.FinalizeAttempt(ctx, attempt.ID, score, time.Now(), graded); err != nil {
		return 0, err
	}

	return score, nil
}
