package attempts

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmutua84/learnhub/grading"
	"github.com/dmutua84/learnhub/models"
	"github.com/google/uuid"
)

type fakeStore struct {
	quizzes   map[uuid.UUID]*models.Quiz
	questions map[uuid.UUID][]models.Question
	attempts  map[uuid.UUID]*models.QuizAttempt
	answers   map[uuid.UUID][]models.Answer

	finalizeErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		quizzes:   make(map[uuid.UUID]*models.Quiz),
		questions: make(map[uuid.UUID][]models.Question),
		attempts:  make(map[uuid.UUID]*models.QuizAttempt),
		answers:   make(map[uuid.UUID][]models.Answer),
	}
}

func (f *fakeStore) FindQuiz(_ context.Context, quizID uuid.UUID) (*models.Quiz, error) {
	quiz, ok := f.quizzes[quizID]
	if !ok {
		return nil, ErrQuizNotFound
	}
	return quiz, nil
}

func (f *fakeStore) FindQuestions(_ context.Context, quizID uuid.UUID) ([]models.Question, error) {
	return f.questions[quizID], nil
}

func (f *fakeStore) VoidOpenAttempts(_ context.Context, userID, quizID uuid.UUID, completedAt time.Time) error {
	for _, attempt := range f.attempts {
		if attempt.UserID == userID && attempt.QuizID == quizID && !attempt.Submitted {
			zero := 0
			at := completedAt
			attempt.Submitted = true
			attempt.Void = true
			attempt.Score = &zero
			attempt.CompletedAt = &at
		}
	}
	return nil
}

func (f *fakeStore) CreateAttempt(_ context.Context, userID, quizID uuid.UUID, startedAt time.Time) (*models.QuizAttempt, error) {
	attempt := &models.QuizAttempt{
		ID:        uuid.New(),
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: startedAt,
	}
	f.attempts[attempt.ID] = attempt
	return attempt, nil
}

func (f *fakeStore) FindAttempt(_ context.Context, attemptID uuid.UUID) (*models.QuizAttempt, error) {
	attempt, ok := f.attempts[attemptID]
	if !ok {
		return nil, ErrAttemptNotFound
	}
	copied := *attempt
	return &copied, nil
}

func (f *fakeStore) FinalizeAttempt(_ context.Context, attemptID uuid.UUID, score int, completedAt time.Time, answers []models.Answer) error {
	if f.finalizeErr != nil {
		return f.finalizeErr
	}
	attempt, ok := f.attempts[attemptID]
	if !ok || attempt.Submitted {
		return ErrAlreadySubmitted
	}
	at := completedAt
	attempt.Submitted = true
	attempt.Score = &score
	attempt.CompletedAt = &at
	f.answers[attemptID] = append(f.answers[attemptID], answers...)
	return nil
}

type staticClient struct {
	response string
	err      error
}

func (s staticClient) Complete(_ context.Context, _, _ string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func newTestService(store *fakeStore, client grading.CompletionClient) *Service {
	return NewService(store, grading.NewEngine(client, time.Second))
}

func seedObjectiveQuiz(store *fakeStore, points int) (quizID, questionID, correctOptionID, wrongOptionID uuid.UUID) {
	quizID = uuid.New()
	store.quizzes[quizID] = &models.Quiz{ID: quizID, Title: "Geography"}

	questionID = uuid.New()
	correctOptionID = uuid.New()
	wrongOptionID = uuid.New()
	store.questions[quizID] = []models.Question{{
		ID:     questionID,
		Text:   "What is the capital of France?",
		Type:   models.QuestionTypeMultipleChoice,
		Points: points,
		QuizID: quizID,
		Options: []models.QuestionOption{
			{ID: correctOptionID, Text: "Paris", IsCorrect: true},
			{ID: wrongOptionID, Text: "Berlin", IsCorrect: false},
		},
	}}
	return
}

func seedEssayQuiz(store *fakeStore, points int) (quizID, questionID uuid.UUID) {
	quizID = uuid.New()
	store.quizzes[quizID] = &models.Quiz{ID: quizID, Title: "Biology"}

	questionID = uuid.New()
	store.questions[quizID] = []models.Question{{
		ID:     questionID,
		Text:   "Explain photosynthesis.",
		Type:   models.QuestionTypeEssay,
		Points: points,
		QuizID: quizID,
		Options: []models.QuestionOption{
			{ID: uuid.New(), Text: "Conversion of light to chemical energy", IsCorrect: true},
		},
	}}
	return
}

func TestStartAttemptUnknownQuiz(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})

	_, err := svc.StartAttempt(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrQuizNotFound) {
		t.Fatalf("err = %v, want ErrQuizNotFound", err)
	}
}

func TestStartAttemptVoidsPriorOpenAttempts(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, _, _, _ := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	const n = 4
	var lastID uuid.UUID
	for i := 0; i < n; i++ {
		attempt, err := svc.StartAttempt(context.Background(), userID, quizID)
		if err != nil {
			t.Fatalf("StartAttempt %d: %v", i, err)
		}
		lastID = attempt.ID
	}

	open, voided := 0, 0
	for _, attempt := range store.attempts {
		if attempt.Void {
			voided++
			if !attempt.Submitted || attempt.Score == nil || *attempt.Score != 0 {
				t.Errorf("voided attempt %s should be submitted with score 0", attempt.ID)
			}
			continue
		}
		open++
		if attempt.ID != lastID {
			t.Errorf("the only open attempt should be the newest one")
		}
		if attempt.Submitted {
			t.Errorf("newest attempt must not be submitted")
		}
	}
	if open != 1 || voided != n-1 {
		t.Fatalf("open = %d, voided = %d, want 1 and %d", open, voided, n-1)
	}
}

func TestSubmitAttemptCorrectObjectiveAnswer(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, questionID, correctOptionID, _ := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	score, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, []AnswerInput{
		{QuestionID: questionID, SelectedOptionID: &correctOptionID},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if score != 100 {
		t.Fatalf("score = %d, want 100", score)
	}

	saved := store.answers[attempt.ID]
	if len(saved) != 1 {
		t.Fatalf("answers persisted = %d, want 1", len(saved))
	}
	if saved[0].Feedback != "Correct answer!" {
		t.Fatalf("feedback = %q", saved[0].Feedback)
	}
}

func TestSubmitAttemptWrongObjectiveAnswer(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, questionID, _, wrongOptionID := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	score, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, []AnswerInput{
		{QuestionID: questionID, SelectedOptionID: &wrongOptionID},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if score != 0 {
		t.Fatalf("score = %d, want 0", score)
	}
}

func TestSubmitAttemptEssayGradedByProvider(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{response: "Score: 2 points. Thorough explanation."})
	quizID, questionID := seedEssayQuiz(store, 4)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	score, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, []AnswerInput{
		{QuestionID: questionID, Text: "Plants turn light into chemical energy."},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if score != 100 {
		t.Fatalf("score = %d, want 100", score)
	}
}

func TestSubmitAttemptProviderFailureAwardsHalfCredit(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{err: errors.New("provider down")})
	quizID, questionID := seedEssayQuiz(store, 4)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	score, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, []AnswerInput{
		{QuestionID: questionID, Text: "Plants turn light into chemical energy."},
	})
	if err != nil {
		t.Fatalf("submission must survive a failing provider, got %v", err)
	}
	if score != 50 {
		t.Fatalf("score = %d, want 50", score)
	}

	saved := store.answers[attempt.ID]
	if len(saved) != 1 || saved[0].Feedback != grading.FallbackFeedback {
		t.Fatalf("answer should carry the fallback feedback, got %+v", saved)
	}
}

func TestSubmitAttemptRejectsSecondSubmission(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, questionID, correctOptionID, _ := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	answers := []AnswerInput{{QuestionID: questionID, SelectedOptionID: &correctOptionID}}

	if _, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, answers); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	_, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, answers)
	if !errors.Is(err, ErrAlreadySubmitted) {
		t.Fatalf("second submission err = %v, want ErrAlreadySubmitted", err)
	}
	if len(store.answers[attempt.ID]) != 1 {
		t.Fatalf("answers = %d, duplicates must not be persisted", len(store.answers[attempt.ID]))
	}
}

func TestSubmitAttemptOwnershipChecks(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, questionID, correctOptionID, _ := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	answers := []AnswerInput{{QuestionID: questionID, SelectedOptionID: &correctOptionID}}

	if _, err := svc.SubmitAttempt(context.Background(), uuid.New(), quizID, attempt.ID, answers); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("foreign user err = %v, want ErrAttemptNotFound", err)
	}
	if _, err := svc.SubmitAttempt(context.Background(), userID, uuid.New(), attempt.ID, answers); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("wrong quiz err = %v, want ErrAttemptNotFound", err)
	}
	if _, err := svc.SubmitAttempt(context.Background(), userID, quizID, uuid.New(), answers); !errors.Is(err, ErrAttemptNotFound) {
		t.Fatalf("unknown attempt err = %v, want ErrAttemptNotFound", err)
	}
}

func TestSubmitAttemptSkipsUnknownQuestions(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, questionID, correctOptionID, _ := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	score, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, []AnswerInput{
		{QuestionID: questionID, SelectedOptionID: &correctOptionID},
		{QuestionID: uuid.New(), Text: "answer to a question from another quiz"},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if score != 100 {
		t.Fatalf("score = %d, unknown questions must not dilute the total", score)
	}
	if len(store.answers[attempt.ID]) != 1 {
		t.Fatalf("answers = %d, unmatched input must not be persisted", len(store.answers[attempt.ID]))
	}
}

func TestSubmitAttemptEmptyAnswerListScoresZero(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, _, _, _ := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	score, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, nil)
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if score != 0 {
		t.Fatalf("score = %d, want 0 when no points were at stake", score)
	}

	saved, ok := store.answers[attempt.ID]
	if ok && len(saved) != 0 {
		t.Fatalf("answers = %d, want none", len(saved))
	}
}

func TestSubmitAttemptMixedQuizRoundsFinalPercentage(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{response: "1 point: partially correct."})

	quizID := uuid.New()
	store.quizzes[quizID] = &models.Quiz{ID: quizID, Title: "Mixed"}

	mcID, essayID := uuid.New(), uuid.New()
	correctOptionID := uuid.New()
	store.questions[quizID] = []models.Question{
		{
			ID: mcID, Type: models.QuestionTypeMultipleChoice, Points: 1, QuizID: quizID,
			Options: []models.QuestionOption{
				{ID: correctOptionID, Text: "Yes", IsCorrect: true},
				{ID: uuid.New(), Text: "No", IsCorrect: false},
			},
		},
		{
			ID: essayID, Type: models.QuestionTypeShortAnswer, Points: 1, QuizID: quizID,
			Options: []models.QuestionOption{
				{ID: uuid.New(), Text: "Key points", IsCorrect: true},
			},
		},
	}

	userID := uuid.New()
	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)

	// 1 + 0.5 of 2 points: fractional credit survives aggregation and only
	// the final percentage is rounded.
	score, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, []AnswerInput{
		{QuestionID: mcID, SelectedOptionID: &correctOptionID},
		{QuestionID: essayID, Text: "partial"},
	})
	if err != nil {
		t.Fatalf("SubmitAttempt: %v", err)
	}
	if score != 75 {
		t.Fatalf("score = %d, want 75", score)
	}
	if score < 0 || score > 100 {
		t.Fatalf("score %d out of bounds", score)
	}
}

func TestSubmitAttemptStoreFailureSurfaces(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, staticClient{})
	quizID, questionID, correctOptionID, _ := seedObjectiveQuiz(store, 10)
	userID := uuid.New()

	attempt, _ := svc.StartAttempt(context.Background(), userID, quizID)
	store.finalizeErr = errors.New("connection reset")

	_, err := svc.SubmitAttempt(context.Background(), userID, quizID, attempt.ID, []AnswerInput{
		{QuestionID: questionID, SelectedOptionID: &correctOptionID},
	})
	if err == nil {
		t.Fatal("store failure must surface to the caller")
	}
	if stored := store.attempts[attempt.ID]; stored.Submitted {
		t.Fatal("attempt must not be marked submitted when persistence failed")
	}
}
