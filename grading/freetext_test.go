package grading

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmutua84/learnhub/models"
	"github.com/google/uuid"
)

type fakeCompletionClient struct {
	response string
	err      error
	delay    time.Duration

	calls      int
	lastSystem string
	lastUser   string
}

func (f *fakeCompletionClient) Complete(ctx context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func essayQuestion(points int) models.Question {
	return models.Question{
		ID:     uuid.New(),
		Text:   "Explain photosynthesis.",
		Type:   models.QuestionTypeEssay,
		Points: points,
		Options: []models.QuestionOption{
			{ID: uuid.New(), Text: "Light energy converted to chemical energy in chloroplasts", IsCorrect: true},
		},
	}
}

func TestParseAIScore(t *testing.T) {
	cases := []struct {
		feedback string
		want     int
	}{
		{"Score: 2 points. Well explained.", 2},
		{"I would award 1 point here.", 1},
		{"0 points: the answer is off topic.", 0},
		{"The answer deserves full marks.", 0},
		{"", 0},
		{"score: 2 POINTS", 2},
		{"Award 10 points for enthusiasm.", 2},
	}

	for _, tc := range cases {
		if got := ParseAIScore(tc.feedback); got != tc.want {
			t.Errorf("ParseAIScore(%q) = %d, want %d", tc.feedback, got, tc.want)
		}
	}
}

func TestFreeTextGradeFullCredit(t *testing.T) {
	client := &fakeCompletionClient{response: "Score: 2 points. Complete and accurate."}
	grader := &FreeTextGrader{Client: client, Timeout: time.Second}

	earned, feedback := grader.Grade(context.Background(), essayQuestion(4), "Plants convert light to chemical energy.")
	if earned != 4 {
		t.Fatalf("earned = %v, want 4", earned)
	}
	if feedback != client.response {
		t.Fatalf("feedback = %q, want raw completion", feedback)
	}
}

func TestFreeTextGradePartialCreditCanBeFractional(t *testing.T) {
	client := &fakeCompletionClient{response: "1 point: relevant but incomplete."}
	grader := &FreeTextGrader{Client: client, Timeout: time.Second}

	earned, _ := grader.Grade(context.Background(), essayQuestion(1), "Plants use light.")
	if earned != 0.5 {
		t.Fatalf("earned = %v, want 0.5", earned)
	}
}

func TestFreeTextGradePromptContents(t *testing.T) {
	client := &fakeCompletionClient{response: "0 points"}
	grader := &FreeTextGrader{Client: client, Timeout: time.Second}
	q := essayQuestion(4)

	grader.Grade(context.Background(), q, "")

	if !strings.Contains(client.lastUser, "No answer provided") {
		t.Errorf("empty answer should be sent as the explicit no-answer marker, got %q", client.lastUser)
	}
	if !strings.Contains(client.lastUser, q.Text) {
		t.Errorf("user prompt should contain the question text")
	}
	if !strings.Contains(client.lastUser, q.Options[0].Text) {
		t.Errorf("user prompt should contain the expected key points")
	}
	if !strings.Contains(client.lastSystem, "2 points") {
		t.Errorf("system prompt should contain the rubric")
	}
}

func TestFreeTextGradeProviderErrorFallsBackToHalfCredit(t *testing.T) {
	client := &fakeCompletionClient{err: errors.New("provider unavailable")}
	grader := &FreeTextGrader{Client: client, Timeout: time.Second}

	earned, feedback := grader.Grade(context.Background(), essayQuestion(4), "An answer.")
	if earned != 2 {
		t.Fatalf("earned = %v, want half credit 2", earned)
	}
	if feedback != FallbackFeedback {
		t.Fatalf("feedback = %q, want fallback message", feedback)
	}
}

func TestFreeTextGradeTimeoutFallsBackToHalfCredit(t *testing.T) {
	client := &fakeCompletionClient{response: "Score: 2 points", delay: time.Second}
	grader := &FreeTextGrader{Client: client, Timeout: 10 * time.Millisecond}

	start := time.Now()
	earned, feedback := grader.Grade(context.Background(), essayQuestion(4), "An answer.")
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("grading took %v, deadline should have cut it short", elapsed)
	}
	if earned != 2 {
		t.Fatalf("earned = %v, want half credit 2", earned)
	}
	if feedback != FallbackFeedback {
		t.Fatalf("feedback = %q, want fallback message", feedback)
	}
}

func TestEngineRoutesByQuestionType(t *testing.T) {
	client := &fakeCompletionClient{response: "Score: 2 points"}
	engine := NewEngine(client, time.Second)

	mc := multipleChoiceQuestion(10)
	correctID := mc.Options[1].ID
	earned, _ := engine.Grade(context.Background(), mc, &correctID, "")
	if earned != 10 {
		t.Fatalf("objective earned = %v, want 10", earned)
	}
	if client.calls != 0 {
		t.Fatalf("objective grading must not call the provider")
	}

	earned, _ = engine.Grade(context.Background(), essayQuestion(4), nil, "An answer.")
	if earned != 4 {
		t.Fatalf("essay earned = %v, want 4", earned)
	}
	if client.calls != 1 {
		t.Fatalf("provider calls = %d, want 1", client.calls)
	}

	unknown := models.Question{ID: uuid.New(), Type: "MATCHING", Points: 5}
	earned, _ = engine.Grade(context.Background(), unknown, nil, "")
	if earned != 0 {
		t.Fatalf("unknown type earned = %v, want 0", earned)
	}
}
