package grading

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"time"

	"github.com/dmutua84/learnhub/models"
)

// CompletionClient is the contract the free-text grader needs from the AI
// provider. The real implementation lives in the ai package.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

const DefaultTimeout = 30 * time.Second

// maxAIScore is the top of the rubric scale the provider is instructed to use.
const maxAIScore = 2

const FallbackFeedback = "The grading system encountered an error while reviewing this answer. Partial credit has been awarded."

const rubricSystemPrompt = `You are an AI tutor grading student responses.
Evaluate the answer based on the following rubric:
- **2 points**: Answer is fully correct and well-explained.
- **1 point**: Answer has relevant elements but is incomplete or somewhat incorrect.
- **0 points**: Answer is incorrect or lacks relevance.

Consider the question, the student's response, and key points for an ideal answer when grading.`

var scorePattern = regexp.MustCompile(`(?i)(\d+)\s*points?`)

// FreeTextGrader scores SHORT_ANSWER and ESSAY answers by asking the provider
// to apply the rubric, under a hard deadline. Any provider failure, timeout or
// unparsable response degrades to half credit rather than failing the
// submission.
type FreeTextGrader struct {
	Client  CompletionClient
	Timeout time.Duration
}

func (g *FreeTextGrader) Grade(ctx context.Context, question models.Question, answerText string) (float64, string) {
	keyPoints := ""
	if opt := firstCorrectOption(question.Options); opt != nil {
		keyPoints = opt.Text
	}

	response := answerText
	if response == "" {
		response = "No answer provided"
	}
	userPrompt := fmt.Sprintf("Question: %s\nStudent's Response: %s\nExpected Key Points: %s",
		question.Text, response, keyPoints)

	timeout := g.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	feedback, err := g.Client.Complete(ctx, rubricSystemPrompt, userPrompt)
	if err != nil {
		log.Printf("🔥 AI grading failed for question %s: %v", question.ID, err)
		return float64(question.Points) / maxAIScore, FallbackFeedback
	}

	aiScore := ParseAIScore(feedback)
	return float64(aiScore) * float64(question.Points) / maxAIScore, feedback
}

// ParseAIScore extracts the awarded rubric score from the completion text: the
// first integer immediately preceding "point"/"points", clamped to the rubric
// scale. No match means zero.
func ParseAIScore(feedback string) int {
	match := scorePattern.FindStringSubmatch(feedback)
	if match == nil {
		return 0
	}
	score, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	if score > maxAIScore {
		return maxAIScore
	}
	return score
}
