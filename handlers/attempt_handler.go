package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/dmutua84/learnhub/attempts"
	"github.com/dmutua84/learnhub/database"
	"github.com/dmutua84/learnhub/models"
	"github.com/dmutua84/learnhub/notifications"
	"github.com/dmutua84/learnhub/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var attemptService *attempts.Service

// InitAttempts wires the attempt lifecycle service; called once from main.
func InitAttempts(svc *attempts.Service) {
	attemptService = svc
}

func StartQuizAttempt(c *fiber.Ctx) error {
	userID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}
	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	attempt, err := attemptService.StartAttempt(c.Context(), userID, quizID)
	if err != nil {
		if errors.Is(err, attempts.ErrQuizNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
		}
		log.Printf("🔥 Failed to start attempt for user %s on quiz %s: %v", userID, quizID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz attempt"})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Quiz attempt started",
		"attempt_id": attempt.ID,
	})
}

type SubmitAttemptRequest struct {
	Answers []attempts.AnswerInput `json:"answers" validate:"required,min=1"`
}

func SubmitQuizAttempt(c *fiber.Ctx) error {
	userID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}
	quizID, err := uuid.Parse(c.Params("quizId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	attemptID, err := uuid.Parse(c.Params("attemptId"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz attempt not found"})
	}

	var req SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	score, err := attemptService.SubmitAttempt(c.Context(), userID, quizID, attemptID, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, attempts.ErrAttemptNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz attempt not found"})
		case errors.Is(err, attempts.ErrAlreadySubmitted):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quiz has already been submitted"})
		default:
			log.Printf("🔥 Failed to submit attempt %s: %v", attemptID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to submit quiz"})
		}
	}

	go afterSubmission(userID, quizID, score)

	return c.JSON(fiber.Map{
		"message":    "Quiz submitted successfully",
		"score":      score,
		"attempt_id": attemptID,
	})
}

// afterSubmission handles the result email and, when the passing score is
// met, the certificate pipeline. Runs in its own goroutine; failures are
// logged and never reach the student.
func afterSubmission(userID, quizID uuid.UUID, score int) {
	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("🔥 Post-submission lookup failed for user %s: %v", userID, err)
		return
	}
	var quiz models.Quiz
	if err := database.DB.Preload("Course").First(&quiz, "id = ?", quizID).Error; err != nil {
		log.Printf("🔥 Post-submission lookup failed for quiz %s: %v", quizID, err)
		return
	}

	notifications.SendEmail(
		user.Name,
		user.Email,
		fmt.Sprintf("Your results for %s", quiz.Title),
		fmt.Sprintf("<h1>Quiz submitted</h1><p>You scored %d%% on <strong>%s</strong>.</p>", score, quiz.Title),
	)

	if quiz.PassingScore != nil && score >= *quiz.PassingScore {
		services.CheckAndGenerateCertificate(user, quiz, score)
	}
}

func ListMyQuizAttempts(c *fiber.Ctx) error {
	userID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var userAttempts []models.QuizAttempt
	database.DB.Preload("Quiz").
		Where("user_id = ? AND void = ?", userID, false).
		Order("started_at DESC").
		Find(&userAttempts)
	return c.JSON(userAttempts)
}

func GetAttemptResults(c *fiber.Ctx) error {
	userID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}
	quizID := c.Params("quizId")
	attemptID := c.Params("attemptId")

	var attempt models.QuizAttempt
	err = database.DB.Preload("Quiz").
		Preload("Answers.Question.Options").
		First(&attempt, "id = ? AND user_id = ? AND quiz_id = ?", attemptID, userID, quizID).Error
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz attempt not found"})
	}

	if !attempt.Submitted {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quiz has not been submitted yet"})
	}

	return c.JSON(attempt)
}
