package handlers

import (
	"errors"
	"fmt"

	"github.com/dmutua84/learnhub/database"
	"github.com/dmutua84/learnhub/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type QuizOptionRequest struct {
	Text      string `json:"text" validate:"required"`
	IsCorrect bool   `json:"is_correct"`
}

type QuizQuestionRequest struct {
	Text    string              `json:"text" validate:"required,min=3"`
	Type    string              `json:"type" validate:"required,oneof=MULTIPLE_CHOICE TRUE_FALSE SHORT_ANSWER ESSAY"`
	Points  int                 `json:"points" validate:"required,gt=0"`
	Options []QuizOptionRequest `json:"options" validate:"omitempty,dive"`
}

// validateQuestionOptions enforces the answer-key invariants at authoring
// time: objective questions carry exactly one correct option among at least
// two, free-text questions carry exactly one option holding the key points.
// Grading relies on these rather than re-checking per submission.
func validateQuestionOptions(questionType string, options []QuizOptionRequest) error {
	correctCount := 0
	for _, opt := range options {
		if opt.IsCorrect {
			correctCount++
		}
	}

	switch {
	case models.IsObjective(questionType):
		if len(options) < 2 {
			return fmt.Errorf("%s questions need at least two options", questionType)
		}
		if correctCount != 1 {
			return fmt.Errorf("%s questions need exactly one correct option, got %d", questionType, correctCount)
		}
	case models.IsFreeText(questionType):
		if len(options) != 1 || correctCount != 1 {
			return errors.New("free-text questions need exactly one option holding the expected key points, marked correct")
		}
	}
	return nil
}

func CreateQuestion(c *fiber.Ctx) error {
	quizID := c.Params("quizId")

	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	var req QuizQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateQuestionOptions(req.Type, req.Options); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	question := models.Question{
		Text:   req.Text,
		Type:   req.Type,
		Points: req.Points,
		QuizID: quiz.ID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&question).Error; err != nil {
			return err
		}
		for _, opt := range req.Options {
			option := models.QuestionOption{
				Text:       opt.Text,
				IsCorrect:  opt.IsCorrect,
				QuestionID: question.ID,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create question"})
	}

	var created models.Question
	database.DB.Preload("Options").First(&created, "id = ?", question.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func ListQuestions(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	var questions []models.Question
	database.DB.Preload("Options").Where("quiz_id = ?", quizID).Order("created_at ASC").Find(&questions)
	return c.JSON(questions)
}

func GetQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	var question models.Question
	if err := database.DB.Preload("Options").First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.JSON(question)
}

func UpdateQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	var question models.Question
	if err := database.DB.First(&question, "id = ?", questionID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}

	var req QuizQuestionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err := validateQuestionOptions(req.Type, req.Options); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		question.Text = req.Text
		question.Type = req.Type
		question.Points = req.Points
		if err := tx.Save(&question).Error; err != nil {
			return err
		}

		// Options are replaced wholesale; answers keep their option ids so
		// finished attempts are unaffected.
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.QuestionOption{}).Error; err != nil {
			return err
		}
		for _, opt := range req.Options {
			option := models.QuestionOption{
				Text:       opt.Text,
				IsCorrect:  opt.IsCorrect,
				QuestionID: question.ID,
			}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update question"})
	}

	var updated models.Question
	database.DB.Preload("Options").First(&updated, "id = ?", question.ID)
	return c.JSON(updated)
}

func DeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Params("questionId")
	result := database.DB.Delete(&models.Question{}, "id = ?", questionID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete question"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Question not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
