package handlers

import (
	"github.com/dmutua84/learnhub/database"
	"github.com/dmutua84/learnhub/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type QuizRequest struct {
	Title        string                `json:"title" validate:"required,min=3"`
	Description  string                `json:"description"`
	TimeLimit    *int                  `json:"time_limit" validate:"omitempty,gt=0"`
	PassingScore *int                  `json:"passing_score" validate:"omitempty,gt=0,lte=100"`
	CourseID     string                `json:"course_id" validate:"required,uuid4"`
	Questions    []QuizQuestionRequest `json:"questions" validate:"omitempty,dive"`
}

func CreateQuiz(c *fiber.Ctx) error {
	var req QuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	courseID, _ := uuid.Parse(req.CourseID)
	var course models.Course
	if err := database.DB.First(&course, "id = ?", courseID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Course not found"})
	}

	// Bulk authoring (the spreadsheet importer posts a whole quiz at once), so
	// every question is validated before anything is written.
	for _, q := range req.Questions {
		if err := validateQuestionOptions(q.Type, q.Options); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
	}

	quiz := models.Quiz{
		Title:        req.Title,
		Description:  req.Description,
		TimeLimit:    req.TimeLimit,
		PassingScore: req.PassingScore,
		CourseID:     courseID,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}
		for _, q := range req.Questions {
			question := models.Question{
				Text:   q.Text,
				Type:   q.Type,
				Points: q.Points,
				QuizID: quiz.ID,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}
			for _, opt := range q.Options {
				option := models.QuestionOption{
					Text:       opt.Text,
					IsCorrect:  opt.IsCorrect,
					QuestionID: question.ID,
				}
				if err := tx.Create(&option).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create quiz"})
	}

	var created models.Quiz
	database.DB.Preload("Questions.Options").First(&created, "id = ?", quiz.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func ListQuizzes(c *fiber.Ctx) error {
	var quizzes []models.Quiz
	query := database.DB.Order("created_at DESC")
	if courseID := c.Query("course_id"); courseID != "" {
		query = query.Where("course_id = ?", courseID)
	}
	query.Find(&quizzes)
	return c.JSON(quizzes)
}

func GetQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	var quiz models.Quiz
	if err := database.DB.Preload("Questions.Options").First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	return c.JSON(quiz)
}

// OptionForStudent hides the isCorrect flag from quiz takers.
type OptionForStudent struct {
	ID   uuid.UUID `json:"id"`
	Text string    `json:"text"`
}

type QuestionForStudent struct {
	ID      uuid.UUID          `json:"id"`
	Text    string             `json:"text"`
	Type    string             `json:"type"`
	Points  int                `json:"points"`
	Options []OptionForStudent `json:"options"`
}

func GetQuizForStudent(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	var quiz models.Quiz
	if err := database.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.created_at ASC")
	}).Preload("Questions.Options").First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	questions := make([]QuestionForStudent, len(quiz.Questions))
	for i, q := range quiz.Questions {
		options := make([]OptionForStudent, 0, len(q.Options))
		if models.IsObjective(q.Type) {
			for _, opt := range q.Options {
				options = append(options, OptionForStudent{ID: opt.ID, Text: opt.Text})
			}
		}
		questions[i] = QuestionForStudent{
			ID:      q.ID,
			Text:    q.Text,
			Type:    q.Type,
			Points:  q.Points,
			Options: options,
		}
	}

	return c.JSON(fiber.Map{
		"id":            quiz.ID,
		"title":         quiz.Title,
		"description":   quiz.Description,
		"time_limit":    quiz.TimeLimit,
		"passing_score": quiz.PassingScore,
		"questions":     questions,
	})
}

func UpdateQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	var quiz models.Quiz
	if err := database.DB.First(&quiz, "id = ?", quizID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}

	type UpdateQuizRequest struct {
		Title        string `json:"title" validate:"required,min=3"`
		Description  string `json:"description"`
		TimeLimit    *int   `json:"time_limit" validate:"omitempty,gt=0"`
		PassingScore *int   `json:"passing_score" validate:"omitempty,gt=0,lte=100"`
	}
	var req UpdateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.TimeLimit = req.TimeLimit
	quiz.PassingScore = req.PassingScore
	database.DB.Save(&quiz)

	return c.JSON(quiz)
}

func DeleteQuiz(c *fiber.Ctx) error {
	quizID := c.Params("quizId")
	result := database.DB.Delete(&models.Quiz{}, "id = ?", quizID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete quiz"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Quiz not found"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
