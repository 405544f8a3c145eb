package attempts

import (
	"context"
	"errors"
	"time"

	"github.com/dmutua84/learnhub/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type gormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) FindQuiz(ctx context.Context, quizID uuid.UUID) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := s.db.WithContext(ctx).First(&quiz, "id = ?", quizID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// FindQuestions loads the quiz's questions with options, in creation order.
// Grading reads isCorrect straight from these rows, so no caching here.
func (s *gormStore) FindQuestions(ctx context.Context, quizID uuid.UUID) ([]models.Question, error) {
	var questions []models.Question
	err := s.db.WithContext(ctx).
		Preload("Options").
		Where("quiz_id = ?", quizID).
		Order("created_at ASC").
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

func (s *gormStore) VoidOpenAttempts(ctx context.Context, userID, quizID uuid.UUID, completedAt time.Time) error {
	return s.db.WithContext(ctx).
		Model(&models.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND submitted = ?", userID, quizID, false).
		Updates(map[string]interface{}{
			"submitted":    true,
			"void":         true,
			"score":        0,
			"completed_at": completedAt,
		}).Error
}

func (s *gormStore) CreateAttempt(ctx context.Context, userID, quizID uuid.UUID, startedAt time.Time) (*models.QuizAttempt, error) {
	attempt := models.QuizAttempt{
		UserID:    userID,
		QuizID:    quizID,
		StartedAt: startedAt,
	}
	if err := s.db.WithContext(ctx).Create(&attempt).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (s *gormStore) FindAttempt(ctx context.Context, attemptID uuid.UUID) (*models.QuizAttempt, error) {
	var attempt models.QuizAttempt
	if err := s.db.WithContext(ctx).First(&attempt, "id = ?", attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAttemptNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// FinalizeAttempt writes the score and the answer batch in one transaction.
// The update is conditional on submitted = false so a concurrent duplicate
// submission finds zero rows and rolls back without writing answers.
func (s *gormStore) FinalizeAttempt(ctx context.Context, attemptID uuid.UUID, score int, completedAt time.Time, answers []models.Answer) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.QuizAttempt{}).
			Where("id = ? AND submitted = ?", attemptID, false).
			Updates(map[string]interface{}{
				"score":        score,
				"submitted":    true,
				"completed_at": completedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAlreadySubmitted
		}

		if len(answers) > 0 {
			if err := tx.Create(&answers).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
