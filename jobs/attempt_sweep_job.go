package jobs

import (
	"log"
	"time"

	"github.com/dmutua84/learnhub/database"
	"github.com/dmutua84/learnhub/models"
)

// Students who close the tab leave an open attempt behind until they restart
// the quiz. The sweep voids attempts whose time limit expired long ago so the
// open-attempt invariant stays clean without waiting for a restart.
const sweepGracePeriod = 30 * time.Minute

func SweepOverdueAttempts() {
	log.Println("Running job: SweepOverdueAttempts...")

	now := time.Now()

	var overdue []models.QuizAttempt
	err := database.DB.
		Joins("JOIN quizzes ON quiz_attempts.quiz_id = quizzes.id").
		Where("quiz_attempts.submitted = ? AND quizzes.time_limit IS NOT NULL", false).
		Where("quiz_attempts.started_at + (quizzes.time_limit * interval '1 minute') < ?", now.Add(-sweepGracePeriod)).
		Find(&overdue).Error

	if err != nil {
		log.Printf("Error checking for overdue attempts: %v", err)
		return
	}

	if len(overdue) == 0 {
		log.Println("No overdue attempts found.")
		return
	}

	for _, attempt := range overdue {
		completedAt := now
		attempt.Submitted = true
		attempt.Void = true
		score := 0
		attempt.Score = &score
		attempt.CompletedAt = &completedAt
		database.DB.Save(&attempt)
	}

	log.Printf("Voided %d overdue attempt(s).", len(overdue))
}
