package routes

import (
	"github.com/dmutua84/learnhub/handlers"
	"github.com/dmutua84/learnhub/middleware"
	"github.com/gofiber/fiber/v2"
)

func QuizRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin/quizzes", middleware.Protected(), middleware.AdminRequired())
	admin.Post("", handlers.CreateQuiz)
	admin.Get("", handlers.ListQuizzes)
	admin.Get("/:quizId", handlers.GetQuiz)
	admin.Put("/:quizId", handlers.UpdateQuiz)
	admin.Delete("/:quizId", handlers.DeleteQuiz)

	admin.Post("/:quizId/questions", handlers.CreateQuestion)
	admin.Get("/:quizId/questions", handlers.ListQuestions)
	admin.Get("/:quizId/questions/:questionId", handlers.GetQuestion)
	admin.Put("/:quizId/questions/:questionId", handlers.UpdateQuestion)
	admin.Delete("/:quizId/questions/:questionId", handlers.DeleteQuestion)

	quizzes := api.Group("/quizzes", middleware.Protected())
	quizzes.Get("", handlers.ListQuizzes)
	quizzes.Get("/:quizId", handlers.GetQuizForStudent)
	quizzes.Post("/:quizId/attempts", handlers.StartQuizAttempt)
	quizzes.Post("/:quizId/attempts/:attemptId/submit", handlers.SubmitQuizAttempt)
	quizzes.Get("/:quizId/attempts/:attemptId", handlers.GetAttemptResults)

	user := api.Group("/user", middleware.Protected())
	user.Get("/attempts", handlers.ListMyQuizAttempts)
	user.Get("/certificates", handlers.ListMyCertificates)
}
