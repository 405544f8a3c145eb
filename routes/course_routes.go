package routes

import (
	"github.com/dmutua84/learnhub/handlers"
	"github.com/dmutua84/learnhub/middleware"
	"github.com/gofiber/fiber/v2"
)

func CourseRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	courses := api.Group("/courses")
	courses.Get("", handlers.ListCourses)
	courses.Get("/:courseId", handlers.GetCourse)
	courses.Post("/:courseId/enroll", middleware.Protected(), handlers.EnrollInCourse)

	adminCourses := api.Group("/admin/courses", middleware.Protected(), middleware.AdminRequired())
	adminCourses.Post("", handlers.CreateCourse)
	adminCourses.Put("/:courseId", handlers.UpdateCourse)
	adminCourses.Delete("/:courseId", handlers.DeleteCourse)
	adminCourses.Delete("/enrollments/:enrollmentId", handlers.RemoveEnrollment)

	user := api.Group("/user", middleware.Protected())
	user.Get("/enrollments", handlers.ListMyEnrollments)
}
