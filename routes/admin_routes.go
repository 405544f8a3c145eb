package routes

import (
	"github.com/dmutua84/learnhub/handlers"
	"github.com/dmutua84/learnhub/middleware"
	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	users := api.Group("/admin/users", middleware.Protected(), middleware.AdminRequired())
	users.Get("", handlers.ListUsers)
	users.Post("", handlers.AdminCreateUser)
	users.Put("/:userId", handlers.AdminUpdateUser)
	users.Delete("/:userId", handlers.AdminDeleteUser)
}
