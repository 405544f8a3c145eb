package main

import (
	"log"
	"strconv"
	"time"

	"github.com/dmutua84/learnhub/ai"
	"github.com/dmutua84/learnhub/attempts"
	config "github.com/dmutua84/learnhub/configs"
	"github.com/dmutua84/learnhub/database"
	"github.com/dmutua84/learnhub/grading"
	"github.com/dmutua84/learnhub/handlers"
	"github.com/dmutua84/learnhub/jobs"
	"github.com/dmutua84/learnhub/notifications"
	"github.com/dmutua84/learnhub/routes"
	"github.com/dmutua84/learnhub/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/robfig/cron/v3"
)

func gradingTimeout() time.Duration {
	seconds, err := strconv.Atoi(config.ConfigOr("AI_GRADING_TIMEOUT_SECONDS", "30"))
	if err != nil || seconds <= 0 {
		return grading.DefaultTimeout
	}
	return time.Duration(seconds) * time.Second
}

func main() {
	database.ConnectDB()
	database.Migrate()
	database.SeedAdmin()
	notifications.InitEmailService()

	engine := grading.NewEngine(ai.NewClient(), gradingTimeout())
	attemptService := attempts.NewService(attempts.NewGormStore(database.DB), engine)
	handlers.InitAttempts(attemptService)

	c := cron.New()
	c.AddFunc("*/5 * * * *", jobs.SweepOverdueAttempts)
	go c.Start()
	log.Println("✅ Cron job for attempt sweep scheduled successfully.")

	app := fiber.New(fiber.Config{
		Prefork:           false,
		AppName:           "LearnHub",
		CaseSensitive:     true,
		StrictRouting:     true,
		EnablePrintRoutes: true,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}

			log.Printf("[ERROR] %v | Path: %s | Method: %s", err, c.Path(), c.Method())
			return c.Status(code).JSON(fiber.Map{
				"status":  "error",
				"code":    code,
				"message": err.Error(),
			})
		},
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowMethods:  "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		ExposeHeaders: "Content-Length, Authorization",
		MaxAge:        86400,
	}))

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "success",
			"message": "Welcome to LearnHub API",
		})
	})

	routes.AuthRoutes(app)
	routes.ProfileRoutes(app)
	routes.CourseRoutes(app)
	routes.QuizRoutes(app)
	routes.AdminRoutes(app)
	routes.WebSocketRoutes(app)

	go websocket.RunHub()

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
		})
	})

	log.Println("✅ Server is running on port 8080")
	err := app.Listen(":8080")
	if err != nil {
		log.Fatalf("🔥 Server failed to start: %v", err)
	}
}
