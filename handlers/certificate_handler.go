package handlers

import (
	"github.com/dmutua84/learnhub/database"
	"github.com/dmutua84/learnhub/models"
	"github.com/gofiber/fiber/v2"
)

func ListMyCertificates(c *fiber.Ctx) error {
	userID, err := userIDFromToken(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid session"})
	}

	var certificates []models.Certificate
	database.DB.Where("user_id = ?", userID).Order("issued_at DESC").Find(&certificates)
	return c.JSON(certificates)
}
