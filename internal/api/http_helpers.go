package api

import "github.com/gofiber/fiber/v2"

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

// validationError renders a 400 with the first field message up front and
// the full field-level detail list alongside.
func validationError(c *fiber.Ctx, details []fieldError) error {
	message := "invalid input"
	if len(details) > 0 {
		message = details[0].Message
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   message,
		"details": details,
	})
}
