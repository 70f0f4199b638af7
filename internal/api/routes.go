package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.SessionRefresh)

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/send-code", handler.SendCode)
	auth.Post("/forgot-password", handler.ForgotPassword)
	auth.Post("/reset-password", handler.ResetPassword)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)

	calculators := api.Group("/calculators")
	calculators.Post("/:kind", handler.Calculate)
	calculators.Get("/:kind", handler.AuthRequired, handler.History)

	api.Get("/dashboard", handler.AuthRequired, handler.Dashboard)

	admin := api.Group("/admin", handler.AuthRequired, handler.AdminRequired)
	admin.Get("/stats", handler.AdminStats)
	admin.Get("/users", handler.AdminListUsers)
	admin.Get("/users/:id", handler.AdminGetUser)
	admin.Patch("/users/:id", handler.AdminUpdateUser)
	admin.Delete("/users/:id", handler.AdminDeleteUser)
	admin.Post("/users/:id/reset-password", handler.AdminResetPassword)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
