package api

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aricheng/vitalcheck/internal/db"
	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/aricheng/vitalcheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) AdminListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	filter := db.UserFilter{}
	if role := strings.TrimSpace(c.Query("role")); role != "" {
		if !models.IsValidRole(role) {
			return apiError(c, fiber.StatusBadRequest, "role must be USER or ADMIN")
		}
		filter.Role = &role
	}
	if rawActive := strings.TrimSpace(c.Query("isActive")); rawActive != "" {
		isActive := rawActive == "true"
		filter.IsActive = &isActive
	}

	listings, pagination, err := handler.adminService.ListUsers(filter, page, limit)
	if err != nil {
		handler.logger.Error().Err(err).Msg("admin user listing failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to list users")
	}

	users := make([]fiber.Map, 0, len(listings))
	for index := range listings {
		view := userView(&listings[index].User)
		view["recordCount"] = listings[index].RecordCount
		users = append(users, view)
	}

	return c.JSON(fiber.Map{
		"users":      users,
		"pagination": pagination,
	})
}

func (handler *Handler) AdminGetUser(c *fiber.Ctx) error {
	targetID, err := parseUserID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	detail, err := handler.adminService.GetUser(targetID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return apiError(c, fiber.StatusNotFound, "user not found")
		}
		handler.logger.Error().Err(err).Uint("user_id", targetID).Msg("admin user fetch failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch user")
	}

	view := userView(&detail.User)
	view["recordCounts"] = detail.RecordCounts
	return c.JSON(fiber.Map{"user": view})
}

func (handler *Handler) AdminUpdateUser(c *fiber.Ctx) error {
	caller, _ := currentUser(c)
	targetID, err := parseUserID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	input := adminUpdateUserInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return validationError(c, inputErrorDetails(err))
	}

	updated, err := handler.adminService.UpdateUser(caller.ID, targetID, input.Role, input.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(c, fiber.StatusNotFound, "user not found")
		case errors.Is(err, services.ErrSelfRoleChange):
			return apiError(c, fiber.StatusBadRequest, "cannot change your own role")
		case errors.Is(err, services.ErrSelfDeactivate):
			return apiError(c, fiber.StatusBadRequest, "cannot deactivate your own account")
		case errors.Is(err, services.ErrInvalidRole):
			return apiError(c, fiber.StatusBadRequest, "role must be USER or ADMIN")
		default:
			handler.logger.Error().Err(err).Uint("user_id", targetID).Msg("admin user update failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to update user")
		}
	}

	handler.identities.Invalidate(targetID)

	return c.JSON(fiber.Map{
		"message": "user updated",
		"user":    userView(&updated),
	})
}

func (handler *Handler) AdminDeleteUser(c *fiber.Ctx) error {
	caller, _ := currentUser(c)
	targetID, err := parseUserID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	if err := handler.adminService.DeleteUser(caller.ID, targetID); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			return apiError(c, fiber.StatusBadRequest, "cannot delete your own account")
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(c, fiber.StatusNotFound, "user not found")
		default:
			handler.logger.Error().Err(err).Uint("user_id", targetID).Msg("admin user delete failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to delete user")
		}
	}

	handler.identities.Invalidate(targetID)
	return c.JSON(fiber.Map{"message": "user deleted"})
}

func (handler *Handler) AdminResetPassword(c *fiber.Ctx) error {
	caller, _ := currentUser(c)
	targetID, err := parseUserID(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid user id")
	}

	input := adminResetPasswordInput{}
	if err := handler.parseInto(c, &input); err != nil {
		return validationError(c, inputErrorDetails(err))
	}

	target, err := handler.adminService.ResetUserPassword(caller.ID, targetID, input.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSelfPasswordReset):
			return apiError(c, fiber.StatusBadRequest, "use the change-password flow for your own account")
		case errors.Is(err, services.ErrUserNotFound):
			return apiError(c, fiber.StatusNotFound, "user not found")
		default:
			handler.logger.Error().Err(err).Uint("user_id", targetID).Msg("admin password reset failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to reset password")
		}
	}

	handler.identities.Invalidate(targetID)

	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("password for %q has been reset", target.Username),
	})
}

func (handler *Handler) AdminStats(c *fiber.Ctx) error {
	stats, recent, err := handler.adminService.Overview(handler.now())
	if err != nil {
		handler.logger.Error().Err(err).Msg("admin stats failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}

	recentUsers := make([]fiber.Map, 0, len(recent))
	for index := range recent {
		recentUsers = append(recentUsers, fiber.Map{
			"id":        recent[index].ID,
			"username":  recent[index].Username,
			"email":     recent[index].Email,
			"role":      recent[index].Role,
			"createdAt": recent[index].CreatedAt,
		})
	}

	return c.JSON(fiber.Map{
		"stats":       stats,
		"recentUsers": recentUsers,
	})
}

func parseUserID(c *fiber.Ctx) (uint, error) {
	raw := c.Params("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(parsed), nil
}
