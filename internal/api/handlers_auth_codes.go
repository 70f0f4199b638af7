package api

import (
	"errors"
	"time"

	"github.com/aricheng/vitalcheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

const (
	codeAttemptsLimit  = 8
	codeAttemptsWindow = 15 * time.Minute
)

const genericCodeSentMessage = "if the address is registered, a code is on its way"

// SendCode issues a verification code for registration or password reset.
// The reset branch never discloses whether an account exists.
func (handler *Handler) SendCode(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c)
	if handler.codeLimiter.tooManyRecent(limiterKey, now, codeAttemptsLimit, codeAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
	}

	input := sendCodeInput{}
	if err := handler.parseInto(c, &input); err != nil {
		handler.codeLimiter.addFailure(limiterKey, now, codeAttemptsWindow)
		return validationError(c, inputErrorDetails(err))
	}

	if input.Purpose == services.PurposeRegister {
		err := handler.authService.IssueRegistrationCode(input.Email, now)
		if err != nil {
			if errors.Is(err, services.ErrEmailTaken) {
				handler.codeLimiter.addFailure(limiterKey, now, codeAttemptsWindow)
				return apiError(c, fiber.StatusBadRequest, "email is already registered")
			}
			handler.logger.Error().Err(err).Msg("registration code delivery failed")
			return apiError(c, fiber.StatusInternalServerError, "failed to send verification code")
		}
		return c.JSON(fiber.Map{"message": "verification code sent, check your inbox"})
	}

	return handler.issueResetCode(c, input.Email, now)
}

// ForgotPassword is the reset-only alias of SendCode.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c)
	if handler.codeLimiter.tooManyRecent(limiterKey, now, codeAttemptsLimit, codeAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
	}

	input := forgotPasswordInput{}
	if err := handler.parseInto(c, &input); err != nil {
		handler.codeLimiter.addFailure(limiterKey, now, codeAttemptsWindow)
		return validationError(c, inputErrorDetails(err))
	}

	return handler.issueResetCode(c, input.Email, now)
}

func (handler *Handler) issueResetCode(c *fiber.Ctx, email string, now time.Time) error {
	err := handler.authService.IssueResetCode(email, now)
	switch {
	case err == nil, errors.Is(err, services.ErrInvalidCredentials):
		// Unknown address gets the same answer as a real one.
		return c.JSON(fiber.Map{"message": genericCodeSentMessage})
	case errors.Is(err, services.ErrEmailNotVerified):
		return apiError(c, fiber.StatusBadRequest, "email address is not verified")
	default:
		handler.logger.Error().Err(err).Msg("reset code delivery failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to send verification code")
	}
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c)
	if handler.codeLimiter.tooManyRecent(limiterKey, now, codeAttemptsLimit, codeAttemptsWindow) {
		return apiError(c, fiber.StatusTooManyRequests, "too many attempts, try again later")
	}

	input := resetPasswordInput{}
	if err := handler.parseInto(c, &input); err != nil {
		handler.codeLimiter.addFailure(limiterKey, now, codeAttemptsWindow)
		return validationError(c, inputErrorDetails(err))
	}

	user, err := handler.authService.ResetPassword(input.Email, input.Code, input.Password, now)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCode) {
			handler.codeLimiter.addFailure(limiterKey, now, codeAttemptsWindow)
			return apiError(c, fiber.StatusBadRequest, "verification code is invalid or expired")
		}
		handler.logger.Error().Err(err).Msg("password reset failed")
		return apiError(c, fiber.StatusInternalServerError, "password reset failed")
	}

	handler.codeLimiter.reset(limiterKey)
	handler.identities.Invalidate(user.ID)

	return c.JSON(fiber.Map{
		"message": "password reset successful",
		"user": fiber.Map{
			"id":       user.ID,
			"email":    user.Email,
			"username": user.Username,
		},
	})
}
