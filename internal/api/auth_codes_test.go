package api

import (
	"net/http"
	"testing"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/gofiber/fiber/v2"
)

func TestPasswordResetFlow(t *testing.T) {
	app, database, mailer := newTestApp(t)
	createTestUser(t, database, "resetme", "resetme@example.com", "oldpass123", models.RoleUser)

	response := performJSON(t, app, http.MethodPost, "/api/auth/forgot-password", fiber.Map{
		"email": "resetme@example.com",
	}, "")
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected forgot-password status 200, got %d", response.StatusCode)
	}

	code := mailer.lastCode("resetme@example.com")
	if len(code) != 6 {
		t.Fatalf("expected a 6-digit reset code to be mailed, got %q", code)
	}

	resetResponse := performJSON(t, app, http.MethodPost, "/api/auth/reset-password", fiber.Map{
		"email":    "resetme@example.com",
		"code":     code,
		"password": "newpass123",
	}, "")
	defer resetResponse.Body.Close()
	if resetResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected reset status 200, got %d: %s", resetResponse.StatusCode, readAPIError(t, resetResponse.Body))
	}

	oldLogin := performJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": "resetme",
		"password": "oldpass123",
	}, "")
	defer oldLogin.Body.Close()
	if oldLogin.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected old password to be rejected with 401, got %d", oldLogin.StatusCode)
	}

	loginAndExtractSessionCookie(t, app, "resetme", "newpass123")
}

func TestForgotPasswordHidesUnknownAddresses(t *testing.T) {
	app, database, mailer := newTestApp(t)
	createTestUser(t, database, "known", "known@example.com", "secret123", models.RoleUser)

	knownResponse := performJSON(t, app, http.MethodPost, "/api/auth/forgot-password", fiber.Map{
		"email": "known@example.com",
	}, "")
	defer knownResponse.Body.Close()
	unknownResponse := performJSON(t, app, http.MethodPost, "/api/auth/forgot-password", fiber.Map{
		"email": "nobody@example.com",
	}, "")
	defer unknownResponse.Body.Close()

	if knownResponse.StatusCode != http.StatusOK || unknownResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected both responses to be 200, got %d and %d", knownResponse.StatusCode, unknownResponse.StatusCode)
	}

	knownPayload := decodeJSONBody(t, knownResponse.Body)
	unknownPayload := decodeJSONBody(t, unknownResponse.Body)
	if knownPayload["message"] != unknownPayload["message"] {
		t.Fatalf("expected identical messages, got %v and %v", knownPayload["message"], unknownPayload["message"])
	}

	if mailer.lastCode("nobody@example.com") != "" {
		t.Fatal("expected no code to be mailed to an unknown address")
	}
}

func TestResetPasswordRejectsWrongCode(t *testing.T) {
	app, database, mailer := newTestApp(t)
	createTestUser(t, database, "guarded", "guarded@example.com", "secret123", models.RoleUser)

	response := performJSON(t, app, http.MethodPost, "/api/auth/forgot-password", fiber.Map{
		"email": "guarded@example.com",
	}, "")
	response.Body.Close()

	resetResponse := performJSON(t, app, http.MethodPost, "/api/auth/reset-password", fiber.Map{
		"email":    "guarded@example.com",
		"code":     wrongCodeFor(mailer.lastCode("guarded@example.com")),
		"password": "newpass123",
	}, "")
	defer resetResponse.Body.Close()
	if resetResponse.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", resetResponse.StatusCode)
	}
	if message := readAPIError(t, resetResponse.Body); message != "verification code is invalid or expired" {
		t.Fatalf("unexpected error message %q", message)
	}
}

func TestResetPasswordRateLimitsGuessing(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "target", "target@example.com", "secret123", models.RoleUser)

	for attempt := 0; attempt < codeAttemptsLimit; attempt++ {
		response := performJSON(t, app, http.MethodPost, "/api/auth/reset-password", fiber.Map{
			"email":    "target@example.com",
			"code":     "000000",
			"password": "newpass123",
		}, "")
		if response.StatusCode != http.StatusBadRequest {
			t.Fatalf("attempt %d: expected status 400, got %d", attempt, response.StatusCode)
		}
		response.Body.Close()
	}

	blocked := performJSON(t, app, http.MethodPost, "/api/auth/reset-password", fiber.Map{
		"email":    "target@example.com",
		"code":     "000000",
		"password": "newpass123",
	}, "")
	defer blocked.Body.Close()
	if blocked.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429 after %d failures, got %d", codeAttemptsLimit, blocked.StatusCode)
	}
}
