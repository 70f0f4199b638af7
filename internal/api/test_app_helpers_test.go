package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aricheng/vitalcheck/internal/db"
	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// captureMailer records issued verification codes instead of sending mail.
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func newCaptureMailer() *captureMailer {
	return &captureMailer{codes: make(map[string]string)}
}

func (mailer *captureMailer) SendVerificationCode(email string, username string, code string, purpose string) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	mailer.codes[email] = code
	return nil
}

func (mailer *captureMailer) lastCode(email string) string {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	return mailer.codes[email]
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *captureMailer) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "vitalcheck-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	mailer := newCaptureMailer()
	handler := NewHandler(database, Options{
		SecretKey:  []byte("test-secret-key"),
		Location:   time.UTC,
		SessionTTL: time.Hour,
		Logger:     zerolog.Nop(),
		Mailer:     mailer,
	})

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database, mailer
}

func jsonRequest(t *testing.T, method string, path string, payload any, sessionCookie string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if sessionCookie != "" {
		request.Header.Set("Cookie", sessionCookie)
	}
	return request
}

func performJSON(t *testing.T, app *fiber.App, method string, path string, payload any, sessionCookie string) *http.Response {
	t.Helper()

	response, err := app.Test(jsonRequest(t, method, path, payload, sessionCookie), -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return response
}

func decodeJSONBody(t *testing.T, body io.Reader) map[string]any {
	t.Helper()

	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	payload := map[string]any{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode response body %q: %v", raw, err)
	}
	return payload
}

func readAPIError(t *testing.T, body io.Reader) string {
	t.Helper()

	payload := decodeJSONBody(t, body)
	message, _ := payload["error"].(string)
	return message
}

func sessionCookieFromResponse(response *http.Response) string {
	for _, cookie := range response.Cookies() {
		if cookie.Name == sessionCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}
	return ""
}

func createTestUser(t *testing.T, database *gorm.DB, username string, email string, password string, role string) models.User {
	t.Helper()

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := models.User{
		Email:         email,
		Username:      username,
		PasswordHash:  string(passwordHash),
		Role:          role,
		IsActive:      true,
		EmailVerified: true,
		CreatedAt:     time.Now().UTC(),
		Profile:       &models.Profile{},
	}
	if err := database.Create(&user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func loginAndExtractSessionCookie(t *testing.T, app *fiber.App, username string, password string) string {
	t.Helper()

	response := performJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": username,
		"password": password,
	}, "")
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}

	cookie := sessionCookieFromResponse(response)
	if cookie == "" {
		t.Fatal("session cookie is missing in login response")
	}
	return cookie
}

// wrongCodeFor derives a code that is guaranteed not to match the one the
// mailer captured.
func wrongCodeFor(code string) string {
	if len(code) == 0 || code[0] != '1' {
		return "111111"
	}
	return "222222"
}
