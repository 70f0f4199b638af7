package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookieName = "vitalcheck_session"
	defaultSessionTTL = 7 * 24 * time.Hour
)

// sessionClaims is the bearer credential carried in the cookie. The role
// claim is informational only; admin checks always re-read the database.
type sessionClaims struct {
	UserID   uint   `json:"uid"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func (handler *Handler) signSessionToken(user *models.User, expiresAt time.Time) (string, error) {
	claims := sessionClaims{
		UserID:   user.ID,
		Email:    user.Email,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(handler.now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(handler.secretKey)
}

// parseSessionCookie turns the request cookie into verified claims. Every
// failure mode collapses into "no session".
func (handler *Handler) parseSessionCookie(c *fiber.Ctx) (*sessionClaims, error) {
	rawToken := strings.TrimSpace(c.Cookies(sessionCookieName))
	if rawToken == "" {
		return nil, errors.New("missing session cookie")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid session token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(handler.now()) {
		return nil, errors.New("session expired")
	}
	return claims, nil
}

func (handler *Handler) setSessionCookie(c *fiber.Ctx, user *models.User) error {
	expiresAt := handler.now().Add(handler.sessionTTL)
	token, err := handler.signSessionToken(user, expiresAt)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  expiresAt,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})
	return nil
}

func (handler *Handler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  handler.now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: "Lax",
		Path:     "/",
	})
}
