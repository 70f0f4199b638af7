package api

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/aricheng/vitalcheck/internal/models"
	"github.com/gofiber/fiber/v2"
)

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "plain", "plain@example.com", "secret123", models.RoleUser)
	cookie := loginAndExtractSessionCookie(t, app, "plain", "secret123")

	response := performJSON(t, app, http.MethodGet, "/api/admin/users", nil, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected status 403 for a regular user, got %d", response.StatusCode)
	}

	anonymous := performJSON(t, app, http.MethodGet, "/api/admin/users", nil, "")
	defer anonymous.Body.Close()
	if anonymous.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without a session, got %d", anonymous.StatusCode)
	}
}

func TestAdminListUsersPagination(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "boss", "boss@example.com", "secret123", models.RoleAdmin)
	for index := 0; index < 24; index++ {
		createTestUser(t, database,
			fmt.Sprintf("member%02d", index),
			fmt.Sprintf("member%02d@example.com", index),
			"secret123", models.RoleUser)
	}
	cookie := loginAndExtractSessionCookie(t, app, "boss", "secret123")

	response := performJSON(t, app, http.MethodGet, "/api/admin/users?page=2&limit=20", nil, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := decodeJSONBody(t, response.Body)
	users, _ := payload["users"].([]any)
	if len(users) != 5 {
		t.Fatalf("expected 5 users on the second page, got %d", len(users))
	}

	pagination, _ := payload["pagination"].(map[string]any)
	if total, _ := pagination["total"].(float64); total != 25 {
		t.Fatalf("expected total 25, got %v", pagination["total"])
	}
	if totalPages, _ := pagination["totalPages"].(float64); totalPages != 2 {
		t.Fatalf("expected 2 pages, got %v", pagination["totalPages"])
	}
	if page, _ := pagination["page"].(float64); page != 2 {
		t.Fatalf("expected page 2, got %v", pagination["page"])
	}
}

func TestAdminListUsersRoleFilter(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "chief", "chief@example.com", "secret123", models.RoleAdmin)
	createTestUser(t, database, "worker", "worker@example.com", "secret123", models.RoleUser)
	cookie := loginAndExtractSessionCookie(t, app, "chief", "secret123")

	response := performJSON(t, app, http.MethodGet, "/api/admin/users?role=ADMIN", nil, cookie)
	defer response.Body.Close()
	payload := decodeJSONBody(t, response.Body)
	users, _ := payload["users"].([]any)
	if len(users) != 1 {
		t.Fatalf("expected 1 admin, got %d", len(users))
	}

	invalid := performJSON(t, app, http.MethodGet, "/api/admin/users?role=SUPERUSER", nil, cookie)
	defer invalid.Body.Close()
	if invalid.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for an unknown role, got %d", invalid.StatusCode)
	}
}

func TestAdminGetUserErrors(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "admin", "admin@example.com", "secret123", models.RoleAdmin)
	cookie := loginAndExtractSessionCookie(t, app, "admin", "secret123")

	missing := performJSON(t, app, http.MethodGet, "/api/admin/users/9999", nil, cookie)
	defer missing.Body.Close()
	if missing.StatusCode != http.StatusNotFound {
		t.Fatalf("expected status 404 for an unknown user, got %d", missing.StatusCode)
	}

	malformed := performJSON(t, app, http.MethodGet, "/api/admin/users/abc", nil, cookie)
	defer malformed.Body.Close()
	if malformed.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a malformed id, got %d", malformed.StatusCode)
	}
}

func TestAdminGetUserIncludesRecordCounts(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "admin", "admin@example.com", "secret123", models.RoleAdmin)
	member := createTestUser(t, database, "member", "member@example.com", "secret123", models.RoleUser)
	seedRecord(t, database, member.ID, models.KindBMI, time.Now().UTC(), 22)
	seedRecord(t, database, member.ID, models.KindBMI, time.Now().UTC(), 23)
	seedRecord(t, database, member.ID, models.KindSLI, time.Now().UTC(), 12)
	cookie := loginAndExtractSessionCookie(t, app, "admin", "secret123")

	response := performJSON(t, app, http.MethodGet, fmt.Sprintf("/api/admin/users/%d", member.ID), nil, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := decodeJSONBody(t, response.Body)
	user, _ := payload["user"].(map[string]any)
	counts, _ := user["recordCounts"].(map[string]any)
	if bmiCount, _ := counts[models.KindBMI].(float64); bmiCount != 2 {
		t.Fatalf("expected 2 bmi records, got %v", counts[models.KindBMI])
	}
	if sliCount, _ := counts[models.KindSLI].(float64); sliCount != 1 {
		t.Fatalf("expected 1 sli record, got %v", counts[models.KindSLI])
	}
}

func TestAdminSelfGuards(t *testing.T) {
	app, database, _ := newTestApp(t)
	admin := createTestUser(t, database, "selfish", "selfish@example.com", "secret123", models.RoleAdmin)
	cookie := loginAndExtractSessionCookie(t, app, "selfish", "secret123")
	selfPath := fmt.Sprintf("/api/admin/users/%d", admin.ID)

	demote := performJSON(t, app, http.MethodPatch, selfPath, fiber.Map{"role": "USER"}, cookie)
	defer demote.Body.Close()
	if demote.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a self role change, got %d", demote.StatusCode)
	}

	deactivate := performJSON(t, app, http.MethodPatch, selfPath, fiber.Map{"isActive": false}, cookie)
	defer deactivate.Body.Close()
	if deactivate.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for self deactivation, got %d", deactivate.StatusCode)
	}

	remove := performJSON(t, app, http.MethodDelete, selfPath, nil, cookie)
	defer remove.Body.Close()
	if remove.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for self deletion, got %d", remove.StatusCode)
	}

	reset := performJSON(t, app, http.MethodPost, selfPath+"/reset-password", fiber.Map{"newPassword": "another123"}, cookie)
	defer reset.Body.Close()
	if reset.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400 for a self password reset, got %d", reset.StatusCode)
	}
}

func TestAdminDeactivationEndsTargetSessions(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "admin", "admin@example.com", "secret123", models.RoleAdmin)
	member := createTestUser(t, database, "member", "member@example.com", "secret123", models.RoleUser)

	memberCookie := loginAndExtractSessionCookie(t, app, "member", "secret123")
	adminCookie := loginAndExtractSessionCookie(t, app, "admin", "secret123")

	update := performJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/admin/users/%d", member.ID),
		fiber.Map{"isActive": false}, adminCookie)
	defer update.Body.Close()
	if update.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", update.StatusCode)
	}

	me := performJSON(t, app, http.MethodGet, "/api/auth/me", nil, memberCookie)
	defer me.Body.Close()
	if me.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the deactivated session to fail with 401, got %d", me.StatusCode)
	}
}

func TestAdminDemotionTakesEffectNextRequest(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "first", "first@example.com", "secret123", models.RoleAdmin)
	second := createTestUser(t, database, "second", "second@example.com", "secret123", models.RoleAdmin)

	firstCookie := loginAndExtractSessionCookie(t, app, "first", "secret123")
	secondCookie := loginAndExtractSessionCookie(t, app, "second", "secret123")

	before := performJSON(t, app, http.MethodGet, "/api/admin/stats", nil, secondCookie)
	before.Body.Close()
	if before.StatusCode != http.StatusOK {
		t.Fatalf("expected the second admin to reach stats, got %d", before.StatusCode)
	}

	demote := performJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/admin/users/%d", second.ID),
		fiber.Map{"role": "USER"}, firstCookie)
	defer demote.Body.Close()
	if demote.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", demote.StatusCode)
	}

	after := performJSON(t, app, http.MethodGet, "/api/admin/stats", nil, secondCookie)
	defer after.Body.Close()
	if after.StatusCode != http.StatusForbidden {
		t.Fatalf("expected the demoted admin to get 403, got %d", after.StatusCode)
	}
}

func TestAdminDeleteUserRemovesRelatedData(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "admin", "admin@example.com", "secret123", models.RoleAdmin)
	member := createTestUser(t, database, "doomed", "doomed@example.com", "secret123", models.RoleUser)
	seedRecord(t, database, member.ID, models.KindBMI, time.Now().UTC(), 22)
	cookie := loginAndExtractSessionCookie(t, app, "admin", "secret123")

	response := performJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", member.ID), nil, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	var usersCount, recordsCount, profilesCount int64
	if err := database.Model(&models.User{}).Where("id = ?", member.ID).Count(&usersCount).Error; err != nil {
		t.Fatalf("count users: %v", err)
	}
	if err := database.Model(&models.CalculatorRecord{}).Where("user_id = ?", member.ID).Count(&recordsCount).Error; err != nil {
		t.Fatalf("count records: %v", err)
	}
	if err := database.Model(&models.Profile{}).Where("user_id = ?", member.ID).Count(&profilesCount).Error; err != nil {
		t.Fatalf("count profiles: %v", err)
	}
	if usersCount != 0 || recordsCount != 0 || profilesCount != 0 {
		t.Fatalf("expected user, records and profile to be gone, got %d/%d/%d", usersCount, recordsCount, profilesCount)
	}
}

func TestAdminResetPasswordForAnotherUser(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "admin", "admin@example.com", "secret123", models.RoleAdmin)
	member := createTestUser(t, database, "member", "member@example.com", "oldpass123", models.RoleUser)
	cookie := loginAndExtractSessionCookie(t, app, "admin", "secret123")

	response := performJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/admin/users/%d/reset-password", member.ID),
		fiber.Map{"newPassword": "freshpass123"}, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	oldLogin := performJSON(t, app, http.MethodPost, "/api/auth/login", fiber.Map{
		"username": "member",
		"password": "oldpass123",
	}, "")
	defer oldLogin.Body.Close()
	if oldLogin.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected the old password to fail with 401, got %d", oldLogin.StatusCode)
	}

	loginAndExtractSessionCookie(t, app, "member", "freshpass123")
}

func TestAdminStatsOverview(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "admin", "admin@example.com", "secret123", models.RoleAdmin)
	active := createTestUser(t, database, "active", "active@example.com", "secret123", models.RoleUser)
	inactive := createTestUser(t, database, "inactive", "inactive@example.com", "secret123", models.RoleUser)
	if err := database.Model(&models.User{}).Where("id = ?", inactive.ID).Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate user: %v", err)
	}
	seedRecord(t, database, active.ID, models.KindBMI, time.Now().UTC(), 22)
	cookie := loginAndExtractSessionCookie(t, app, "admin", "secret123")

	response := performJSON(t, app, http.MethodGet, "/api/admin/stats", nil, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := decodeJSONBody(t, response.Body)
	stats, _ := payload["stats"].(map[string]any)
	if total, _ := stats["totalUsers"].(float64); total != 3 {
		t.Fatalf("expected 3 users, got %v", stats["totalUsers"])
	}
	if activeCount, _ := stats["activeUsers"].(float64); activeCount != 2 {
		t.Fatalf("expected 2 active users, got %v", stats["activeUsers"])
	}
	if inactiveCount, _ := stats["inactiveUsers"].(float64); inactiveCount != 1 {
		t.Fatalf("expected 1 inactive user, got %v", stats["inactiveUsers"])
	}
	if adminCount, _ := stats["adminUsers"].(float64); adminCount != 1 {
		t.Fatalf("expected 1 admin, got %v", stats["adminUsers"])
	}
	if records, _ := stats["totalRecords"].(float64); records != 1 {
		t.Fatalf("expected 1 record, got %v", stats["totalRecords"])
	}

	recentUsers, _ := payload["recentUsers"].([]any)
	if len(recentUsers) != 3 {
		t.Fatalf("expected 3 recent users, got %d", len(recentUsers))
	}
}

func TestAdminPromoteUser(t *testing.T) {
	app, database, _ := newTestApp(t)
	createTestUser(t, database, "admin", "admin@example.com", "secret123", models.RoleAdmin)
	member := createTestUser(t, database, "rising", "rising@example.com", "secret123", models.RoleUser)
	cookie := loginAndExtractSessionCookie(t, app, "admin", "secret123")

	response := performJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/admin/users/%d", member.ID),
		fiber.Map{"role": "ADMIN"}, cookie)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := decodeJSONBody(t, response.Body)
	user, _ := payload["user"].(map[string]any)
	if user["role"] != models.RoleAdmin {
		t.Fatalf("expected role ADMIN in the response, got %v", user["role"])
	}

	memberCookie := loginAndExtractSessionCookie(t, app, "rising", "secret123")
	statsResponse := performJSON(t, app, http.MethodGet, "/api/admin/stats", nil, memberCookie)
	defer statsResponse.Body.Close()
	if statsResponse.StatusCode != http.StatusOK {
		t.Fatalf("expected the promoted user to reach admin routes, got %d", statsResponse.StatusCode)
	}
}
