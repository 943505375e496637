package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dokoth/harambee-api/internal/database"
	"github.com/dokoth/harambee-api/internal/models"
	"github.com/dokoth/harambee-api/internal/routes"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.DB = db
	require.NoError(t, database.Migrate())

	app := fiber.New()
	routes.Setup(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&decoded)
	return resp, decoded
}

func registerUser(t *testing.T, app *fiber.App, email string) (token string, userID string) {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token = body["token"].(string)
	userID = body["user"].(map[string]interface{})["id"].(string)
	return token, userID
}

func createGroup(t *testing.T, app *fiber.App, token string, goal string) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/groups/", token, fiber.Map{
		"name":       "School Fund",
		"goalAmount": goal,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestAuthRequired(t *testing.T) {
	app := setupApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/groups/", "", fiber.Map{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPledgeLifecycleOverHTTP(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	// Create a pledge of 300: 30% of goal.
	resp, pledge := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges", adminToken, fiber.Map{
		"amount":            "300",
		"reminderFrequency": "weekly",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pledged", pledge["status"])
	pledgeID := pledge["id"].(string)

	// Group totals reflect the recomputed pledge sum.
	resp, group := doJSON(t, app, http.MethodGet, "/api/groups/"+groupID, adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "300", group["pledgedAmount"])

	// Mark it paid in full.
	resp, paid := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges/"+pledgeID+"/paid", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	totals := paid["totals"].(map[string]interface{})
	assert.Equal(t, "300", totals["currentAmount"])

	// Paying again conflicts.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges/"+pledgeID+"/paid", adminToken, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestPledgeValidationOverHTTP(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges", adminToken, fiber.Map{
		"amount": "0",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestNonMemberCannotPledge(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	outsiderToken, _ := registerUser(t, app, "outsider@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges", outsiderToken, fiber.Map{
		"amount": "50",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestMemberCannotMarkPaid(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	memberToken, memberID := registerUser(t, app, "member@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	resp, _ := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/members", adminToken, fiber.Map{
		"userId": memberID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, pledge := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges", memberToken, fiber.Map{
		"amount": "100",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	pledgeID := pledge["id"].(string)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges/"+pledgeID+"/paid", memberToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCancelPledgeOverHTTP(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	memberToken, memberID := registerUser(t, app, "member@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/members", adminToken, fiber.Map{
		"userId": memberID,
	})

	resp, pledge := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/pledges", memberToken, fiber.Map{
		"amount": "200",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	pledgeID := pledge["id"].(string)

	// Admin cannot cancel someone else's pledge.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/groups/"+groupID+"/pledges/"+pledgeID, adminToken, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// Owner can.
	resp, _ = doJSON(t, app, http.MethodDelete, "/api/groups/"+groupID+"/pledges/"+pledgeID, memberToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, group := doJSON(t, app, http.MethodGet, "/api/groups/"+groupID, memberToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "0", group["pledgedAmount"])
}

func TestManualContributionAndActivityFeed(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	resp, body := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/contributions", adminToken, fiber.Map{
		"amount":        "250",
		"contributorId": "anonymous",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	totals := body["totals"].(map[string]interface{})
	assert.Equal(t, "250", totals["currentAmount"])

	resp, feed := doJSON(t, app, http.MethodGet, "/api/groups/"+groupID+"/activity", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	activities := feed["activities"].([]interface{})
	require.NotEmpty(t, activities)

	types := make(map[string]bool)
	for _, a := range activities {
		types[a.(map[string]interface{})["activityType"].(string)] = true
	}
	assert.True(t, types[models.ActivityManualContribution])
	assert.True(t, types[models.ActivityMilestoneReached])
}

func TestRecurringPledgeOverHTTP(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	resp, rp := doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/recurring-pledges", adminToken, fiber.Map{
		"amount":    "50",
		"frequency": "monthly",
		"startDate": "2024-06-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	rpID := rp["id"].(string)
	assert.Equal(t, true, rp["isActive"])

	resp, paused := doJSON(t, app, http.MethodPut, "/api/groups/"+groupID+"/recurring-pledges/"+rpID+"/pause", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, paused["isActive"])

	resp, _ = doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/recurring-pledges", adminToken, fiber.Map{
		"amount":    "50",
		"frequency": "hourly",
		"startDate": "2024-06-01T00:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAnalyticsOverHTTP(t *testing.T) {
	app := setupApp(t)
	adminToken, _ := registerUser(t, app, "admin@example.com")
	groupID := createGroup(t, app, adminToken, "1000")

	doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/contributions", adminToken, fiber.Map{
		"amount": "300",
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/groups/"+groupID+"/analytics", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, "300", stats["contributedAmount"])

	projection := body["projection"].(map[string]interface{})
	assert.EqualValues(t, 70, projection["daysRemaining"])

	// Snapshot twice: same-day upsert, not an error.
	resp, _ = doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/analytics/snapshot", adminToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = doJSON(t, app, http.MethodPost, "/api/groups/"+groupID+"/analytics/snapshot", adminToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
