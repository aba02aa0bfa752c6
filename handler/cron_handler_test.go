package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watercharging/evtax-service/repository"
	"github.com/watercharging/evtax-service/service"
)

func newCronRouter(t *testing.T, token string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	reminderService := service.NewReminderService(store, nil, 3)
	router := gin.New()
	router.GET("/api/v1/cron/due-reminders", NewCronHandler(reminderService, token).DueReminders)
	return router
}

func TestDueRemindersUnauthorized(t *testing.T) {
	router := newCronRouter(t, "topsecret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/due-reminders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDueRemindersWrongSecret(t *testing.T) {
	router := newCronRouter(t, "topsecret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/due-reminders?secret=guess", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDueRemindersNoTokenConfigured(t *testing.T) {
	// Without a configured token the secret path can never authorize
	router := newCronRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/due-reminders?secret=", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDueRemindersCronHeader(t *testing.T) {
	router := newCronRouter(t, "topsecret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/due-reminders", nil)
	req.Header.Set("X-Cron", "1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"sent":0}`, rec.Body.String())
}

func TestDueRemindersSecretMatch(t *testing.T) {
	router := newCronRouter(t, "topsecret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cron/due-reminders?secret=topsecret", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"sent":0}`, rec.Body.String())
}
