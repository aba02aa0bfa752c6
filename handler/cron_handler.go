package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/dto"
	"github.com/watercharging/evtax-service/service"
)

type CronHandler struct {
	reminderService *service.ReminderService
	bypassToken     string
}

func NewCronHandler(reminderService *service.ReminderService, bypassToken string) *CronHandler {
	return &CronHandler{
		reminderService: reminderService,
		bypassToken:     bypassToken,
	}
}

// DueReminders handles the GET /cron/due-reminders endpoint. Only the
// scheduler (X-Cron header) or a caller holding the bypass token may
// trigger the digest.
func (h *CronHandler) DueReminders(c *gin.Context) {
	hasCronHeader := c.GetHeader("X-Cron") != ""
	secret := c.Query("secret")
	if !hasCronHeader && (h.bypassToken == "" || secret != h.bypassToken) {
		sendError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	sent, err := h.reminderService.SendDueReminders(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to send reminders", err)
		return
	}

	log.Printf("Due reminder digest sent to %d recipients", sent)
	c.JSON(http.StatusOK, dto.ReminderResponse{OK: true, Sent: sent})
}
