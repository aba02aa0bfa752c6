package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/client"
	"github.com/watercharging/evtax-service/dto"
)

type NotifyHandler struct {
	mailer *client.SendGridClient
}

func NewNotifyHandler(mailer *client.SendGridClient) *NotifyHandler {
	return &NotifyHandler{
		mailer: mailer,
	}
}

// Notify handles the POST /notify endpoint, forwarding one HTML mail to
// the delivery provider.
func (h *NotifyHandler) Notify(c *gin.Context) {
	if !h.mailer.Configured() {
		sendError(c, http.StatusInternalServerError, "Missing SENDGRID_API_KEY", nil)
		return
	}

	var req dto.NotifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid JSON body", err)
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	if err := h.mailer.SendHTML(req.To, req.Subject, req.HTML); err != nil {
		if pe, ok := providerError(err); ok {
			sendError(c, http.StatusBadGateway, pe.Details, pe)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to send mail", err)
		return
	}

	log.Printf("Mail sent to %s", req.To)
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
