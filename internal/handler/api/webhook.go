package api

import (
	"net/http"

	"stayhub/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// WebhookHandler receives signed account events from the identity provider
// and mirrors them into the local users table.
type WebhookHandler struct {
	verifier     commands.IdentityVerifier
	userCommands commands.UserCommands
}

func NewWebhookHandler(verifier commands.IdentityVerifier, userCommands commands.UserCommands) *WebhookHandler {
	return &WebhookHandler{
		verifier:     verifier,
		userCommands: userCommands,
	}
}

func (h *WebhookHandler) IdentityWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	headers := commands.IdentityHeaders{
		ID:        c.GetHeader("Webhook-Id"),
		Timestamp: c.GetHeader("Webhook-Timestamp"),
		Signature: c.GetHeader("Webhook-Signature"),
	}

	event, err := h.verifier.VerifyEvent(payload, headers)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature"})
		return
	}

	if err := h.userCommands.SyncFromIdentity(c.Request.Context(), event); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
}
