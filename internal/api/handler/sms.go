package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yoohyunk/punctualBE/internal/api/respond"
)

// testSMSRequest is the payload for the SMS delivery check.
type testSMSRequest struct {
	PhoneNumber string `json:"phone_number"`
	Message     string `json:"message"`
}

const defaultTestMessage = "🧪 Test SMS from Punctual!\n\nIf you received this, SMS delivery is working correctly! ✅"

// TestSMS sends a one-off message to verify messaging credentials.
// @Summary Send a test SMS
// @Tags meta
// @Accept json
// @Produce json
// @Param request body handler.testSMSRequest true "Recipient and optional message"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} respond.ErrorResponse
// @Failure 502 {object} respond.ErrorResponse
// @Failure 503 {object} respond.ErrorResponse
// @Router /api/v1/test/sms [post]
func (h *Handler) TestSMS(w http.ResponseWriter, r *http.Request) {
	if h.sender == nil {
		respond.WriteError(w, http.StatusServiceUnavailable, "SMS_NOT_CONFIGURED",
			"Messaging provider credentials are not configured")
		return
	}

	var req testSMSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON")
		return
	}
	if req.PhoneNumber == "" {
		respond.WriteError(w, http.StatusBadRequest, "VALIDATION_ERROR", "phone_number is required")
		return
	}
	msg := req.Message
	if msg == "" {
		msg = defaultTestMessage
	}

	if err := h.sender.Send(r.Context(), req.PhoneNumber, msg); err != nil {
		respond.WriteErrorDetail(w, http.StatusBadGateway, "SMS_SEND_FAILED",
			"Test SMS could not be delivered", err.Error())
		return
	}

	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"to":      req.PhoneNumber,
	})
}
