package handler

import (
	"encoding/json"
	"net/http"

	"doctor-roster/internal/delivery/dto"
	"doctor-roster/internal/usecase"
	"doctor-roster/pkg/response"
)

// maxWebhookBody bounds the decoded batch whether or not signatures are checked
const maxWebhookBody = 1 << 20

type LineWebhookHandler struct {
	lineChatUsecase usecase.LineChatUsecase
}

func NewLineWebhookHandler(lineChatUsecase usecase.LineChatUsecase) *LineWebhookHandler {
	return &LineWebhookHandler{
		lineChatUsecase: lineChatUsecase,
	}
}

// HandleWebhook accepts a LINE event batch. LINE sends fields we do not model,
// so unknown fields are ignored here.
func (h *LineWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxWebhookBody)

	var req dto.LineWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	result, err := h.lineChatUsecase.HandleWebhook(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to process webhook")
		return
	}

	response.Success(w, http.StatusOK, "Webhook processed", result)
}
