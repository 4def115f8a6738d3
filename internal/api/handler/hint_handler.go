package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"codedojo/internal/api/middleware"
	"codedojo/internal/app/service"
	"codedojo/internal/common"
	"codedojo/internal/llm"

	"github.com/go-chi/chi/v5"
)

type HintHandler struct {
	hintService *service.HintService
}

func NewHintHandler(hintService *service.HintService) *HintHandler {
	return &HintHandler{hintService: hintService}
}

func (h *HintHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/availability", h.availability)
	r.Post("/", h.requestHint)
}

func (h *HintHandler) availability(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	availability, err := h.hintService.CanUseHint(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, availability)
}

func (h *HintHandler) requestHint(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	var input service.HintRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	hint, err := h.hintService.RequestHint(r.Context(), userID, input)
	if err != nil {
		// A provider billing/quota failure gets its own code so the client
		// can word the message differently from a generic failure.
		if errors.Is(err, llm.ErrQuotaExhausted) {
			common.RespondWithJSON(w, http.StatusServiceUnavailable, common.ErrorResponse{
				Error: "The hint service is out of credit. Please try again later.",
				Code:  "quota",
			})
			return
		}
		if errors.Is(err, common.ErrHintQuotaExhausted) || errors.Is(err, common.ErrHintBusy) || errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
			return
		}
		common.RespondWithJSON(w, http.StatusInternalServerError, common.ErrorResponse{
			Error: "Hint generation failed.",
			Code:  "other",
		})
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "success", "hint": hint})
}
