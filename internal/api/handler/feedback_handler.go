package handler

import (
	"encoding/json"
	"net/http"

	"codedojo/internal/api/middleware"
	"codedojo/internal/app/service"
	"codedojo/internal/common"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	feedbackService *service.FeedbackService
}

func NewFeedbackHandler(feedbackService *service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.submitFeedback)
}

func (h *FeedbackHandler) submitFeedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	var req service.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if _, err := h.feedbackService.SubmitFeedback(r.Context(), userID, req); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, map[string]string{"status": "success"})
}
