package handler

import (
	"encoding/json"
	"net/http"

	"codedojo/internal/api/middleware"
	"codedojo/internal/app/service"
	"codedojo/internal/common"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(submissionService *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(auth chi.Router) {
		auth.Use(middleware.Authenticator)
		auth.Get("/", h.listMySubmissions)
		auth.Get("/{id}", h.getSubmission)
	})
}

// RegisterSubmitRoute mounts the submit endpoint under the problem
// routes. Anonymous submissions are judged but not recorded.
func (h *SubmissionHandler) RegisterSubmitRoute(r chi.Router) {
	r.Post("/{slug}/submit", h.submit)
}

func (h *SubmissionHandler) submit(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	userID := middleware.OptionalUserID(r)

	var req service.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	resp, err := h.submissionService.Submit(r.Context(), userID, slug, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *SubmissionHandler) listMySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	submissions, err := h.submissionService.ListMySubmissions(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submissions)
}

func (h *SubmissionHandler) getSubmission(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	submission, err := h.submissionService.GetSubmission(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, submission)
}
