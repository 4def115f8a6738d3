package handler

import (
	"encoding/json"
	"net/http"

	"codedojo/internal/api/middleware"
	"codedojo/internal/app/service"
	"codedojo/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	problemService *service.ProblemService
}

func NewProblemHandler(problemService *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProblems)
	r.Get("/{slug}", h.getProblem)

	// Admin-only problem management.
	r.Group(func(admin chi.Router) {
		admin.Use(middleware.Authenticator)
		admin.Use(middleware.AdminOnly)
		admin.Post("/", h.createProblem)
		admin.Put("/{id}", h.updateProblem)
		admin.Delete("/{id}", h.deleteProblem)
	})
}

func (h *ProblemHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	userID := ""
	if id := middleware.OptionalUserID(r); id != nil {
		userID = *id
	}

	entries, err := h.problemService.ListProblems(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *ProblemHandler) getProblem(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	role := middleware.OptionalUserRole(r)

	problem, err := h.problemService.GetProblemDetails(r.Context(), slug, role)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) createProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	var req service.ProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	problem, err := h.problemService.CreateProblem(r.Context(), userID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, problem)
}

func (h *ProblemHandler) updateProblem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.ProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	problem, err := h.problemService.UpdateProblem(r.Context(), id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problem)
}

func (h *ProblemHandler) deleteProblem(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.problemService.DeleteProblem(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Problem deleted"})
}
