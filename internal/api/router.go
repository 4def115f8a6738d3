package api

import (
	"net/http"
	"time"

	"codedojo/internal/api/handler"
	"codedojo/internal/app/service"
	"codedojo/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	problemService *service.ProblemService,
	submissionService *service.SubmissionService,
	hintService *service.HintService,
	feedbackService *service.FeedbackService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies any "Authorization: Bearer T" token and puts claims in the
	// request context. Routes decide whether auth is required.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		submissionHandler := handler.NewSubmissionHandler(submissionService)

		// Problem routes (list/detail public, management admin-only) plus
		// the submit endpoint, which accepts anonymous submissions.
		problemHandler := handler.NewProblemHandler(problemService)
		v1.Route("/problems", func(pr chi.Router) {
			problemHandler.RegisterRoutes(pr)
			submissionHandler.RegisterSubmitRoute(pr)
		})

		// Submission history (authenticated)
		v1.Route("/submissions", submissionHandler.RegisterRoutes)

		// Hint routes (authenticated)
		hintHandler := handler.NewHintHandler(hintService)
		v1.Route("/hints", hintHandler.RegisterRoutes)

		// Feedback routes (authenticated)
		feedbackHandler := handler.NewFeedbackHandler(feedbackService)
		v1.Route("/feedback", feedbackHandler.RegisterRoutes)
	})

	return r
}
