package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codedojo/internal/api"
	"codedojo/internal/app/service"
	"codedojo/internal/common/security"
	"codedojo/internal/domain/repository"
	"codedojo/internal/llm"
	"codedojo/internal/platform/cache"
	"codedojo/internal/platform/config"
	"codedojo/internal/platform/database"
	"codedojo/internal/sandbox"
)

func main() {
	// 1. Load Configuration
	config.Load()
	log.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	log.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize Redis
	cache.ConnectRedis()
	defer cache.CloseRedis()

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)
	feedbackRepo := repository.NewPgFeedbackRepository(database.DB)

	// 6. Initialize execution core and hint client
	runner := sandbox.NewPythonRunner(
		config.AppConfig.PythonBin,
		time.Duration(config.AppConfig.ExecTimeoutSeconds)*time.Second,
	)
	hintClient := llm.NewClient(
		config.AppConfig.OpenAIBaseURL,
		config.AppConfig.OpenAIAPIKey,
		config.AppConfig.OpenAIModel,
		config.AppConfig.HintMaxTokens,
	)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo)
	judgeService := service.NewJudgeService(runner)
	problemService := service.NewProblemService(problemRepo, submissionRepo, database.DB)
	submissionService := service.NewSubmissionService(submissionRepo, problemRepo, judgeService)
	hintService := service.NewHintService(
		userRepo, problemRepo, hintClient, cache.RDB, database.DB,
		config.AppConfig.FreeHintsPerDay,
		time.Duration(config.AppConfig.HintLockTTLSeconds)*time.Second,
	)
	feedbackService := service.NewFeedbackService(feedbackRepo)

	// 8. Seed starter problems on an empty database
	if err := seedProblems(context.Background(), problemRepo, database.DB); err != nil {
		log.Printf("WARN: Failed to seed starter problems: %v", err)
	}

	// 9. Initialize Router & HTTP Server
	router := api.NewRouter(authService, problemService, submissionService, hintService, feedbackService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // judging runs inside the request
		IdleTimeout:  120 * time.Second,
	}

	// 10. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
