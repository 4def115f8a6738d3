package service

import (
	"context"
	"database/sql"
	"log"
	"time"

	"codedojo/internal/common"
	"codedojo/internal/domain/model"
	"codedojo/internal/domain/repository"
	"codedojo/internal/llm"

	"github.com/redis/go-redis/v9"
)

type HintService struct {
	userRepo    repository.UserRepository
	problemRepo repository.ProblemRepository
	generator   llm.HintGenerator
	lock        *hintLock
	db          *sql.DB
	freeLimit   int
}

func NewHintService(
	userRepo repository.UserRepository,
	problemRepo repository.ProblemRepository,
	generator llm.HintGenerator,
	rdb *redis.Client,
	db *sql.DB,
	freeLimit int,
	lockTTL time.Duration,
) *HintService {
	return &HintService{
		userRepo:    userRepo,
		problemRepo: problemRepo,
		generator:   generator,
		lock:        &hintLock{rdb: rdb, ttl: lockTTL},
		db:          db,
		freeLimit:   freeLimit,
	}
}

type HintRequestInput struct {
	ProblemID    string `json:"problem_id"`
	Code         string `json:"code"`
	ErrorType    string `json:"error_type"`
	ErrorMessage string `json:"error_message"`
}

type HintAvailability struct {
	Available     bool `json:"available"`
	FreeRemaining int  `json:"free_remaining"`
	Purchased     int  `json:"purchased"`
}

// CanUseHint reports availability without consuming anything. The daily
// reset is applied (and persisted) before evaluating.
func (s *HintService) CanUseHint(ctx context.Context, userID string) (*HintAvailability, error) {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quota, err := s.userRepo.GetHintQuotaForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	available := quota.CanUse(now, s.freeLimit)
	if err := s.userRepo.UpdateHintQuota(ctx, tx, userID, quota); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}

	return &HintAvailability{
		Available:     available,
		FreeRemaining: quota.FreeRemaining(now, s.freeLimit),
		Purchased:     quota.Purchased,
	}, nil
}

// RequestHint consumes one hint (free first, then purchased) and asks the
// external hint service for guidance. Duplicate requests from the same
// user are serialized by a short-lived per-user lock; the loser gets
// ErrHintBusy instead of queueing.
func (s *HintService) RequestHint(ctx context.Context, userID string, input HintRequestInput) (string, error) {
	problem, err := s.problemRepo.FindProblemByID(ctx, input.ProblemID)
	if err != nil {
		return "", err
	}

	release, ok, err := s.lock.Acquire(ctx, userID)
	if err != nil {
		return "", common.Errorf("failed to acquire hint lock: %w", err)
	}
	if !ok {
		return "", common.ErrHintBusy
	}
	defer release()

	if err := s.consumeHint(ctx, userID); err != nil {
		return "", err
	}

	hint, err := s.generator.GenerateHint(ctx, model.HintRequest{
		ErrorType:          input.ErrorType,
		ErrorMessage:       input.ErrorMessage,
		Code:               input.Code,
		ProblemDescription: problem.Description,
	})
	if err != nil {
		log.Printf("ERROR: Hint generation failed for user %s: %v", userID, err)
		return "", err
	}
	return hint, nil
}

func (s *HintService) consumeHint(ctx context.Context, userID string) error {
	now := time.Now().UTC()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	quota, err := s.userRepo.GetHintQuotaForUpdate(ctx, tx, userID)
	if err != nil {
		return err
	}
	if !quota.Consume(now, s.freeLimit) {
		return common.ErrHintQuotaExhausted
	}
	if err := s.userRepo.UpdateHintQuota(ctx, tx, userID, quota); err != nil {
		return err
	}
	return tx.Commit()
}
