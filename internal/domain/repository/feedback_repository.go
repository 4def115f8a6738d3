package repository

import (
	"context"
	"database/sql"
	"fmt"

	"codedojo/internal/domain/model"
)

type FeedbackRepository interface {
	CreateFeedback(ctx context.Context, fb *model.Feedback) error
}

type pgFeedbackRepository struct {
	db *sql.DB
}

func NewPgFeedbackRepository(db *sql.DB) FeedbackRepository {
	return &pgFeedbackRepository{db: db}
}

func (r *pgFeedbackRepository) CreateFeedback(ctx context.Context, fb *model.Feedback) error {
	query := `INSERT INTO feedback (id, user_id, target_type, target_id, feedback)
	          VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.db.ExecContext(ctx, query, fb.ID, fb.UserID, fb.TargetType, fb.TargetID, fb.Feedback); err != nil {
		return fmt.Errorf("pgFeedbackRepository.CreateFeedback: %w", err)
	}
	return nil
}
