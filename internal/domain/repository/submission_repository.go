package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codedojo/internal/common"
	"codedojo/internal/domain/model"
)

type SubmissionRepository interface {
	// CreateSubmission inserts a record exactly once per submit action; it is
	// never mutated or deleted afterwards.
	CreateSubmission(ctx context.Context, sub *model.Submission) error
	GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error)
	ListSubmissionsByUser(ctx context.Context, userID string) ([]model.Submission, error)

	// ListSolvedProblemIDs returns the distinct problem ids with an Accepted
	// submission by the user.
	ListSolvedProblemIDs(ctx context.Context, userID string) ([]string, error)
}

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

func (r *pgSubmissionRepository) CreateSubmission(ctx context.Context, sub *model.Submission) error {
	query := `INSERT INTO submissions (id, user_id, problem_id, status, code, hint_prompt, submitted_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query, sub.ID, sub.UserID, sub.ProblemID, sub.Status, sub.Code, sub.HintPrompt, sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("pgSubmissionRepository.CreateSubmission: %w", err)
	}
	return nil
}

func (r *pgSubmissionRepository) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	query := `SELECT s.id, s.user_id, s.problem_id, s.status, s.code, s.hint_prompt, s.submitted_at, p.title
	          FROM submissions s
	          LEFT JOIN problems p ON s.problem_id = p.id
	          WHERE s.id = $1`
	sub := &model.Submission{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&sub.ID, &sub.UserID, &sub.ProblemID, &sub.Status, &sub.Code, &sub.HintPrompt, &sub.SubmittedAt, &sub.ProblemTitle,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSubmissionRepository.GetSubmissionByID: %w", err)
	}
	return sub, nil
}

func (r *pgSubmissionRepository) ListSubmissionsByUser(ctx context.Context, userID string) ([]model.Submission, error) {
	query := `SELECT s.id, s.user_id, s.problem_id, s.status, s.code, s.hint_prompt, s.submitted_at, p.title
	          FROM submissions s
	          LEFT JOIN problems p ON s.problem_id = p.id
	          WHERE s.user_id = $1
	          ORDER BY s.submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissionsByUser query: %w", err)
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.ProblemID, &s.Status, &s.Code, &s.HintPrompt, &s.SubmittedAt, &s.ProblemTitle); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissionsByUser scan: %w", err)
		}
		submissions = append(submissions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSubmissionsByUser rows.Err: %w", err)
	}
	return submissions, nil
}

func (r *pgSubmissionRepository) ListSolvedProblemIDs(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT DISTINCT problem_id FROM submissions WHERE user_id = $1 AND status = $2`
	rows, err := r.db.QueryContext(ctx, query, userID, model.OverallAccepted)
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSolvedProblemIDs query: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.ListSolvedProblemIDs scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.ListSolvedProblemIDs rows.Err: %w", err)
	}
	return ids, nil
}
