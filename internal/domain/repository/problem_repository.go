package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"codedojo/internal/common"
	"codedojo/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProblemRepository interface {
	CreateProblem(ctx context.Context, tx *sql.Tx, problem *model.Problem) error
	UpdateProblem(ctx context.Context, tx *sql.Tx, problem *model.Problem) error
	DeleteProblem(ctx context.Context, tx *sql.Tx, problemID string) error
	FindProblemByID(ctx context.Context, id string) (*model.Problem, error)
	FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error)
	ListProblems(ctx context.Context) ([]model.Problem, error)
	CountProblems(ctx context.Context) (int, error)

	// Test cases are created with their problem and replaced in bulk on edit.
	AddTestCasesToProblem(ctx context.Context, tx *sql.Tx, problemID string, testCases []model.TestCase) error
	GetTestCasesByProblemID(ctx context.Context, problemID string) ([]model.TestCase, error)
	DeleteTestCasesByProblemID(ctx context.Context, tx *sql.Tx, problemID string) error
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) CreateProblem(ctx context.Context, tx *sql.Tx, p *model.Problem) error {
	query := `INSERT INTO problems (id, title, slug, description, created_by)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.ExecContext(ctx, query, p.ID, p.Title, p.Slug, p.Description, p.CreatedByID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint for slug
			return fmt.Errorf("problem with this slug already exists: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgProblemRepository.CreateProblem: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) UpdateProblem(ctx context.Context, tx *sql.Tx, p *model.Problem) error {
	query := `UPDATE problems SET title = $1, slug = $2, description = $3, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4`
	if _, err := tx.ExecContext(ctx, query, p.Title, p.Slug, p.Description, p.ID); err != nil {
		return fmt.Errorf("pgProblemRepository.UpdateProblem: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) DeleteProblem(ctx context.Context, tx *sql.Tx, problemID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM problems WHERE id = $1`, problemID); err != nil {
		return fmt.Errorf("pgProblemRepository.DeleteProblem: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	return r.findBy(ctx, "id", id)
}

func (r *pgProblemRepository) FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	return r.findBy(ctx, "slug", slug)
}

func (r *pgProblemRepository) findBy(ctx context.Context, column, value string) (*model.Problem, error) {
	query := fmt.Sprintf(`SELECT id, title, slug, description, created_by, created_at, updated_at
	          FROM problems WHERE %s = $1`, column)
	problem := &model.Problem{}
	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&problem.ID, &problem.Title, &problem.Slug, &problem.Description,
		&problem.CreatedByID, &problem.CreatedAt, &problem.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgProblemRepository.findBy %s: %w", column, err)
	}
	return problem, nil
}

func (r *pgProblemRepository) ListProblems(ctx context.Context) ([]model.Problem, error) {
	query := `SELECT id, title, slug, description, created_by, created_at, updated_at
	          FROM problems ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListProblems query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.CreatedByID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.ListProblems scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.ListProblems rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgProblemRepository) CountProblems(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM problems`).Scan(&count); err != nil {
		return 0, fmt.Errorf("pgProblemRepository.CountProblems: %w", err)
	}
	return count, nil
}

func (r *pgProblemRepository) AddTestCasesToProblem(ctx context.Context, tx *sql.Tx, problemID string, testCases []model.TestCase) error {
	if len(testCases) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO test_cases (id, problem_id, input, expected_output, sort_order) VALUES ($1, $2, $3, $4, $5)`)
	if err != nil {
		return fmt.Errorf("pgProblemRepository.AddTestCasesToProblem prepare: %w", err)
	}
	defer stmt.Close()

	for i, tc := range testCases {
		if tc.SortOrder == 0 {
			tc.SortOrder = i + 1
		}
		if _, err := stmt.ExecContext(ctx, tc.ID, problemID, tc.Input, tc.ExpectedOutput, tc.SortOrder); err != nil {
			return fmt.Errorf("pgProblemRepository.AddTestCasesToProblem exec for case %s: %w", tc.ID, err)
		}
	}
	return nil
}

// GetTestCasesByProblemID returns cases in their stable judging order.
func (r *pgProblemRepository) GetTestCasesByProblemID(ctx context.Context, problemID string) ([]model.TestCase, error) {
	query := `SELECT id, problem_id, input, expected_output, sort_order, created_at
	          FROM test_cases WHERE problem_id = $1 ORDER BY sort_order ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, problemID)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetTestCasesByProblemID query: %w", err)
	}
	defer rows.Close()

	var testCases []model.TestCase
	for rows.Next() {
		var tc model.TestCase
		if err := rows.Scan(&tc.ID, &tc.ProblemID, &tc.Input, &tc.ExpectedOutput, &tc.SortOrder, &tc.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.GetTestCasesByProblemID scan: %w", err)
		}
		testCases = append(testCases, tc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.GetTestCasesByProblemID rows.Err: %w", err)
	}
	return testCases, nil
}

func (r *pgProblemRepository) DeleteTestCasesByProblemID(ctx context.Context, tx *sql.Tx, problemID string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM test_cases WHERE problem_id = $1`, problemID); err != nil {
		return fmt.Errorf("pgProblemRepository.DeleteTestCasesByProblemID: %w", err)
	}
	return nil
}
