package service

import (
	"context"
	"database/sql"
	"log"
	"strings"

	"codedojo/internal/common"
	"codedojo/internal/domain/model"
	"codedojo/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type ProblemService struct {
	problemRepo    repository.ProblemRepository
	submissionRepo repository.SubmissionRepository
	db             *sql.DB // For transactions
}

func NewProblemService(
	problemRepo repository.ProblemRepository,
	submissionRepo repository.SubmissionRepository,
	db *sql.DB,
) *ProblemService {
	return &ProblemService{
		problemRepo:    problemRepo,
		submissionRepo: submissionRepo,
		db:             db,
	}
}

type TestCaseInput struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expected_output"`
}

type ProblemRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	TestCases   []TestCaseInput `json:"test_cases"`
}

type ProblemListEntry struct {
	Problem model.Problem `json:"problem"`
	Solved  bool          `json:"solved"`
}

func validateProblemRequest(req ProblemRequest) error {
	if req.Title == "" || req.Description == "" {
		return common.Errorf("title and description are required: %w", common.ErrValidation)
	}
	if len(req.TestCases) == 0 {
		return common.Errorf("at least one test case is required: %w", common.ErrValidation)
	}
	// Case 1 must carry an expected output; later cases may be sparse.
	if strings.TrimSpace(req.TestCases[0].ExpectedOutput) == "" {
		return common.Errorf("test case 1 must have an expected output: %w", common.ErrValidation)
	}
	return nil
}

func buildTestCases(problemID string, inputs []TestCaseInput) []model.TestCase {
	testCases := make([]model.TestCase, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Input) == "" && strings.TrimSpace(in.ExpectedOutput) == "" {
			continue // skip blank form rows
		}
		testCases = append(testCases, model.TestCase{
			ID:             uuid.NewString(),
			ProblemID:      problemID,
			Input:          in.Input,
			ExpectedOutput: in.ExpectedOutput,
			SortOrder:      i + 1,
		})
	}
	return testCases
}

func (s *ProblemService) CreateProblem(ctx context.Context, userID string, req ProblemRequest) (*model.Problem, error) {
	if err := validateProblemRequest(req); err != nil {
		return nil, err
	}

	problem := &model.Problem{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        slug.Make(req.Title),
		Description: req.Description,
		CreatedByID: &userID,
	}
	problem.TestCases = buildTestCases(problem.ID, req.TestCases)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.problemRepo.CreateProblem(ctx, tx, problem); err != nil {
		return nil, common.Errorf("failed to create problem in DB: %w", err)
	}
	if err := s.problemRepo.AddTestCasesToProblem(ctx, tx, problem.ID, problem.TestCases); err != nil {
		return nil, common.Errorf("failed to add test cases to problem: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return problem, nil
}

// UpdateProblem replaces the problem's fields and its whole test case set
// in one transaction (replace-on-edit, no per-case mutation).
func (s *ProblemService) UpdateProblem(ctx context.Context, problemID string, req ProblemRequest) (*model.Problem, error) {
	if err := validateProblemRequest(req); err != nil {
		return nil, err
	}

	problem, err := s.problemRepo.FindProblemByID(ctx, problemID)
	if err != nil {
		return nil, err
	}
	problem.Title = req.Title
	problem.Slug = slug.Make(req.Title)
	problem.Description = req.Description
	problem.TestCases = buildTestCases(problem.ID, req.TestCases)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.problemRepo.UpdateProblem(ctx, tx, problem); err != nil {
		return nil, common.Errorf("failed to update problem: %w", err)
	}
	if err := s.problemRepo.DeleteTestCasesByProblemID(ctx, tx, problem.ID); err != nil {
		return nil, common.Errorf("failed to delete old test cases: %w", err)
	}
	if err := s.problemRepo.AddTestCasesToProblem(ctx, tx, problem.ID, problem.TestCases); err != nil {
		return nil, common.Errorf("failed to add new test cases: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, common.Errorf("failed to commit transaction: %w", err)
	}
	return problem, nil
}

// DeleteProblem removes the problem and its test cases together.
func (s *ProblemService) DeleteProblem(ctx context.Context, problemID string) error {
	if _, err := s.problemRepo.FindProblemByID(ctx, problemID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return common.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.problemRepo.DeleteTestCasesByProblemID(ctx, tx, problemID); err != nil {
		return common.Errorf("failed to delete test cases: %w", err)
	}
	if err := s.problemRepo.DeleteProblem(ctx, tx, problemID); err != nil {
		return common.Errorf("failed to delete problem: %w", err)
	}

	return tx.Commit()
}

func (s *ProblemService) GetProblemDetails(ctx context.Context, problemSlug, userRole string) (*model.Problem, error) {
	problem, err := s.problemRepo.FindProblemBySlug(ctx, problemSlug)
	if err != nil {
		return nil, err
	}

	// Hidden test data stays hidden from regular users.
	if userRole == model.RoleAdmin {
		testCases, err := s.problemRepo.GetTestCasesByProblemID(ctx, problem.ID)
		if err != nil {
			log.Printf("WARN: Failed to fetch test cases for problem %s: %v", problem.ID, err)
		}
		problem.TestCases = testCases
	}
	return problem, nil
}

// ListProblems returns all problems and marks those the user has solved.
// userID may be empty for anonymous visitors.
func (s *ProblemService) ListProblems(ctx context.Context, userID string) ([]ProblemListEntry, error) {
	problems, err := s.problemRepo.ListProblems(ctx)
	if err != nil {
		return nil, err
	}

	solved := map[string]bool{}
	if userID != "" {
		ids, err := s.submissionRepo.ListSolvedProblemIDs(ctx, userID)
		if err != nil {
			log.Printf("WARN: Failed to fetch solved problems for user %s: %v", userID, err)
		}
		for _, id := range ids {
			solved[id] = true
		}
	}

	entries := make([]ProblemListEntry, 0, len(problems))
	for _, p := range problems {
		entries = append(entries, ProblemListEntry{Problem: p, Solved: solved[p.ID]})
	}
	return entries, nil
}
