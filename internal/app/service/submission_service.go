package service

import (
	"context"
	"log"
	"time"

	"codedojo/internal/common"
	"codedojo/internal/domain/model"
	"codedojo/internal/domain/repository"

	"github.com/google/uuid"
)

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	problemRepo    repository.ProblemRepository
	judgeService   *JudgeService
}

func NewSubmissionService(
	subRepo repository.SubmissionRepository,
	probRepo repository.ProblemRepository,
	judgeService *JudgeService,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: subRepo,
		problemRepo:    probRepo,
		judgeService:   judgeService,
	}
}

type SubmitRequest struct {
	Code string `json:"code"`
}

type SubmitResponse struct {
	SubmissionID *string            `json:"submission_id,omitempty"` // set only for authenticated users
	Result       *model.JudgeResult `json:"result"`
}

// Submit judges the code synchronously against the problem's test cases.
// userID is nil for anonymous submitters, whose attempts are judged but
// not recorded.
func (s *SubmissionService) Submit(ctx context.Context, userID *string, problemSlug string, req SubmitRequest) (*SubmitResponse, error) {
	if req.Code == "" {
		return nil, common.Errorf("code is required: %w", common.ErrBadRequest)
	}

	problem, err := s.problemRepo.FindProblemBySlug(ctx, problemSlug)
	if err != nil {
		return nil, err
	}
	problem.TestCases, err = s.problemRepo.GetTestCasesByProblemID(ctx, problem.ID)
	if err != nil {
		return nil, common.Errorf("failed to fetch test cases: %w", err)
	}

	result := s.judgeService.Judge(ctx, problem, req.Code)

	resp := &SubmitResponse{Result: result}
	if userID != nil {
		submission := &model.Submission{
			ID:          uuid.NewString(),
			UserID:      *userID,
			ProblemID:   problem.ID,
			Status:      result.Overall,
			Code:        req.Code,
			HintPrompt:  result.HintPrompt,
			SubmittedAt: time.Now().UTC(),
		}
		if err := s.submissionRepo.CreateSubmission(ctx, submission); err != nil {
			// The verdict is still valid; losing the history row is logged,
			// not fatal to the request.
			log.Printf("ERROR: Failed to persist submission for user %s: %v", *userID, err)
		} else {
			resp.SubmissionID = &submission.ID
		}
	}

	return resp, nil
}

func (s *SubmissionService) ListMySubmissions(ctx context.Context, userID string) ([]model.Submission, error) {
	return s.submissionRepo.ListSubmissionsByUser(ctx, userID)
}

// GetSubmission returns a submission only to its owner.
func (s *SubmissionService) GetSubmission(ctx context.Context, userID, submissionID string) (*model.Submission, error) {
	submission, err := s.submissionRepo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.UserID != userID {
		return nil, common.ErrForbidden
	}
	return submission, nil
}
