package service

import (
	"context"

	"codedojo/internal/common"
	"codedojo/internal/domain/model"
	"codedojo/internal/domain/repository"

	"github.com/google/uuid"
)

type FeedbackService struct {
	feedbackRepo repository.FeedbackRepository
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{feedbackRepo: feedbackRepo}
}

type FeedbackRequest struct {
	TargetType string `json:"target_type"` // "problem" or "hint"
	TargetID   string `json:"target_id"`
	Feedback   string `json:"feedback"` // "good" or "bad"
}

func (s *FeedbackService) SubmitFeedback(ctx context.Context, userID string, req FeedbackRequest) (*model.Feedback, error) {
	if req.TargetType != model.FeedbackTargetProblem && req.TargetType != model.FeedbackTargetHint {
		return nil, common.Errorf("invalid feedback target type: %w", common.ErrValidation)
	}
	if req.Feedback != model.FeedbackGood && req.Feedback != model.FeedbackBad {
		return nil, common.Errorf("invalid feedback value: %w", common.ErrValidation)
	}
	if req.TargetID == "" {
		return nil, common.Errorf("target id is required: %w", common.ErrValidation)
	}

	fb := &model.Feedback{
		ID:         uuid.NewString(),
		UserID:     userID,
		TargetType: req.TargetType,
		TargetID:   req.TargetID,
		Feedback:   req.Feedback,
	}
	if err := s.feedbackRepo.CreateFeedback(ctx, fb); err != nil {
		return nil, common.Errorf("failed to store feedback: %w", err)
	}
	return fb, nil
}
