package impl

import (
	"context"
	"log/slog"
	"strings"

	"scooter/internal/domain/entity"
	domainerrors "scooter/internal/domain/errors"
	"scooter/internal/domain/service"
	"scooter/internal/usecase"

	"github.com/pkg/errors"
)

// feedbackService implements the FeedbackUsecase interface.
type feedbackService struct {
	api    service.RentalAPI
	logger *slog.Logger
}

// NewFeedbackService is the constructor for feedbackService.
func NewFeedbackService(api service.RentalAPI, logger *slog.Logger) usecase.FeedbackUsecase {
	return &feedbackService{api: api, logger: logger}
}

// ForBike loads the reviews of a bike.
func (srv *feedbackService) ForBike(ctx context.Context, bikeID string) (*entity.BikeFeedback, error) {
	bikeID = strings.TrimSpace(bikeID)
	if bikeID == "" {
		return nil, errors.WithStack(domainerrors.Validation("Please select a bike."))
	}

	feedback, err := srv.api.GetBikeFeedback(ctx, bikeID)
	if err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrFeedbackLoadFailed)
	}
	if feedback == nil {
		feedback = &entity.BikeFeedback{}
	}
	feedback.Feedback = nonNil(feedback.Feedback)

	return feedback, nil
}

// Submit posts a review and returns the refreshed feedback.
func (srv *feedbackService) Submit(ctx context.Context, input entity.FeedbackInput) (*entity.BikeFeedback, error) {
	input.BikeID = strings.TrimSpace(input.BikeID)
	input.Comment = strings.TrimSpace(input.Comment)

	if input.Comment == "" {
		return nil, errors.WithStack(domainerrors.ErrCommentRequired)
	}
	if input.Rating < entity.MinRating || input.Rating > entity.MaxRating {
		return nil, errors.WithStack(domainerrors.ErrRatingOutOfRange)
	}
	if input.BikeID == "" {
		return nil, errors.WithStack(domainerrors.Validation("Please select a bike."))
	}

	if err := srv.api.SubmitFeedback(ctx, input); err != nil {
		return nil, domainerrors.FromRemote(err, domainerrors.ErrFeedbackSubmitFailed)
	}

	srv.logger.Debug("Feedback submitted", slog.String("bike_id", input.BikeID), slog.Int("rating", input.Rating))

	return srv.ForBike(ctx, input.BikeID)
}
