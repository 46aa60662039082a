package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/realtime"
	"mobilityplus-server/internal/repositories"
)

// Compile-time check to ensure ratingService implements the contract.
var _ RatingServiceContract = (*ratingService)(nil)

type ratingService struct {
	repos  repositories.Repositories
	events EventPublisher
}

// NewRatingService creates the rating aggregation service.
func NewRatingService(repos repositories.Repositories, events EventPublisher) RatingServiceContract {
	return &ratingService{repos: repos, events: events}
}

// Submit runs the whole rating as one transaction: the appointment is
// re-read under transactional isolation, the professional's aggregate is
// recomputed read-modify-write, the appointment flips to "calificada" and the
// rating row is appended. A failure anywhere rolls everything back, so the
// aggregate and the status can never diverge. Concurrent submissions against
// the same professional serialize on the profile row.
func (s *ratingService) Submit(ctx context.Context, input SubmitRatingInput) (*models.Rating, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, fmt.Errorf("%w: score must be between 1 and 5", ErrValidation)
	}
	if strings.TrimSpace(input.Comment) == "" {
		return nil, fmt.Errorf("%w: a comment is required", ErrValidation)
	}

	var (
		rating       *models.Rating
		professional *models.ProfessionalProfile
	)
	err := s.repos.Transact(ctx, func(tx repositories.Repositories) error {
		appointment, err := tx.Appointments().GetByID(ctx, input.AppointmentID)
		if err != nil {
			return translateRepoError(err, "appointment")
		}
		if appointment.PatientID != input.PatientID {
			return fmt.Errorf("%w: only the appointment's patient may rate it", ErrForbidden)
		}
		if appointment.Status != models.StatusCompleted {
			return fmt.Errorf("%w: appointment is %q, only %q can be rated",
				ErrInvalidState, appointment.Status, models.StatusCompleted)
		}

		professional, err = tx.Professionals().GetByUserID(ctx, appointment.ProfessionalID)
		if err != nil {
			return translateRepoError(err, "professional")
		}

		oldTotal := professional.Rating * float64(professional.ReviewCount)
		professional.ReviewCount++
		professional.Rating = (oldTotal + float64(input.Score)) / float64(professional.ReviewCount)
		if err := tx.Professionals().Update(ctx, professional); err != nil {
			return err
		}

		appointment.Status = models.StatusRated
		if err := tx.Appointments().Update(ctx, appointment); err != nil {
			return err
		}

		rating = &models.Rating{
			AppointmentID:  appointment.ID,
			PatientID:      appointment.PatientID,
			ProfessionalID: appointment.ProfessionalID,
			Score:          input.Score,
			Comment:        strings.TrimSpace(input.Comment),
		}
		return tx.Ratings().Create(ctx, rating)
	})
	if err != nil {
		return nil, translateRepoError(err, "rating")
	}

	if s.events != nil {
		s.events.Publish(professional.UserID, realtime.Event{
			Type:    realtime.EventAppointmentUpdated,
			Payload: rating,
			At:      time.Now(),
		})
	}
	return rating, nil
}

func (s *ratingService) ListForProfessional(ctx context.Context, professionalID string) ([]models.Rating, error) {
	return s.repos.Ratings().ListByProfessional(ctx, professionalID)
}
