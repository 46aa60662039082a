package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"mobilityplus-server/internal/models"
	"mobilityplus-server/internal/realtime"
	"mobilityplus-server/internal/repositories"
)

// EventPublisher pushes change notifications to subscribed users. The
// realtime.Hub satisfies it; services tolerate a nil publisher.
type EventPublisher interface {
	Publish(userID string, event realtime.Event)
}

// Compile-time check to ensure appointmentService implements the contract.
var _ AppointmentServiceContract = (*appointmentService)(nil)

type appointmentService struct {
	repos  repositories.Repositories
	events EventPublisher
}

// NewAppointmentService creates the appointment lifecycle service.
func NewAppointmentService(repos repositories.Repositories, events EventPublisher) AppointmentServiceContract {
	return &appointmentService{repos: repos, events: events}
}

// Create books a new appointment. It always starts at "pendiente" and
// snapshots the professional's current visit price and both display names.
func (s *appointmentService) Create(ctx context.Context, input CreateAppointmentInput) (*models.Appointment, error) {
	if strings.TrimSpace(input.ServiceType) == "" {
		return nil, fmt.Errorf("%w: service type is required", ErrValidation)
	}
	if strings.TrimSpace(input.Address) == "" {
		return nil, fmt.Errorf("%w: address is required", ErrValidation)
	}
	if input.ScheduledAt.IsZero() {
		return nil, fmt.Errorf("%w: schedule is required", ErrValidation)
	}

	profile, err := s.repos.Professionals().GetByUserID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, translateRepoError(err, "professional")
	}
	if len(profile.ServicesOffered) > 0 && !profile.OffersService(input.ServiceType) {
		return nil, fmt.Errorf("%w: professional does not offer %q", ErrValidation, input.ServiceType)
	}

	patient, err := s.repos.Users().GetByID(ctx, input.PatientID)
	if err != nil {
		return nil, translateRepoError(err, "patient")
	}
	professional, err := s.repos.Users().GetByID(ctx, input.ProfessionalID)
	if err != nil {
		return nil, translateRepoError(err, "professional")
	}

	appointment := &models.Appointment{
		PatientID:        patient.ID,
		ProfessionalID:   professional.ID,
		PatientName:      patient.FullName(),
		ProfessionalName: professional.FullName(),
		ServiceType:      input.ServiceType,
		Address:          input.Address,
		Latitude:         input.Latitude,
		Longitude:        input.Longitude,
		ScheduledAt:      input.ScheduledAt,
		PriceSnapshot:    profile.VisitPrice,
		Notes:            input.Notes,
		Status:           models.StatusPending,
	}
	if err := s.repos.Appointments().Create(ctx, appointment); err != nil {
		return nil, err
	}

	s.publish(professional.ID, realtime.EventAppointmentUpdated, appointment)
	return appointment, nil
}

// Transition moves an appointment along the lifecycle. The status is re-read
// and re-checked inside one storage transaction so a racing accept and cancel
// cannot both win; side effects (chat room on accept, care log entry on
// completion) commit with the status change or not at all.
func (s *appointmentService) Transition(ctx context.Context, input TransitionInput) (*models.Appointment, error) {
	if !input.Target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, input.Target)
	}
	if input.Target == models.StatusPending {
		return nil, fmt.Errorf("%w: cannot transition back to %q", ErrIllegalTransition, models.StatusPending)
	}
	// The rating flip rides on the rating submission transaction only.
	if input.Target == models.StatusRated {
		return nil, fmt.Errorf("%w: %q is reached by submitting a rating", ErrIllegalTransition, models.StatusRated)
	}

	requiredRole, ok := models.TransitionActor(input.Target)
	if !ok {
		return nil, fmt.Errorf("%w: no actor may drive %q", ErrIllegalTransition, input.Target)
	}
	if input.ActorRole != requiredRole {
		return nil, fmt.Errorf("%w: %q transitions are reserved to the %s", ErrForbidden, input.Target, requiredRole)
	}

	notes := strings.TrimSpace(input.Notes)
	if input.Target == models.StatusCompleted && notes == "" {
		return nil, fmt.Errorf("%w: clinical notes are required to complete a service", ErrValidation)
	}

	var appointment *models.Appointment
	err := s.repos.Transact(ctx, func(tx repositories.Repositories) error {
		var err error
		appointment, err = tx.Appointments().GetByID(ctx, input.AppointmentID)
		if err != nil {
			return translateRepoError(err, "appointment")
		}

		switch requiredRole {
		case models.RoleProfessional:
			if appointment.ProfessionalID != input.ActorID {
				return fmt.Errorf("%w: appointment belongs to another professional", ErrForbidden)
			}
		case models.RolePatient:
			if appointment.PatientID != input.ActorID {
				return fmt.Errorf("%w: appointment belongs to another patient", ErrForbidden)
			}
		}

		if !models.CanTransition(appointment.Status, input.Target) {
			return fmt.Errorf("%w: %q -> %q", ErrIllegalTransition, appointment.Status, input.Target)
		}

		appointment.Status = input.Target
		if notes != "" && input.Target != models.StatusCompleted {
			appointment.Notes = notes
		}
		if err := tx.Appointments().Update(ctx, appointment); err != nil {
			return err
		}

		switch input.Target {
		case models.StatusAccepted:
			return ensureRoomInTx(ctx, tx,
				appointment.PatientID, appointment.ProfessionalID,
				map[string]string{
					appointment.PatientID:      appointment.PatientName,
					appointment.ProfessionalID: appointment.ProfessionalName,
				})
		case models.StatusCompleted:
			entry := &models.CareLogEntry{
				PatientID:        appointment.PatientID,
				AppointmentID:    appointment.ID,
				ProfessionalID:   appointment.ProfessionalID,
				ProfessionalName: appointment.ProfessionalName,
				ServiceType:      appointment.ServiceType,
				Notes:            notes,
			}
			return tx.CareLog().Create(ctx, entry)
		}
		return nil
	})
	if err != nil {
		return nil, translateRepoError(err, "appointment")
	}

	s.publish(appointment.PatientID, realtime.EventAppointmentUpdated, appointment)
	s.publish(appointment.ProfessionalID, realtime.EventAppointmentUpdated, appointment)
	return appointment, nil
}

// GetForUser fetches one appointment, restricted to its two participants.
func (s *appointmentService) GetForUser(ctx context.Context, appointmentID, userID string) (*models.Appointment, error) {
	appointment, err := s.repos.Appointments().GetByID(ctx, appointmentID)
	if err != nil {
		return nil, translateRepoError(err, "appointment")
	}
	if appointment.PatientID != userID && appointment.ProfessionalID != userID {
		return nil, fmt.Errorf("%w: not a participant of this appointment", ErrForbidden)
	}
	return appointment, nil
}

func (s *appointmentService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.repos.Appointments().ListByPatient(ctx, patientID)
}

func (s *appointmentService) ListForProfessional(ctx context.Context, professionalID string, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	return s.repos.Appointments().ListByProfessional(ctx, professionalID, statuses)
}

func (s *appointmentService) publish(userID string, eventType realtime.EventType, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(userID, realtime.Event{Type: eventType, Payload: payload, At: time.Now()})
}

// ensureRoomInTx lazily creates the chat room for a participant pair inside
// the caller's transaction. It is idempotent and never touches an existing
// room's history; display names are merged if missing.
func ensureRoomInTx(ctx context.Context, tx repositories.Repositories, uidA, uidB string, names map[string]string) error {
	roomID := models.ChatRoomID(uidA, uidB)
	room, err := tx.Chats().GetRoom(ctx, roomID)
	if errors.Is(err, repositories.ErrNotFound) {
		first, second := uidA, uidB
		if second < first {
			first, second = second, first
		}
		room = &models.ChatRoom{
			BaseModel: models.BaseModel{ID: roomID},
			UserAID:   first,
			UserBID:   second,
			UserAName: names[first],
			UserBName: names[second],
		}
		return tx.Chats().CreateRoom(ctx, room)
	}
	if err != nil {
		return err
	}

	changed := false
	if room.UserAName == "" && names[room.UserAID] != "" {
		room.UserAName = names[room.UserAID]
		changed = true
	}
	if room.UserBName == "" && names[room.UserBID] != "" {
		room.UserBName = names[room.UserBID]
		changed = true
	}
	if changed {
		return tx.Chats().UpdateRoom(ctx, room)
	}
	return nil
}

// translateRepoError maps storage-layer sentinels into the domain taxonomy.
func translateRepoError(err error, entity string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, entity)
	}
	if errors.Is(err, repositories.ErrConflict) {
		return fmt.Errorf("%w: concurrent update on %s, retry", ErrConflict, entity)
	}
	return err
}
