package services

import (
	"context"
	"fmt"

	"mentorhub/domain/entities"
	"mentorhub/domain/events"
	"mentorhub/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type schedulerService struct {
	appointmentRepo interfaces.AppointmentRepository
	mentorRepo      interfaces.MentorRepository
	availability    interfaces.AvailabilityService
	wallet          interfaces.WalletService
	eventPublisher  interfaces.EventPublisher
}

// NewSchedulerService creates a new appointment scheduler
func NewSchedulerService(
	appointmentRepo interfaces.AppointmentRepository,
	mentorRepo interfaces.MentorRepository,
	availability interfaces.AvailabilityService,
	wallet interfaces.WalletService,
	eventPublisher interfaces.EventPublisher,
) interfaces.SchedulerService {
	return &schedulerService{
		appointmentRepo: appointmentRepo,
		mentorRepo:      mentorRepo,
		availability:    availability,
		wallet:          wallet,
		eventPublisher:  eventPublisher,
	}
}

// CreateAppointment books a pending session and deducts its point cost.
// All checks and mutations run on the caller's transaction: the mentor row
// lock serializes concurrent bookings for the same mentor, and a deduction
// failure rolls the appointment insert back with it.
func (s *schedulerService) CreateAppointment(ctx context.Context, params interfaces.CreateAppointmentParams) (*entities.Appointment, error) {
	if !params.StartTime.Before(params.EndTime) {
		return nil, entities.ErrInvalidInterval
	}

	mentor, err := s.mentorRepo.GetByID(ctx, params.MentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	if mentor == nil {
		return nil, entities.ErrMentorNotFound
	}

	// Serialize check-then-insert per mentor. Without the lock two
	// concurrent requests could both pass the availability check.
	if err := s.mentorRepo.LockForBooking(ctx, params.MentorID); err != nil {
		return nil, fmt.Errorf("failed to lock mentor for booking: %w", err)
	}

	available, err := s.availability.IsAvailable(ctx, params.MentorID, params.StartTime, params.EndTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}
	if !available {
		return nil, entities.ErrSlotUnavailable
	}

	durationHours := params.EndTime.Sub(params.StartTime).Hours()
	pointsRequired := mentor.SessionCost(durationHours)

	wallet, err := s.wallet.GetOrCreateWallet(ctx, params.StudentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get student wallet: %w", err)
	}
	if !wallet.CanAfford(pointsRequired) {
		return nil, entities.ErrInsufficientBalance
	}

	appointment := &entities.Appointment{
		MentorID:       params.MentorID,
		StudentID:      params.StudentID,
		ProjectGroupID: params.ProjectGroupID,
		Title:          params.Title,
		Description:    params.Description,
		StartTime:      params.StartTime,
		EndTime:        params.EndTime,
		Status:         entities.AppointmentStatusPending,
		PointsRequired: pointsRequired,
		PointsUsed:     0,
	}
	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}

	if err := s.wallet.DeductForAppointment(ctx, params.StudentID, pointsRequired, appointment.ID); err != nil {
		return nil, fmt.Errorf("failed to deduct booking cost: %w", err)
	}

	appointment.PointsUsed = pointsRequired
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, fmt.Errorf("failed to update appointment: %w", err)
	}

	if err := s.eventPublisher.Publish(events.AppointmentCreatedEvent{
		AppointmentID:  appointment.ID,
		MentorID:       appointment.MentorID,
		StudentID:      appointment.StudentID,
		StartTime:      appointment.StartTime,
		EndTime:        appointment.EndTime,
		PointsRequired: pointsRequired,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish appointment created event: %w", err)
	}

	return appointment, nil
}

// ConfirmAppointment moves a pending appointment to confirmed. A meeting
// URL is issued on first confirmation.
func (s *schedulerService) ConfirmAppointment(ctx context.Context, id int64) (bool, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get appointment: %w", err)
	}
	if appointment == nil {
		return false, nil
	}
	if appointment.Status == entities.AppointmentStatusConfirmed {
		return true, nil
	}
	if !appointment.Status.CanTransitionTo(entities.AppointmentStatusConfirmed) {
		return false, nil
	}

	oldStatus := appointment.Status
	appointment.Status = entities.AppointmentStatusConfirmed
	if appointment.MeetingURL == nil {
		url := fmt.Sprintf("https://meet.mentorhub.dev/%s", uuid.NewString())
		appointment.MeetingURL = &url
	}
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return false, fmt.Errorf("failed to update appointment: %w", err)
	}

	return true, s.publishStatusChange(appointment, oldStatus)
}

// CancelAppointment cancels an appointment on behalf of one of its parties
// and refunds any points used. Cancelling an appointment that is already in
// a terminal state is a no-op and never refunds twice.
func (s *schedulerService) CancelAppointment(ctx context.Context, id int64, requestedByUserID int64) (bool, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get appointment: %w", err)
	}
	if appointment == nil {
		return false, nil
	}
	if !appointment.CanBeCancelledBy(requestedByUserID) {
		log.WithFields(log.Fields{
			"appointmentID": id,
			"requestedBy":   requestedByUserID,
		}).Warn("Cancel rejected for non-participant")
		return false, entities.ErrUnauthorized
	}
	if appointment.Status.IsTerminal() {
		return false, nil
	}

	oldStatus := appointment.Status
	appointment.Status = entities.AppointmentStatusCancelled
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return false, fmt.Errorf("failed to update appointment: %w", err)
	}

	if appointment.PointsUsed > 0 {
		if err := s.wallet.RefundForAppointment(ctx, appointment.StudentID, appointment.PointsUsed, appointment.ID); err != nil {
			return false, fmt.Errorf("failed to refund booking cost: %w", err)
		}
	}

	return true, s.publishStatusChange(appointment, oldStatus)
}

// CompleteAppointment marks a confirmed appointment completed
func (s *schedulerService) CompleteAppointment(ctx context.Context, id int64) (bool, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return false, fmt.Errorf("failed to get appointment: %w", err)
	}
	if appointment == nil {
		return false, nil
	}
	if !appointment.Status.CanTransitionTo(entities.AppointmentStatusCompleted) {
		return false, nil
	}

	oldStatus := appointment.Status
	appointment.Status = entities.AppointmentStatusCompleted
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return false, fmt.Errorf("failed to update appointment: %w", err)
	}

	return true, s.publishStatusChange(appointment, oldStatus)
}

// GetAppointmentByID retrieves an appointment by id
func (s *schedulerService) GetAppointmentByID(ctx context.Context, id int64) (*entities.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return appointment, nil
}

// GetAppointmentsByStudent returns all appointments booked by a student
func (s *schedulerService) GetAppointmentsByStudent(ctx context.Context, studentID int64) ([]*entities.Appointment, error) {
	appointments, err := s.appointmentRepo.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments by student: %w", err)
	}
	return appointments, nil
}

// GetAppointmentsByMentor returns all appointments provided by a mentor
func (s *schedulerService) GetAppointmentsByMentor(ctx context.Context, mentorID int64) ([]*entities.Appointment, error) {
	appointments, err := s.appointmentRepo.GetByMentor(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments by mentor: %w", err)
	}
	return appointments, nil
}

// GetAppointmentsByProjectGroup returns all appointments of a project group
func (s *schedulerService) GetAppointmentsByProjectGroup(ctx context.Context, groupID int64) ([]*entities.Appointment, error) {
	appointments, err := s.appointmentRepo.GetByProjectGroup(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments by project group: %w", err)
	}
	return appointments, nil
}

func (s *schedulerService) publishStatusChange(appointment *entities.Appointment, oldStatus entities.AppointmentStatus) error {
	if err := s.eventPublisher.Publish(events.AppointmentStatusChangeEvent{
		AppointmentID: appointment.ID,
		MentorID:      appointment.MentorID,
		StudentID:     appointment.StudentID,
		OldStatus:     oldStatus,
		NewStatus:     appointment.Status,
	}); err != nil {
		return fmt.Errorf("failed to publish status change event: %w", err)
	}
	return nil
}
