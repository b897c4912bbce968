package services

import (
	"context"
	"fmt"
	"time"

	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"
)

// Default working window for slot generation, UTC hours of day. Appointments
// may still be created outside the window; the window only bounds the slots
// the resolver proposes.
const (
	defaultWorkdayStartHour = 9
	defaultWorkdayEndHour   = 18
)

// slotStride is the step between candidate slot start times
const slotStride = time.Hour

type availabilityService struct {
	mentorRepo       interfaces.MentorRepository
	appointmentRepo  interfaces.AppointmentRepository
	workdayStartHour int
	workdayEndHour   int
}

// NewAvailabilityService creates an availability service with the default
// 09:00-18:00 UTC working window
func NewAvailabilityService(mentorRepo interfaces.MentorRepository, appointmentRepo interfaces.AppointmentRepository) interfaces.AvailabilityService {
	return NewAvailabilityServiceWithWindow(mentorRepo, appointmentRepo, defaultWorkdayStartHour, defaultWorkdayEndHour)
}

// NewAvailabilityServiceWithWindow creates an availability service with a
// custom working window
func NewAvailabilityServiceWithWindow(mentorRepo interfaces.MentorRepository, appointmentRepo interfaces.AppointmentRepository, startHour, endHour int) interfaces.AvailabilityService {
	return &availabilityService{
		mentorRepo:       mentorRepo,
		appointmentRepo:  appointmentRepo,
		workdayStartHour: startHour,
		workdayEndHour:   endHour,
	}
}

// IsAvailable reports whether the mentor is active and has no conflicting
// appointment overlapping [start, end)
func (s *availabilityService) IsAvailable(ctx context.Context, mentorID int64, start, end time.Time) (bool, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return false, fmt.Errorf("failed to get mentor: %w", err)
	}
	if mentor == nil || !mentor.Status.IsBookable() {
		return false, nil
	}

	conflicts, err := s.appointmentRepo.GetConflicting(ctx, mentorID, start, end)
	if err != nil {
		return false, fmt.Errorf("failed to query conflicting appointments: %w", err)
	}

	return len(conflicts) == 0, nil
}

// ListAvailableSlots walks candidate start times through the working window
// at a fixed one-hour stride and keeps every candidate that fits the window
// and overlaps no existing appointment. The result is recomputed from
// current data on every call.
func (s *availabilityService) ListAvailableSlots(ctx context.Context, mentorID int64, day time.Time, durationHours float64) ([]*entities.Slot, error) {
	if durationHours <= 0 {
		return nil, fmt.Errorf("slot duration must be positive")
	}

	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	if mentor == nil || !mentor.Status.IsBookable() {
		return []*entities.Slot{}, nil
	}

	dayAppointments, err := s.appointmentRepo.GetByMentorAndDay(ctx, mentorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get appointments for day: %w", err)
	}

	booked := make([]*entities.Appointment, 0, len(dayAppointments))
	for _, apt := range dayAppointments {
		if apt.Status.CountsAsConflict() {
			booked = append(booked, apt)
		}
	}

	year, month, dom := day.UTC().Date()
	windowStart := time.Date(year, month, dom, s.workdayStartHour, 0, 0, 0, time.UTC)
	windowEnd := time.Date(year, month, dom, s.workdayEndHour, 0, 0, 0, time.UTC)
	duration := time.Duration(durationHours * float64(time.Hour))
	pointsRequired := mentor.SessionCost(durationHours)

	slots := []*entities.Slot{}
	for start := windowStart; !start.Add(duration).After(windowEnd); start = start.Add(slotStride) {
		end := start.Add(duration)

		available := true
		for _, apt := range booked {
			if apt.Overlaps(start, end) {
				available = false
				break
			}
		}

		if available {
			slots = append(slots, &entities.Slot{
				StartTime:      start,
				EndTime:        end,
				PointsRequired: pointsRequired,
			})
		}
	}

	return slots, nil
}
