package services

import (
	"context"
	"fmt"
	"time"

	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"
)

type mentorService struct {
	mentorRepo      interfaces.MentorRepository
	appointmentRepo interfaces.AppointmentRepository
}

// NewMentorService creates a new mentor directory service
func NewMentorService(mentorRepo interfaces.MentorRepository, appointmentRepo interfaces.AppointmentRepository) interfaces.MentorService {
	return &mentorService{
		mentorRepo:      mentorRepo,
		appointmentRepo: appointmentRepo,
	}
}

// CreateMentor creates a new active mentor profile
func (s *mentorService) CreateMentor(ctx context.Context, userID int64, bio string, expertiseAreas []string, hourlyRate int64, maxSessionsPerDay int) (*entities.Mentor, error) {
	if hourlyRate < 0 {
		return nil, fmt.Errorf("hourly rate cannot be negative")
	}
	if maxSessionsPerDay <= 0 {
		maxSessionsPerDay = 5
	}

	mentor := &entities.Mentor{
		UserID:            userID,
		Bio:               bio,
		ExpertiseAreas:    expertiseAreas,
		HourlyRate:        hourlyRate,
		MaxSessionsPerDay: maxSessionsPerDay,
		Status:            entities.MentorStatusActive,
	}
	if err := s.mentorRepo.Create(ctx, mentor); err != nil {
		return nil, fmt.Errorf("failed to create mentor: %w", err)
	}

	return mentor, nil
}

// GetMentorByID retrieves a mentor by id
func (s *mentorService) GetMentorByID(ctx context.Context, mentorID int64) (*entities.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	return mentor, nil
}

// GetMentorByUserID retrieves the mentor profile owned by a user
func (s *mentorService) GetMentorByUserID(ctx context.Context, userID int64) (*entities.Mentor, error) {
	mentor, err := s.mentorRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor by user: %w", err)
	}
	return mentor, nil
}

// GetAllMentors returns every mentor profile
func (s *mentorService) GetAllMentors(ctx context.Context) ([]*entities.Mentor, error) {
	mentors, err := s.mentorRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors: %w", err)
	}
	return mentors, nil
}

// GetMentorsByExpertise returns mentors listing the given expertise area
func (s *mentorService) GetMentorsByExpertise(ctx context.Context, area string) ([]*entities.Mentor, error) {
	mentors, err := s.mentorRepo.GetByExpertise(ctx, area)
	if err != nil {
		return nil, fmt.Errorf("failed to list mentors by expertise: %w", err)
	}
	return mentors, nil
}

// GetAvailableMentors returns all active mentors
func (s *mentorService) GetAvailableMentors(ctx context.Context) ([]*entities.Mentor, error) {
	mentors, err := s.mentorRepo.GetAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list available mentors: %w", err)
	}
	return mentors, nil
}

// UpdateMentorProfile updates the provided profile fields, keeping the rest
func (s *mentorService) UpdateMentorProfile(ctx context.Context, mentorID int64, bio *string, expertiseAreas []string, hourlyRate *int64, maxSessionsPerDay *int) (*entities.Mentor, error) {
	mentor, err := s.mentorRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor: %w", err)
	}
	if mentor == nil {
		return nil, entities.ErrMentorNotFound
	}

	if bio != nil {
		mentor.Bio = *bio
	}
	if expertiseAreas != nil {
		mentor.ExpertiseAreas = expertiseAreas
	}
	if hourlyRate != nil {
		if *hourlyRate < 0 {
			return nil, fmt.Errorf("hourly rate cannot be negative")
		}
		mentor.HourlyRate = *hourlyRate
	}
	if maxSessionsPerDay != nil {
		mentor.MaxSessionsPerDay = *maxSessionsPerDay
	}

	if err := s.mentorRepo.Update(ctx, mentor); err != nil {
		return nil, fmt.Errorf("failed to update mentor: %w", err)
	}
	return mentor, nil
}

// UpdateMentorStatus sets the mentor's status. This is an operator
// pass-through, not part of the scheduling algorithm.
func (s *mentorService) UpdateMentorStatus(ctx context.Context, mentorID int64, status entities.MentorStatus) error {
	if err := s.mentorRepo.UpdateStatus(ctx, mentorID, status); err != nil {
		return fmt.Errorf("failed to update mentor status: %w", err)
	}
	return nil
}

// GetMentorSchedule returns the mentor's non-cancelled appointments on a day
func (s *mentorService) GetMentorSchedule(ctx context.Context, mentorID int64, day time.Time) ([]*entities.Appointment, error) {
	appointments, err := s.appointmentRepo.GetByMentorAndDay(ctx, mentorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}

	schedule := make([]*entities.Appointment, 0, len(appointments))
	for _, apt := range appointments {
		if apt.Status != entities.AppointmentStatusCancelled {
			schedule = append(schedule, apt)
		}
	}
	return schedule, nil
}

// DeleteMentor removes a mentor profile
func (s *mentorService) DeleteMentor(ctx context.Context, mentorID int64) error {
	if err := s.mentorRepo.Delete(ctx, mentorID); err != nil {
		return fmt.Errorf("failed to delete mentor: %w", err)
	}
	return nil
}
