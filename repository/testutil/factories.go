package testutil

import (
	"time"

	"mentorhub/domain/entities"
)

// CreateTestMentor creates an active mentor with default values
func CreateTestMentor(userID int64, hourlyRate int64) *entities.Mentor {
	return &entities.Mentor{
		UserID:            userID,
		Bio:               "test mentor",
		ExpertiseAreas:    []string{"go", "databases"},
		HourlyRate:        hourlyRate,
		MaxSessionsPerDay: 5,
		Status:            entities.MentorStatusActive,
	}
}

// CreateTestAppointment creates a pending appointment with default values
func CreateTestAppointment(mentorID, studentID int64, start time.Time, duration time.Duration) *entities.Appointment {
	return &entities.Appointment{
		MentorID:       mentorID,
		StudentID:      studentID,
		Title:          "test session",
		Description:    "test session description",
		StartTime:      start,
		EndTime:        start.Add(duration),
		Status:         entities.AppointmentStatusPending,
		PointsRequired: 100,
	}
}

// CreateTestWallet creates a wallet with a specific balance
func CreateTestWallet(userID int64, balance int64) *entities.Wallet {
	return &entities.Wallet{
		UserID:      userID,
		Balance:     balance,
		TotalEarned: balance,
	}
}
