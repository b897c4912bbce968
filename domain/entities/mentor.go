package entities

import "time"

// MentorStatus represents a mentor's availability state
type MentorStatus string

const (
	MentorStatusActive   MentorStatus = "active"
	MentorStatusInactive MentorStatus = "inactive"
	MentorStatusBusy     MentorStatus = "busy"
)

// IsBookable returns true if appointments may be created for this status.
// Only active mentors accept bookings.
func (s MentorStatus) IsBookable() bool {
	return s == MentorStatusActive
}

// IsValid returns true for a known mentor status
func (s MentorStatus) IsValid() bool {
	switch s {
	case MentorStatusActive, MentorStatusInactive, MentorStatusBusy:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s MentorStatus) String() string {
	return string(s)
}

// Mentor represents a mentor profile
type Mentor struct {
	ID                int64        `db:"id" json:"id"`
	UserID            int64        `db:"user_id" json:"user_id"`
	Bio               string       `db:"bio" json:"bio"`
	ExpertiseAreas    []string     `db:"expertise_areas" json:"expertise_areas"`
	HourlyRate        int64        `db:"hourly_rate" json:"hourly_rate"`
	MaxSessionsPerDay int          `db:"max_sessions_per_day" json:"max_sessions_per_day"`
	Status            MentorStatus `db:"status" json:"status"`
	Rating            float64      `db:"rating" json:"rating"`
	TotalSessions     int64        `db:"total_sessions" json:"total_sessions"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updated_at"`
}

// SessionCost returns the point cost of a session of the given length.
// The fractional product truncates toward zero, so a 1.5h session at
// rate 100 costs exactly 150 and a 0.5h session at rate 25 costs 12.
func (m *Mentor) SessionCost(durationHours float64) int64 {
	return int64(durationHours * float64(m.HourlyRate))
}

// HasExpertise returns true if the mentor lists the given expertise area
func (m *Mentor) HasExpertise(area string) bool {
	for _, a := range m.ExpertiseAreas {
		if a == area {
			return true
		}
	}
	return false
}
