package entities

import "time"

// Slot is a candidate bookable interval within a mentor's working window
type Slot struct {
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	PointsRequired int64     `json:"points_required"`
}
