package repository

import (
	"context"
	"fmt"
	"time"

	"mentorhub/database"
	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const appointmentColumns = `id, mentor_id, student_id, project_group_id, title, description, start_time, end_time, status, points_required, points_used, meeting_url, notes, created_at, updated_at`

// AppointmentRepository implements the AppointmentRepository interface on postgres
type AppointmentRepository struct {
	q Queryable
}

// NewAppointmentRepository creates an appointment repository over the connection pool
func NewAppointmentRepository(db *database.DB) *AppointmentRepository {
	return &AppointmentRepository{q: db.Pool}
}

// NewAppointmentRepositoryTx creates an appointment repository bound to a transaction
func NewAppointmentRepositoryTx(tx Queryable) interfaces.AppointmentRepository {
	return &AppointmentRepository{q: tx}
}

// Create persists a new appointment and fills in its id
func (r *AppointmentRepository) Create(ctx context.Context, appointment *entities.Appointment) error {
	query := `
		INSERT INTO appointments (mentor_id, student_id, project_group_id, title, description,
		                          start_time, end_time, status, points_required, points_used,
		                          meeting_url, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`
	err := r.q.QueryRow(ctx, query,
		appointment.MentorID,
		appointment.StudentID,
		appointment.ProjectGroupID,
		appointment.Title,
		appointment.Description,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.PointsRequired,
		appointment.PointsUsed,
		appointment.MeetingURL,
		appointment.Notes,
	).Scan(&appointment.ID, &appointment.CreatedAt, &appointment.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create appointment for mentor %d: %w", appointment.MentorID, err)
	}
	return nil
}

// GetByID retrieves an appointment by id, nil when absent
func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*entities.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE id = $1`
	appointment, err := r.scanAppointment(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get appointment %d: %w", id, err)
	}
	return appointment, nil
}

// GetByMentor returns all appointments where the mentor is the provider
func (r *AppointmentRepository) GetByMentor(ctx context.Context, mentorID int64) ([]*entities.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE mentor_id = $1 ORDER BY start_time`
	return r.queryAppointments(ctx, query, mentorID)
}

// GetByStudent returns all appointments booked by a student
func (r *AppointmentRepository) GetByStudent(ctx context.Context, studentID int64) ([]*entities.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE student_id = $1 ORDER BY start_time`
	return r.queryAppointments(ctx, query, studentID)
}

// GetByProjectGroup returns all appointments attached to a project group
func (r *AppointmentRepository) GetByProjectGroup(ctx context.Context, groupID int64) ([]*entities.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE project_group_id = $1 ORDER BY start_time`
	return r.queryAppointments(ctx, query, groupID)
}

// GetByStatus returns all appointments in the given state
func (r *AppointmentRepository) GetByStatus(ctx context.Context, status entities.AppointmentStatus) ([]*entities.Appointment, error) {
	query := `SELECT ` + appointmentColumns + ` FROM appointments WHERE status = $1 ORDER BY start_time`
	return r.queryAppointments(ctx, query, status)
}

// GetByMentorAndDay returns a mentor's appointments starting within the UTC
// day containing the given instant
func (r *AppointmentRepository) GetByMentorAndDay(ctx context.Context, mentorID int64, day time.Time) ([]*entities.Appointment, error) {
	year, month, dom := day.UTC().Date()
	dayStart := time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE mentor_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time
	`
	return r.queryAppointments(ctx, query, mentorID, dayStart, dayEnd)
}

// GetConflicting returns the mentor's appointments overlapping the half-open
// interval [start, end), excluding cancelled and no-show appointments.
func (r *AppointmentRepository) GetConflicting(ctx context.Context, mentorID int64, start, end time.Time) ([]*entities.Appointment, error) {
	query := `
		SELECT ` + appointmentColumns + `
		FROM appointments
		WHERE mentor_id = $1
		  AND start_time < $3
		  AND end_time > $2
		  AND status NOT IN ($4, $5)
		ORDER BY start_time
	`
	return r.queryAppointments(ctx, query, mentorID, start, end,
		entities.AppointmentStatusCancelled, entities.AppointmentStatusNoShow)
}

// Update replaces an appointment's mutable fields
func (r *AppointmentRepository) Update(ctx context.Context, appointment *entities.Appointment) error {
	query := `
		UPDATE appointments
		SET title = $1, description = $2, start_time = $3, end_time = $4, status = $5,
		    points_required = $6, points_used = $7, meeting_url = $8, notes = $9, updated_at = NOW()
		WHERE id = $10
	`
	result, err := r.q.Exec(ctx, query,
		appointment.Title,
		appointment.Description,
		appointment.StartTime,
		appointment.EndTime,
		appointment.Status,
		appointment.PointsRequired,
		appointment.PointsUsed,
		appointment.MeetingURL,
		appointment.Notes,
		appointment.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment %d: %w", appointment.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d not found", appointment.ID)
	}
	return nil
}

// UpdateStatus updates only the appointment's status
func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status entities.AppointmentStatus) error {
	query := `UPDATE appointments SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of appointment %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d not found", id)
	}
	return nil
}

// Delete removes an appointment record. The scheduler never deletes in the
// normal flow; cancellation is a status transition.
func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("appointment %d not found", id)
	}
	return nil
}

func (r *AppointmentRepository) scanAppointment(row pgx.Row) (*entities.Appointment, error) {
	var appointment entities.Appointment
	err := row.Scan(
		&appointment.ID,
		&appointment.MentorID,
		&appointment.StudentID,
		&appointment.ProjectGroupID,
		&appointment.Title,
		&appointment.Description,
		&appointment.StartTime,
		&appointment.EndTime,
		&appointment.Status,
		&appointment.PointsRequired,
		&appointment.PointsUsed,
		&appointment.MeetingURL,
		&appointment.Notes,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepository) queryAppointments(ctx context.Context, query string, args ...any) ([]*entities.Appointment, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query appointments: %w", err)
	}
	defer rows.Close()

	var appointments []*entities.Appointment
	for rows.Next() {
		var appointment entities.Appointment
		err := rows.Scan(
			&appointment.ID,
			&appointment.MentorID,
			&appointment.StudentID,
			&appointment.ProjectGroupID,
			&appointment.Title,
			&appointment.Description,
			&appointment.StartTime,
			&appointment.EndTime,
			&appointment.Status,
			&appointment.PointsRequired,
			&appointment.PointsUsed,
			&appointment.MeetingURL,
			&appointment.Notes,
			&appointment.CreatedAt,
			&appointment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan appointment: %w", err)
		}
		appointments = append(appointments, &appointment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate appointments: %w", err)
	}
	return appointments, nil
}
