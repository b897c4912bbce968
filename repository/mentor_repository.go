package repository

import (
	"context"
	"fmt"

	"mentorhub/database"
	"mentorhub/domain/entities"
	"mentorhub/domain/interfaces"

	"github.com/jackc/pgx/v5"
)

const mentorColumns = `id, user_id, bio, expertise_areas, hourly_rate, max_sessions_per_day, status, rating, total_sessions, created_at, updated_at`

// MentorRepository implements the MentorRepository interface on postgres
type MentorRepository struct {
	q Queryable
}

// NewMentorRepository creates a mentor repository over the connection pool
func NewMentorRepository(db *database.DB) *MentorRepository {
	return &MentorRepository{q: db.Pool}
}

// NewMentorRepositoryTx creates a mentor repository bound to a transaction
func NewMentorRepositoryTx(tx Queryable) interfaces.MentorRepository {
	return &MentorRepository{q: tx}
}

// Create persists a new mentor profile and fills in its id
func (r *MentorRepository) Create(ctx context.Context, mentor *entities.Mentor) error {
	query := `
		INSERT INTO mentors (user_id, bio, expertise_areas, hourly_rate, max_sessions_per_day, status, rating, total_sessions)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := r.q.QueryRow(ctx, query,
		mentor.UserID,
		mentor.Bio,
		mentor.ExpertiseAreas,
		mentor.HourlyRate,
		mentor.MaxSessionsPerDay,
		mentor.Status,
		mentor.Rating,
		mentor.TotalSessions,
	).Scan(&mentor.ID, &mentor.CreatedAt, &mentor.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create mentor for user %d: %w", mentor.UserID, err)
	}
	return nil
}

// GetByID retrieves a mentor by id, nil when absent
func (r *MentorRepository) GetByID(ctx context.Context, id int64) (*entities.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE id = $1`
	mentor, err := r.scanMentor(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor %d: %w", id, err)
	}
	return mentor, nil
}

// GetByUserID retrieves the mentor profile owned by a user, nil when absent
func (r *MentorRepository) GetByUserID(ctx context.Context, userID int64) (*entities.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE user_id = $1`
	mentor, err := r.scanMentor(r.q.QueryRow(ctx, query, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get mentor by user %d: %w", userID, err)
	}
	return mentor, nil
}

// GetAll returns all mentor profiles
func (r *MentorRepository) GetAll(ctx context.Context) ([]*entities.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors ORDER BY id`
	return r.queryMentors(ctx, query)
}

// GetByExpertise returns mentors listing the given expertise area
func (r *MentorRepository) GetByExpertise(ctx context.Context, area string) ([]*entities.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE $1 = ANY(expertise_areas) ORDER BY id`
	return r.queryMentors(ctx, query, area)
}

// GetAvailable returns all mentors with active status
func (r *MentorRepository) GetAvailable(ctx context.Context) ([]*entities.Mentor, error) {
	query := `SELECT ` + mentorColumns + ` FROM mentors WHERE status = $1 ORDER BY id`
	return r.queryMentors(ctx, query, entities.MentorStatusActive)
}

// Update replaces the mutable profile fields of a mentor
func (r *MentorRepository) Update(ctx context.Context, mentor *entities.Mentor) error {
	query := `
		UPDATE mentors
		SET bio = $1, expertise_areas = $2, hourly_rate = $3, max_sessions_per_day = $4,
		    status = $5, rating = $6, total_sessions = $7, updated_at = NOW()
		WHERE id = $8
	`
	result, err := r.q.Exec(ctx, query,
		mentor.Bio,
		mentor.ExpertiseAreas,
		mentor.HourlyRate,
		mentor.MaxSessionsPerDay,
		mentor.Status,
		mentor.Rating,
		mentor.TotalSessions,
		mentor.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mentor %d: %w", mentor.ID, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("mentor %d not found", mentor.ID)
	}
	return nil
}

// UpdateStatus updates only the mentor's status
func (r *MentorRepository) UpdateStatus(ctx context.Context, id int64, status entities.MentorStatus) error {
	query := `UPDATE mentors SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of mentor %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("mentor %d not found", id)
	}
	return nil
}

// Delete removes a mentor profile
func (r *MentorRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.Exec(ctx, `DELETE FROM mentors WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete mentor %d: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("mentor %d not found", id)
	}
	return nil
}

// LockForBooking takes a row lock on the mentor until the surrounding
// transaction ends. Concurrent bookings for the same mentor queue here, so
// the second one re-runs its conflict check against committed data.
func (r *MentorRepository) LockForBooking(ctx context.Context, id int64) error {
	var locked int64
	err := r.q.QueryRow(ctx, `SELECT id FROM mentors WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err == pgx.ErrNoRows {
		return fmt.Errorf("mentor %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to lock mentor %d: %w", id, err)
	}
	return nil
}

func (r *MentorRepository) scanMentor(row pgx.Row) (*entities.Mentor, error) {
	var mentor entities.Mentor
	err := row.Scan(
		&mentor.ID,
		&mentor.UserID,
		&mentor.Bio,
		&mentor.ExpertiseAreas,
		&mentor.HourlyRate,
		&mentor.MaxSessionsPerDay,
		&mentor.Status,
		&mentor.Rating,
		&mentor.TotalSessions,
		&mentor.CreatedAt,
		&mentor.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &mentor, nil
}

func (r *MentorRepository) queryMentors(ctx context.Context, query string, args ...any) ([]*entities.Mentor, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mentors: %w", err)
	}
	defer rows.Close()

	var mentors []*entities.Mentor
	for rows.Next() {
		var mentor entities.Mentor
		err := rows.Scan(
			&mentor.ID,
			&mentor.UserID,
			&mentor.Bio,
			&mentor.ExpertiseAreas,
			&mentor.HourlyRate,
			&mentor.MaxSessionsPerDay,
			&mentor.Status,
			&mentor.Rating,
			&mentor.TotalSessions,
			&mentor.CreatedAt,
			&mentor.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mentor: %w", err)
		}
		mentors = append(mentors, &mentor)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate mentors: %w", err)
	}
	return mentors, nil
}
