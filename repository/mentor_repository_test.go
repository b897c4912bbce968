package repository

import (
	"context"
	"testing"

	"mentorhub/domain/entities"
	"mentorhub/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMentorRepository_CreateAndGet(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMentorRepository(testDB.DB)
	ctx := context.Background()

	t.Run("absent mentor returns nil", func(t *testing.T) {
		mentor, err := repo.GetByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, mentor)

		mentor, err = repo.GetByUserID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, mentor)
	})

	t.Run("create fills id and timestamps", func(t *testing.T) {
		mentor := testutil.CreateTestMentor(10, 100)
		err := repo.Create(ctx, mentor)
		require.NoError(t, err)
		assert.NotZero(t, mentor.ID)
		assert.False(t, mentor.CreatedAt.IsZero())

		fetched, err := repo.GetByUserID(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, fetched)
		assert.Equal(t, mentor.ID, fetched.ID)
		assert.Equal(t, []string{"go", "databases"}, fetched.ExpertiseAreas)
		assert.Equal(t, entities.MentorStatusActive, fetched.Status)
	})

	t.Run("one profile per user", func(t *testing.T) {
		duplicate := testutil.CreateTestMentor(10, 50)
		err := repo.Create(ctx, duplicate)
		assert.Error(t, err)
	})

	t.Run("negative rate is rejected by the schema", func(t *testing.T) {
		mentor := testutil.CreateTestMentor(11, 100)
		mentor.HourlyRate = -1
		err := repo.Create(ctx, mentor)
		assert.Error(t, err)
	})
}

func TestMentorRepository_Listings(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMentorRepository(testDB.DB)
	ctx := context.Background()

	goMentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, repo.Create(ctx, goMentor))

	frontendMentor := testutil.CreateTestMentor(11, 80)
	frontendMentor.ExpertiseAreas = []string{"react", "css"}
	frontendMentor.Status = entities.MentorStatusInactive
	require.NoError(t, repo.Create(ctx, frontendMentor))

	t.Run("all mentors", func(t *testing.T) {
		mentors, err := repo.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, mentors, 2)
	})

	t.Run("by expertise matches array membership", func(t *testing.T) {
		mentors, err := repo.GetByExpertise(ctx, "go")
		require.NoError(t, err)
		require.Len(t, mentors, 1)
		assert.Equal(t, goMentor.ID, mentors[0].ID)

		mentors, err = repo.GetByExpertise(ctx, "haskell")
		require.NoError(t, err)
		assert.Empty(t, mentors)
	})

	t.Run("available excludes inactive", func(t *testing.T) {
		mentors, err := repo.GetAvailable(ctx)
		require.NoError(t, err)
		require.Len(t, mentors, 1)
		assert.Equal(t, goMentor.ID, mentors[0].ID)
	})
}

func TestMentorRepository_UpdateAndDelete(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	repo := NewMentorRepository(testDB.DB)
	ctx := context.Background()

	mentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, repo.Create(ctx, mentor))

	t.Run("update persists profile fields", func(t *testing.T) {
		mentor.Bio = "distributed systems and databases"
		mentor.HourlyRate = 150
		mentor.ExpertiseAreas = append(mentor.ExpertiseAreas, "kubernetes")

		require.NoError(t, repo.Update(ctx, mentor))

		fetched, err := repo.GetByID(ctx, mentor.ID)
		require.NoError(t, err)
		assert.Equal(t, "distributed systems and databases", fetched.Bio)
		assert.Equal(t, int64(150), fetched.HourlyRate)
		assert.Contains(t, fetched.ExpertiseAreas, "kubernetes")
	})

	t.Run("status only update", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, mentor.ID, entities.MentorStatusBusy))

		fetched, err := repo.GetByID(ctx, mentor.ID)
		require.NoError(t, err)
		assert.Equal(t, entities.MentorStatusBusy, fetched.Status)
	})

	t.Run("missing mentor errors", func(t *testing.T) {
		ghost := testutil.CreateTestMentor(99, 100)
		ghost.ID = 9999
		assert.Error(t, repo.Update(ctx, ghost))
		assert.Error(t, repo.UpdateStatus(ctx, 9999, entities.MentorStatusActive))
		assert.Error(t, repo.Delete(ctx, 9999))
	})

	t.Run("delete removes the profile", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, mentor.ID))

		fetched, err := repo.GetByID(ctx, mentor.ID)
		require.NoError(t, err)
		assert.Nil(t, fetched)
	})
}

func TestMentorRepository_LockForBooking(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	ctx := context.Background()
	repo := NewMentorRepository(testDB.DB)

	mentor := testutil.CreateTestMentor(10, 100)
	require.NoError(t, repo.Create(ctx, mentor))

	t.Run("lock inside transaction succeeds", func(t *testing.T) {
		tx, err := testDB.DB.Pool.Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()

		txRepo := NewMentorRepositoryTx(tx)
		require.NoError(t, txRepo.LockForBooking(ctx, mentor.ID))
	})

	t.Run("locking a missing mentor errors", func(t *testing.T) {
		tx, err := testDB.DB.Pool.Begin(ctx)
		require.NoError(t, err)
		defer func() { _ = tx.Rollback(ctx) }()

		txRepo := NewMentorRepositoryTx(tx)
		assert.Error(t, txRepo.LockForBooking(ctx, 9999))
	})
}
