package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meetzone/meetzone/internal/domain"
)

func TestCreateAndGet(t *testing.T) {
	repo := NewScheduleRepository(10, time.Hour)
	ctx := context.Background()

	s := domain.NewSchedule("token-1", 0)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)
}

func TestCreateDuplicate(t *testing.T) {
	repo := NewScheduleRepository(10, time.Hour)
	ctx := context.Background()

	s := domain.NewSchedule("token-1", 0)
	require.NoError(t, repo.Create(ctx, s))
	assert.ErrorIs(t, repo.Create(ctx, s), domain.ErrScheduleAlreadyExists)
}

func TestGetMissing(t *testing.T) {
	repo := NewScheduleRepository(10, time.Hour)

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)

	_, err = repo.GetByID(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate(t *testing.T) {
	repo := NewScheduleRepository(10, time.Hour)
	ctx := context.Background()

	s := domain.NewSchedule("token-1", 0)
	require.NoError(t, repo.Create(ctx, s))

	s.SetDraft(domain.Draft{Title: "updated"})
	require.NoError(t, repo.Update(ctx, s))

	got, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	draft, _ := got.Snapshot()
	assert.Equal(t, "updated", draft.Title)

	missing := domain.NewSchedule("token-2", 0)
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrScheduleNotFound)
}

func TestDelete(t *testing.T) {
	repo := NewScheduleRepository(10, time.Hour)
	ctx := context.Background()

	s := domain.NewSchedule("token-1", 0)
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, s.ID), domain.ErrScheduleNotFound)
}

func TestCapacityEvictsOldest(t *testing.T) {
	repo := NewScheduleRepository(3, time.Hour)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 4; i++ {
		s := domain.NewSchedule(fmt.Sprintf("token-%d", i), 0)
		require.NoError(t, repo.Create(ctx, s))
		ids = append(ids, s.ID)
		time.Sleep(time.Millisecond) // distinct access times
	}

	// The first session was the oldest and is gone.
	_, err := repo.GetByID(ctx, ids[0])
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)

	for _, id := range ids[1:] {
		_, err := repo.GetByID(ctx, id)
		assert.NoError(t, err, "session %s should have survived eviction", id)
	}
}

func TestIdleExpiry(t *testing.T) {
	repo := NewScheduleRepository(10, 20*time.Millisecond)
	ctx := context.Background()

	stale := domain.NewSchedule("token-1", 0)
	require.NoError(t, repo.Create(ctx, stale))

	time.Sleep(40 * time.Millisecond)

	// Expiry runs lazily on the next write.
	fresh := domain.NewSchedule("token-2", 0)
	require.NoError(t, repo.Create(ctx, fresh))

	_, err := repo.GetByID(ctx, stale.ID)
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)

	_, err = repo.GetByID(ctx, fresh.ID)
	assert.NoError(t, err)
}
