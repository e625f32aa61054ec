package repository

import (
	"context"
	"sync"
	"time"

	"github.com/meetzone/meetzone/internal/domain"
)

type scheduleRepository struct {
	schedules  map[string]*domain.Schedule // ID -> Schedule
	lastAccess map[string]time.Time        // ID -> last access time
	capacity   uint
	idleExpiry time.Duration
	mu         *sync.RWMutex
}

// NewScheduleRepository builds the in-memory session store. Sessions are
// bounded by capacity and evicted after idleExpiry without access; nothing
// is persisted.
func NewScheduleRepository(capacity uint, idleExpiry time.Duration) domain.ScheduleRepository {
	if capacity == 0 {
		capacity = 100
	}
	if idleExpiry == 0 {
		idleExpiry = 30 * time.Minute
	}

	return &scheduleRepository{
		schedules:  make(map[string]*domain.Schedule),
		lastAccess: make(map[string]time.Time),
		capacity:   capacity,
		idleExpiry: idleExpiry,
		mu:         &sync.RWMutex{},
	}
}

func (r *scheduleRepository) touch(id string) {
	r.lastAccess[id] = time.Now()
}

func (r *scheduleRepository) evictIdle() {
	cutoff := time.Now().Add(-r.idleExpiry)
	for id, last := range r.lastAccess {
		if last.Before(cutoff) {
			delete(r.schedules, id)
			delete(r.lastAccess, id)
		}
	}
}

// enforceCapacity drops the oldest-accessed sessions to make room for one
// incoming insert, so the store never settles above capacity.
func (r *scheduleRepository) enforceCapacity() {
	if uint(len(r.schedules)) < r.capacity {
		return
	}

	type entry struct {
		id   string
		time time.Time
	}
	var entries []entry
	for id, t := range r.lastAccess {
		entries = append(entries, entry{id, t})
	}

	for i := 0; i <= len(entries)-int(r.capacity); i++ {
		oldest := entries[0]
		for _, e := range entries {
			if e.time.Before(oldest.time) {
				oldest = e
			}
		}
		delete(r.schedules, oldest.id)
		delete(r.lastAccess, oldest.id)

		for j, e := range entries {
			if e.id == oldest.id {
				entries = append(entries[:j], entries[j+1:]...)
				break
			}
		}
	}
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	if schedule == nil || schedule.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.evictIdle()

	if _, exists := r.schedules[schedule.ID]; exists {
		return domain.ErrScheduleAlreadyExists
	}

	r.enforceCapacity()

	r.schedules[schedule.ID] = schedule
	r.touch(schedule.ID)

	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*domain.Schedule, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}

	r.mu.RLock()
	schedule, exists := r.schedules[id]
	r.mu.RUnlock()
	if !exists {
		return nil, domain.ErrScheduleNotFound
	}

	r.mu.Lock()
	r.touch(id)
	r.mu.Unlock()

	return schedule, nil
}

func (r *scheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	if schedule == nil || schedule.ID == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[schedule.ID]; !exists {
		return domain.ErrScheduleNotFound
	}

	r.evictIdle()

	r.schedules[schedule.ID] = schedule
	r.touch(schedule.ID)

	return nil
}

func (r *scheduleRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidInput
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.schedules[id]; !exists {
		return domain.ErrScheduleNotFound
	}

	delete(r.schedules, id)
	delete(r.lastAccess, id)

	return nil
}
