package routines

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepository struct {
	routines map[uuid.UUID]*Routine
	eventIDs map[uuid.UUID]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		routines: make(map[uuid.UUID]*Routine),
		eventIDs: make(map[uuid.UUID]string),
	}
}

func (f *fakeRepository) Create(ctx context.Context, routine *Routine) error {
	f.routines[routine.ID] = routine
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*Routine, error) {
	routine, ok := f.routines[id]
	if !ok {
		return nil, ErrRoutineNotFound
	}
	return routine, nil
}

func (f *fakeRepository) FindAll(ctx context.Context, filter RoutineFilter) ([]Routine, int64, error) {
	var out []Routine
	for _, r := range f.routines {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.Weekday != nil {
			found := false
			for _, d := range r.Weekdays() {
				if d == *filter.Weekday {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		out = append(out, *r)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Update(ctx context.Context, routine *Routine) error {
	if _, ok := f.routines[routine.ID]; !ok {
		return ErrRoutineNotFound
	}
	f.routines[routine.ID] = routine
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.routines[id]; !ok {
		return ErrRoutineNotFound
	}
	delete(f.routines, id)
	return nil
}

func (f *fakeRepository) UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	if _, ok := f.routines[id]; !ok {
		return ErrRoutineNotFound
	}
	f.eventIDs[id] = eventID
	return nil
}

type fakeSyncer struct {
	eventID string
	synced  int
	removed []string
}

func (f *fakeSyncer) SyncRoutine(ctx context.Context, userID uuid.UUID, title, description, startTime, endTime string, daysOfWeek []int) string {
	f.synced++
	return f.eventID
}

func (f *fakeSyncer) RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) bool {
	f.removed = append(f.removed, eventID)
	return true
}

func validInput(userID uuid.UUID) CreateRoutineInput {
	return CreateRoutineInput{
		UserID:     userID,
		Title:      "Treino matinal",
		StartTime:  "07:00",
		EndTime:    "08:00",
		DaysOfWeek: []int{1, 3, 5},
	}
}

func TestCreateRoutineValidation(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*CreateRoutineInput)
		expected error
	}{
		{
			name:     "Missing title",
			mutate:   func(in *CreateRoutineInput) { in.Title = "" },
			expected: ErrTitleRequired,
		},
		{
			name:     "Empty weekday set",
			mutate:   func(in *CreateRoutineInput) { in.DaysOfWeek = []int{} },
			expected: ErrNoWeekdays,
		},
		{
			name:     "Weekday above range",
			mutate:   func(in *CreateRoutineInput) { in.DaysOfWeek = []int{1, 7} },
			expected: ErrInvalidWeekday,
		},
		{
			name:     "Negative weekday",
			mutate:   func(in *CreateRoutineInput) { in.DaysOfWeek = []int{-1} },
			expected: ErrInvalidWeekday,
		},
		{
			name:     "Malformed start time",
			mutate:   func(in *CreateRoutineInput) { in.StartTime = "7am" },
			expected: ErrInvalidTime,
		},
		{
			name:     "Hour out of range",
			mutate:   func(in *CreateRoutineInput) { in.EndTime = "25:00" },
			expected: ErrInvalidTime,
		},
		{
			name: "Start after end",
			mutate: func(in *CreateRoutineInput) {
				in.StartTime = "09:00"
				in.EndTime = "08:00"
			},
			expected: ErrInvalidInterval,
		},
		{
			name: "Start equal to end",
			mutate: func(in *CreateRoutineInput) {
				in.StartTime = "08:00"
				in.EndTime = "08:00"
			},
			expected: ErrInvalidInterval,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepository()
			syncer := &fakeSyncer{}
			svc := NewService(repo, syncer, zap.NewNop())

			input := validInput(uuid.New())
			tt.mutate(&input)

			routine, err := svc.CreateRoutine(context.Background(), input)

			assert.ErrorIs(t, err, tt.expected)
			assert.Nil(t, routine)
			assert.Empty(t, repo.routines, "nothing persists when validation fails")
			assert.Zero(t, syncer.synced, "no calendar call when validation fails")
		})
	}
}

func TestCreateRoutineWithoutTimesSkipsCalendar(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeSyncer{eventID: "evt_routine"}
	svc := NewService(repo, syncer, zap.NewNop())

	input := validInput(uuid.New())
	input.StartTime = ""
	input.EndTime = ""

	routine, err := svc.CreateRoutine(context.Background(), input)

	require.NoError(t, err)
	assert.True(t, routine.IsActive)
	assert.Empty(t, routine.GoogleCalendarEventID)
	assert.Zero(t, syncer.synced, "no calendar event without a time slot")
}

func TestCreateRoutineWithOnlyStartTime(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeSyncer{eventID: "evt_routine"}
	svc := NewService(repo, syncer, zap.NewNop())

	input := validInput(uuid.New())
	input.EndTime = ""

	routine, err := svc.CreateRoutine(context.Background(), input)

	require.NoError(t, err)
	assert.Zero(t, syncer.synced)
	assert.Len(t, repo.routines, 1)
	assert.Equal(t, "07:00", routine.StartTime)
}

func TestUpdateRoutineCanClearTimes(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeSyncer{}, zap.NewNop())

	owner := uuid.New()
	routine, err := svc.CreateRoutine(context.Background(), validInput(owner))
	require.NoError(t, err)

	empty := ""
	updated, err := svc.UpdateRoutine(context.Background(), routine.ID, owner, UpdateRoutineInput{
		StartTime: &empty,
		EndTime:   &empty,
	})

	require.NoError(t, err)
	assert.Empty(t, updated.StartTime)
	assert.Empty(t, updated.EndTime)
}

func TestCreateRoutineSyncsCalendar(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeSyncer{eventID: "evt_routine"}
	svc := NewService(repo, syncer, zap.NewNop())

	routine, err := svc.CreateRoutine(context.Background(), validInput(uuid.New()))

	require.NoError(t, err)
	assert.Equal(t, "evt_routine", routine.GoogleCalendarEventID)
	assert.Equal(t, 1, syncer.synced)
	assert.Equal(t, []int{1, 3, 5}, routine.Weekdays())
}

func TestCreateRoutineSurvivesSyncFailure(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeSyncer{eventID: ""}
	svc := NewService(repo, syncer, zap.NewNop())

	routine, err := svc.CreateRoutine(context.Background(), validInput(uuid.New()))

	require.NoError(t, err)
	assert.Empty(t, routine.GoogleCalendarEventID)
	assert.Len(t, repo.routines, 1)
}

func TestUpdateRoutineOwnershipCheck(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeSyncer{}, zap.NewNop())

	owner := uuid.New()
	routine, err := svc.CreateRoutine(context.Background(), validInput(owner))
	require.NoError(t, err)

	title := "Hacked"
	_, err = svc.UpdateRoutine(context.Background(), routine.ID, uuid.New(), UpdateRoutineInput{Title: &title})

	assert.ErrorIs(t, err, ErrRoutineNotFound)
}

func TestUpdateRoutineRevalidatesInterval(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeSyncer{}, zap.NewNop())

	owner := uuid.New()
	routine, err := svc.CreateRoutine(context.Background(), validInput(owner))
	require.NoError(t, err)

	late := "09:30"
	_, err = svc.UpdateRoutine(context.Background(), routine.ID, owner, UpdateRoutineInput{StartTime: &late})

	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestDeleteRoutineRemovesCalendarEventFirst(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeSyncer{eventID: "evt_routine"}
	svc := NewService(repo, syncer, zap.NewNop())

	owner := uuid.New()
	routine, err := svc.CreateRoutine(context.Background(), validInput(owner))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteRoutine(context.Background(), routine.ID, owner))

	assert.Equal(t, []string{"evt_routine"}, syncer.removed)
	assert.Empty(t, repo.routines)
}
