package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepository struct {
	tasks map[uuid.UUID]*Task
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{tasks: make(map[uuid.UUID]*Task)}
}

func (f *fakeRepository) Create(ctx context.Context, task *Task) error {
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeRepository) FindByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (f *fakeRepository) FindAll(ctx context.Context, filter TaskFilter) ([]Task, int64, error) {
	var out []Task
	for _, task := range f.tasks {
		if filter.UserID != nil && task.UserID != *filter.UserID {
			continue
		}
		switch filter.Status {
		case TaskStatusPending:
			if task.Completed {
				continue
			}
		case TaskStatusCompleted:
			if !task.Completed {
				continue
			}
		}
		out = append(out, *task)
	}
	return out, int64(len(out)), nil
}

func (f *fakeRepository) Update(ctx context.Context, task *Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return ErrTaskNotFound
	}
	f.tasks[task.ID] = task
	return nil
}

func (f *fakeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.tasks[id]; !ok {
		return ErrTaskNotFound
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeRepository) UpdateEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	task, ok := f.tasks[id]
	if !ok {
		return ErrTaskNotFound
	}
	task.GoogleCalendarEventID = eventID
	return nil
}

func (f *fakeRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, int64, error) {
	var total, completed int64
	for _, task := range f.tasks {
		if task.UserID != userID {
			continue
		}
		total++
		if task.Completed {
			completed++
		}
	}
	return total, completed, nil
}

type fakeTaskSyncer struct {
	eventID string
	synced  int
	removed []string
}

func (f *fakeTaskSyncer) SyncTask(ctx context.Context, userID uuid.UUID, title, description string, due time.Time) string {
	f.synced++
	return f.eventID
}

func (f *fakeTaskSyncer) RemoveEvent(ctx context.Context, userID uuid.UUID, eventID string) bool {
	f.removed = append(f.removed, eventID)
	return true
}

func TestCreateTaskWithoutDueDateSkipsCalendar(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeTaskSyncer{eventID: "evt_task"}
	svc := NewService(repo, syncer, zap.NewNop())

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: uuid.New(),
		Title:  "Pagar contas",
	})

	require.NoError(t, err)
	assert.Zero(t, syncer.synced)
	assert.Empty(t, task.GoogleCalendarEventID)
}

func TestCreateTaskWithDueDateSyncsCalendar(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeTaskSyncer{eventID: "evt_task"}
	svc := NewService(repo, syncer, zap.NewNop())

	due := time.Now().Add(48 * time.Hour)
	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID:  uuid.New(),
		Title:   "Pagar contas",
		DueDate: &due,
	})

	require.NoError(t, err)
	assert.Equal(t, 1, syncer.synced)
	assert.Equal(t, "evt_task", task.GoogleCalendarEventID)
}

func TestCreateTaskDefaultsPriority(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeTaskSyncer{}, zap.NewNop())

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: uuid.New(),
		Title:  "Pagar contas",
	})

	require.NoError(t, err)
	assert.Equal(t, PriorityMedium, task.Priority)
	assert.Nil(t, task.RoutineID)
}

func TestCreateTaskRejectsUnknownPriority(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeTaskSyncer{}, zap.NewNop())

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID:   uuid.New(),
		Title:    "Pagar contas",
		Priority: "urgent",
	})

	assert.ErrorIs(t, err, ErrInvalidPriority)
	assert.Nil(t, task)
	assert.Empty(t, repo.tasks)
}

func TestCreateTaskLinkedToRoutine(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeTaskSyncer{}, zap.NewNop())

	routineID := uuid.New()
	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID:    uuid.New(),
		Title:     "Alongar",
		Priority:  PriorityHigh,
		RoutineID: &routineID,
	})

	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, task.Priority)
	require.NotNil(t, task.RoutineID)
	assert.Equal(t, routineID, *task.RoutineID)
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeTaskSyncer{}, zap.NewNop())

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{UserID: uuid.New()})

	assert.ErrorIs(t, err, ErrTitleRequired)
	assert.Nil(t, task)
}

func TestToggleCompleted(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeTaskSyncer{}, zap.NewNop())

	userID := uuid.New()
	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: userID,
		Title:  "Pagar contas",
	})
	require.NoError(t, err)

	toggled, err := svc.ToggleCompleted(context.Background(), task.ID, userID)
	require.NoError(t, err)
	assert.True(t, toggled.Completed)

	toggled, err = svc.ToggleCompleted(context.Background(), task.ID, userID)
	require.NoError(t, err)
	assert.False(t, toggled.Completed)
}

func TestToggleCompletedOwnership(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeTaskSyncer{}, zap.NewNop())

	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID: uuid.New(),
		Title:  "Pagar contas",
	})
	require.NoError(t, err)

	_, err = svc.ToggleCompleted(context.Background(), task.ID, uuid.New())

	assert.ErrorIs(t, err, ErrTaskNotFound)
}

func TestDeleteTaskRemovesCalendarEvent(t *testing.T) {
	repo := newFakeRepository()
	syncer := &fakeTaskSyncer{eventID: "evt_task"}
	svc := NewService(repo, syncer, zap.NewNop())

	userID := uuid.New()
	due := time.Now().Add(24 * time.Hour)
	task, err := svc.CreateTask(context.Background(), CreateTaskInput{
		UserID:  userID,
		Title:   "Pagar contas",
		DueDate: &due,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTask(context.Background(), task.ID, userID))

	assert.Equal(t, []string{"evt_task"}, syncer.removed)
	assert.Empty(t, repo.tasks)
}

func TestCountTasks(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, &fakeTaskSyncer{}, zap.NewNop())

	userID := uuid.New()
	for i := 0; i < 3; i++ {
		task, err := svc.CreateTask(context.Background(), CreateTaskInput{
			UserID: userID,
			Title:  "Tarefa",
		})
		require.NoError(t, err)
		if i == 0 {
			_, err = svc.ToggleCompleted(context.Background(), task.ID, userID)
			require.NoError(t, err)
		}
	}

	total, completed, err := svc.CountTasks(context.Background(), userID)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, int64(1), completed)
}
