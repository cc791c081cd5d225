package store

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/taskflow/internal/kv"
	"github.com/balkashynov/taskflow/internal/models"
)

var baseTime = time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)

// fakeClock advances one minute on every call
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Minute)
	return c.t
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T, storage kv.Storage) *TaskStore {
	t.Helper()
	clock := &fakeClock{t: baseTime}
	return New(storage, WithClock(clock.Now), WithLogger(quietLogger()))
}

// emptyStore starts from an explicitly empty persisted list
func emptyStore(t *testing.T) (*TaskStore, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(KeyTasks, "[]"))
	return newTestStore(t, mem), mem
}

func ids(tasks []models.Task) []int {
	out := []int{}
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestNew_SeedsWhenStorageEmpty(t *testing.T) {
	mem := kv.NewMemory()
	s := newTestStore(t, mem)

	tasks := s.All()
	require.Len(t, tasks, 3)
	assert.Equal(t, []int{1, 2, 3}, ids(tasks))
	assert.Equal(t, models.StatusCompleted, tasks[2].Status)
	assert.Equal(t, models.PriorityLow, tasks[2].Priority)
	assert.NotNil(t, tasks[2].CompletedAt)
	assert.Equal(t, 4, s.NextID())

	raw, ok, err := mem.Get(KeyCounter)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", raw)
}

func TestNew_SeedsWhenStorageUnparseable(t *testing.T) {
	mem := kv.NewMemory()
	require.NoError(t, mem.Set(KeyTasks, "{broken"))
	require.NoError(t, mem.Set(KeyCounter, "not-a-number"))

	s := newTestStore(t, mem)
	assert.Len(t, s.All(), 3)
	assert.Equal(t, 4, s.NextID())
}

func TestNew_SeedsWhenStoredRecordsInvalid(t *testing.T) {
	created := `"createdAt":"2024-06-01T10:00:00Z"`
	tests := []struct {
		name   string
		stored string
	}{
		{"duplicate ids", `[{"id":1,"title":"a","priority":"low","status":"pending",` + created + `},{"id":1,"title":"b","priority":"low","status":"pending",` + created + `}]`},
		{"unknown priority", `[{"id":1,"title":"a","priority":"urgent","status":"pending",` + created + `}]`},
		{"unknown status", `[{"id":1,"title":"a","priority":"low","status":"archived",` + created + `}]`},
		{"blank title", `[{"id":1,"title":"  ","priority":"low","status":"pending",` + created + `}]`},
		{"null list", `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := kv.NewMemory()
			require.NoError(t, mem.Set(KeyTasks, tt.stored))

			s := newTestStore(t, mem)
			assert.Equal(t, []int{1, 2, 3}, ids(s.All()))
			assert.Equal(t, "Design the main interface", s.All()[0].Title)

			raw, _, err := mem.Get(KeyTasks)
			require.NoError(t, err)
			assert.NotEqual(t, tt.stored, raw, "seed replaces the invalid list")
		})
	}
}

func TestNew_KeepsDeliberatelyEmptyList(t *testing.T) {
	s, _ := emptyStore(t)
	assert.Empty(t, s.All())
	assert.Equal(t, 1, s.NextID())
}

func TestNew_CounterNeverBelowMaxID(t *testing.T) {
	mem := kv.NewMemory()
	data, err := json.Marshal([]models.Task{
		{ID: 7, Title: "a", Priority: models.PriorityLow, Status: models.StatusPending, CreatedAt: baseTime},
	})
	require.NoError(t, err)
	require.NoError(t, mem.Set(KeyTasks, string(data)))
	require.NoError(t, mem.Set(KeyCounter, "2"))

	s := newTestStore(t, mem)
	assert.Equal(t, 8, s.NextID())

	created, err := s.Create("next", "", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 8, created.ID)
}

func TestNew_RestoresPersistedState(t *testing.T) {
	mem := kv.NewMemory()
	first := newTestStore(t, mem)
	_, err := first.Create("Buy milk", "2 litres", models.PriorityLow)
	require.NoError(t, err)
	require.NoError(t, first.Delete(4))

	second := newTestStore(t, mem)
	if diff := cmp.Diff(first.All(), second.All()); diff != "" {
		t.Errorf("reloaded tasks differ (-want +got):\n%s", diff)
	}
	assert.Equal(t, 5, second.NextID(), "deleted id must not be reused")
}

func TestCreate(t *testing.T) {
	s, _ := emptyStore(t)

	task, err := s.Create("  Write report  ", "  quarterly  ", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 1, task.ID)
	assert.Equal(t, "Write report", task.Title)
	assert.Equal(t, "quarterly", task.Description)
	assert.Equal(t, models.StatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)
	assert.False(t, task.CreatedAt.IsZero())

	defaulted, err := s.Create("Second", "", "")
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, defaulted.Priority)
	assert.Greater(t, defaulted.ID, task.ID)
}

func TestCreate_IDsStrictlyIncrease(t *testing.T) {
	s, _ := emptyStore(t)
	last := 0
	for i := 0; i < 10; i++ {
		task, err := s.Create("task", "", models.PriorityLow)
		require.NoError(t, err)
		assert.Greater(t, task.ID, last)
		last = task.ID
		if i%3 == 0 {
			require.NoError(t, s.Delete(task.ID))
		}
	}
}

func TestCreate_RejectsEmptyTitle(t *testing.T) {
	s, mem := emptyStore(t)
	before, _, _ := mem.Get(KeyTasks)

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := s.Create(title, "desc", models.PriorityLow)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Empty(t, s.All())

	after, _, _ := mem.Get(KeyTasks)
	assert.Equal(t, before, after)
}

func TestCreate_RejectsUnknownPriority(t *testing.T) {
	s, _ := emptyStore(t)
	_, err := s.Create("title", "", models.Priority("urgent"))
	assert.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, s.All())
}

func TestToggleStatus_IsItsOwnInverse(t *testing.T) {
	s, _ := emptyStore(t)
	task, err := s.Create("title", "", models.PriorityLow)
	require.NoError(t, err)

	done, err := s.ToggleStatus(task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)

	back, err := s.ToggleStatus(task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Status, back.Status)
	assert.Nil(t, back.CompletedAt)
}

func TestToggleStatus_UnknownIDIsNoop(t *testing.T) {
	s, _ := emptyStore(t)
	_, err := s.Create("title", "", models.PriorityLow)
	require.NoError(t, err)
	before := s.All()

	_, err = s.ToggleStatus(42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, s.All())
}

func TestDelete(t *testing.T) {
	s, _ := emptyStore(t)
	a, _ := s.Create("a", "", models.PriorityLow)
	b, _ := s.Create("b", "", models.PriorityLow)

	require.NoError(t, s.Delete(a.ID))
	assert.Equal(t, []int{b.ID}, ids(s.List(models.AllFilter())))

	err := s.Delete(999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []int{b.ID}, ids(s.All()))
}

func TestUpdate(t *testing.T) {
	s, _ := emptyStore(t)
	task, _ := s.Create("old", "old desc", models.PriorityHigh)

	updated, err := s.Update(task.ID, "  new  ", "  new desc ")
	require.NoError(t, err)
	assert.Equal(t, "new", updated.Title)
	assert.Equal(t, "new desc", updated.Description)
	assert.Equal(t, task.CreatedAt, updated.CreatedAt)
	assert.Equal(t, task.Priority, updated.Priority)

	_, err = s.Update(task.ID, "   ", "x")
	assert.ErrorIs(t, err, ErrValidation)
	got, _ := s.Get(task.ID)
	assert.Equal(t, "new", got.Title)

	_, err = s.Update(999, "title", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_FiltersAreConjunctive(t *testing.T) {
	s, _ := emptyStore(t)
	hp, _ := s.Create("high pending", "", models.PriorityHigh)
	hc, _ := s.Create("high completed", "", models.PriorityHigh)
	lp, _ := s.Create("low pending", "", models.PriorityLow)
	_, err := s.ToggleStatus(hc.ID)
	require.NoError(t, err)

	got := s.List(models.Filter{Priority: "high", Status: "pending"})
	assert.Equal(t, []int{hp.ID}, ids(got))

	assert.Equal(t, []int{hp.ID, hc.ID, lp.ID}, ids(s.List(models.AllFilter())))
	assert.Equal(t, []int{hp.ID, lp.ID}, ids(s.List(models.Filter{Priority: "all", Status: "pending"})))
	assert.Equal(t, []int{hp.ID, hc.ID}, ids(s.List(models.Filter{Priority: "high", Status: "all"})))
	assert.Empty(t, s.List(models.Filter{Priority: "medium", Status: "all"}))
}

func TestSearch(t *testing.T) {
	s, _ := emptyStore(t)
	a, _ := s.Create("Buy MILK", "", models.PriorityLow)
	b, _ := s.Create("Call mom", "ask about the milkman", models.PriorityLow)
	_, _ = s.Create("Fix bike", "", models.PriorityLow)

	assert.Equal(t, []int{a.ID, b.ID}, ids(s.Search("milk")))
	assert.Equal(t, []int{b.ID}, ids(s.Search("MOM")))
	assert.Empty(t, s.Search("zebra"))
	assert.Len(t, s.Search(""), 3)
}

func TestStats(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	assert.Equal(t, Stats{Total: 3, Pending: 2, Completed: 1}, s.Stats())
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	_, _ = s.Create("Buy milk", "", models.PriorityLow)
	_, _ = s.ToggleStatus(1)
	want := s.All()

	data, err := s.ExportSnapshot()
	require.NoError(t, err)

	other, _ := emptyStore(t)
	require.NoError(t, other.ImportSnapshot(data))

	if diff := cmp.Diff(want, other.All()); diff != "" {
		t.Errorf("imported tasks differ (-want +got):\n%s", diff)
	}
	assert.GreaterOrEqual(t, other.NextID(), 4)
	assert.Equal(t, 5, other.NextID())
}

func TestImportSnapshot_EmptyListResetsCounter(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	require.NoError(t, s.ImportSnapshot([]byte("[]")))
	assert.Empty(t, s.All())
	assert.Equal(t, 1, s.NextID())
}

func TestImportSnapshot_RejectsBadPayloads(t *testing.T) {
	cases := map[string]string{
		"not json":         "hello",
		"object":           `{"id": 1}`,
		"null":             `null`,
		"number element":   `[1]`,
		"missing id":       `[{"title":"a","priority":"low","status":"pending","createdAt":"2024-01-01T00:00:00Z"}]`,
		"zero id":          `[{"id":0,"title":"a","priority":"low","status":"pending","createdAt":"2024-01-01T00:00:00Z"}]`,
		"blank title":      `[{"id":1,"title":"  ","priority":"low","status":"pending","createdAt":"2024-01-01T00:00:00Z"}]`,
		"bad priority":     `[{"id":1,"title":"a","priority":"urgent","status":"pending","createdAt":"2024-01-01T00:00:00Z"}]`,
		"bad status":       `[{"id":1,"title":"a","priority":"low","status":"doing","createdAt":"2024-01-01T00:00:00Z"}]`,
		"missing created":  `[{"id":1,"title":"a","priority":"low","status":"pending"}]`,
		"duplicate ids":    `[{"id":1,"title":"a","priority":"low","status":"pending","createdAt":"2024-01-01T00:00:00Z"},{"id":1,"title":"b","priority":"low","status":"pending","createdAt":"2024-01-01T00:00:00Z"}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestStore(t, kv.NewMemory())
			before := s.All()
			nextID := s.NextID()

			err := s.ImportSnapshot([]byte(payload))
			assert.ErrorIs(t, err, ErrFormat)
			assert.Equal(t, before, s.All())
			assert.Equal(t, nextID, s.NextID())
		})
	}
}

func TestImportSnapshot_DropsCompletedAtOnPending(t *testing.T) {
	s, _ := emptyStore(t)
	payload := `[{"id":3,"title":"a","description":"","priority":"low","status":"pending","createdAt":"2024-01-01T00:00:00Z","completedAt":"2024-01-02T00:00:00Z"}]`
	require.NoError(t, s.ImportSnapshot([]byte(payload)))

	got, ok := s.Get(3)
	require.True(t, ok)
	assert.Nil(t, got.CompletedAt)
	assert.Equal(t, 4, s.NextID())
}

func TestSubscribe_ReceivesFullListAfterEachMutation(t *testing.T) {
	s, _ := emptyStore(t)
	var events []Event
	unsubscribe := s.Subscribe(func(ev Event) { events = append(events, ev) })

	task, _ := s.Create("a", "", models.PriorityLow)
	_, _ = s.ToggleStatus(task.ID)
	_, _ = s.Update(task.ID, "b", "")
	_ = s.Delete(task.ID)
	_, _ = s.ToggleStatus(task.ID) // not found, no event

	require.Len(t, events, 4)
	assert.Equal(t, EventAdded, events[0].Kind)
	assert.Len(t, events[0].Tasks, 1)
	assert.Equal(t, EventToggled, events[1].Kind)
	assert.Equal(t, EventUpdated, events[2].Kind)
	assert.Equal(t, EventRemoved, events[3].Kind)
	assert.Equal(t, task.ID, events[3].Task.ID)
	assert.Empty(t, events[3].Tasks)

	unsubscribe()
	_, _ = s.Create("c", "", models.PriorityLow)
	assert.Len(t, events, 4)
}

// failingStorage reads fine but refuses every write
type failingStorage struct {
	*kv.Memory
}

func (f failingStorage) Set(key, value string) error {
	return errors.New("quota exceeded")
}

func TestPersistFailure_KeepsMutationInMemory(t *testing.T) {
	s := newTestStore(t, failingStorage{kv.NewMemory()})

	task, err := s.Create("still works", "", models.PriorityHigh)
	require.NoError(t, err)
	assert.Equal(t, 4, task.ID)
	assert.Len(t, s.All(), 4)

	var storageErr *StorageError
	require.ErrorAs(t, s.LastPersistError(), &storageErr)
	assert.Equal(t, "write", storageErr.Op)
	assert.Equal(t, KeyTasks, storageErr.Key)
}

func TestScenario_SeedCreateToggleDelete(t *testing.T) {
	s := newTestStore(t, kv.NewMemory())
	require.Equal(t, []int{1, 2, 3}, ids(s.All()))

	task, err := s.Create("Buy milk", "", models.PriorityLow)
	require.NoError(t, err)
	assert.Equal(t, 4, task.ID)
	assert.Equal(t, models.StatusPending, task.Status)

	toggled, err := s.ToggleStatus(4)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, toggled.Status)
	assert.NotNil(t, toggled.CompletedAt)

	require.NoError(t, s.Delete(1))
	all := s.List(models.AllFilter())
	assert.Len(t, all, 3)
	assert.NotContains(t, ids(all), 1)
}
