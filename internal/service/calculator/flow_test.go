package calculator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/repository/store"
)

type recordingNotifier struct {
	records []models.CalculationRecord
	err     error
}

func (n *recordingNotifier) NotifyRecord(_ context.Context, r models.CalculationRecord) error {
	n.records = append(n.records, r)
	return n.err
}

type brokenHistory struct{}

func (brokenHistory) Append(context.Context, models.CalculationRecord) error {
	return store.ErrPersistenceRead
}

func newTestService(t *testing.T) (*Service, *store.RecordStore, *recordingNotifier, *time.Time) {
	t.Helper()
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	history := store.NewRecordStore(store.NewMemoryKV(), "", nil)
	notifier := &recordingNotifier{}
	svc := NewService(NewEvaluator(), history, notifier, 0, nil)
	svc.SetClock(func() time.Time { return now })
	return svc, history, notifier, &now
}

func TestFlow_InitialState(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	st := svc.View("s1")
	assert.Equal(t, models.ModeCommand, st.Mode)
	assert.Nil(t, st.Result)
	assert.Empty(t, st.Steps)
	assert.Empty(t, st.Error)
	assert.True(t, st.CursorVisible)
	assert.Equal(t, "Enter expression (e.g. 3+5*2)", st.Banner)
}

func TestFlow_SuccessfulInputIsRecorded(t *testing.T) {
	svc, history, notifier, _ := newTestService(t)
	ctx := context.Background()

	st := svc.HandleInput(ctx, "s1", "3+5*2")
	require.NotNil(t, st.Result)
	assert.Equal(t, float64(13), *st.Result)
	assert.Len(t, st.Steps, 6)
	assert.Empty(t, st.Error)

	recent := history.LoadRecent(ctx, 10)
	require.Len(t, recent, 1)
	assert.Equal(t, "3+5*2", recent[0].Expression)
	assert.Equal(t, st.Steps, recent[0].Steps)
	require.Len(t, notifier.records, 1)
	assert.Equal(t, recent[0].ID, notifier.records[0].ID)
}

func TestFlow_EveryKeystrokeIsEvaluated(t *testing.T) {
	svc, history, _, _ := newTestService(t)
	ctx := context.Background()

	for _, input := range []string{"1", "1+", "1+2"} {
		svc.HandleInput(ctx, "s1", input)
	}

	recent := history.LoadRecent(ctx, 10)
	require.Len(t, recent, 2, "the dangling operator never reaches the history")
	assert.Equal(t, "1+2", recent[0].Expression)
	assert.Equal(t, "1", recent[1].Expression)
}

func TestFlow_FailureClearsResultAndKeepsHistory(t *testing.T) {
	svc, history, notifier, _ := newTestService(t)
	ctx := context.Background()

	svc.HandleInput(ctx, "s1", "2+2")
	st := svc.HandleInput(ctx, "s1", "8/0")
	assert.Nil(t, st.Result)
	assert.Empty(t, st.Steps)
	assert.Equal(t, "Division by zero", st.Error)
	assert.Equal(t, "8/0", st.Input)

	st = svc.HandleInput(ctx, "s1", "8/")
	assert.Equal(t, "Invalid expression", st.Error)

	assert.Len(t, history.LoadRecent(ctx, 10), 1)
	assert.Len(t, notifier.records, 1)
}

func TestFlow_FunctionKeysSwitchModeFromAnyState(t *testing.T) {
	svc, _, _, _ := newTestService(t)

	transitions := []struct {
		key  models.Key
		want models.Mode
	}{
		{models.KeyF2, models.ModeMenu},
		{models.KeyF3, models.ModeHelp},
		{models.KeyF2, models.ModeMenu},
		{models.KeyF1, models.ModeCommand},
		{models.KeyF3, models.ModeHelp},
		{models.KeyF1, models.ModeCommand},
		{models.KeySpace, models.ModeCommand},
		{models.KeyUnknown, models.ModeCommand},
	}
	for _, tr := range transitions {
		st := svc.HandleKey("s1", tr.key)
		assert.Equal(t, tr.want, st.Mode, "after %s", tr.key)
	}
}

func TestFlow_InputOutsideCommandModeIsNotEvaluated(t *testing.T) {
	svc, history, _, _ := newTestService(t)
	ctx := context.Background()

	svc.HandleKey("s1", models.KeyF2)
	st := svc.HandleInput(ctx, "s1", "2+2")
	assert.Equal(t, "2+2", st.Input)
	assert.Nil(t, st.Result)
	assert.Equal(t, "Menu mode - Select operation with number keys", st.Banner)
	assert.Empty(t, history.LoadRecent(ctx, 10))
}

func TestFlow_SessionsAreIndependent(t *testing.T) {
	svc, _, _, _ := newTestService(t)
	ctx := context.Background()

	svc.HandleKey("a", models.KeyF3)
	svc.HandleInput(ctx, "b", "1+1")

	assert.Equal(t, models.ModeHelp, svc.View("a").Mode)
	assert.Nil(t, svc.View("a").Result)
	assert.Equal(t, models.ModeCommand, svc.View("b").Mode)
	require.NotNil(t, svc.View("b").Result)
}

func TestFlow_CursorBlinks(t *testing.T) {
	svc, _, _, now := newTestService(t)

	assert.True(t, svc.View("s1").CursorVisible)
	*now = now.Add(600 * time.Millisecond)
	assert.False(t, svc.View("s1").CursorVisible)
	*now = now.Add(500 * time.Millisecond)
	assert.True(t, svc.View("s1").CursorVisible)
}

func TestFlow_PersistenceFailureKeepsResult(t *testing.T) {
	notifier := &recordingNotifier{}
	svc := NewService(nil, brokenHistory{}, notifier, 0, nil)

	st := svc.HandleInput(context.Background(), "s1", "6*7")
	require.NotNil(t, st.Result)
	assert.Equal(t, float64(42), *st.Result)
	assert.Empty(t, st.Error)
	assert.Empty(t, notifier.records, "nothing is announced when the write failed")
}

func TestFlow_NotifierFailureIsIgnored(t *testing.T) {
	svc, history, notifier, _ := newTestService(t)
	notifier.err = errors.New("webhook down")

	st := svc.HandleInput(context.Background(), "s1", "9-3")
	require.NotNil(t, st.Result)
	assert.Len(t, history.LoadRecent(context.Background(), 10), 1)
}
