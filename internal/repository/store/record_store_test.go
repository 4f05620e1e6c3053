package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
)

func record(i int, base time.Time) models.CalculationRecord {
	expr := fmt.Sprintf("%d+1", i)
	steps := []models.Step{
		{Value: fmt.Sprint(i), Type: models.StepOperand},
		{Value: "+", Type: models.StepOperator},
		{Value: "1", Type: models.StepOperand},
		{Value: fmt.Sprint(i + 1), Type: models.StepResult},
	}
	return models.NewCalculationRecord(expr, steps, float64(i+1), base.Add(time.Duration(i)*time.Millisecond))
}

func TestRecordStore_LoadRecentEmpty(t *testing.T) {
	s := NewRecordStore(NewMemoryKV(), "", nil)

	got := s.LoadRecent(context.Background(), DefaultRecent)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecordStore_LoadRecentMostRecentFirst(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV(), "", nil)
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 11; i++ {
		require.NoError(t, s.Append(ctx, record(i, base)))
	}

	got := s.LoadRecent(ctx, 10)
	require.Len(t, got, 10)
	assert.Equal(t, "10+1", got[0].Expression)
	assert.Equal(t, "1+1", got[9].Expression)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 11, "truncation only happens on read")
}

func TestRecordStore_LoadRecentNonPositive(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV(), "", nil)
	require.NoError(t, s.Append(ctx, record(1, time.Now())))

	assert.Empty(t, s.LoadRecent(ctx, 0))
	assert.Empty(t, s.LoadRecent(ctx, -3))
}

func TestRecordStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewRecordStore(NewMemoryKV(), "", nil)
	want := models.NewCalculationRecord("3+5*2", []models.Step{
		{Value: "3", Type: models.StepOperand},
		{Value: "+", Type: models.StepOperator},
		{Value: "5", Type: models.StepOperand},
		{Value: "*", Type: models.StepOperator},
		{Value: "2", Type: models.StepOperand},
		{Value: "13", Type: models.StepResult},
	}, 13, time.Date(2026, 10, 16, 8, 1, 2, 345678901, time.UTC))

	require.NoError(t, s.Append(ctx, want))

	got := s.LoadRecent(ctx, 1)
	require.Len(t, got, 1)
	assert.Equal(t, want.ID, got[0].ID)
	assert.Equal(t, want.Expression, got[0].Expression)
	assert.Equal(t, want.Result, got[0].Result)
	assert.Equal(t, want.Steps, got[0].Steps)
	assert.True(t, want.Timestamp.Equal(got[0].Timestamp))
}

func TestRecordStore_AppendKeepsEarlierRecords(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	s := NewRecordStore(kv, "history", nil)
	base := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Append(ctx, record(1, base)))
	require.NoError(t, s.Append(ctx, record(2, base)))
	before, _, err := kv.Get(ctx, "history")
	require.NoError(t, err)

	s.LoadRecent(ctx, 10)
	after, _, err := kv.Get(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, before, after, "reading never rewrites the stored list")

	require.NoError(t, s.Append(ctx, record(3, base)))
	all, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1+1", all[0].Expression)
	assert.Equal(t, "2+1", all[1].Expression)
}

func TestRecordStore_CorruptValue(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	require.NoError(t, kv.Set(ctx, DefaultKey, "{not json"))
	s := NewRecordStore(kv, "", nil)

	assert.Empty(t, s.LoadRecent(ctx, 10))

	err := s.Append(ctx, record(1, time.Now()))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPersistenceRead))

	raw, _, _ := kv.Get(ctx, DefaultKey)
	assert.Equal(t, "{not json", raw, "corrupt value is preserved")
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("disk on fire")
}

func TestRecordStore_BackendFailure(t *testing.T) {
	s := NewRecordStore(failingKV{}, "", nil)

	assert.Empty(t, s.LoadRecent(context.Background(), 10))
	assert.ErrorIs(t, s.Append(context.Background(), record(1, time.Now())), ErrPersistenceRead)
}
