package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
)

const (
	// DefaultKey is the key holding the serialized history.
	DefaultKey = "calculationHistory"
	// DefaultRecent is how many records the history viewer shows.
	DefaultRecent = 10
)

// ErrPersistenceRead indicates the persisted history could not be decoded.
var ErrPersistenceRead = errors.New("persisted history unreadable")

// Repository defines the history operations used by the services.
type Repository interface {
	Append(ctx context.Context, record models.CalculationRecord) error
	LoadRecent(ctx context.Context, n int) []models.CalculationRecord
	All(ctx context.Context) ([]models.CalculationRecord, error)
}

var _ Repository = (*RecordStore)(nil)

// RecordStore keeps the whole history as one JSON array under a single key.
// The list is rewritten wholesale on every append and only truncated on read.
type RecordStore struct {
	kv     KV
	key    string
	logger *zap.Logger
	mu     sync.Mutex
}

// NewRecordStore wires a record store over kv. An empty key selects DefaultKey.
func NewRecordStore(kv KV, key string, logger *zap.Logger) *RecordStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if key == "" {
		key = DefaultKey
	}
	return &RecordStore{kv: kv, key: key, logger: logger}
}

// Append adds record to the end of the persisted list. A corrupt persisted
// value is left untouched and reported as ErrPersistenceRead.
func (s *RecordStore) Append(ctx context.Context, record models.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.read(ctx)
	if err != nil {
		return err
	}

	history = append(history, record)
	payload, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	if err := s.kv.Set(ctx, s.key, string(payload)); err != nil {
		return fmt.Errorf("write history: %w", err)
	}

	s.logger.Debug("record appended", zap.Int64("id", record.ID), zap.Int("size", len(history)))
	return nil
}

// LoadRecent returns the last n records, most recent first. Any read failure
// degrades to an empty result.
func (s *RecordStore) LoadRecent(ctx context.Context, n int) []models.CalculationRecord {
	if n <= 0 {
		return []models.CalculationRecord{}
	}

	s.mu.Lock()
	history, err := s.read(ctx)
	s.mu.Unlock()
	if err != nil {
		s.logger.Warn("history unavailable, showing none", zap.String("key", s.key), zap.Error(err))
		return []models.CalculationRecord{}
	}

	if len(history) > n {
		history = history[len(history)-n:]
	}

	recent := make([]models.CalculationRecord, 0, len(history))
	for i := len(history) - 1; i >= 0; i-- {
		recent = append(recent, history[i])
	}
	return recent
}

// All returns the full persisted list in append order.
func (s *RecordStore) All(ctx context.Context) ([]models.CalculationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read(ctx)
}

func (s *RecordStore) read(ctx context.Context) ([]models.CalculationRecord, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceRead, err)
	}
	if !ok || raw == "" {
		return nil, nil
	}

	var history []models.CalculationRecord
	if err := json.Unmarshal([]byte(raw), &history); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceRead, err)
	}
	return history, nil
}
