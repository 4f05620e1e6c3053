package sheets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/retrocalc/internal/domain/models"
	"github.com/mamadbah2/retrocalc/internal/service/calculator"
)

// HistoryRange is where exported records are appended.
const HistoryRange = "History!A:E"

// HistorySource lists every persisted record in append order.
type HistorySource interface {
	All(ctx context.Context) ([]models.CalculationRecord, error)
}

// Exporter copies records that have not been exported yet into a sheet.
type Exporter struct {
	repo   Repository
	source HistorySource
	logger *zap.Logger

	mu       sync.Mutex
	exported int
}

// NewExporter wires a history exporter.
func NewExporter(repo Repository, source HistorySource, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{repo: repo, source: source, logger: logger}
}

// Export appends records added since the previous run and returns how many
// rows were written. The stored list is append-only, so the count of rows
// already exported marks where the next run starts.
func (e *Exporter) Export(ctx context.Context) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	records, err := e.source.All(ctx)
	if err != nil {
		return 0, fmt.Errorf("load history: %w", err)
	}
	if e.exported > len(records) {
		// the store was replaced underneath us; start over
		e.exported = 0
	}

	pending := records[e.exported:]
	if len(pending) == 0 {
		return 0, nil
	}

	rows := make([][]interface{}, 0, len(pending))
	for _, rec := range pending {
		rows = append(rows, Row(rec))
	}

	if err := e.repo.WriteRows(ctx, HistoryRange, rows); err != nil {
		return 0, err
	}

	e.exported = len(records)
	e.logger.Info("history exported", zap.Int("rows", len(rows)))
	return len(rows), nil
}

// Row flattens a record into sheet cells.
func Row(rec models.CalculationRecord) []interface{} {
	steps := ""
	for i, s := range rec.Steps {
		if i > 0 {
			steps += " "
		}
		steps += s.Value
	}
	return []interface{}{
		rec.Timestamp.UTC().Format(time.RFC3339),
		rec.ID,
		rec.Expression,
		steps,
		calculator.FormatNumber(rec.Result),
	}
}
