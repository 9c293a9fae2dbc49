package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iliyamo/passenger-registry/internal/excel"
	"github.com/iliyamo/passenger-registry/internal/logger"
	"github.com/iliyamo/passenger-registry/internal/metrics"
	"github.com/iliyamo/passenger-registry/internal/model"
	"github.com/iliyamo/passenger-registry/internal/queue"
)

// RecordCreator is the single-record create operation the batcher submits
// rows to. *repository.PassengerRepo satisfies it; tests use a fake.
type RecordCreator interface {
	Create(ctx context.Context, p *model.Passenger) error
}

// EventSink receives the import-completed audit event. *Publisher satisfies
// it; a nil sink disables publishing.
type EventSink interface {
	Publish(ctx context.Context, ev queue.AuditEvent) error
}

// ImportResult is the outcome of a bulk import. Success reports whether the
// batch ran at all: a parsed file whose rows partially fail still counts as
// success, with the row failures conveyed by Failed and Details.
type ImportResult struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Details  []string `json:"details"`
}

// Importer turns a sequence of partially specified rows into independent
// create calls. Each row is overlaid onto the default record template first
// so missing optional fields get their defaults; per-row failures are
// collected and never abort the batch.
type Importer struct {
	creator RecordCreator
	events  EventSink
	metrics *metrics.Metrics
	log     logger.Logger
}

// NewImporter wires the batcher. events and m may be nil.
func NewImporter(creator RecordCreator, events EventSink, m *metrics.Metrics, log logger.Logger) *Importer {
	return &Importer{creator: creator, events: events, metrics: m, log: log}
}

// ImportRows imports column-mapped spreadsheet rows (the file upload path).
func (s *Importer) ImportRows(ctx context.Context, rows []excel.Row) ImportResult {
	records := make([]model.Passenger, 0, len(rows))
	for _, row := range rows {
		p := model.DefaultPassenger()
		excel.ApplyRow(&p, row)
		records = append(records, p)
	}
	return s.run(ctx, records)
}

// ImportRecords imports field-keyed row objects (the JSON bulk-import
// path). Each object is decoded on top of the default template so absent
// fields keep their defaults; undecodable objects fail as rows, not as a
// whole batch.
func (s *Importer) ImportRecords(ctx context.Context, raws []json.RawMessage) ImportResult {
	records := make([]model.Passenger, 0, len(raws))
	for _, raw := range raws {
		p := model.DefaultPassenger()
		if err := json.Unmarshal(raw, &p); err != nil {
			// Mark the record invalid so run() reports it as a row failure
			// in sequence instead of silently dropping it.
			p = model.Passenger{Remark: fmt.Sprintf("undecodable row: %v", err)}
		}
		records = append(records, p)
	}
	return s.run(ctx, records)
}

func (s *Importer) run(ctx context.Context, records []model.Passenger) ImportResult {
	if len(records) == 0 {
		return ImportResult{Success: false, Message: "no rows to import", Details: []string{}}
	}

	res := ImportResult{Success: true, Details: []string{}}
	for i := range records {
		p := &records[i]
		if err := p.Validate(); err != nil {
			res.Failed++
			res.Details = append(res.Details, rowDetail(i, p, err))
			continue
		}
		if err := s.creator.Create(ctx, p); err != nil {
			res.Failed++
			res.Details = append(res.Details, rowDetail(i, p, err))
			continue
		}
		res.Imported++
	}
	res.Message = fmt.Sprintf("Imported %d of %d rows", res.Imported, len(records))

	if s.metrics != nil {
		s.metrics.RecordsImported.Add(float64(res.Imported))
		s.metrics.ImportsFailed.Add(float64(res.Failed))
	}
	s.log.Info("bulk import finished", "imported", res.Imported, "failed", res.Failed)

	if s.events != nil {
		_ = s.events.Publish(ctx, queue.AuditEvent{
			Action:     queue.ActionImportCompleted,
			Imported:   res.Imported,
			Failed:     res.Failed,
			Details:    res.Details,
			OccurredAt: time.Now().UTC().Format(time.RFC3339),
		})
	}
	return res
}

// rowDetail identifies a failed row by its 1-based position plus the
// passport or name when present.
func rowDetail(i int, p *model.Passenger, err error) string {
	ref := p.Passport
	if ref == "" {
		ref = p.PassengerName
	}
	if ref == "" {
		return fmt.Sprintf("row %d: %v", i+1, err)
	}
	return fmt.Sprintf("row %d (%s): %v", i+1, ref, err)
}
