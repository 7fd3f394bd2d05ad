package migration

import (
	"context"
	"sync"
	"time"

	"sheet-sync/core/kvcache"
	"sheet-sync/feature/migration/platform"
	"sheet-sync/feature/sheet"
	"sheet-sync/feature/sheet/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service orchestrates full reconciliation passes and single edit events
// over one sheet.
type Service struct {
	store    store.Store
	cache    kvcache.Cache
	client   platform.Client
	sheetCfg *sheet.Config
	platCfg  *platform.Config
	logger   *zap.Logger

	mu         sync.Mutex
	lastReport *PassReport
}

// NewService creates a migration service.
func NewService(st store.Store, cache kvcache.Cache, client platform.Client,
	sheetCfg *sheet.Config, platCfg *platform.Config, logger *zap.Logger) *Service {
	return &Service{
		store:    st,
		cache:    cache,
		client:   client,
		sheetCfg: sheetCfg,
		platCfg:  platCfg,
		logger:   logger,
	}
}

func (s *Service) indexKey() string {
	return "bucket-index:" + s.sheetCfg.Key
}

// openIndex loads the persisted bucket index, rebuilding it from a full
// scan when the snapshot is absent or expired.
func (s *Service) openIndex(ctx context.Context, sh *sheet.Sheet) (*sheet.BucketIndex, error) {
	idx := sheet.NewBucketIndex(s.cache, s.indexKey(), s.sheetCfg.IndexTTL())
	loaded, err := idx.Load(ctx)
	if err != nil {
		return nil, err
	}
	if !loaded {
		s.logger.Info("Bucket index snapshot absent, rebuilding")
		if err := sh.RebuildIndex(ctx, idx); err != nil {
			return nil, err
		}
	}
	return idx, nil
}

// RunPass traverses every non-empty row, re-evaluates its mismatch
// highlight, reconciles it against the remote platform, and returns the
// pass report. Rows are processed strictly sequentially; a failing row
// never blocks the rows after it.
func (s *Service) RunPass(ctx context.Context) (*PassReport, error) {
	started := time.Now()

	sh, err := sheet.Open(ctx, s.store, s.sheetCfg, s.logger)
	if err != nil {
		return nil, err
	}
	idx, err := s.openIndex(ctx, sh)
	if err != nil {
		return nil, err
	}

	tracker := NewTracker()
	engine := NewEngine(s.client, tracker, s.platCfg, s.logger)
	highlighter := sheet.NewHighlighter(s.sheetCfg)

	last, err := sh.LastRow(ctx)
	if err != nil {
		return nil, err
	}

	report := &PassReport{
		PassID:    uuid.NewString(),
		StartedAt: started,
	}
	for r := 2; r <= last; r++ {
		row, err := sh.Row(ctx, r)
		if err != nil {
			return nil, err
		}
		if row.IsEmpty() {
			continue
		}
		report.Rows++

		count, err := engine.ReconcileRow(ctx, row)
		if err != nil {
			return nil, err
		}
		report.Errors += count

		// Highlight after reconciliation: resolving the row's error state
		// clears every cell background on the row, which would erase a
		// mismatch paint applied before it.
		if _, err := highlighter.Check(ctx, row); err != nil {
			// Malformed cell content: mark the row, keep going.
			if mErr := row.MarkError(ctx, []string{err.Error()}); mErr != nil {
				return nil, mErr
			}
			report.Errors++
		}
	}

	if err := idx.Save(ctx); err != nil {
		return nil, err
	}

	report.FinishedAt = time.Now()
	report.Records = tracker.Records()
	for _, rec := range report.Records {
		if rec.Created {
			report.Created++
		}
		report.Changed += len(rec.Changes)
	}

	s.logger.Info("Reconciliation pass finished",
		zap.String("pass", report.PassID),
		zap.Int("rows", report.Rows),
		zap.Int("created", report.Created),
		zap.Int("changed", report.Changed),
		zap.Int("errors", report.Errors))

	s.mu.Lock()
	s.lastReport = report
	s.mu.Unlock()
	return report, nil
}

// LastReport returns the report of the most recent pass, or nil before
// the first one.
func (s *Service) LastReport() *PassReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReport
}

// ApplyEdit handles one cell edit event: gate it, propagate it across the
// linked bucket, re-highlight, and persist the updated index snapshot.
func (s *Service) ApplyEdit(ctx context.Context, rowIndex int, field string, prior *string, value string) error {
	sh, err := sheet.Open(ctx, s.store, s.sheetCfg, s.logger)
	if err != nil {
		return err
	}
	idx, err := s.openIndex(ctx, sh)
	if err != nil {
		return err
	}

	linker := sheet.NewLinker(idx, s.sheetCfg, s.logger)
	if err := linker.ApplyEdit(ctx, sh, rowIndex, field, prior, value); err != nil {
		return err
	}
	return idx.Save(ctx)
}

// RebuildIndex discards any persisted snapshot and rebuilds the bucket
// index from a full sheet scan.
func (s *Service) RebuildIndex(ctx context.Context) error {
	sh, err := sheet.Open(ctx, s.store, s.sheetCfg, s.logger)
	if err != nil {
		return err
	}
	idx := sheet.NewBucketIndex(s.cache, s.indexKey(), s.sheetCfg.IndexTTL())
	if err := idx.Clear(ctx); err != nil {
		return err
	}
	return sh.RebuildIndex(ctx, idx)
}
