package analysis

import (
	"context"

	"github.com/grantsrb/gordongames/core"
	"github.com/grantsrb/gordongames/storage"
)

// RecordAnalyzer streams finished episodes into the sqlite store. It sits
// in the analyzer slot so recording needs no hooks inside the runner.
type RecordAnalyzer struct {
	store *storage.SQLiteStore
}

var _ core.Analyzer = &RecordAnalyzer{}

func NewRecordAnalyzer(store *storage.SQLiteStore) *RecordAnalyzer {
	return &RecordAnalyzer{
		store: store,
	}
}

func (r *RecordAnalyzer) Reset() {}

func (r *RecordAnalyzer) Analyze(eCtx *core.EpisodeContext, trace *core.Trace) {
	if trace.Len() == 0 {
		return
	}
	last := trace.Last()
	rec := storage.EpisodeRecord{
		Experiment: eCtx.Experiment,
		Run:        eCtx.Run,
		Episode:    eCtx.Episode,
		Steps:      trace.Len(),
		Reward:     trace.TotalReward(),
		Success:    last.Done && last.Reward > 0,
	}
	if last.Misc != nil {
		if n, ok := last.Misc["n_targs"].(int); ok {
			rec.NTargs = n
		}
	}
	// Persistence failures do not interrupt the run.
	_ = r.store.SaveEpisode(context.Background(), rec)
}

func (r *RecordAnalyzer) DataSet() core.DataSet {
	return nil
}

// RecordAnalyzerConstructor builds per-worker recorders sharing one store.
type RecordAnalyzerConstructor struct {
	Store *storage.SQLiteStore
}

var _ core.AnalyzerConstructor = &RecordAnalyzerConstructor{}

func (r *RecordAnalyzerConstructor) NewAnalyzer(_ int) core.Analyzer {
	return NewRecordAnalyzer(r.Store)
}

// NoOpComparator pairs with analyzers that only produce side effects.
type NoOpComparator struct{}

var _ core.Comparator = &NoOpComparator{}

func (NoOpComparator) Compare(_ []string, _ []core.DataSet) {}

type NoOpComparatorConstructor struct{}

var _ core.ComparatorConstructor = &NoOpComparatorConstructor{}

func (NoOpComparatorConstructor) NewComparator(_ int) core.Comparator {
	return NoOpComparator{}
}
