package analysis

import (
	"context"
	"path"
	"testing"

	"github.com/grantsrb/gordongames/storage"
)

func TestRecordAnalyzer(t *testing.T) {
	store := storage.NewSQLiteStore(path.Join(t.TempDir(), "episodes.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer store.Close()

	cons := &RecordAnalyzerConstructor{Store: store}
	a := cons.NewAnalyzer(0)

	eCtx, trace := episodeTrace([]float64{0, 1}, true, map[string]interface{}{"n_targs": 4})
	eCtx.Experiment = "gordongames-v0-random"
	eCtx.Run = 0
	eCtx.Episode = 7
	a.Analyze(eCtx, trace)

	recs, err := store.ListEpisodes(context.Background(), "gordongames-v0-random")
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("record count = %d, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Episode != 7 || rec.NTargs != 4 || rec.Steps != 2 || rec.Reward != 1 || !rec.Success {
		t.Fatalf("unexpected record %+v", rec)
	}
}
