package storage

import (
	"context"
	"path"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore(path.Join(t.TempDir(), "episodes.db"))
	if err := store.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSaveAndListEpisodes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	recs := []EpisodeRecord{
		{Experiment: "v0-random", Run: 0, Episode: 1, NTargs: 3, Steps: 12, Reward: 1, Success: true},
		{Experiment: "v0-random", Run: 0, Episode: 0, NTargs: 2, Steps: 30, Reward: -1},
		{Experiment: "v1-random", Run: 0, Episode: 0, NTargs: 5, Steps: 8, Reward: 1, Success: true},
	}
	for _, rec := range recs {
		if err := store.SaveEpisode(ctx, rec); err != nil {
			t.Fatalf("SaveEpisode: %v", err)
		}
	}

	got, err := store.ListEpisodes(ctx, "v0-random")
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("record count = %d, want 2", len(got))
	}
	if got[0].Episode != 0 || got[1].Episode != 1 {
		t.Fatalf("records out of order: %+v", got)
	}
	if got[0].Success || !got[1].Success {
		t.Fatal("success flags lost in the round trip")
	}
}

func TestSaveEpisodeUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	rec := EpisodeRecord{Experiment: "v0-random", Run: 1, Episode: 4, Steps: 10, Reward: -1}
	if err := store.SaveEpisode(ctx, rec); err != nil {
		t.Fatalf("SaveEpisode: %v", err)
	}
	rec.Reward = 1
	rec.Success = true
	if err := store.SaveEpisode(ctx, rec); err != nil {
		t.Fatalf("SaveEpisode: %v", err)
	}

	got, err := store.ListEpisodes(ctx, "v0-random")
	if err != nil {
		t.Fatalf("ListEpisodes: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("record count = %d after upsert, want 1", len(got))
	}
	if got[0].Reward != 1 || !got[0].Success {
		t.Fatalf("upsert kept stale values: %+v", got[0])
	}
}

func TestUninitializedStore(t *testing.T) {
	store := NewSQLiteStore("unused.db")
	if err := store.SaveEpisode(context.Background(), EpisodeRecord{}); err == nil {
		t.Fatal("expected an error before Init")
	}
	if _, err := store.ListEpisodes(context.Background(), "x"); err == nil {
		t.Fatal("expected an error before Init")
	}
}
