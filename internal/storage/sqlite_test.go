package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieveRounds(t *testing.T) {
	store := openTestStore(t)

	rounds := []Round{
		{GameID: "paddleslap", Score: 11, Opponent: 4, Won: true, Ticks: 5400, Collisions: 120, PeakSpeed: 88.5},
		{GameID: "paddleslap", Score: 3, Opponent: 11, Ticks: 3000, Collisions: 60, PeakSpeed: 70},
		{GameID: "paddleslap", Score: 11, Opponent: 9, Won: true, Ticks: 7000, Collisions: 200, PeakSpeed: 120},
		{GameID: "pong", Score: 5, Opponent: 2, Won: true, Ticks: 4000},
	}
	for _, r := range rounds {
		if _, err := store.SaveRound(r); err != nil {
			t.Fatalf("SaveRound() failed: %v", err)
		}
	}

	got, err := store.TopRounds("paddleslap", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 rounds, got %d", len(got))
	}

	// Ties on score are broken by peak speed
	if got[0].PeakSpeed != 120 || got[1].PeakSpeed != 88.5 || got[2].Score != 3 {
		t.Errorf("Rounds not in expected order: %+v", got)
	}
	if !got[0].Won || got[2].Won {
		t.Errorf("Won flags not round-tripped: %+v", got)
	}
	if got[0].Collisions != 200 || got[0].Ticks != 7000 || got[0].Opponent != 9 {
		t.Errorf("Round fields not round-tripped: %+v", got[0])
	}

	pong, err := store.TopRounds("pong", 10)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(pong) != 1 {
		t.Errorf("Expected 1 pong round, got %d", len(pong))
	}
}

func TestStoreTopRoundsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveRound(Round{GameID: "test", Score: i + 1})
	}

	got, err := store.TopRounds("test", 3)
	if err != nil {
		t.Fatalf("TopRounds() failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 rounds with limit, got %d", len(got))
	}
	if got[0].Score != 5 || got[1].Score != 4 || got[2].Score != 3 {
		t.Errorf("Rounds not in expected order: %+v", got)
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("pong")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected best score of 0 for empty game, got %d", best)
	}

	store.SaveRound(Round{GameID: "pong", Score: 2})
	store.SaveRound(Round{GameID: "pong", Score: 5})
	store.SaveRound(Round{GameID: "pong", Score: 4})

	best, err = store.BestScore("pong")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 5 {
		t.Errorf("Expected best score of 5, got %d", best)
	}
}

func TestStoreClearRounds(t *testing.T) {
	store := openTestStore(t)

	store.SaveRound(Round{GameID: "pong", Score: 1})
	store.SaveRound(Round{GameID: "pong", Score: 2})
	store.SaveRound(Round{GameID: "paddleslap", Score: 3})

	if err := store.ClearRounds("pong"); err != nil {
		t.Fatalf("ClearRounds() failed: %v", err)
	}

	pong, _ := store.TopRounds("pong", 10)
	if len(pong) != 0 {
		t.Errorf("Expected 0 pong rounds after clear, got %d", len(pong))
	}

	slap, _ := store.TopRounds("paddleslap", 10)
	if len(slap) != 1 {
		t.Error("Paddle Slap rounds should not be affected by clearing pong")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.GetGameStats("pong")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.Rounds != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveRound(Round{GameID: "pong", Score: 5, Won: true, Ticks: 100, PeakSpeed: 40})
	store.SaveRound(Round{GameID: "pong", Score: 2, Ticks: 300, PeakSpeed: 65.5})

	stats, err := store.GetGameStats("pong")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.Rounds != 2 || stats.Wins != 1 || stats.BestScore != 5 {
		t.Errorf("GetGameStats() = %+v, expected 2 rounds, 1 win, best 5", stats)
	}
	if stats.PeakSpeed != 65.5 {
		t.Errorf("PeakSpeed = %v, expected 65.5", stats.PeakSpeed)
	}
	if stats.AvgTicks != 200 {
		t.Errorf("AvgTicks = %v, expected 200", stats.AvgTicks)
	}
}

func TestStoreSimRuns(t *testing.T) {
	store := openTestStore(t)

	latest, err := store.LatestSimRun()
	if err != nil {
		t.Fatalf("LatestSimRun() failed: %v", err)
	}
	if latest != nil {
		t.Errorf("LatestSimRun() = %+v, expected nil on an empty store", latest)
	}

	run := SimRun{
		Seed:       7,
		Ticks:      600,
		Bounces:    12,
		SpeedUps:   9,
		PeakSpeed:  142.25,
		FinalSpeed: 140,
		DiedAt:     -1,
		Hash:       0xfeedfacecafebeef,
	}
	for range 2 {
		if _, err := store.SaveSimRun(run); err != nil {
			t.Fatalf("SaveSimRun() failed: %v", err)
		}
	}
	store.SaveSimRun(SimRun{Seed: 8, DiedAt: 30, Hash: 1})

	runs, err := store.SimRunsBySeed(7)
	if err != nil {
		t.Fatalf("SimRunsBySeed() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs for seed 7, got %d", len(runs))
	}
	for _, r := range runs {
		if r.Hash != run.Hash {
			t.Errorf("Hash = %x, expected %x", r.Hash, run.Hash)
		}
		if r.Bounces != 12 || r.SpeedUps != 9 || r.PeakSpeed != 142.25 || r.DiedAt != -1 {
			t.Errorf("SimRun fields not round-tripped: %+v", r)
		}
	}

	latest, err = store.LatestSimRun()
	if err != nil {
		t.Fatalf("LatestSimRun() failed: %v", err)
	}
	if latest == nil || latest.Seed != 8 || latest.DiedAt != 30 {
		t.Errorf("LatestSimRun() = %+v, expected the seed 8 run", latest)
	}
}
