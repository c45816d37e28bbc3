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

func saveScores(t *testing.T, store *Store, difficulty string, scores ...int) {
	t.Helper()
	for _, score := range scores {
		run := Run{Difficulty: difficulty, Score: score, Enemies: 1, Ticks: uint64(score * 10), EndReason: EndCollision}
		if _, err := store.SaveRun(run); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
}

func TestStoreOpenClose(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{
		Difficulty: "normal",
		Score:      100,
		Enemies:    4,
		Ticks:      1500,
		Milestones: 3,
		EndReason:  EndExit,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d, expected positive", id)
	}
	saveScores(t, store, "normal", 50, 200)
	saveScores(t, store, "hard", 500)

	runs, err := store.TopRuns("normal", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Score != 200 || runs[1].Score != 100 || runs[2].Score != 50 {
		t.Errorf("Runs not in descending order: %v", runs)
	}

	got := runs[1]
	if got.Enemies != 4 || got.Ticks != 1500 || got.Milestones != 3 || got.EndReason != EndExit {
		t.Errorf("Run fields = %+v, expected enemies 4, ticks 1500, milestones 3, reason exit", got)
	}

	all, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns(all) failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("TopRuns(all) = %v, expected 4 runs led by 500", all)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "normal", 100, 200, 300, 400, 500)

	runs, err := store.TopRuns("normal", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Score != 500 || runs[1].Score != 400 || runs[2].Score != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	// Non-positive limits fall back to 10
	saveScores(t, store, "normal", 1, 2, 3, 4, 5, 6, 7)
	runs, _ = store.TopRuns("normal", 0)
	if len(runs) != 10 {
		t.Errorf("Expected default limit of 10, got %d", len(runs))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty history, got %d", high)
	}

	saveScores(t, store, "easy", 100, 300)
	saveScores(t, store, "hard", 200)

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "normal", 10, 20, 30)
	saveScores(t, store, "fixed", 5)

	stats, err := store.Stats("normal")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.HighScore != 30 {
		t.Errorf("Stats = %+v, expected 3 runs and high 30", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}
	if stats.TotalTicks != 600 {
		t.Errorf("TotalTicks = %d, expected 600", stats.TotalTicks)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed is zero, expected a timestamp")
	}

	empty, err := store.Stats("hard")
	if err != nil {
		t.Fatalf("Stats(hard) failed: %v", err)
	}
	if empty.Runs != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Stats(hard) = %+v, expected empty", empty)
	}

	all, err := store.AllStats()
	if err != nil {
		t.Fatalf("AllStats() failed: %v", err)
	}
	if len(all) != 2 || all["fixed"] == nil || all["fixed"].Runs != 1 {
		t.Errorf("AllStats() = %v, expected normal and fixed", all)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	saveScores(t, store, "normal", 100, 200)
	saveScores(t, store, "hard", 300)

	if err := store.ClearRuns("normal"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	if runs, _ := store.TopRuns("normal", 10); len(runs) != 0 {
		t.Errorf("Expected 0 normal runs after clear, got %d", len(runs))
	}
	if runs, _ := store.TopRuns("hard", 10); len(runs) != 1 {
		t.Error("Hard runs should not be affected by clearing normal")
	}

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(all) failed: %v", err)
	}
	if runs, _ := store.TopRuns("", 10); len(runs) != 0 {
		t.Errorf("Expected empty history, got %d runs", len(runs))
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
