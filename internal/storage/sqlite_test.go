package storage

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"sync"
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

func save(t *testing.T, store *Store, gameID, player string, score int) {
	t.Helper()
	if _, err := store.SaveScore(ScoreEntry{GameID: gameID, Player: player, Score: score, Ticks: score + 1}); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

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

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	save(t, store, "flappy", "ann", 77)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 77 {
		t.Errorf("HighScore() after reopen = %d, expected 77", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "flappy", "ann", 100)
	save(t, store, "flappy", "bob", 50)
	save(t, store, "flappy", "ann", 200)
	save(t, store, "other", "ann", 500)

	scores, err := store.TopScores("flappy", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []struct {
		player string
		score  int
	}{{"ann", 200}, {"ann", 100}, {"bob", 50}}
	for i, w := range want {
		if scores[i].Score != w.score || scores[i].Player != w.player {
			t.Errorf("scores[%d] = %s/%d, expected %s/%d", i, scores[i].Player, scores[i].Score, w.player, w.score)
		}
		if scores[i].Ticks != w.score+1 {
			t.Errorf("scores[%d].Ticks = %d, expected %d", i, scores[i].Ticks, w.score+1)
		}
		if scores[i].CreatedAt.IsZero() {
			t.Errorf("scores[%d].CreatedAt should be set", i)
		}
	}

	other, err := store.TopScores("other", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 score for the other game, got %d", len(other))
	}
}

func TestStoreSaveDefaults(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveScore(ScoreEntry{Score: 5}); err == nil {
		t.Error("SaveScore() without a game id should fail")
	}

	save(t, store, "flappy", "   ", 5)
	scores, _ := store.TopScores("flappy", 1)
	if len(scores) != 1 || scores[0].Player != DefaultPlayer {
		t.Errorf("blank player stored as %+v, expected %q", scores, DefaultPlayer)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		save(t, store, "test", "p", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, _ := store.TopScores("test", 0)
	if len(all) != 5 {
		t.Errorf("TopScores(0) = %d entries, expected 5", len(all))
	}
}

func TestStoreTiesKeepInsertionOrder(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "flappy", "first", 40)
	save(t, store, "flappy", "second", 40)

	scores, _ := store.TopScores("flappy", 2)
	if len(scores) != 2 || scores[0].Player != "first" || scores[1].Player != "second" {
		t.Errorf("tied scores = %+v, expected first then second", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// No scores yet
	high, err := store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	save(t, store, "flappy", "ann", 100)
	save(t, store, "flappy", "bob", 300)
	save(t, store, "flappy", "ann", 200)

	high, err = store.HighScore("flappy")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	best, err := store.PlayerBest("flappy", "ann")
	if err != nil {
		t.Fatalf("PlayerBest() failed: %v", err)
	}
	if best != 200 {
		t.Errorf("PlayerBest(ann) = %d, expected 200", best)
	}
	if best, _ := store.PlayerBest("flappy", "nobody"); best != 0 {
		t.Errorf("PlayerBest(nobody) = %d, expected 0", best)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("flappy")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	save(t, store, "flappy", "ann", 10)
	save(t, store, "flappy", "ann", 30)

	stats, err := store.Stats("flappy")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 30 || stats.TotalScore != 40 {
		t.Errorf("stats = %+v, expected 2 games, high 30, total 40", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %f, expected 20", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "flappy", "ann", 100)
	save(t, store, "flappy", "ann", 200)
	save(t, store, "other", "ann", 300)

	n, err := store.ClearScores("flappy")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ClearScores() removed %d, expected 2", n)
	}

	flappyScores, _ := store.TopScores("flappy", 10)
	if len(flappyScores) != 0 {
		t.Errorf("Expected 0 flappy scores after clear, got %d", len(flappyScores))
	}

	otherScores, _ := store.TopScores("other", 10)
	if len(otherScores) != 1 {
		t.Errorf("Other game's scores should not be affected by clearing flappy")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		save(t, store, "test", "p", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Fatalf("Expected 20 scores, got %d", len(scores))
	}
	if scores[0].Score != 0 || scores[19].Score != 190 {
		t.Errorf("AllScores() should be in insertion order, got %d..%d", scores[0].Score, scores[19].Score)
	}
}

func TestStoreExportCSV(t *testing.T) {
	store := openTestStore(t)

	save(t, store, "flappy", "ann", 12)
	save(t, store, "flappy", "bob", 34)
	save(t, store, "other", "eve", 99)

	var buf bytes.Buffer
	n, err := store.ExportCSV(&buf, "flappy")
	if err != nil {
		t.Fatalf("ExportCSV() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("ExportCSV() wrote %d records, expected 2", n)
	}

	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("exported csv does not parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d rows", len(rows))
	}

	header := []string{"id", "game", "player", "score", "ticks", "played_at"}
	for i, h := range header {
		if rows[0][i] != h {
			t.Errorf("header[%d] = %q, expected %q", i, rows[0][i], h)
		}
	}

	if rows[1][2] != "ann" || rows[1][3] != "12" {
		t.Errorf("first row = %v, expected ann with 12", rows[1])
	}
	if rows[2][2] != "bob" || rows[2][3] != "34" {
		t.Errorf("second row = %v, expected bob with 34", rows[2])
	}
	if ticks, _ := strconv.Atoi(rows[2][4]); ticks != 35 {
		t.Errorf("second row ticks = %q, expected 35", rows[2][4])
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	got, err := ExpandPath("~/.flappy/scores.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(tmpDir, ".flappy", "scores.db"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}

	if got, _ := ExpandPath("/abs/path.db"); got != "/abs/path.db" {
		t.Errorf("ExpandPath() changed an absolute path to %q", got)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	if n := store.db.Stats().MaxOpenConnections; n != 1 {
		t.Errorf("MaxOpenConnections = %d, expected 1", n)
	}

	const sessions, rounds = 8, 10
	errs := make(chan error, sessions*rounds)
	var wg sync.WaitGroup
	for i := 0; i < sessions; i++ {
		wg.Add(1)
		go func(player string) {
			defer wg.Done()
			for r := 1; r <= rounds; r++ {
				if _, err := store.SaveScore(ScoreEntry{GameID: "flappy", Player: player, Score: r}); err != nil {
					errs <- err
				}
				if _, err := store.HighScore("flappy"); err != nil {
					errs <- err
				}
			}
		}("p" + strconv.Itoa(i))
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent access failed: %v", err)
	}
	all, err := store.AllScores("flappy")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(all) != sessions*rounds {
		t.Errorf("saved %d scores, expected %d", len(all), sessions*rounds)
	}
}
