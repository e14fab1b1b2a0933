package writer

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/stats"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

func openTestDB(t *testing.T) *SQLWriter {
	t.Helper()
	db, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "season.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLWriter(db, DriverSQLite)
}

func testSnapshot(runID string) *models.SeasonSnapshot {
	s := stats.NewStore()
	s.MergePitching("P9", models.PitchingLine{G: 1, GS: 1, Outs: 27, BF: 31})

	var slots models.FieldingSlots
	slots.Set(models.Catcher, models.FieldingLine{G: 1, Outs: 27, PO: 9})
	slots.Set(models.FirstBase, models.FieldingLine{G: 1, Outs: 3, PO: 1})
	s.MergeBatting("P2", models.BattingLine{G: 1, AB: 4, H: 2, B2: 1}, slots)
	s.MergeBatting("P1", models.BattingLine{G: 1, AB: 3, BB: 1}, models.FieldingSlots{})

	return &models.SeasonSnapshot{
		RunID:          runID,
		Season:         "2024",
		GamesProcessed: 1,
		GeneratedAt:    time.Date(2024, 10, 1, 0, 0, 0, 0, time.UTC),
		Players:        s.Snapshot(),
	}
}

func TestExport_WritesVisibleRowsInOrder(t *testing.T) {
	w := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, w.Export(ctx, testSnapshot("run-1")))

	rows, err := w.ReadBatting(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "P2", rows[0].PlayerID)
	assert.Equal(t, 2, rows[0].H)
	assert.Equal(t, 1, rows[0].B2)
	assert.Equal(t, "P1", rows[1].PlayerID)
	assert.Equal(t, 1, rows[1].BB)

	n, err := w.CountRows(ctx, "season_pitching", "run-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = w.CountRows(ctx, "season_fielding", "run-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestExport_SeparateRuns(t *testing.T) {
	w := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, w.Export(ctx, testSnapshot("run-1")))
	require.NoError(t, w.Export(ctx, testSnapshot("run-2")))

	rows, err := w.ReadBatting(ctx, "run-2")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestExport_SameRunTwiceFails(t *testing.T) {
	w := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, w.Export(ctx, testSnapshot("run-1")))
	assert.Error(t, w.Export(ctx, testSnapshot("run-1")))

	// the failed transaction left the first run intact
	rows, err := w.ReadBatting(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestCountRows_UnknownTable(t *testing.T) {
	w := openTestDB(t)
	_, err := w.CountRows(context.Background(), "users", "run-1")
	assert.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "dsn")
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	pg := NewSQLWriter(nil, DriverPostgres)
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2)", pg.insertQuery("t", []string{"a", "b"}))
	assert.False(t, pg.IsEnabled())

	lite := NewSQLWriter(nil, DriverSQLite)
	assert.Equal(t, "INSERT INTO t (a, b) VALUES (?, ?)", lite.insertQuery("t", []string{"a", "b"}))
}
