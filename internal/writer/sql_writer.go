package writer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/XavierBriggs/fortuna/services/season-stats/internal/report"
	"github.com/XavierBriggs/fortuna/services/season-stats/pkg/models"
)

// Supported database/sql driver names
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open opens and pings a database for the SQL sink
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("unsupported sql driver: %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", driver, err)
	}

	if driver == DriverSQLite {
		// one writer; sqlite serializes anyway
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", driver, err)
	}
	return db, nil
}

var battingColumns = []string{
	"run_id", "season", "seq", "player_id",
	"g", "ab", "r", "h", "b2", "b3", "hr", "bi", "bb", "ibb", "so", "gdp", "hp", "sh", "sf", "sb", "cs",
}

var pitchingColumns = []string{
	"run_id", "season", "seq", "player_id",
	"g", "gs", "cg", "sho", "gf", "outs", "r", "er", "h", "hr", "bb", "so", "wp", "bk", "bf",
}

var fieldingColumns = []string{
	"run_id", "season", "seq", "player_id", "pos",
	"g", "outs", "bip", "bf", "po", "a", "e", "dp", "tp",
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS season_runs (
		run_id TEXT PRIMARY KEY,
		season TEXT NOT NULL,
		games_processed INTEGER NOT NULL,
		players INTEGER NOT NULL,
		generated_at TEXT NOT NULL
	)`,
	createStatsTable("season_batting", battingColumns, "run_id, player_id"),
	createStatsTable("season_pitching", pitchingColumns, "run_id, player_id"),
	createStatsTable("season_fielding", fieldingColumns, "run_id, player_id, pos"),
}

func createStatsTable(table string, columns []string, key string) string {
	defs := make([]string, 0, len(columns)+1)
	for _, c := range columns {
		typ := "INTEGER NOT NULL"
		if c == "run_id" || c == "season" || c == "player_id" {
			typ = "TEXT NOT NULL"
		}
		defs = append(defs, c+" "+typ)
	}
	defs = append(defs, "PRIMARY KEY ("+key+")")
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t\t%s\n\t)", table, strings.Join(defs, ",\n\t\t"))
}

// SQLWriter exports finished seasons to postgres or sqlite
type SQLWriter struct {
	db     *sql.DB
	driver string
}

// NewSQLWriter creates a new SQL writer. A nil db disables the sink.
func NewSQLWriter(db *sql.DB, driver string) *SQLWriter {
	return &SQLWriter{
		db:     db,
		driver: driver,
	}
}

func (w *SQLWriter) Name() string {
	return "sql"
}

func (w *SQLWriter) IsEnabled() bool {
	return w.db != nil
}

// EnsureSchema creates the export tables if they do not exist
func (w *SQLWriter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := w.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Export ensures the schema and writes the season
func (w *SQLWriter) Export(ctx context.Context, snapshot *models.SeasonSnapshot) error {
	if err := w.EnsureSchema(ctx); err != nil {
		return err
	}
	return w.WriteSeason(ctx, snapshot)
}

// WriteSeason writes one run's visible table rows in a single transaction.
// seq preserves first-seen order.
func (w *SQLWriter) WriteSeason(ctx context.Context, snapshot *models.SeasonSnapshot) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if commit doesn't happen

	_, err = tx.ExecContext(ctx,
		w.insertQuery("season_runs", []string{"run_id", "season", "games_processed", "players", "generated_at"}),
		snapshot.RunID,
		snapshot.Season,
		snapshot.GamesProcessed,
		len(snapshot.Players),
		snapshot.GeneratedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	batting, err := tx.PrepareContext(ctx, w.insertQuery("season_batting", battingColumns))
	if err != nil {
		return fmt.Errorf("failed to prepare batting insert: %w", err)
	}
	defer batting.Close()

	pitching, err := tx.PrepareContext(ctx, w.insertQuery("season_pitching", pitchingColumns))
	if err != nil {
		return fmt.Errorf("failed to prepare pitching insert: %w", err)
	}
	defer pitching.Close()

	fielding, err := tx.PrepareContext(ctx, w.insertQuery("season_fielding", fieldingColumns))
	if err != nil {
		return fmt.Errorf("failed to prepare fielding insert: %w", err)
	}
	defer fielding.Close()

	for seq := range snapshot.Players {
		p := &snapshot.Players[seq]

		if report.ShowBatting(p) {
			b := p.Batting
			_, err = batting.ExecContext(ctx,
				snapshot.RunID, snapshot.Season, seq, p.PlayerID,
				b.G, b.AB, b.R, b.H, b.B2, b.B3, b.HR, b.BI, b.BB, b.IBB, b.SO, b.GDP, b.HP, b.SH, b.SF, b.SB, b.CS,
			)
			if err != nil {
				return fmt.Errorf("failed to insert batting for %s: %w", p.PlayerID, err)
			}
		}

		if report.ShowPitching(p) {
			pt := p.Pitching
			_, err = pitching.ExecContext(ctx,
				snapshot.RunID, snapshot.Season, seq, p.PlayerID,
				pt.G, pt.GS, pt.CG, pt.SHO, pt.GF, pt.Outs, pt.R, pt.ER, pt.H, pt.HR, pt.BB, pt.SO, pt.WP, pt.BK, pt.BF,
			)
			if err != nil {
				return fmt.Errorf("failed to insert pitching for %s: %w", p.PlayerID, err)
			}
		}

		for _, pos := range models.Positions() {
			if !report.ShowFielding(p, pos) {
				continue
			}
			f := p.FieldingAt(pos)
			_, err = fielding.ExecContext(ctx,
				snapshot.RunID, snapshot.Season, seq, p.PlayerID, int(pos),
				f.G, f.Outs, f.BIP, f.BF, f.PO, f.A, f.E, f.DP, f.TP,
			)
			if err != nil {
				return fmt.Errorf("failed to insert fielding for %s at %s: %w", p.PlayerID, pos.Label(), err)
			}
		}
	}

	// Commit transaction
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ReadBatting retrieves a run's batting rows in first-seen order
func (w *SQLWriter) ReadBatting(ctx context.Context, runID string) ([]report.BattingRow, error) {
	query := fmt.Sprintf(`
		SELECT player_id, g, ab, r, h, b2, b3, hr, bi, bb, ibb, so, gdp, hp, sh, sf, sb, cs
		FROM season_batting
		WHERE run_id = %s
		ORDER BY seq
	`, w.placeholder(1))

	rows, err := w.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batting: %w", err)
	}
	defer rows.Close()

	var out []report.BattingRow
	for rows.Next() {
		var r report.BattingRow
		err := rows.Scan(&r.PlayerID,
			&r.G, &r.AB, &r.R, &r.H, &r.B2, &r.B3, &r.HR, &r.BI,
			&r.BB, &r.IBB, &r.SO, &r.GDP, &r.HP, &r.SH, &r.SF, &r.SB, &r.CS)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batting row: %w", err)
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

// CountRows returns the number of rows a run wrote to table
func (w *SQLWriter) CountRows(ctx context.Context, table, runID string) (int, error) {
	switch table {
	case "season_batting", "season_pitching", "season_fielding":
	default:
		return 0, fmt.Errorf("unknown table: %s", table)
	}

	var n int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE run_id = %s", table, w.placeholder(1))
	if err := w.db.QueryRowContext(ctx, query, runID).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

func (w *SQLWriter) insertQuery(table string, columns []string) string {
	ph := make([]string, len(columns))
	for i := range columns {
		ph[i] = w.placeholder(i + 1)
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(ph, ", "))
}

// placeholder returns the n-th bind parameter for the driver's dialect
func (w *SQLWriter) placeholder(n int) string {
	if w.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}
