// Package store keeps the generations of a training run in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("no generation stored")

// Entry is one ranked pool member of a generation.
type Entry struct {
	Position int
	AgentID  string
	Score    float64
	Mu       float64
	Sigma    float64
	Genes    map[string]any
}

// Generation identifies a stored generation.
type Generation struct {
	ID        int64     `db:"id"`
	Iteration int       `db:"iteration"`
	CreatedAt time.Time `db:"-"`
	Created   string    `db:"created_at"`
}

type entryRow struct {
	Position  int     `db:"position"`
	AgentID   string  `db:"agent_id"`
	Score     float64 `db:"score"`
	Mu        float64 `db:"mu"`
	Sigma     float64 `db:"sigma"`
	GenesJSON string  `db:"genes_json"`
}

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		iteration INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS genomes (
		generation_id INTEGER NOT NULL REFERENCES generations(id),
		position INTEGER NOT NULL,
		agent_id TEXT NOT NULL,
		score REAL NOT NULL,
		mu REAL NOT NULL,
		sigma REAL NOT NULL,
		genes_json TEXT NOT NULL,
		PRIMARY KEY (generation_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_generations_iteration ON generations(iteration);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveGeneration stores the ranked members of one generation.
func (db *DB) SaveGeneration(ctx context.Context, iteration int, entries []Entry) (int64, error) {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "INSERT INTO generations (iteration, created_at) VALUES (?, ?)",
		iteration, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("insert generation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PreparexContext(ctx, `INSERT INTO genomes
		(generation_id, position, agent_id, score, mu, sigma, genes_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, e := range entries {
		genes, err := json.Marshal(e.Genes)
		if err != nil {
			return 0, fmt.Errorf("encode genes of %s: %w", e.AgentID, err)
		}
		if _, err := stmt.ExecContext(ctx, id, e.Position, e.AgentID, e.Score, e.Mu, e.Sigma, string(genes)); err != nil {
			return 0, fmt.Errorf("insert genome %s: %w", e.AgentID, err)
		}
	}

	return id, tx.Commit()
}

// LatestGeneration returns the most recently stored generation and its
// members by position.
func (db *DB) LatestGeneration(ctx context.Context) (Generation, []Entry, error) {
	var gen Generation
	err := db.conn.GetContext(ctx, &gen, "SELECT id, iteration, created_at FROM generations ORDER BY id DESC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return Generation{}, nil, ErrNotFound
	}
	if err != nil {
		return Generation{}, nil, err
	}
	if gen.CreatedAt, err = time.Parse(time.RFC3339Nano, gen.Created); err != nil {
		return Generation{}, nil, fmt.Errorf("generation %d created_at: %w", gen.ID, err)
	}

	entries, err := db.Entries(ctx, gen.ID)
	return gen, entries, err
}

// Entries returns the members of a stored generation by position.
func (db *DB) Entries(ctx context.Context, generationID int64) ([]Entry, error) {
	var rows []entryRow
	err := db.conn.SelectContext(ctx, &rows, `SELECT position, agent_id, score, mu, sigma, genes_json
		FROM genomes WHERE generation_id = ? ORDER BY position`, generationID)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, len(rows))
	for i, row := range rows {
		var genes map[string]any
		if err := json.Unmarshal([]byte(row.GenesJSON), &genes); err != nil {
			return nil, fmt.Errorf("decode genes of %s: %w", row.AgentID, err)
		}
		entries[i] = Entry{
			Position: row.Position,
			AgentID:  row.AgentID,
			Score:    row.Score,
			Mu:       row.Mu,
			Sigma:    row.Sigma,
			Genes:    genes,
		}
	}
	return entries, nil
}

// Genes returns the gene maps of the entries in order.
func Genes(entries []Entry) []map[string]any {
	genes := make([]map[string]any, len(entries))
	for i, e := range entries {
		genes[i] = e.Genes
	}
	return genes
}
