// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/tuirace/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for round results and mistaken words.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS passages (
			passage TEXT PRIMARY KEY,
			passage_len INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS passage_stats (
			round_id TEXT PRIMARY KEY,
			passage TEXT NOT NULL,
			wpm INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			highest_combo INTEGER NOT NULL,
			game_mode INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			when_played_secs INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS mistaken_words (
			word TEXT PRIMARY KEY
		);`,
		`CREATE INDEX IF NOT EXISTS idx_passage_stats_played ON passage_stats(when_played_secs);`,
		`CREATE INDEX IF NOT EXISTS idx_passage_stats_mode ON passage_stats(game_mode);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ShouldPersist reports whether results for a passage source are worth keeping.
// User supplied and fallback passages vary in content, so they are skipped.
func ShouldPersist(sourceID string) bool {
	return sourceID != model.UserInputSourceID && sourceID != model.FallbackSourceID
}

// LocalPassagePath trims the lang pack root from an absolute passage path,
// e.g. /home/u/.local/share/tuirace/lang-packs/default/1 becomes /default/1.
func LocalPassagePath(root, passagePath string) string {
	if root == "" {
		return passagePath
	}
	return strings.TrimPrefix(passagePath, strings.TrimSuffix(root, string(filepath.Separator)))
}

// InsertRound stores a finished round. Rounds on passages that should not be
// persisted are ignored and reported as not stored.
func (s *Store) InsertRound(ctx context.Context, res model.RoundResult) (stored bool, err error) {
	if !ShouldPersist(res.PassageID) {
		return false, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO passages (passage, passage_len) VALUES (?, ?)`,
		res.PassageID, res.PassageLen,
	); err != nil {
		return false, err
	}
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO passage_stats (round_id, passage, wpm, accuracy, highest_combo, game_mode, failed, when_played_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		res.PassageID,
		res.WPM,
		res.Accuracy,
		res.HighestCombo,
		res.Mode.Code(),
		boolToInt(res.Failed),
		res.PlayedAt.Unix(),
	); err != nil {
		return false, err
	}

	if err = tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

// ListResults returns stored rounds filtered by stats config, oldest first.
func (s *Store) ListResults(ctx context.Context, cfg model.StatsConfig) ([]model.ResultAggregate, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Mode != nil {
		clauses = append(clauses, "game_mode = ?")
		args = append(args, cfg.Mode.Code())
	}
	if cfg.Since != nil {
		clauses = append(clauses, "when_played_secs >= ?")
		args = append(args, cfg.Since.Unix())
	}
	query := fmt.Sprintf(`SELECT round_id, passage, wpm, accuracy, highest_combo, game_mode, failed, when_played_secs
		FROM passage_stats
		WHERE %s
		ORDER BY when_played_secs ASC, rowid ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var results []model.ResultAggregate
	for rows.Next() {
		var agg model.ResultAggregate
		var mode, failed, played int64
		if err := rows.Scan(&agg.RoundID, &agg.PassageID, &agg.WPM, &agg.Accuracy, &agg.HighestCombo, &mode, &failed, &played); err != nil {
			return nil, err
		}
		agg.Mode = model.GameModeFromCode(mode)
		agg.Failed = failed != 0
		agg.PlayedAt = time.Unix(played, 0)
		results = append(results, agg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// LoadMistakenWords returns every stored mistaken word.
func (s *Store) LoadMistakenWords(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT word FROM mistaken_words ORDER BY word ASC`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var words []string
	for rows.Next() {
		var word string
		if err := rows.Scan(&word); err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ApplyMistakenDelta adds and removes mistaken words in one transaction.
func (s *Store) ApplyMistakenDelta(ctx context.Context, delta model.MistakenDelta) (err error) {
	if delta.Empty() {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if err = execEach(ctx, tx, `INSERT OR IGNORE INTO mistaken_words (word) VALUES (?)`, delta.Added); err != nil {
		return err
	}
	if err = execEach(ctx, tx, `DELETE FROM mistaken_words WHERE word = ?`, delta.Removed); err != nil {
		return err
	}
	return tx.Commit()
}

func execEach(ctx context.Context, tx *sql.Tx, query string, words []string) error {
	if len(words) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, word := range words {
		if _, err := stmt.ExecContext(ctx, word); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
