// Package sqlite keeps battle bookkeeping and reports in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"fieldbattle/internal/battle"
	"fieldbattle/internal/storage/sqlite/migrations"
	"fieldbattle/internal/storage/sqlitemigrate"
)

var (
	ErrPathRequired  = errors.New("storage path is required")
	ErrNotConfigured = errors.New("storage is not configured")
	ErrNotFound      = errors.New("record not found")
)

// Store persists victory points, profile counters, news, achievements, the
// population pool and battle reports.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

func toMillis(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMillis(v int64) time.Time { return time.UnixMilli(v).UTC() }

// Open opens the database at path and applies the embedded migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite has a single writer; batch runs share this handle.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(ctx, db, migrations.FS, ""); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ready(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.db == nil {
		return ErrNotConfigured
	}
	return nil
}

func (s *Store) ChangeVictoryPoints(ctx context.Context, g battle.Game, nation, delta int, reason string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO victory_points (game_id, turn, nation_id, delta, reason, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		g.ID, g.Turn, nation, delta, reason, toMillis(s.now()))
	if err != nil {
		return fmt.Errorf("insert victory points: %w", err)
	}
	return nil
}

// VictoryPoints sums every change a nation received in a game.
func (s *Store) VictoryPoints(ctx context.Context, gameID, nation int) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(delta), 0) FROM victory_points WHERE game_id = ? AND nation_id = ?`,
		gameID, nation).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum victory points: %w", err)
	}
	return total, nil
}

func (s *Store) ChangeProfile(ctx context.Context, gameID, nation int, key battle.ProfileKey, delta int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile_counters (game_id, nation_id, counter, value, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (game_id, nation_id, counter)
		 DO UPDATE SET value = value + excluded.value, updated_at = excluded.updated_at`,
		gameID, nation, string(key), delta, toMillis(s.now()))
	if err != nil {
		return fmt.Errorf("update profile %s: %w", key, err)
	}
	return nil
}

func (s *Store) Profile(ctx context.Context, gameID, nation int, key battle.ProfileKey) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var v int
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM profile_counters WHERE game_id = ? AND nation_id = ? AND counter = ?`,
		gameID, nation, string(key)).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read profile %s: %w", key, err)
	}
	return v, nil
}

// News is one entry of a nation's news feed. Global entries have nation 0.
type News struct {
	ID        int64
	GameID    int
	Turn      int
	Nation    int
	Other     int
	Kind      battle.NewsKind
	Body      string
	Global    bool
	CreatedAt time.Time
}

func (s *Store) AddNews(ctx context.Context, n News) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO news (game_id, turn, nation_id, other_nation_id, kind, body, global, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		n.GameID, n.Turn, n.Nation, n.Other, string(n.Kind), n.Body, n.Global, toMillis(n.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert news: %w", err)
	}
	return nil
}

// ListNews returns a nation's own news and the global news of a game,
// oldest first.
func (s *Store) ListNews(ctx context.Context, gameID, nation int) ([]News, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, turn, nation_id, other_nation_id, kind, body, global, created_at
		 FROM news WHERE game_id = ? AND (nation_id = ? OR global = 1)
		 ORDER BY id`,
		gameID, nation)
	if err != nil {
		return nil, fmt.Errorf("list news: %w", err)
	}
	defer rows.Close()

	var out []News
	for rows.Next() {
		var n News
		var kind string
		var created int64
		if err := rows.Scan(&n.ID, &n.GameID, &n.Turn, &n.Nation, &n.Other, &kind, &n.Body, &n.Global, &created); err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		n.Kind = battle.NewsKind(kind)
		n.CreatedAt = fromMillis(created)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate news: %w", err)
	}
	return out, nil
}

func (s *Store) ReturnPopulation(ctx context.Context, gameID, nation, amount int) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO population_pool (game_id, nation_id, amount, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (game_id, nation_id)
		 DO UPDATE SET amount = amount + excluded.amount, updated_at = excluded.updated_at`,
		gameID, nation, amount, toMillis(s.now()))
	if err != nil {
		return fmt.Errorf("update population pool: %w", err)
	}
	return nil
}

func (s *Store) Population(ctx context.Context, gameID, nation int) (int, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	var v int
	err := s.db.QueryRowContext(ctx,
		`SELECT amount FROM population_pool WHERE game_id = ? AND nation_id = ?`,
		gameID, nation).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read population pool: %w", err)
	}
	return v, nil
}
