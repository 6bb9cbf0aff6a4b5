package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Report is a stored battle report. Data holds the encoded report.
type Report struct {
	ID        string
	GameID    int
	Turn      int
	X, Y      int
	Winner    int
	Data      []byte
	CreatedAt time.Time
}

func (s *Store) SaveReport(ctx context.Context, r Report) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(r.ID) == "" {
		return fmt.Errorf("report id is required")
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO battle_reports (id, game_id, turn, x, y, winner, data, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.GameID, r.Turn, r.X, r.Y, r.Winner, r.Data, toMillis(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert report %s: %w", r.ID, err)
	}
	return nil
}

func (s *Store) LoadReport(ctx context.Context, id string) (Report, error) {
	if err := s.ready(ctx); err != nil {
		return Report{}, err
	}
	r := Report{ID: id}
	var created int64
	err := s.db.QueryRowContext(ctx,
		`SELECT game_id, turn, x, y, winner, data, created_at FROM battle_reports WHERE id = ?`,
		id).Scan(&r.GameID, &r.Turn, &r.X, &r.Y, &r.Winner, &r.Data, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return Report{}, fmt.Errorf("report %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Report{}, fmt.Errorf("load report %s: %w", id, err)
	}
	r.CreatedAt = fromMillis(created)
	return r, nil
}

// ListReports returns the reports of a game turn without their data.
func (s *Store) ListReports(ctx context.Context, gameID, turn int) ([]Report, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, x, y, winner, created_at FROM battle_reports
		 WHERE game_id = ? AND turn = ? ORDER BY created_at, id`,
		gameID, turn)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		r := Report{GameID: gameID, Turn: turn}
		var created int64
		if err := rows.Scan(&r.ID, &r.X, &r.Y, &r.Winner, &created); err != nil {
			return nil, fmt.Errorf("scan report: %w", err)
		}
		r.CreatedAt = fromMillis(created)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}
