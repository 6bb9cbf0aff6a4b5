package sqlite

import (
	"context"
	"fmt"
	"time"

	"fieldbattle/internal/battle"
)

// AchievementLevels lists the counter values at which a nation earns an
// achievement, lowest first.
var AchievementLevels = map[battle.ProfileKey][]int{
	battle.ProfileBattlesWon:       {1, 10, 50, 100},
	battle.ProfileBattlesLost:      {10, 50},
	battle.ProfileBattlesDraw:      {10},
	battle.ProfileKilledCommanders: {1, 5, 20},
	battle.ProfileFortressDefended: {1, 5},
}

type Achievement struct {
	Nation    int
	Key       battle.ProfileKey
	Level     int
	GrantedAt time.Time
}

// CheckAchievements grants every level the nation's counter has reached and
// returns the ones granted by this call.
func (s *Store) CheckAchievements(ctx context.Context, gameID, nation int, key battle.ProfileKey) ([]Achievement, error) {
	levels := AchievementLevels[key]
	if len(levels) == 0 {
		return nil, nil
	}
	value, err := s.Profile(ctx, gameID, nation, key)
	if err != nil {
		return nil, err
	}

	var granted []Achievement
	now := s.now()
	for _, level := range levels {
		if value < level {
			break
		}
		res, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO achievements (game_id, nation_id, counter, level, granted_at)
			 VALUES (?, ?, ?, ?, ?)`,
			gameID, nation, string(key), level, toMillis(now))
		if err != nil {
			return granted, fmt.Errorf("grant achievement %s/%d: %w", key, level, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			granted = append(granted, Achievement{Nation: nation, Key: key, Level: level, GrantedAt: fromMillis(toMillis(now))})
		}
	}
	return granted, nil
}

// Achievements lists what a nation has earned in a game.
func (s *Store) Achievements(ctx context.Context, gameID, nation int) ([]Achievement, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT counter, level, granted_at FROM achievements
		 WHERE game_id = ? AND nation_id = ? ORDER BY counter, level`,
		gameID, nation)
	if err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	defer rows.Close()

	var out []Achievement
	for rows.Next() {
		a := Achievement{Nation: nation}
		var key string
		var granted int64
		if err := rows.Scan(&key, &a.Level, &granted); err != nil {
			return nil, fmt.Errorf("scan achievement: %w", err)
		}
		a.Key = battle.ProfileKey(key)
		a.GrantedAt = fromMillis(granted)
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate achievements: %w", err)
	}
	return out, nil
}
