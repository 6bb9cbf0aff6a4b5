package sqlite

import (
	"context"
	"log/slog"

	"fieldbattle/internal/battle"
)

// Ledger adapts the store to battle.Ledger for one game. Battle bookkeeping
// is fire and forget, so failures are logged and dropped.
type Ledger struct {
	ctx   context.Context
	store *Store
	game  battle.Game
	log   *slog.Logger
}

func (s *Store) Ledger(ctx context.Context, g battle.Game, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{ctx: ctx, store: s, game: g, log: log.With("game", g.ID, "turn", g.Turn)}
}

var _ battle.Ledger = (*Ledger)(nil)

func (l *Ledger) warn(op string, nation int, err error) {
	if err != nil {
		l.log.Warn("ledger write failed", "op", op, "nation", nation, "error", err)
	}
}

func (l *Ledger) ChangeVictoryPoints(nation, delta int, reason string) {
	l.warn("victory_points", nation, l.store.ChangeVictoryPoints(l.ctx, l.game, nation, delta, reason))
}

func (l *Ledger) ChangeProfile(nation int, key battle.ProfileKey, delta int) {
	l.warn("profile", nation, l.store.ChangeProfile(l.ctx, l.game.ID, nation, key, delta))
}

func (l *Ledger) News(nation int, kind battle.NewsKind, text string) {
	l.warn("news", nation, l.store.AddNews(l.ctx, News{
		GameID: l.game.ID, Turn: l.game.Turn, Nation: nation, Kind: kind, Body: text,
	}))
}

func (l *Ledger) PairNews(nation, other int, kind battle.NewsKind, text, otherText string) {
	l.warn("news", nation, l.store.AddNews(l.ctx, News{
		GameID: l.game.ID, Turn: l.game.Turn, Nation: nation, Other: other, Kind: kind, Body: text,
	}))
	l.warn("news", other, l.store.AddNews(l.ctx, News{
		GameID: l.game.ID, Turn: l.game.Turn, Nation: other, Other: nation, Kind: kind, Body: otherText,
	}))
}

func (l *Ledger) GlobalNews(kind battle.NewsKind, text string) {
	l.warn("news", 0, l.store.AddNews(l.ctx, News{
		GameID: l.game.ID, Turn: l.game.Turn, Kind: kind, Body: text, Global: true,
	}))
}

func (l *Ledger) CheckAchievements(nation int, key battle.ProfileKey) {
	granted, err := l.store.CheckAchievements(l.ctx, l.game.ID, nation, key)
	l.warn("achievements", nation, err)
	for _, a := range granted {
		l.log.Info("achievement granted", "nation", nation, "key", string(a.Key), "level", a.Level)
	}
}

func (l *Ledger) ReturnPopulation(nation, amount int) {
	l.warn("population", nation, l.store.ReturnPopulation(l.ctx, l.game.ID, nation, amount))
}
