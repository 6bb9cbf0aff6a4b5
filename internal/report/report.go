// Package report builds the persisted summary of a resolved battle and
// encodes it as gzip compressed JSON.
package report

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"fieldbattle/internal/battle"
)

var ErrEmpty = errors.New("empty report data")

// Report is what a nation gets to read about a battle after the turn.
type Report struct {
	ID        string                    `json:"id"`
	Game      battle.Game               `json:"game"`
	Location  battle.Location           `json:"location"`
	Fortress  int                       `json:"fortress"`
	Winner    battle.Winner             `json:"winner"`
	Sides     [2]SideReport             `json:"sides"`
	Records   []battle.StatisticsRecord `json:"records"`
	CreatedAt time.Time                 `json:"created_at"`
}

type SideReport struct {
	Nations     []int             `json:"nations"`
	NationNames []string          `json:"nation_names"`
	Commander   *battle.Commander `json:"commander,omitempty"`
	Battalions  int               `json:"battalions"`
	Headcount   int               `json:"headcount"`
	Fleeing     int               `json:"fleeing"`
	Casualties  float64           `json:"casualties"`
}

var (
	newID = uuid.NewString
	now   = time.Now
)

// Build summarises a processed battle. Commanders are copied, so later
// changes to the battle do not leak into the report.
func Build(b *battle.Battle, res battle.Result, nations battle.Nations) Report {
	f := b.Field()
	r := Report{
		ID:        newID(),
		Game:      f.Game,
		Location:  f.Location,
		Fortress:  f.Fortress,
		Winner:    res.Winner,
		Records:   res.Records,
		CreatedAt: now().UTC(),
	}
	for i := 0; i < 2; i++ {
		s := b.Side(i)
		sr := SideReport{
			Nations:    append([]int(nil), s.Nations...),
			Battalions: len(s.Battalions),
			Headcount:  s.Headcount(),
			Fleeing:    s.FleeingHeadcount(),
			Casualties: f.Casualties(i),
		}
		for _, n := range s.Nations {
			sr.NationNames = append(sr.NationNames, nations.Name(n))
		}
		if s.Commander != nil {
			c := *s.Commander
			sr.Commander = &c
		}
		r.Sides[i] = sr
	}
	return r
}

// Involves reports whether nation fought on either side.
func (r Report) Involves(nation int) bool {
	for _, s := range r.Sides {
		for _, n := range s.Nations {
			if n == nation {
				return true
			}
		}
	}
	return false
}

func Encode(r Report) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if err := json.NewEncoder(zw).Encode(r); err != nil {
		_ = zw.Close()
		return nil, fmt.Errorf("encode report %s: %w", r.ID, err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress report %s: %w", r.ID, err)
	}
	return buf.Bytes(), nil
}

func Decode(data []byte) (Report, error) {
	if len(data) == 0 {
		return Report{}, ErrEmpty
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return Report{}, fmt.Errorf("decompress report: %w", err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return Report{}, fmt.Errorf("decompress report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(raw, &r); err != nil {
		return Report{}, fmt.Errorf("decode report: %w", err)
	}
	return r, nil
}
