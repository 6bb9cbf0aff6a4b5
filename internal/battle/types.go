package battle

import "sort"

// Arm is the broad troop category a battalion fights as.
type Arm int

const (
	ArmInfantry Arm = iota
	ArmCavalry
	ArmArtillery
	ArmMountedArtillery
	armCount
)

func (a Arm) String() string {
	switch a {
	case ArmInfantry:
		return "infantry"
	case ArmCavalry:
		return "cavalry"
	case ArmArtillery:
		return "artillery"
	case ArmMountedArtillery:
		return "mounted_artillery"
	default:
		return "unknown"
	}
}

const (
	MaxHeadcount         = 1000
	MinExperience        = 1
	DefaultMaxExperience = 5
)

type TroopType struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Arm           Arm    `json:"arm"`
	Skirmisher    bool   `json:"skirmisher,omitempty"`
	LightCavalry  bool   `json:"light_cavalry,omitempty"`
	MaxExperience int    `json:"max_experience"`
	Nation        int    `json:"nation"`
}

type Battalion struct {
	ID           int        `json:"id"`
	Type         *TroopType `json:"type,omitempty"`
	CorpsID      int        `json:"corps_id,omitempty"`
	Headcount    int        `json:"headcount"`
	Experience   int        `json:"experience"`
	Fleeing      bool       `json:"fleeing,omitempty"`
	HasLost      bool       `json:"has_lost,omitempty"`
	Participated bool       `json:"participated,omitempty"`

	// Initial is the headcount the battalion entered the battle with.
	Initial int `json:"initial"`
}

// Arm reports the battalion's arm. Battalions without a usable type are
// tallied as line infantry.
func (b *Battalion) Arm() Arm {
	if b.Type == nil || b.Type.Arm < 0 || b.Type.Arm >= armCount {
		return ArmInfantry
	}
	return b.Type.Arm
}

// Nation returns the owning nation id, 0 when the type is unknown.
func (b *Battalion) Nation() int {
	if b.Type == nil {
		return 0
	}
	return b.Type.Nation
}

// ExperienceCap is the highest experience the battalion may reach.
func (b *Battalion) ExperienceCap() int {
	limit := DefaultMaxExperience
	if b.Type != nil && b.Type.MaxExperience > 0 {
		limit = b.Type.MaxExperience
	}
	return limit + 2
}

func (b *Battalion) IsLightCavalry() bool {
	return b.Type != nil && b.Type.Arm == ArmCavalry && b.Type.LightCavalry
}

func (b *Battalion) IsSkirmisher() bool {
	return b.Type != nil && b.Type.Arm == ArmInfantry && b.Type.Skirmisher
}

// Casualties returns the men lost since the battle started.
func (b *Battalion) Casualties() int {
	if b.Initial <= b.Headcount {
		return 0
	}
	return b.Initial - b.Headcount
}

// normalize clamps the battalion into the ranges a battle expects.
func (b *Battalion) normalize() {
	b.Fleeing = false
	b.Headcount = clamp(b.Headcount, 0, MaxHeadcount)
	b.Experience = clamp(b.Experience, MinExperience, b.ExperienceCap())
	b.Initial = b.Headcount
}

// Nation describes a playable nation as far as battles care.
type Nation struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// Code is the nation's political sphere code.
	Code string `json:"code"`
	// Sphere lists the sphere codes the nation claims as influenced.
	Sphere       string `json:"sphere"`
	Militaristic bool   `json:"militaristic,omitempty"`
}

// Nations indexes the nation catalogue by id.
type Nations map[int]Nation

// Name returns the display name for id, or a generic label when unknown.
func (n Nations) Name(id int) string {
	if nat, ok := n[id]; ok && nat.Name != "" {
		return nat.Name
	}
	return "an unknown nation"
}

func (n Nations) Militaristic(id int) bool {
	return n[id].Militaristic
}

type Rank struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Strength      int    `json:"strength"`
	MaxCapability int    `json:"max_capability"`
}

// RankTable holds ranks ordered from lowest to highest.
type RankTable []Rank

func (t RankTable) index(r *Rank) int {
	if r == nil {
		return -1
	}
	for i := range t {
		if t[i].ID == r.ID {
			return i
		}
	}
	return -1
}

// IsTop reports whether r is the highest rank of the table.
func (t RankTable) IsTop(r *Rank) bool {
	i := t.index(r)
	return i >= 0 && i == len(t)-1
}

// Next returns the rank above r, or nil when r is unknown or already top.
func (t RankTable) Next(r *Rank) *Rank {
	i := t.index(r)
	if i < 0 || i+1 >= len(t) {
		return nil
	}
	next := t[i+1]
	return &next
}

// ByID returns the rank with the given id.
func (t RankTable) ByID(id int) *Rank {
	for i := range t {
		if t[i].ID == id {
			r := t[i]
			return &r
		}
	}
	return nil
}

type Commander struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Nation     int    `json:"nation"`
	Rank       *Rank  `json:"rank,omitempty"`
	Capability int    `json:"capability"`
	Strength   int    `json:"strength"`
	Dead       bool   `json:"dead,omitempty"`
	CapturedBy int    `json:"captured_by,omitempty"`
	ArmyID     int    `json:"army_id,omitempty"`
	CorpsID    int    `json:"corps_id,omitempty"`
	Carrier    int    `json:"carrier,omitempty"`
}

// relieve removes the commander from every command and transport.
func (c *Commander) relieve() {
	c.ArmyID = 0
	c.CorpsID = 0
	c.Carrier = 0
}

// Fortification is the degradable defensive work standing on a location.
type Fortification struct {
	Level     int `json:"level"`
	Condition int `json:"condition"`
}

type Location struct {
	X          int            `json:"x"`
	Y          int            `json:"y"`
	Region     Region         `json:"region"`
	Terrain    Terrain        `json:"terrain"`
	SphereCode string         `json:"sphere_code"`
	Fort       *Fortification `json:"fort,omitempty"`
}

// EphemeralGameID marks battles that must not touch any bookkeeping.
const EphemeralGameID = -1

type Game struct {
	ID       int    `json:"id"`
	Turn     int    `json:"turn"`
	Scenario string `json:"scenario"`
}

func (g Game) Ephemeral() bool { return g.ID < 0 }

// Side is one of the two opposing forces. Index 0 defends, index 1 attacks.
type Side struct {
	Index      int
	Battalions []*Battalion
	Commander  *Commander
	Nations    []int
	Corps      []int
}

func newSide(index int, battalions []*Battalion, cmd *Commander) *Side {
	s := &Side{Index: index}
	nations := map[int]bool{}
	corps := map[int]bool{}
	for _, b := range battalions {
		if b == nil {
			continue
		}
		b.normalize()
		s.Battalions = append(s.Battalions, b)
		if n := b.Nation(); n > 0 {
			nations[n] = true
		}
		if b.CorpsID > 0 {
			corps[b.CorpsID] = true
		}
	}
	if cmd != nil && !cmd.Dead {
		s.Commander = cmd
		if cmd.Nation > 0 {
			nations[cmd.Nation] = true
		}
	}
	s.Nations = sortedKeys(nations)
	s.Corps = sortedKeys(corps)
	return s
}

func (s *Side) HasNation(id int) bool {
	for _, n := range s.Nations {
		if n == id {
			return true
		}
	}
	return false
}

func (s *Side) Headcount() int {
	total := 0
	for _, b := range s.Battalions {
		total += b.Headcount
	}
	return total
}

// FleeingHeadcount sums the men of battalions currently fleeing.
func (s *Side) FleeingHeadcount() int {
	total := 0
	for _, b := range s.Battalions {
		if b.Fleeing {
			total += b.Headcount
		}
	}
	return total
}

// Composition tallies the side's current state.
func (s *Side) Composition() Composition {
	var c Composition
	for _, b := range s.Battalions {
		t := &c.Standing[b.Arm()]
		if b.Fleeing {
			t = &c.Fleeing[b.Arm()]
		}
		t.Battalions++
		t.Headcount += b.Headcount
	}
	return c
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func sortedKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Ints(out)
	return out
}
