package battle

import "strings"

// Terrain is the single-letter terrain code of a battle location.
type Terrain string

const (
	TerrainArable    Terrain = "B"
	TerrainSteppe    Terrain = "S"
	TerrainDesert    Terrain = "D"
	TerrainHills     Terrain = "H"
	TerrainMountains Terrain = "M"
	TerrainForest    Terrain = "F"
	TerrainJungle    Terrain = "J"
	TerrainSwamp     Terrain = "W"
)

type terrainTable map[Terrain]float64

// Factors not listed in a table are 1.0, which covers open ground.
var (
	lineInfantryTerrain = terrainTable{
		TerrainDesert:    0.9,
		TerrainHills:     0.9,
		TerrainMountains: 0.7,
		TerrainForest:    0.6,
		TerrainJungle:    0.5,
		TerrainSwamp:     0.5,
	}
	skirmisherTerrain = terrainTable{
		TerrainDesert:    0.9,
		TerrainMountains: 0.85,
		TerrainForest:    0.75,
		TerrainJungle:    0.7,
		TerrainSwamp:     0.65,
	}
	artilleryTerrain = terrainTable{
		TerrainDesert:    0.8,
		TerrainHills:     0.7,
		TerrainMountains: 0.4,
		TerrainForest:    0.3,
		TerrainJungle:    0.15,
		TerrainSwamp:     0.15,
	}
	mountedArtilleryTerrain = terrainTable{
		TerrainDesert:    0.85,
		TerrainHills:     0.65,
		TerrainMountains: 0.35,
		TerrainForest:    0.25,
		TerrainJungle:    0.15,
		TerrainSwamp:     0.15,
	}
	lightCavalryTerrain = terrainTable{
		TerrainHills:     0.8,
		TerrainMountains: 0.5,
		TerrainForest:    0.5,
		TerrainJungle:    0.4,
		TerrainSwamp:     0.35,
	}
	cavalryTerrain = terrainTable{
		TerrainDesert:    0.9,
		TerrainHills:     0.7,
		TerrainMountains: 0.4,
		TerrainForest:    0.4,
		TerrainJungle:    0.3,
		TerrainSwamp:     0.3,
	}
)

func (t terrainTable) factor(code Terrain) float64 {
	if f, ok := t[code]; ok {
		return f
	}
	return 1.0
}

// TerrainFactor is the multiplier applied to a battalion's combat points on the
// given terrain.
func TerrainFactor(code Terrain, b *Battalion) float64 {
	if b == nil {
		return 1.0
	}
	switch b.Arm() {
	case ArmInfantry:
		if b.IsSkirmisher() {
			return skirmisherTerrain.factor(code)
		}
		return lineInfantryTerrain.factor(code)
	case ArmArtillery:
		return artilleryTerrain.factor(code)
	case ArmMountedArtillery:
		return mountedArtilleryTerrain.factor(code)
	case ArmCavalry:
		if b.IsLightCavalry() {
			return lightCavalryTerrain.factor(code)
		}
		return cavalryTerrain.factor(code)
	}
	return 1.0
}

// Region is the continent a location belongs to.
type Region int

const (
	RegionEurope Region = iota + 1
	RegionCaribbean
	RegionIndies
	RegionAfrica
)

// Sphere classifies a location relative to a nation.
type Sphere int

const (
	SphereHome       Sphere = 1
	SphereInfluenced Sphere = 2
	SphereForeign    Sphere = 3
)

// spheresRegion is the only region where political spheres apply.
const spheresRegion = RegionEurope

// SphereOf classifies loc for the nation.
func SphereOf(loc Location, nation Nation) Sphere {
	if loc.Region != spheresRegion {
		return SphereHome
	}
	code := strings.ToUpper(strings.TrimSpace(loc.SphereCode))
	if code == "" || code == strings.ToUpper(nation.Code) {
		return SphereHome
	}
	if strings.Contains(strings.ToUpper(nation.Sphere), code) {
		return SphereInfluenced
	}
	return SphereForeign
}
