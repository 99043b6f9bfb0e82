package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/daRealZoinks/Project-Skyscraper/locomotion"
)

// LoadSpec reads and unmarshals a yaml prefab, preferring a disk copy
// over the embedded default.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// PlayerSpec configures a controllable body: spawn transform, collision
// volume, and the full locomotion tuning block.
type PlayerSpec struct {
	Name     string            `yaml:"name"`
	Spawn    SpawnSpec         `yaml:"spawn"`
	Collider ColliderSpec      `yaml:"collider"`
	Tuning   locomotion.Tuning `yaml:"tuning"`
}

type SpawnSpec struct {
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
	Z   float64 `yaml:"z"`
	Yaw float64 `yaml:"yaw"`
}

type ColliderSpec struct {
	Radius float64 `yaml:"radius"`
	Height float64 `yaml:"height"`
}

// LoadPlayerSpec loads a player prefab and validates its tuning block
// at configuration time, not per step.
func LoadPlayerSpec(filename string) (PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec](filename)
	if err != nil {
		return PlayerSpec{}, err
	}
	if err := spec.Tuning.Validate(); err != nil {
		return PlayerSpec{}, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

// WorldSpec describes the wall plan: a flat floor plus vertical walls
// given as segments in the horizontal plane. Trigger walls are sensor
// volumes that probes see but bodies pass through.
type WorldSpec struct {
	Name        string      `yaml:"name"`
	FloorHeight float64     `yaml:"floor_height"`
	Gravity     GravitySpec `yaml:"gravity"`
	Walls       []WallSpec  `yaml:"walls"`
}

type GravitySpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type WallSpec struct {
	X1        float64 `yaml:"x1"`
	Z1        float64 `yaml:"z1"`
	X2        float64 `yaml:"x2"`
	Z2        float64 `yaml:"z2"`
	Thickness float64 `yaml:"thickness"`
	Trigger   bool    `yaml:"trigger"`
}

// LoadWorldSpec loads a world prefab.
func LoadWorldSpec(filename string) (WorldSpec, error) {
	return LoadSpec[WorldSpec](filename)
}
