package prefabs

import (
	"testing"
)

func TestLoadPlayerSpecEmbedded(t *testing.T) {
	spec, err := LoadPlayerSpec("player.yaml")
	if err != nil {
		t.Fatalf("LoadPlayerSpec: %v", err)
	}
	if spec.Name == "" {
		t.Fatal("player prefab has no name")
	}
	if spec.Collider.Radius <= 0 || spec.Collider.Height <= 0 {
		t.Fatalf("bad collider: %+v", spec.Collider)
	}
	if spec.Tuning.TopSpeed <= 0 {
		t.Fatalf("tuning did not unmarshal: %+v", spec.Tuning)
	}
	if err := spec.Tuning.Validate(); err != nil {
		t.Fatalf("embedded tuning invalid: %v", err)
	}
}

func TestLoadWorldSpecEmbedded(t *testing.T) {
	spec, err := LoadWorldSpec("world.yaml")
	if err != nil {
		t.Fatalf("LoadWorldSpec: %v", err)
	}
	if len(spec.Walls) == 0 {
		t.Fatal("world prefab has no walls")
	}
	var triggers int
	for _, w := range spec.Walls {
		if w.Trigger {
			triggers++
		}
	}
	if triggers == 0 {
		t.Fatal("world prefab should carry at least one trigger wall")
	}
	if spec.Gravity.Y >= 0 {
		t.Fatalf("gravity should point down, got %+v", spec.Gravity)
	}
}

func TestLoadMissingPrefab(t *testing.T) {
	if _, err := LoadPlayerSpec("nope.yaml"); err == nil {
		t.Fatal("expected an error for a missing prefab")
	}
}

func TestLoadScriptEmbedded(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"bare name", "wall_run.tengo"},
		{"scripts prefix", "scripts/wall_run.tengo"},
		{"full prefix", "prefabs/scripts/wall_run.tengo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadScript(tt.path)
			if err != nil {
				t.Fatalf("LoadScript(%q): %v", tt.path, err)
			}
			if len(data) == 0 {
				t.Fatalf("LoadScript(%q) returned empty script", tt.path)
			}
		})
	}
}

func TestCleanScriptPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"wall_run.tengo", "scripts/wall_run.tengo"},
		{"scripts/wall_run.tengo", "scripts/wall_run.tengo"},
		{"prefabs/wall_run.tengo", "scripts/wall_run.tengo"},
		{"prefabs/scripts/wall_run.tengo", "scripts/wall_run.tengo"},
	}
	for _, tt := range tests {
		if got := cleanScriptPath(tt.in); got != tt.want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
