package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var specFS embed.FS

//go:embed scripts/*.tengo
var scriptFS embed.FS

// Load returns a prefab file by name, preferring an editable disk copy
// under prefabs/ over the embedded default.
func Load(name string) ([]byte, error) {
	return read(specFS, cleanPrefabPath(name))
}

// LoadScript returns a scenario script by name, with the same disk
// override as Load. Accepts bare names, scripts/ and prefabs/ prefixed
// paths interchangeably.
func LoadScript(name string) ([]byte, error) {
	return read(scriptFS, cleanScriptPath(name))
}

func read(embedded embed.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(clean))); err == nil {
		return data, nil
	}
	return embedded.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	return strings.TrimPrefix(filepath.ToSlash(path), "prefabs/")
}

func cleanScriptPath(path string) string {
	s := strings.TrimPrefix(filepath.ToSlash(path), "prefabs/")
	return "scripts/" + strings.TrimPrefix(s, "scripts/")
}
