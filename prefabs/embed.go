package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Load reads a spec from ./prefabs when present, falling back to the
// embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// IsPrefab reports whether a changed file path names a spec in this package.
func IsPrefab(path string) bool {
	clean := cleanPrefabPath(filepath.Base(path))
	_, err := PrefabsFS.ReadFile(clean)
	return err == nil
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "prefabs/") {
		return strings.TrimPrefix(s, "prefabs/")
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join("prefabs", filepath.FromSlash(clean))
}
