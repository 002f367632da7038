package curriculum

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDirJSONAndYAML(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "one.json", `{
		"name": "JSON Curriculum",
		"description": "from json",
		"degrees": [{"title": "Degree A", "courses": []}]
	}`)
	writeFile(t, dir, "two.yaml", `
name: YAML Curriculum
description: from yaml
degrees:
  - title: Degree B
    type: certificate
    courses:
      - title: Course B1
        modules: []
`)

	curricula, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(curricula) != 2 {
		t.Fatalf("got %d curricula, want 2", len(curricula))
	}

	names := map[string]bool{}
	for _, cur := range curricula {
		names[cur.Name] = true
	}
	if !names["JSON Curriculum"] || !names["YAML Curriculum"] {
		t.Errorf("loaded names = %v", names)
	}
}

func TestLoadDirSkipsInvalid(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "good.json", `{"name":"Good","description":"d","degrees":[]}`)
	writeFile(t, dir, "bad.json", `{"name":"Bad"}`)
	writeFile(t, dir, "notes.md", `# not a curriculum`)

	curricula, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(curricula) != 1 {
		t.Fatalf("got %d curricula, want 1 (invalid and non-document files skipped)", len(curricula))
	}
	if curricula[0].Name != "Good" {
		t.Errorf("loaded %q, want Good", curricula[0].Name)
	}
}

func TestLoadDirEmpty(t *testing.T) {
	curricula, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if len(curricula) != 0 {
		t.Errorf("got %d curricula, want 0", len(curricula))
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}
