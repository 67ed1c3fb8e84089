package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadFileYAML(t *testing.T) {
	d := t.TempDir()
	p := writeFile(t, d, "models.yaml", "models:\n  - name: small\n    accuracy: 60\n    cost: 1\n  - name: large\n    accuracy: 80\n    cost: 9\n")
	models, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 2 || models[0].Name != "small" || models[1].Accuracy != 80 || models[1].Cost != 9 {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestLoadFileYAMLBareList(t *testing.T) {
	d := t.TempDir()
	p := writeFile(t, d, "models.yml", "# catalog\n- name: a\n  accuracy: 1\n  cost: 2\n")
	models, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 1 || models[0].Name != "a" {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestLoadFileJSON(t *testing.T) {
	d := t.TempDir()
	p := writeFile(t, d, "models.json", `[{"name":"a","accuracy":70.5,"cost":3}]`)
	models, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 1 || models[0].Accuracy != 70.5 {
		t.Fatalf("unexpected models: %+v", models)
	}
	p2 := writeFile(t, d, "wrapped.json", `{"models":[{"name":"b","accuracy":1,"cost":1}]}`)
	models, err = LoadFile(p2)
	if err != nil || len(models) != 1 || models[0].Name != "b" {
		t.Fatalf("unexpected: %+v err=%v", models, err)
	}
}

func TestLoadFileTOML(t *testing.T) {
	d := t.TempDir()
	p := writeFile(t, d, "models.toml", "[[models]]\nname=\"t1\"\naccuracy=50.0\ncost=2.0\n\n[[models]]\nname=\"t2\"\naccuracy=90.0\ncost=7.0\n")
	models, err := LoadFile(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 2 || models[1].Name != "t2" {
		t.Fatalf("unexpected models: %+v", models)
	}
}

func TestLoadFileErrors(t *testing.T) {
	d := t.TempDir()
	if _, err := LoadFile(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected read error")
	}
	if _, err := LoadFile(writeFile(t, d, "m.txt", "x")); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := LoadFile(writeFile(t, d, "noname.json", `[{"accuracy":1,"cost":1}]`)); err == nil {
		t.Fatalf("expected empty name error")
	}
	if _, err := LoadFile(writeFile(t, d, "neg.json", `[{"name":"n","accuracy":-1,"cost":1}]`)); err == nil {
		t.Fatalf("expected negative accuracy error")
	}
}

func TestLoadDirConcatenatesInLexicalOrder(t *testing.T) {
	d := t.TempDir()
	writeFile(t, d, "b.json", `[{"name":"second","accuracy":1,"cost":1}]`)
	writeFile(t, d, "a.yaml", "- name: first\n  accuracy: 1\n  cost: 1\n")
	writeFile(t, d, "README.md", "ignored")
	models, err := Load(d)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 2 || models[0].Name != "first" || models[1].Name != "second" {
		t.Fatalf("unexpected order: %+v", models)
	}
}

func TestLoadExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, home, "cat.json", `[{"name":"h","accuracy":1,"cost":1}]`)
	models, err := Load("~/cat.json")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(models) != 1 || models[0].Name != "h" {
		t.Fatalf("unexpected: %+v", models)
	}
}
