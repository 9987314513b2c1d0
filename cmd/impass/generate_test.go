package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCollectFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "notes.txt", "skip\n")
	writeFile(t, dir, "sub/b.go", "package b\n")
	writeFile(t, dir, "vendor/dep/c.go", "package c\n")
	writeFile(t, dir, "_skip/d.go", "package d\n")
	writeFile(t, dir, ".hidden/e.go", "package e\n")

	files, err := collectFiles([]string{dir}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %v", files)
	}
	for _, f := range files {
		base := filepath.Base(f)
		if base != "a.go" && base != "b.go" {
			t.Errorf("unexpected file %s", f)
		}
	}
}

func TestCollectFiles_Exclude(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.go", "package a\n")
	writeFile(t, dir, "a_test.go", "package a\n")

	files, err := collectFiles([]string{dir}, []string{"*_test.go"})
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 1 || filepath.Base(files[0]) != "a.go" {
		t.Errorf("expected only a.go, got %v", files)
	}
}

func TestCollectFiles_ExplicitFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "single.go", "package a\n")

	files, err := collectFiles([]string{path, path}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("duplicate arguments must be deduplicated, got %v", files)
	}
}

func TestExcluded(t *testing.T) {
	cases := []struct {
		path    string
		exclude []string
		want    bool
	}{
		{"pkg/gen.go", []string{"gen.go"}, true},
		{"pkg/gen.go", []string{"pkg/*.go"}, true},
		{"pkg/gen.go", []string{"cmd/*.go"}, false},
		{"pkg/gen.go", nil, false},
	}
	for _, tc := range cases {
		if got := excluded(tc.path, tc.exclude); got != tc.want {
			t.Errorf("excluded(%q, %v) = %v, want %v", tc.path, tc.exclude, got, tc.want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, configName, `
[generate]
jobs = 3
exclude = ["*_gen.go"]

[output]
color = "off"
`)

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Generate.Jobs != 3 {
		t.Errorf("expected jobs=3, got %d", cfg.Generate.Jobs)
	}
	if len(cfg.Generate.Exclude) != 1 || cfg.Generate.Exclude[0] != "*_gen.go" {
		t.Errorf("unexpected exclude %v", cfg.Generate.Exclude)
	}
	if cfg.Output.Color != "off" {
		t.Errorf("expected color=off, got %q", cfg.Output.Color)
	}
}

func TestLoadConfig_MissingExplicitPath(t *testing.T) {
	if _, err := loadConfig(filepath.Join(t.TempDir(), configName)); err == nil {
		t.Error("an explicitly named but missing config must error")
	}
}

func TestLoadConfig_EmptyFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, configName, "")

	cfg, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Color != "auto" {
		t.Errorf("expected default color auto, got %q", cfg.Output.Color)
	}
	if cfg.Generate.Jobs != 0 {
		t.Errorf("expected default jobs 0, got %d", cfg.Generate.Jobs)
	}
}
