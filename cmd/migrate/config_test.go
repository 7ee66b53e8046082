package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestMigrationsSource_EnvOverride(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "/custom/migrations")

	fsys, dir := migrationsSource()
	if fsys != nil || dir != "/custom/migrations" {
		t.Fatalf("expected MIGRATIONS_DIR override, got %v %q", fsys, dir)
	}
}

func TestMigrationsSource_Embedded(t *testing.T) {
	t.Setenv("MIGRATIONS_DIR", "")

	fsys, dir := migrationsSource()
	if fsys == nil {
		t.Fatal("expected embedded migrations")
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	if len(entries) == 0 {
		t.Fatal("expected at least one embedded migration")
	}
}

func TestLoadEnvFiles_DoesNotOverrideExistingEnv(t *testing.T) {
	tmp := t.TempDir()
	p := filepath.Join(tmp, ".env")

	if err := os.WriteFile(p, []byte("DB_DSN=from_file\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	t.Setenv("DB_DSN", "from_env")

	cwd, _ := os.Getwd()
	_ = os.Chdir(tmp)
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	loadEnvFiles()

	if got := databaseDSN(); got != "from_env" {
		t.Fatalf("expected existing env to win, got %q", got)
	}
}
