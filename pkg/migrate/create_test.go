package migrate

import (
	"os"
	"strings"
	"testing"
)

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()

	path, err := CreateSQLMigration(dir, "Add Color Index!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_color_index.sql") {
		t.Fatalf("unexpected filename %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "-- +goose Up") || !strings.Contains(content, "-- +goose Down") {
		t.Fatalf("missing goose markers in %q", content)
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration fails validation: %v", err)
	}

	if _, err := CreateSQLMigration(dir, ""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatal("expected error for name with no usable characters")
	}
}

func TestValidateDirReportsEveryProblem(t *testing.T) {
	dir := t.TempDir()

	bad := []struct {
		name, body string
	}{
		{"not-a-migration.sql", "-- +goose Up\n-- +goose Down\n"},
		{"20250101000000_missing_down.sql", "-- +goose Up\n"},
	}
	for _, f := range bad {
		if err := os.WriteFile(dir+"/"+f.name, []byte(f.body), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	err := ValidateDir(dir)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "not-a-migration.sql") || !strings.Contains(msg, "missing_down") {
		t.Fatalf("expected both problems reported, got %q", msg)
	}
}
