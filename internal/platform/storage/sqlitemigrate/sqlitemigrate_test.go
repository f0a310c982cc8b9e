package sqlitemigrate

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRecordsAndSkips(t *testing.T) {
	db := openMemoryDB(t)
	migrations := fstest.MapFS{
		"001_kv.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREATE TABLE kv(key TEXT PRIMARY KEY);\n-- +migrate Down\nDROP TABLE kv;")},
	}

	for i := 0; i < 2; i++ {
		if err := Apply(context.Background(), db, migrations, ""); err != nil {
			t.Fatalf("apply #%d: %v", i+1, err)
		}
	}

	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 1 {
		t.Fatalf("migration rows = %d, want 1", got)
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'"); got != 1 {
		t.Fatal("expected kv table")
	}
}

func TestApplyDoesNotRecordFailure(t *testing.T) {
	db := openMemoryDB(t)
	bad := fstest.MapFS{
		"001_kv.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT TABLE kv(key TEXT);")},
	}
	if err := Apply(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected failing migration")
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 0 {
		t.Fatalf("migration rows = %d, want 0", got)
	}
}

func TestApplyUsesRootInKey(t *testing.T) {
	db := openMemoryDB(t)
	migrations := fstest.MapFS{
		"reach/001_kv.sql": &fstest.MapFile{Data: []byte("CREATE TABLE kv(key TEXT PRIMARY KEY);")},
		"reach/notes.txt":  &fstest.MapFile{Data: []byte("ignored")},
	}
	if err := Apply(context.Background(), db, migrations, "reach"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	var name string
	if err := db.QueryRow("SELECT name FROM schema_migrations").Scan(&name); err != nil {
		t.Fatalf("select name: %v", err)
	}
	if name != "reach/001_kv.sql" {
		t.Fatalf("name = %q, want %q", name, "reach/001_kv.sql")
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "SELECT 1;", want: "SELECT 1;"},
		{name: "up only", content: "-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
		{name: "up and down", content: "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", want: "\nSELECT 1;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpSection(tt.content); got != tt.want {
				t.Fatalf("UpSection = %q, want %q", got, tt.want)
			}
		})
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, query string) int {
	t.Helper()
	var n int
	if err := db.QueryRow(query).Scan(&n); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return n
}
