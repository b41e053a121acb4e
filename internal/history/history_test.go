package history_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"calc/internal/diag"
	"calc/internal/history"
	"calc/internal/source"
)

func TestStore_SaveAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calc", history.FileName)
	s, err := history.Open(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Fatalf("new store has %d entries", s.Len())
	}

	s.Add(history.NewEntry("1 + 1", 2, nil))
	s.Add(history.NewEntry("1 / 0", 0, diag.DivideByZero(source.Span{Start: 2, End: 3})))
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}

	again, err := history.Open(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	entries := again.Entries()
	if len(entries) != 2 {
		t.Fatalf("reopened store has %d entries", len(entries))
	}
	if !entries[0].OK() || entries[0].Value != 2 || entries[0].Expr != "1 + 1" {
		t.Errorf("entry 0 = %+v", entries[0])
	}
	if entries[1].OK() || entries[1].Code != diag.EvalDivideByZero || entries[1].Err != "division by zero" {
		t.Errorf("entry 1 = %+v", entries[1])
	}

	matches, _ := filepath.Glob(filepath.Join(filepath.Dir(path), "tmp-*"))
	if len(matches) != 0 {
		t.Errorf("temp files left behind: %v", matches)
	}
}

func TestStore_Limit(t *testing.T) {
	s, err := history.Open(filepath.Join(t.TempDir(), history.FileName), 3)
	if err != nil {
		t.Fatal(err)
	}
	for _, expr := range []string{"1", "2", "3", "4", "5"} {
		s.Add(history.Entry{Expr: expr})
	}
	exprs := s.Exprs()
	if len(exprs) != 3 || exprs[0] != "3" || exprs[2] != "5" {
		t.Fatalf("Exprs = %v", exprs)
	}
}

func TestStore_ExprsSkipsRepeats(t *testing.T) {
	s, _ := history.Open(filepath.Join(t.TempDir(), history.FileName), 0)
	for _, expr := range []string{"1", "1", "2", "1"} {
		s.Add(history.Entry{Expr: expr})
	}
	exprs := s.Exprs()
	if len(exprs) != 3 || exprs[0] != "1" || exprs[1] != "2" || exprs[2] != "1" {
		t.Fatalf("Exprs = %v", exprs)
	}
}

func TestOpen_SchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), history.FileName)
	data, err := msgpack.Marshal(map[string]any{"Schema": 99, "Entries": []any{}})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := history.Open(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d entries", s.Len())
	}
}

func TestOpen_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), history.FileName)
	if err := os.WriteFile(path, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := history.Open(path, 10); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestStore_Clear(t *testing.T) {
	path := filepath.Join(t.TempDir(), history.FileName)
	s, _ := history.Open(path, 10)
	s.Add(history.Entry{Expr: "1"})
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still exists: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear: %v", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	p, err := history.DefaultPath("calc")
	if err != nil {
		t.Fatal(err)
	}
	if p != filepath.Join("/tmp/xdg", "calc", history.FileName) {
		t.Errorf("DefaultPath = %q", p)
	}
}
