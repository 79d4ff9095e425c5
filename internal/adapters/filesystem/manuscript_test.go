package filesystem

import (
	"os"
	"path/filepath"
	"testing"
)

func TestManuscripts_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "drafts", "shuffled.md")
	m := NewManuscripts()

	if err := m.Write(path, "one\n\n* * *\n\ntwo"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	got, err := m.Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "one\n\n* * *\n\ntwo" {
		t.Errorf("unexpected content %q", got)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no leftover temp files, got %d entries", len(entries))
	}
}

func TestManuscripts_ReadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story.txt")
	if err := os.WriteFile(path, []byte("\ufeffone\r\n* * *\r\ntwo"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := NewManuscripts().Read(path)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if got != "one\n* * *\ntwo" {
		t.Errorf("expected normalized text, got %q", got)
	}
}

func TestManuscripts_ReadMissing(t *testing.T) {
	_, err := NewManuscripts().Read(filepath.Join(t.TempDir(), "absent.txt"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !os.IsNotExist(unwrapAll(err)) {
		t.Errorf("expected a not-exist error, got %v", err)
	}
}

func unwrapAll(err error) error {
	for {
		next, ok := err.(interface{ Unwrap() error })
		if !ok || next.Unwrap() == nil {
			return err
		}
		err = next.Unwrap()
	}
}

func TestManuscripts_WriteReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	m := NewManuscripts()

	if err := m.Write(path, "first version, longer"); err != nil {
		t.Fatal(err)
	}
	if err := m.Write(path, "second"); err != nil {
		t.Fatal(err)
	}

	got, _ := m.Read(path)
	if got != "second" {
		t.Errorf("expected replaced content, got %q", got)
	}
}
