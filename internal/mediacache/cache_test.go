package mediacache

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	c := Open(path)

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0", c.Len())
	}
	if _, ok := c.FindLastPosition("a"); ok {
		t.Error("FindLastPosition on empty cache should report absence")
	}
}

func TestOpen_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := Open(path)

	if c.Len() != 0 {
		t.Errorf("Len() = %d, want 0 for corrupt document", c.Len())
	}
}

func TestCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	c := Open(path)
	c.Update(KeyForURI("a"), 5000*time.Nanosecond)
	if err := c.Persist(); err != nil {
		t.Fatalf("Persist() error: %v", err)
	}

	reopened := Open(path)
	pos, ok := reopened.FindLastPosition("a")
	if !ok {
		t.Fatal("FindLastPosition after reopen should find the entry")
	}
	if pos != 5000*time.Nanosecond {
		t.Errorf("position = %v, want 5000ns", pos)
	}
}

func TestCache_RoundTrip_UnicodeURI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")
	uri := "file:///musique/élan/ピアノ.mkv"

	c := Open(path)
	c.Update(KeyForURI(uri), 42*time.Minute)
	if err := c.Persist(); err != nil {
		t.Fatalf("Persist() error: %v", err)
	}

	pos, ok := Open(path).FindLastPosition(uri)
	if !ok || pos != 42*time.Minute {
		t.Errorf("FindLastPosition = %v, %v, want 42m, true", pos, ok)
	}
}

func TestCache_UpdateOverwrites(t *testing.T) {
	c := Open(filepath.Join(t.TempDir(), "positions.json"))
	key := KeyForURI("file:///a.mkv")

	c.Update(key, time.Second)
	c.Update(key, 2*time.Second)

	pos, ok := c.Lookup(key)
	if !ok || pos != 2*time.Second {
		t.Errorf("Lookup = %v, %v, want 2s, true", pos, ok)
	}
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
}

func TestCache_PersistOverwritesPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "positions.json")

	c := Open(path)
	c.Update(KeyForURI("a"), time.Second)
	if err := c.Persist(); err != nil {
		t.Fatal(err)
	}

	c2 := Open(path)
	c2.Update(KeyForURI("b"), 2*time.Second)
	if err := c2.Persist(); err != nil {
		t.Fatal(err)
	}

	final := Open(path)
	if final.Len() != 2 {
		t.Errorf("Len() = %d, want 2", final.Len())
	}
}

func TestKeyForURI_Stable(t *testing.T) {
	if KeyForURI("file:///a.mkv") != KeyForURI("file:///a.mkv") {
		t.Error("same URI should produce the same key")
	}
	if KeyForURI("file:///a.mkv") == KeyForURI("file:///b.mkv") {
		t.Error("different URIs should produce different keys")
	}
	if len(KeyForURI("anything")) != 64 {
		t.Errorf("key length = %d, want 64 hex chars", len(KeyForURI("anything")))
	}
}

func TestKeyForURI_PlainString(t *testing.T) {
	// Non-URI strings are hashed verbatim rather than rejected.
	if KeyForURI("a") == "" {
		t.Error("plain string should still hash")
	}
}
