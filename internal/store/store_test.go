package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadInto_MissingFileIsEmpty(t *testing.T) {
	var out []string
	err := ReadInto(filepath.Join(t.TempDir(), "nope.json"), &out)
	if err != nil {
		t.Fatalf("ReadInto(missing) error: %v", err)
	}
	if out != nil {
		t.Errorf("out = %v, want untouched nil", out)
	}
}

func TestReadInto_MalformedIsDistinct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	var out []string
	err := ReadInto(path, &out)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("ReadInto(malformed) = %v, want ErrMalformed", err)
	}
	if out != nil {
		t.Errorf("out = %v, want untouched nil on parse failure", out)
	}
}

func TestWrite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "dir", "data.json")

	in := map[string]int{"a": 1, "b": 2}
	if err := Write(path, in); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var out map[string]int
	if err := ReadInto(path, &out); err != nil {
		t.Fatalf("ReadInto error: %v", err)
	}
	if out["a"] != 1 || out["b"] != 2 {
		t.Errorf("round trip = %v, want %v", out, in)
	}

	// No temp file left behind.
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Error("temp file was not cleaned up")
	}
}

func TestBankPath_EnvOverride(t *testing.T) {
	p := filepath.Join(t.TempDir(), "custom", "bank.json")
	t.Setenv("PREPDECK_BANK", p)

	got, err := BankPath()
	if err != nil {
		t.Fatalf("BankPath error: %v", err)
	}
	if got != p {
		t.Errorf("BankPath = %q, want %q", got, p)
	}
	if _, err := os.Stat(filepath.Dir(p)); err != nil {
		t.Errorf("parent dir was not created: %v", err)
	}
}

func TestScoresPath_XDGDefault(t *testing.T) {
	dataHome := t.TempDir()
	t.Setenv("PREPDECK_SCORES", "")
	t.Setenv("XDG_DATA_HOME", dataHome)

	got, err := ScoresPath()
	if err != nil {
		t.Fatalf("ScoresPath error: %v", err)
	}
	want := filepath.Join(dataHome, "prepdeck", "scores.json")
	if got != want {
		t.Errorf("ScoresPath = %q, want %q", got, want)
	}
}
