package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrMalformed is returned (wrapped) when a store file exists but does not
// hold the expected JSON shape. Callers treat the store as empty and may
// surface the error as a warning, so a broken file never bricks the app.
var ErrMalformed = errors.New("malformed store file")

// ReadInto reads the JSON file at path into v. A missing file leaves v
// untouched and returns nil: first runs start with empty stores. A file that
// cannot be parsed also leaves v untouched but returns an ErrMalformed-wrapped
// error so the caller can tell "empty" from "broken".
func ReadInto(path string, v any) error {
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
	}
	return nil
}

// Write marshals v and writes it to path via temp file + rename, creating
// the parent directory if needed. The rename keeps a crash mid-write from
// corrupting the store.
func Write(path string, v any) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// BankPath resolves the question-bank file path in priority order:
// 1. PREPDECK_BANK environment variable
// 2. $XDG_DATA_HOME/prepdeck/questions.json
// 3. ~/.local/share/prepdeck/questions.json
func BankPath() (string, error) {
	return resolvePath("PREPDECK_BANK", "questions.json")
}

// ScoresPath resolves the score-log file path, honoring PREPDECK_SCORES.
func ScoresPath() (string, error) {
	return resolvePath("PREPDECK_SCORES", "scores.json")
}

func resolvePath(envVar, filename string) (string, error) {
	if p := os.Getenv(envVar); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "prepdeck", filename)
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
