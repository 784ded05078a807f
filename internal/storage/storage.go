package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/sports-events/internal/event"
)

// ErrNotFound is returned when an event ID is not in the catalogue.
var ErrNotFound = errors.New("event not found")

// Storage reads and writes one catalogue file.
type Storage struct {
	path string
}

// New creates a Storage for the catalogue at path, creating its directory.
func New(path string) (*Storage, error) {
	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating catalogue directory: %w", err)
	}

	return &Storage{path: path}, nil
}

// Path returns the catalogue file path.
func (s *Storage) Path() string { return s.path }

// Load reads the catalogue. A missing file is an empty catalogue.
func (s *Storage) Load() ([]*event.Event, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []*event.Event{}, nil
		}
		return nil, fmt.Errorf("reading catalogue: %w", err)
	}
	defer f.Close()

	events, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("parsing catalogue %s: %w", s.path, err)
	}
	return events, nil
}

// Save replaces the catalogue. The file is written to a temporary name in
// the same directory and renamed, so readers never see a partial array.
func (s *Storage) Save(events []*event.Event) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if err := Encode(tmp, events); err != nil {
		tmp.Close()
		return fmt.Errorf("encoding catalogue: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing catalogue: %w", err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("setting catalogue permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing catalogue: %w", err)
	}
	return nil
}

// GetEventByID looks an event up in the stored catalogue.
func (s *Storage) GetEventByID(eventID string) (*event.Event, error) {
	events, err := s.Load()
	if err != nil {
		return nil, err
	}
	for _, evt := range events {
		if evt.ID == eventID {
			return evt, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, eventID)
}

// Encode writes events as an indented JSON array. A nil slice encodes as [].
func Encode(w io.Writer, events []*event.Event) error {
	if events == nil {
		events = []*event.Event{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(events)
}

// Decode reads a JSON array of events.
func Decode(r io.Reader) ([]*event.Event, error) {
	var events []*event.Event
	if err := json.NewDecoder(r).Decode(&events); err != nil {
		return nil, err
	}
	if events == nil {
		events = []*event.Event{}
	}
	return events, nil
}
