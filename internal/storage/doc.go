// Package storage persists the catalogue as a JSON array of events.
//
// The catalogue is rebuilt from scratch on every run, so there is no
// snapshot history: Save replaces the file atomically and Load reads the
// previous run's output back, for diffing or for the list and ics commands.
// The default location is ./events.json.
package storage
