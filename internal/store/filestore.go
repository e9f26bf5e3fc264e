// Package store persists the last finalized forecast per trip date as a
// flat, human-inspectable JSON file. The file is read once at startup and
// overwritten wholesale at the end of each run via an atomic replace.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/i474232898/skitrip-forecast/internal/forecast"
)

// ErrNotFound is returned when no cached record exists for a date.
var ErrNotFound = errors.New("no cached forecast for date")

// fileData is the on-disk shape of the cache.
type fileData struct {
	Days        map[string]forecast.DayForecast `json:"days"`
	LastUpdated string                          `json:"lastUpdated,omitempty"`
	Observation *forecast.Observation           `json:"metar,omitempty"`
}

// FileStore is a concurrency-safe cache of finalized day records backed by a
// single JSON file.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data fileData
}

// Open loads the cache at path. A missing or unreadable file yields an empty
// store; the cache is best-effort state, not a source of truth.
func Open(path string) *FileStore {
	s := &FileStore{
		path: path,
		data: fileData{Days: make(map[string]forecast.DayForecast)},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("store: cannot read %s: %v; starting empty", path, err)
		}
		return s
	}
	var data fileData
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Printf("store: corrupt cache %s: %v; starting empty", path, err)
		return s
	}
	if data.Days == nil {
		data.Days = make(map[string]forecast.DayForecast)
	}
	s.data = data
	return s
}

// Day returns the cached record for a date, if any.
func (s *FileStore) Day(date string) (forecast.DayForecast, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.data.Days[date]
	return d, ok
}

// PutDay stores a finalized record for a date.
func (s *FileStore) PutDay(date string, d forecast.DayForecast) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Days[date] = d
}

// SetObservation records the latest point observation alongside the days.
func (s *FileStore) SetObservation(obs *forecast.Observation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.Observation = obs
}

// Observation returns the last stored point observation, or nil.
func (s *FileStore) Observation() *forecast.Observation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Observation
}

// Flush stamps the cache and replaces the file atomically: write to a temp
// file in the same directory, then rename over the target.
func (s *FileStore) Flush() error {
	s.mu.Lock()
	s.data.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	raw, err := json.MarshalIndent(s.data, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("store: encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("store: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("store: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("store: replace %s: %w", s.path, err)
	}
	return nil
}
