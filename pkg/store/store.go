// Package store manages the shared per-guild configuration document.
// The whole document lives in a single JSON file that is re-read at the start
// of every operation and rewritten in full at the end of every mutation.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"

	"github.com/ParangStudios/ParangBotGo/pkg/logger"
	"github.com/ParangStudios/ParangBotGo/pkg/models"
)

// Document is the full configuration document, keyed by guild ID.
type Document map[string]*models.GuildConfig

// Guild returns the configuration of a guild, creating an empty entry when the
// guild is not yet present. Only call on documents you intend to write back.
func (d Document) Guild(guildID string) *models.GuildConfig {
	cfg, ok := d[guildID]
	if !ok || cfg == nil {
		cfg = &models.GuildConfig{}
		d[guildID] = cfg
	}
	return cfg
}

// Store owns the configuration file. One process-wide mutex serializes every
// read-modify-write sequence; the lock is global rather than per guild, which
// serializes unrelated guilds' writes but keeps the discipline simple and
// starvation free at this bot's volume.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a Store persisting to the given file path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the configuration file.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the configuration file. A missing or corrupt file
// yields an empty document; this method never fails.
func (s *Store) Load() Document {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Document{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		logger.Warn(fmt.Sprintf("설정 파일 파싱 실패, 빈 문서로 대체합니다: %v", err), "Store")
		return Document{}
	}
	if doc == nil {
		doc = Document{}
	}
	return doc
}

// save rewrites the whole document. The write goes to a temp file in the same
// directory followed by a rename, so a concurrent reader never observes a
// half-written document.
func (s *Store) save(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal config document: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".config-*.json")
	if err != nil {
		return fmt.Errorf("create temp config file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp config file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp config file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("swap config file: %w", err)
	}
	return nil
}

// Update runs fn against a freshly loaded document while holding the store
// lock, then persists the result. All multi-step mutations (keyword edits,
// warning accumulation, voice-time accumulation, settings writes) must go
// through Update so interleaved handlers cannot lose each other's writes.
func (s *Store) Update(fn func(Document)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.Load()
	fn(doc)
	return s.save(doc)
}

// Guild returns a point-in-time snapshot of a guild's configuration without
// taking the lock. Display paths use this and tolerate staleness up to one
// in-flight mutation; never write a snapshot back.
func (s *Store) Guild(guildID string) *models.GuildConfig {
	cfg, ok := s.Load()[guildID]
	if !ok || cfg == nil {
		return &models.GuildConfig{}
	}
	return cfg
}
