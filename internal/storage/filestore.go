package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"seoengine/internal/domain"
)

// ErrBaselineNotFound reports that no baseline record has been extracted
// yet. Comparison requests treat this as a distinct condition.
var ErrBaselineNotFound = errors.New("baseline data not found")

const baselineFilename = "baseline_seo.json"

var nonWord = regexp.MustCompile(`\W+`)

// FileStore persists one SiteMetricsRecord per target as a JSON document:
// a fixed filename for the baseline and a host-derived filename per
// competitor. Records are written and read back verbatim.
type FileStore struct {
	dataDir string
}

func NewFileStore(dataDir string) *FileStore {
	return &FileStore{dataDir: dataDir}
}

// CompetitorFilename derives the on-disk name for a competitor target by
// replacing every non-word character of its host with an underscore.
func CompetitorFilename(target string) string {
	host := target
	if u, err := url.Parse(target); err == nil && u.Host != "" {
		host = u.Host
	} else {
		host = strings.TrimPrefix(host, "https://")
		host = strings.TrimPrefix(host, "http://")
		host = strings.TrimRight(host, "/")
	}
	return nonWord.ReplaceAllString(host, "_") + "_seo.json"
}

func (s *FileStore) SaveBaseline(rec domain.SiteMetricsRecord) error {
	return s.write(baselineFilename, rec)
}

func (s *FileStore) LoadBaseline() (domain.SiteMetricsRecord, error) {
	rec, err := s.read(baselineFilename)
	if errors.Is(err, os.ErrNotExist) {
		return domain.SiteMetricsRecord{}, ErrBaselineNotFound
	}
	return rec, err
}

func (s *FileStore) SaveCompetitor(rec domain.SiteMetricsRecord) error {
	return s.write(CompetitorFilename(rec.URL), rec)
}

// LoadCompetitor returns the persisted record for target. A missing file
// surfaces as os.ErrNotExist so callers can fall back to a fresh crawl.
func (s *FileStore) LoadCompetitor(target string) (domain.SiteMetricsRecord, error) {
	return s.read(CompetitorFilename(target))
}

func (s *FileStore) write(name string, rec domain.SiteMetricsRecord) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dataDir, name), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) read(name string) (domain.SiteMetricsRecord, error) {
	var rec domain.SiteMetricsRecord
	data, err := os.ReadFile(filepath.Join(s.dataDir, name))
	if err != nil {
		return rec, fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("decode %s: %w", name, err)
	}
	return rec, nil
}
