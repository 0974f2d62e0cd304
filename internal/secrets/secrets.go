// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets reads database credentials from a directory of
// plain-text files. The filename is the key; the trimmed contents are the
// value. Keys: database-dsn, or <dialect>-dsn (postgres-dsn, mysql-dsn, ...)
// to keep one DSN per sink kind.
package secrets

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultDir is where the CLI looks for secrets.
const DefaultDir = ".secrets"

// DatabaseDSN is the key of the dialect-independent DSN.
const DatabaseDSN = "database-dsn"

// Store holds loaded secrets.
type Store map[string]string

// Load reads every regular, non-hidden file in dir. A missing directory
// yields an empty store. Unreadable files are logged and skipped.
func Load(dir string, logger *slog.Logger) (Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logger.Warn("could not read secret", "name", name, "error", err)
			continue
		}
		if v := strings.TrimSpace(string(data)); v != "" {
			s[name] = v
		}
	}
	return s, nil
}

// DSN returns the data source name for dialect: the dialect-specific key
// first, then database-dsn.
func (s Store) DSN(dialect string) (string, bool) {
	if dialect != "" {
		if v, ok := s[strings.ToLower(dialect)+"-dsn"]; ok {
			return v, true
		}
	}
	v, ok := s[DatabaseDSN]
	return v, ok
}

// Keys returns the loaded key names, never the values.
func (s Store) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	return keys
}
