package loader

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/oarkflow/dossier"
)

// FilePrefix marks the dataset files a data directory is scanned for. A
// file named synthetic_credit_reports.json holds the credit_reports
// dataset.
const FilePrefix = "synthetic_"

// Discover scans a directory for dataset files and returns dataset name
// to path, the name being the file stem with the prefix stripped.
func Discover(dir string) (map[string]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, FilePrefix+"*.json"))
	if err != nil {
		return nil, err
	}
	found := make(map[string]string, len(matches))
	for _, path := range matches {
		base := strings.TrimSuffix(filepath.Base(path), ".json")
		name := strings.TrimPrefix(base, FilePrefix)
		if name == "" {
			continue
		}
		found[name] = path
	}
	return found, nil
}

// DiscoverNames returns the dataset names found in a directory, sorted.
func DiscoverNames(dir string) ([]string, error) {
	found, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DataPath returns the conventional file path for a dataset name.
func DataPath(dir, name string) string {
	return filepath.Join(dir, FilePrefix+name+".json")
}

// Records returns a dossier.SourceFunc that reads each dataset from its
// configured database or path, falling back to the conventional file
// location under dataDir. Files ending in .msgpack are decoded as
// msgpack streams, everything else as JSON.
func Records(dataDir string) dossier.SourceFunc {
	return func(ctx context.Context, name string, cfg dossier.DatasetConfig) ([]dossier.Record, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if cfg.Database != nil {
			return ReadDB(ctx, name, *cfg.Database)
		}
		path := cfg.Path
		if path == "" {
			path = DataPath(dataDir, name)
		}
		if filepath.Ext(path) == ".msgpack" {
			return ReadMsgpackFile(path)
		}
		return ReadFile(path)
	}
}

// Static returns a dossier.SourceFunc serving records already in memory,
// keyed by dataset name.
func Static(byName map[string][]dossier.Record) dossier.SourceFunc {
	return func(_ context.Context, name string, _ dossier.DatasetConfig) ([]dossier.Record, error) {
		records, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("no records for dataset %s", name)
		}
		return records, nil
	}
}
