package cmd

import (
	"fmt"

	"github.com/kozaktomas/face-sorter/internal/cache"
	"github.com/kozaktomas/face-sorter/internal/config"
	"github.com/kozaktomas/face-sorter/internal/faceset"
)

// loadRecords loads the faceset for a command, using the record cache
// when one is configured.
func loadRecords(dir string, probeDims bool) ([]faceset.Record, error) {
	cfg := config.Load()

	var c *cache.Cache
	if cfg.Cache.Path != "" {
		var err error
		c, err = cache.Open(cfg.Cache.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open record cache: %w", err)
		}
		defer c.Close()
	}

	return faceset.Load(dir, faceset.LoadOptions{ProbeDims: probeDims, Cache: c})
}

// sourcesFor maps face identifiers to their source paths for the output
// writers.
func sourcesFor(records []faceset.Record) map[string]string {
	sources := make(map[string]string, len(records))
	for _, r := range records {
		sources[r.Name] = r.Path
	}
	return sources
}
