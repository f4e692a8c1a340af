// Package output places ranked or grouped faces on disk and writes run
// manifests. Sort mode renames files into an ordered sequence; group mode
// creates one directory per bin.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/kozaktomas/face-sorter/internal/sorter"
)

// Options controls where and how files are placed.
type Options struct {
	OutputDir string
	Keep      bool // copy instead of move, leaving the originals in place
}

// PlaceOrdered writes the result set into the output directory as an
// ordered sequence: 000000_name.png, 000001_name.png, ...
// sources maps face identifiers to their source paths.
func PlaceOrdered(result sorter.ResultSet, sources map[string]string, opts Options) error {
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for rank, entry := range result {
		src, ok := sources[entry.Name]
		if !ok {
			return fmt.Errorf("no source path for %s", entry.Name)
		}
		dst := filepath.Join(opts.OutputDir, fmt.Sprintf("%06d_%s", rank, entry.Name))
		if err := placeFile(src, dst, opts.Keep); err != nil {
			return err
		}
	}

	log.Info().Int("faces", len(result)).Str("dir", opts.OutputDir).Msg("ordered faces written")
	return nil
}

// PlaceBins writes each bin into its own subdirectory of the output
// directory, named after the slug-normalized bin name.
func PlaceBins(bins []sorter.Bin, sources map[string]string, opts Options) error {
	for _, bin := range bins {
		dir := filepath.Join(opts.OutputDir, Slug(bin.Name))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create bin directory %s: %w", dir, err)
		}
		for _, member := range bin.Members {
			src, ok := sources[member]
			if !ok {
				return fmt.Errorf("no source path for %s", member)
			}
			if err := placeFile(src, filepath.Join(dir, member), opts.Keep); err != nil {
				return err
			}
		}
	}

	log.Info().Int("bins", len(bins)).Str("dir", opts.OutputDir).Msg("grouped faces written")
	return nil
}

func placeFile(src, dst string, keep bool) error {
	if keep {
		return copyFile(src, dst)
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	// Rename fails across filesystems; fall back to copy and remove.
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}

// Manifest describes one completed run for downstream tooling.
type Manifest struct {
	RunID     string     `json:"run_id"`
	Method    string     `json:"method"`
	CreatedAt time.Time  `json:"created_at"`
	Faces     []FaceRank `json:"faces,omitempty"`
	Bins      []BinEntry `json:"bins,omitempty"`
}

// FaceRank is one face in a sort-mode manifest.
type FaceRank struct {
	Rank   int     `json:"rank"`
	Name   string  `json:"name"`
	Metric float64 `json:"metric,omitempty"`
}

// BinEntry is one bin in a group-mode manifest.
type BinEntry struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
}

// NewSortManifest builds a manifest for a ranked result set.
func NewSortManifest(method sorter.Method, result sorter.ResultSet) Manifest {
	m := Manifest{
		RunID:     uuid.New().String(),
		Method:    string(method),
		CreatedAt: time.Now().UTC(),
	}
	for rank, entry := range result {
		m.Faces = append(m.Faces, FaceRank{Rank: rank, Name: entry.Name, Metric: entry.Scalar})
	}
	return m
}

// NewGroupManifest builds a manifest for a set of bins.
func NewGroupManifest(method sorter.Method, bins []sorter.Bin) Manifest {
	m := Manifest{
		RunID:     uuid.New().String(),
		Method:    string(method),
		CreatedAt: time.Now().UTC(),
	}
	for _, bin := range bins {
		m.Bins = append(m.Bins, BinEntry{Name: bin.Name, Members: bin.Members})
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
