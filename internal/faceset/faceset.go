// Package faceset discovers face images in a directory and loads their
// alignment records. Landmark data comes either from a single
// alignments.json manifest or from per-image JSON sidecars produced by an
// extraction stage.
package faceset

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/bmp"

	"github.com/kozaktomas/face-sorter/internal/align"
	"github.com/kozaktomas/face-sorter/internal/cache"
)

// ManifestName is the default per-directory alignment manifest file.
const ManifestName = "alignments.json"

// ErrMissingAlignments is returned when a discovered face image has no
// landmark data. The whole run fails; no partial results are produced.
var ErrMissingAlignments = errors.New("missing alignment data: re-extract the faces to generate landmark metadata")

// Record is one face image together with its alignment data.
type Record struct {
	Name        string       `json:"name"`
	Path        string       `json:"-"`
	LandmarksXY [][2]float64 `json:"landmarks_xy"`
	BBox        []float64    `json:"bbox,omitempty"`
	Width       int          `json:"width,omitempty"`
	Height      int          `json:"height,omitempty"`
}

// Landmarks converts the raw coordinate pairs into a landmark set.
func (r *Record) Landmarks() align.LandmarkSet {
	out := make(align.LandmarkSet, len(r.LandmarksXY))
	for i, p := range r.LandmarksXY {
		out[i] = align.Point{X: p[0], Y: p[1]}
	}
	return out
}

// Face builds the aligned face for this record.
func (r *Record) Face() *align.AlignedFace {
	return align.NewAlignedFace(r.Landmarks(), r.BBox)
}

// LoadOptions controls faceset loading.
type LoadOptions struct {
	ProbeDims bool         // read image dimensions via image.DecodeConfig
	Cache     *cache.Cache // optional sidecar record cache
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

// Discover lists the face images in dir in deterministic name order.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read faces directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(e.Name()))] {
			files = append(files, e.Name())
		}
	}
	return files, nil
}

// Load discovers the face images in dir and attaches alignment data to
// each. Every image must have landmark data; a single missing record fails
// the whole load with ErrMissingAlignments.
func Load(dir string, opts LoadOptions) ([]Record, error) {
	names, err := Discover(dir)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no face images found in %s", dir)
	}

	manifest, err := loadManifest(dir)
	if err != nil {
		return nil, err
	}

	records := make([]Record, 0, len(names))
	landmarkCount := -1
	for _, name := range names {
		rec, err := loadRecord(dir, name, manifest, opts.Cache)
		if err != nil {
			return nil, err
		}
		if len(rec.LandmarksXY) == 0 {
			return nil, fmt.Errorf("%s: %w", name, ErrMissingAlignments)
		}
		if landmarkCount == -1 {
			landmarkCount = len(rec.LandmarksXY)
		} else if len(rec.LandmarksXY) != landmarkCount {
			return nil, fmt.Errorf("%s: landmark count %d does not match the rest of the set (%d)",
				name, len(rec.LandmarksXY), landmarkCount)
		}
		if opts.ProbeDims && (rec.Width == 0 || rec.Height == 0) {
			rec.Width, rec.Height = probeDims(rec.Path)
		}
		records = append(records, rec)
	}

	log.Debug().Int("faces", len(records)).Int("landmarks", landmarkCount).Str("dir", dir).Msg("faceset loaded")
	return records, nil
}

// loadManifest reads the directory manifest when present. A missing
// manifest is not an error; the loader falls back to per-image sidecars.
func loadManifest(dir string) (map[string]Record, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", ManifestName, err)
	}

	manifest := map[string]Record{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestName, err)
	}
	return manifest, nil
}

func loadRecord(dir, name string, manifest map[string]Record, c *cache.Cache) (Record, error) {
	path := filepath.Join(dir, name)

	if manifest != nil {
		rec, ok := manifest[name]
		if !ok {
			return Record{}, fmt.Errorf("%s: %w", name, ErrMissingAlignments)
		}
		rec.Name = name
		rec.Path = path
		return rec, nil
	}

	sidecar := path + ".json"
	info, err := os.Stat(sidecar)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, fmt.Errorf("%s: %w", name, ErrMissingAlignments)
	}
	if err != nil {
		return Record{}, fmt.Errorf("failed to stat %s: %w", sidecar, err)
	}
	mtime := info.ModTime().UnixNano()

	var rec Record
	if c != nil {
		hit, err := c.Get(sidecar, mtime, &rec)
		if err != nil {
			log.Warn().Err(err).Str("file", sidecar).Msg("cache lookup failed, re-parsing")
		} else if hit {
			rec.Name = name
			rec.Path = path
			return rec, nil
		}
	}

	data, err := os.ReadFile(sidecar)
	if err != nil {
		return Record{}, fmt.Errorf("failed to read %s: %w", sidecar, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("failed to parse %s: %w", sidecar, err)
	}
	rec.Name = name
	rec.Path = path

	if c != nil {
		if err := c.Put(sidecar, mtime, rec); err != nil {
			log.Warn().Err(err).Str("file", sidecar).Msg("cache write failed")
		}
	}
	return rec, nil
}

// probeDims reads image dimensions without decoding pixel data.
// Failures are silent; dimensions are informational only.
func probeDims(path string) (int, int) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0
	}
	return cfg.Width, cfg.Height
}
