// Package sorter ranks and groups face images by geometric metrics derived
// from their landmark data. Scoring extracts one comparable metric per
// face, ranking totally orders the result set and grouping partitions it
// into named bins.
package sorter

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/kozaktomas/face-sorter/internal/faceset"
)

// DefaultThreshold is the default face grouping threshold, expressed as a
// true average L1 landmark distance in pixel units.
const DefaultThreshold = 7200.0

// DefaultNumBins is the bin count for linear and angular binning when the
// user does not configure one.
const DefaultNumBins = 5

// Options configures a sorter run.
type Options struct {
	Method    Method
	NumBins   int     // linear/angular binning only
	Threshold float64 // face grouping only, average L1 landmark distance
	Workers   int     // parallelism for the dissimilarity pass
	Progress  bool    // show progress bars on long passes
}

// Sorter runs the scoring, ranking and grouping passes for one method.
type Sorter struct {
	method    Method
	numBins   int
	threshold float64
	workers   int
	progress  bool
}

// New validates the options and creates a sorter.
func New(opts Options) (*Sorter, error) {
	if _, err := ParseMethod(string(opts.Method)); err != nil {
		return nil, err
	}
	if opts.NumBins < 0 {
		return nil, fmt.Errorf("number of bins must be positive, got %d", opts.NumBins)
	}
	if opts.Threshold < 0 {
		return nil, fmt.Errorf("threshold must be positive, got %v", opts.Threshold)
	}

	s := &Sorter{
		method:    opts.Method,
		numBins:   opts.NumBins,
		threshold: opts.Threshold,
		workers:   opts.Workers,
		progress:  opts.Progress,
	}
	if s.numBins == 0 {
		s.numBins = DefaultNumBins
	}
	if s.threshold == 0 {
		s.threshold = DefaultThreshold
	}
	if s.workers <= 0 {
		s.workers = runtime.NumCPU()
	}
	return s, nil
}

// Method returns the configured sort method.
func (s *Sorter) Method() Method {
	return s.method
}

// Score extracts the metric for every record, in input order. A record
// without landmark data fails the whole run.
func (s *Sorter) Score(records []faceset.Record) (ResultSet, error) {
	log.Info().Str("method", string(s.method)).Int("faces", len(records)).Msg("scoring faces")

	bar := s.newBar(len(records), "Scoring")
	result := make(ResultSet, 0, len(records))
	for i := range records {
		entry, err := s.scoreFace(&records[i])
		if err != nil {
			return nil, err
		}
		result.Append(entry)
		barAdd(bar)
	}
	return result, nil
}

// Sort totally orders the result set by the configured method and returns
// it. Scalar methods use a stable sort with the method's direction; the
// face methods run the pairwise passes.
func (s *Sorter) Sort(ctx context.Context, result ResultSet) (ResultSet, error) {
	switch s.method {
	case MethodFace:
		if err := s.chainBySimilarity(ctx, result); err != nil {
			return nil, err
		}
	case MethodFaceDissim:
		if err := s.scoreDissimilarity(ctx, result); err != nil {
			return nil, err
		}
		result.sortByAggregate()
	default:
		result.sortByScalar(s.method.Ascending())
	}
	return result, nil
}

// Bin is one named output partition of face identifiers.
type Bin struct {
	Name    string
	Members []string
}

// Group sorts the result set and partitions it into named bins: fixed
// linear bins for distance and size, fixed angular bins for the pose
// methods and greedy threshold clusters for the face methods.
func (s *Sorter) Group(ctx context.Context, result ResultSet) ([]Bin, error) {
	result, err := s.Sort(ctx, result)
	if err != nil {
		return nil, err
	}

	switch {
	case s.method.Vector():
		return s.clusterByThreshold(ctx, result)
	case s.method.Angular():
		return s.binAngular(result), nil
	case s.method == MethodSize:
		return s.binLinear(result, 1, "px"), nil
	default:
		// Distance values are small fractions; scale the names so the
		// bin folders read as whole numbers.
		return s.binLinear(result, 100, ""), nil
	}
}

func (s *Sorter) newBar(n int, desc string) *progressbar.ProgressBar {
	if !s.progress {
		return nil
	}
	return progressbar.NewOptions(n,
		progressbar.OptionSetDescription(desc),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("faces"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func barAdd(bar *progressbar.ProgressBar) {
	if bar != nil {
		_ = bar.Add(1)
	}
}
