package sorter

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/kozaktomas/face-sorter/internal/align"
)

// clusterByThreshold groups faces by greedy nearest-cluster assignment in
// the current result order. Each cluster keeps the landmark vectors of all
// faces accepted so far as its references; a new face joins the cluster
// with the lowest average L1 distance to those references when that
// distance is below the threshold, and seeds a new cluster otherwise.
//
// The assignment is online and order dependent, not a globally optimal
// clustering. Cluster count is unbounded. The first face always seeds a
// cluster because no clusters exist yet.
func (s *Sorter) clusterByThreshold(ctx context.Context, result ResultSet) ([]Bin, error) {
	log.Info().Float64("threshold", s.threshold).Msg("grouping by landmark similarity")

	references := make([][]align.LandmarkSet, 0)
	bins := make([]Bin, 0)

	bar := s.newBar(len(result), "Grouping")
	for i := range result {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		face := result[i].Landmarks

		best := -1
		bestScore := inf
		for key := range references {
			score := avgL1(face, references[key])
			if score < bestScore {
				best = key
				bestScore = score
			}
		}

		// best stays -1 while no clusters exist, so the first face
		// always falls through to seeding.
		if best >= 0 && bestScore < s.threshold {
			references[best] = append(references[best], face)
			bins[best].Members = append(bins[best].Members, result[i].Name)
		} else {
			references = append(references, []align.LandmarkSet{face})
			bins = append(bins, Bin{
				Name:    fmt.Sprintf("%s_%04d", s.method, len(bins)),
				Members: []string{result[i].Name},
			})
		}
		barAdd(bar)
	}

	log.Info().Int("clusters", len(bins)).Msg("grouping finished")
	return bins, nil
}
