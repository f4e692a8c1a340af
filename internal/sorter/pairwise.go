package sorter

import (
	"context"
	"math"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/kozaktomas/face-sorter/internal/align"
)

var inf = math.Inf(1)

// chainBySimilarity reorders the set into a greedy nearest-neighbour
// chain: each face is followed by its closest not-yet-placed neighbour by
// L1 landmark distance. The entry at position 0 is never moved; the chain
// is built forward with in-place swaps.
func (s *Sorter) chainBySimilarity(ctx context.Context, result ResultSet) error {
	log.Info().Msg("comparing landmarks and chaining by similarity")

	n := len(result)
	bar := s.newBar(n-1, "Comparing")
	for i := 0; i < n-1; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		minScore := inf
		jMin := i + 1
		for j := i + 1; j < n; j++ {
			score := align.L1Distance(result[i].Landmarks, result[j].Landmarks)
			if score < minScore {
				minScore = score
				jMin = j
			}
		}
		result.Swap(i+1, jMin)
		barAdd(bar)
	}
	return nil
}

// scoreDissimilarity fills each entry's aggregate score with the sum of
// its L1 landmark distances to every other entry. The row sums are
// independent of each other, so they are computed in parallel across the
// outer loop; the result is identical to the sequential pass.
func (s *Sorter) scoreDissimilarity(ctx context.Context, result ResultSet) error {
	log.Info().Int("workers", s.workers).Msg("comparing landmarks for dissimilarity")

	n := len(result)
	bar := s.newBar(n, "Comparing")

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.workers)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if ctx.Err() != nil {
				return
			}

			var total float64
			for j := 0; j < n; j++ {
				if j == i {
					continue
				}
				total += align.L1Distance(result[i].Landmarks, result[j].Landmarks)
			}
			result[i].Aggregate = total
			barAdd(bar)
		}(i)
	}
	wg.Wait()

	return ctx.Err()
}
