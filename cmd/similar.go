package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-sorter/internal/sorter"
)

var similarCmd = &cobra.Command{
	Use:   "similar [faces-dir] [face-file]",
	Short: "Find the most similar faces to a given face",
	Long: `Similar finds the faces whose landmark geometry is closest to the given
face, using an approximate nearest-neighbour index over the landmark
vectors with the same L1 distance the face sort methods use.

Examples:
  # Ten closest faces
  face-sorter similar ./faces face_00042.png

  # Output as JSON
  face-sorter similar ./faces face_00042.png --limit 5 --json`,
	Args: cobra.ExactArgs(2),
	RunE: runSimilar,
}

// SimilarFace is one nearest-neighbour hit in JSON output.
type SimilarFace struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// SimilarOutput is the JSON output structure.
type SimilarOutput struct {
	Query   string        `json:"query"`
	Results []SimilarFace `json:"results"`
	Count   int           `json:"count"`
}

func init() {
	rootCmd.AddCommand(similarCmd)

	similarCmd.Flags().Int("limit", 10, "Maximum number of results")
	similarCmd.Flags().Bool("json", false, "Output as JSON")
}

func runSimilar(cmd *cobra.Command, args []string) error {
	dir, query := args[0], args[1]
	limit := mustGetInt(cmd, "limit")
	jsonOutput := mustGetBool(cmd, "json")

	records, err := loadRecords(dir, false)
	if err != nil {
		return err
	}

	s, err := sorter.New(sorter.Options{Method: sorter.MethodFace, Progress: !jsonOutput})
	if err != nil {
		return err
	}
	result, err := s.Score(records)
	if err != nil {
		return err
	}

	index, err := sorter.NewNeighborIndex(result)
	if err != nil {
		return fmt.Errorf("failed to build neighbour index: %w", err)
	}
	neighbors, err := index.Search(query, limit)
	if err != nil {
		return err
	}

	if jsonOutput {
		out := SimilarOutput{Query: query, Count: len(neighbors)}
		for _, n := range neighbors {
			out.Results = append(out.Results, SimilarFace{Name: n.Name, Distance: n.Distance})
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Faces most similar to %s:\n\n", query)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FACE\tL1 DISTANCE")
	for _, n := range neighbors {
		fmt.Fprintf(w, "%s\t%.1f\n", n.Name, n.Distance)
	}
	w.Flush()
	return nil
}
