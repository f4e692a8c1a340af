package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-sorter/internal/config"
	"github.com/kozaktomas/face-sorter/internal/output"
	"github.com/kozaktomas/face-sorter/internal/sorter"
)

var sortCmd = &cobra.Command{
	Use:   "sort [faces-dir]",
	Short: "Rank face images by a landmark metric",
	Long: `Sort ranks every face image in a directory by the chosen metric and
writes the result as an ordered file sequence (000000_..., 000001_...).

Methods:
  distance     mean landmark distance from the mean face (ascending)
  pitch        head pitch in degrees, up first
  yaw          head yaw in degrees, right first
  roll         head roll in degrees
  size         bounding box diagonal in pixels, large first
  face         landmark similarity (nearest-neighbour chain)
  face-dissim  aggregate landmark dissimilarity, most distinct first

Each image needs landmark data, either in an alignments.json manifest or
in per-image .json sidecars produced by the extraction stage.

Examples:
  # Rank by distance from the mean face, copy into ./faces_sorted
  face-sorter sort ./faces --keep

  # Rank by yaw and only print the order
  face-sorter sort ./faces --method yaw --dry-run

  # Rank by landmark similarity and write a manifest
  face-sorter sort ./faces --method face --manifest order.json`,
	Args: cobra.ExactArgs(1),
	RunE: runSort,
}

func init() {
	rootCmd.AddCommand(sortCmd)

	sortCmd.Flags().String("method", "distance", "Sort method: distance, pitch, yaw, roll, size, face, face-dissim")
	sortCmd.Flags().String("output", "", "Output directory (default: <faces-dir>_sorted)")
	sortCmd.Flags().Bool("keep", false, "Copy files instead of moving them")
	sortCmd.Flags().Bool("dry-run", false, "Print the order without touching any files")
	sortCmd.Flags().String("manifest", "", "Write the ranked order as a JSON manifest to this path")
	sortCmd.Flags().Int("workers", 0, "Parallel workers for the pairwise passes (0 = number of CPUs)")
}

func runSort(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg := config.Load()

	method, err := sorter.ParseMethod(mustGetString(cmd, "method"))
	if err != nil {
		return err
	}
	outputDir := mustGetString(cmd, "output")
	keep := mustGetBool(cmd, "keep")
	dryRun := mustGetBool(cmd, "dry-run")
	manifestPath := mustGetString(cmd, "manifest")
	workers := mustGetInt(cmd, "workers")
	if workers == 0 {
		workers = cfg.Sort.Workers
	}

	records, err := loadRecords(dir, method == sorter.MethodSize)
	if err != nil {
		return err
	}

	s, err := sorter.New(sorter.Options{
		Method:   method,
		Workers:  workers,
		Progress: true,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := s.Score(records)
	if err != nil {
		return err
	}
	result, err = s.Sort(ctx, result)
	if err != nil {
		return err
	}

	if manifestPath != "" {
		if err := output.WriteManifest(manifestPath, output.NewSortManifest(method, result)); err != nil {
			return err
		}
		fmt.Printf("Manifest written to %s\n", manifestPath)
	}

	if dryRun {
		fmt.Println("Mode: DRY RUN (no files will be moved)")
		printRanking(method, result)
		return nil
	}

	if outputDir == "" {
		outputDir = dir + "_sorted"
	}
	if err := output.PlaceOrdered(result, sourcesFor(records), output.Options{OutputDir: outputDir, Keep: keep}); err != nil {
		return err
	}

	fmt.Printf("Sorted %d faces by %s into %s\n", len(result), method, outputDir)
	return nil
}

func printRanking(method sorter.Method, result sorter.ResultSet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RANK\tFACE\tMETRIC")
	for rank, entry := range result {
		if method.Vector() {
			fmt.Fprintf(w, "%d\t%s\t-\n", rank, entry.Name)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%.3f\n", rank, entry.Name, entry.Scalar)
	}
	w.Flush()
}
