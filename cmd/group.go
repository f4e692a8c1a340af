package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-sorter/internal/config"
	"github.com/kozaktomas/face-sorter/internal/output"
	"github.com/kozaktomas/face-sorter/internal/sorter"
)

var groupCmd = &cobra.Command{
	Use:   "group [faces-dir]",
	Short: "Group face images into named bins",
	Long: `Group partitions the face images in a directory into named bins and
writes each bin as a subdirectory of the output directory.

Scalar methods (distance, size) split the observed metric range into a
fixed number of equal-width bins. Pose methods (pitch, yaw, roll) split
the fixed -90..90 degree range. The face methods cluster greedily by
landmark similarity against a distance threshold instead of using a
fixed bin count.

Examples:
  # Five bins by face size
  face-sorter group ./faces --method size --bins 5

  # Four yaw bins, copy instead of move
  face-sorter group ./faces --method yaw --bins 4 --keep

  # Similarity clusters with a stricter threshold
  face-sorter group ./faces --method face --threshold 5000`,
	Args: cobra.ExactArgs(1),
	RunE: runGroup,
}

func init() {
	rootCmd.AddCommand(groupCmd)

	groupCmd.Flags().String("method", "distance", "Group method: distance, pitch, yaw, roll, size, face, face-dissim")
	groupCmd.Flags().Int("bins", sorter.DefaultNumBins, "Number of bins for linear and angular binning")
	groupCmd.Flags().Float64("threshold", sorter.DefaultThreshold, "Average L1 landmark distance for face clustering")
	groupCmd.Flags().String("output", "", "Output directory (default: <faces-dir>_grouped)")
	groupCmd.Flags().Bool("keep", false, "Copy files instead of moving them")
	groupCmd.Flags().Bool("dry-run", false, "Print the bins without touching any files")
	groupCmd.Flags().String("manifest", "", "Write the bins as a JSON manifest to this path")
	groupCmd.Flags().Int("workers", 0, "Parallel workers for the pairwise passes (0 = number of CPUs)")
}

func runGroup(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg := config.Load()

	method, err := sorter.ParseMethod(mustGetString(cmd, "method"))
	if err != nil {
		return err
	}
	numBins := mustGetInt(cmd, "bins")
	threshold := mustGetFloat64(cmd, "threshold")
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
		Method:    method,
		NumBins:   numBins,
		Threshold: threshold,
		Workers:   workers,
		Progress:  true,
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
	bins, err := s.Group(ctx, result)
	if err != nil {
		return err
	}

	if manifestPath != "" {
		if err := output.WriteManifest(manifestPath, output.NewGroupManifest(method, bins)); err != nil {
			return err
		}
		fmt.Printf("Manifest written to %s\n", manifestPath)
	}

	if dryRun {
		fmt.Println("Mode: DRY RUN (no files will be moved)")
		for _, bin := range bins {
			fmt.Printf("%s (%d faces)\n", bin.Name, len(bin.Members))
			for _, member := range bin.Members {
				fmt.Printf("  %s\n", member)
			}
		}
		return nil
	}

	if outputDir == "" {
		outputDir = dir + "_grouped"
	}
	if err := output.PlaceBins(bins, sourcesFor(records), output.Options{OutputDir: outputDir, Keep: keep}); err != nil {
		return err
	}

	fmt.Printf("Grouped %d faces into %d bins in %s\n", len(result), len(bins), outputDir)
	return nil
}
