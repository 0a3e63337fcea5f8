package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gif-shrink/internal/gifsicle"
	"gif-shrink/internal/search"
)

var (
	outputPath      string
	targetSizeKB    float64
	minFramePercent int
	threadCount     int

	rootCmd = &cobra.Command{
		Use:   "gif-shrink",
		Short: "Compress animated GIFs to a target size",
		Long: `gif-shrink searches for the best achievable re-encoding of an animated
GIF that fits under a byte-size budget, combining frame subsampling with
gifsicle's lossy recompression across parallel workers.

It requires gifsicle to be installed (run "gif-shrink doctor" to check).`,
	}

	compressCmd = &cobra.Command{
		Use:   "compress <input.gif>",
		Short: "Compress a GIF to fit under the target size",
		Args:  cobra.ExactArgs(1),
		Run:   runCompress,
	}

	infoCmd = &cobra.Command{
		Use:   "info <input.gif>",
		Short: "Show size and frame count of a GIF",
		Args:  cobra.ExactArgs(1),
		RunE:  runInfo,
	}

	doctorCmd = &cobra.Command{
		Use:   "doctor",
		Short: "Check that the external encoder is installed",
		RunE:  runDoctor,
	}
)

func init() {
	compressCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (required)")
	compressCmd.Flags().Float64Var(&targetSizeKB, "target-size", 500, "target size in KB")
	compressCmd.Flags().IntVar(&minFramePercent, "min-frame-percent", 10, "minimum percentage of frames to keep")
	compressCmd.Flags().IntVar(&threadCount, "threads", 0, "concurrent workers (0 = all CPUs)")
	_ = compressCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(compressCmd, infoCmd, doctorCmd)
}

func runCompress(cmd *cobra.Command, args []string) {
	res := search.Compress(cmd.Context(), search.Options{
		InputPath:       args[0],
		OutputPath:      outputPath,
		TargetSizeKB:    targetSizeKB,
		MinFramePercent: minFramePercent,
		ThreadCount:     threadCount,
	})

	// A zero compressed size means no output was produced at all.
	if res.CompressedSizeKB == 0 {
		fmt.Fprintln(os.Stderr, res.Message)
		os.Exit(1)
	}

	fmt.Printf("original:   %.2f KB\n", res.OriginalSizeKB)
	fmt.Printf("compressed: %.2f KB\n", res.CompressedSizeKB)
	fmt.Println(res.Message)

	if !res.Success {
		os.Exit(2)
	}
}

func runInfo(cmd *cobra.Command, args []string) error {
	info, err := search.Inspect(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("size:   %.2f KB\n", info.SizeKB)
	fmt.Printf("frames: %d\n", info.FrameCount)
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if err := gifsicle.New().Probe(cmd.Context()); err != nil {
		return err
	}
	fmt.Println("gifsicle is installed")
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
