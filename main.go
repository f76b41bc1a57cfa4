package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/rm-hull/pixel-expander/cmd"
	"github.com/rm-hull/pixel-expander/internal"
	"github.com/spf13/cobra"
)

func main() {
	var inputPath, outputPath, previewPath string
	var frameDelay float64
	var inputDir, outputDir string
	var every time.Duration
	var port int
	var maxUpload int64
	var debug bool

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := internal.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "pixel-expander",
		Short: "Upsample images by inserting linearly blended pixels",
		Long: `Upsample images by inserting n linearly blended pixels between
every pair of neighbouring pixels, horizontally, vertically and diagonally.`,
	}

	rootCmd.PersistentFlags().IntVarP(&cfg.Factor, "factor", "n", cfg.Factor, "Number of pixels to insert between each pair of original pixels")
	rootCmd.PersistentFlags().IntVar(&cfg.MaxPixels, "max-pixels", cfg.MaxPixels, "Refuse to produce images larger than this many pixels (0 = no limit)")
	rootCmd.PersistentFlags().IntVar(&cfg.JpegQuality, "jpeg-quality", cfg.JpegQuality, "Quality used when writing JPEG output (1-100)")
	rootCmd.PersistentFlags().Float64Var(&cfg.BlurSigma, "blur", cfg.BlurSigma, "Gaussian blur sigma applied after expanding (0 = off)")

	expandCmd := &cobra.Command{
		Use:   "expand [--input <path|url>] [--output <path>] [--preview <path>]",
		Short: "Expand a single image",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Expand(internal.SingleFileConfig{
				Config:      cfg,
				Input:       inputPath,
				Output:      outputPath,
				PreviewPath: previewPath,
				FrameDelay:  frameDelay,
			})
		},
	}

	expandCmd.Flags().StringVar(&inputPath, "input", internal.EnvString("EXPANDER_INPUT", "single_expansion/input_image.png"), "Image file or http(s) URL to expand")
	expandCmd.Flags().StringVar(&outputPath, "output", internal.EnvString("EXPANDER_OUTPUT", "single_expansion/expanded_image.jpg"), "Where to write the expanded image; the extension selects the format")
	expandCmd.Flags().StringVar(&previewPath, "preview", "", "Also write an animated PNG flipping between the original and the expanded image")
	expandCmd.Flags().Float64Var(&frameDelay, "frame-delay", 1.0, "Seconds per preview frame")

	batchCmd := &cobra.Command{
		Use:   "batch [--input-dir <path>] [--output-dir <path>]",
		Short: "Expand every PNG and JPEG image in a folder",
		RunE: func(_ *cobra.Command, _ []string) error {
			return cmd.Batch(internal.ProcessorConfig{
				Config:    cfg,
				InputDir:  inputDir,
				OutputDir: outputDir,
			})
		},
	}

	watchCmd := &cobra.Command{
		Use:   "watch [--input-dir <path>] [--output-dir <path>] [--every <duration>]",
		Short: "Expand new images in a folder on a fixed interval",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.Watch(internal.ProcessorConfig{
				Config:    cfg,
				InputDir:  inputDir,
				OutputDir: outputDir,
			}, every)
		},
	}

	for _, c := range []*cobra.Command{batchCmd, watchCmd} {
		c.Flags().StringVar(&inputDir, "input-dir", internal.EnvString("EXPANDER_INPUT_DIR", "folder_conversion/input_images"), "Folder containing the images to process")
		c.Flags().StringVar(&outputDir, "output-dir", internal.EnvString("EXPANDER_OUTPUT_DIR", "folder_conversion/output_images"), "Folder where the expanded images are saved")
	}
	watchCmd.Flags().DurationVar(&every, "every", 5*time.Minute, "How often to look for new images")

	apiServerCmd := &cobra.Command{
		Use:   "api-server [--port <port>] [--max-upload <bytes>] [--debug]",
		Short: "Start HTTP API server",
		Run: func(_ *cobra.Command, _ []string) {
			cmd.ApiServer(cfg, port, maxUpload, debug)
		},
	}

	apiServerCmd.Flags().IntVar(&port, "port", internal.EnvInt("PORT", 8080), "Port to run HTTP server on")
	apiServerCmd.Flags().Int64Var(&maxUpload, "max-upload", internal.DefaultMaxUploadBytes, "Largest accepted upload in bytes")
	apiServerCmd.Flags().BoolVar(&debug, "debug", false, "Enable debugging (pprof) - WARNING: do not enable in production")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			internal.ShowVersion()
		},
	}

	rootCmd.AddCommand(expandCmd, batchCmd, watchCmd, apiServerCmd, versionCmd)
	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
