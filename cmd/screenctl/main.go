package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"screen_navigator/internal/adaptors"
	"screen_navigator/internal/application/config"
	"screen_navigator/internal/domain/models"
	"screen_navigator/internal/service"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dir       string
	shotName  string
	width     int
	height    int
	timeout   time.Duration
	analyze   bool
	workers   int
	verbose   bool
	logger    = log.New()
	stdoutEnc = json.NewEncoder(os.Stdout)
)

func main() {
	// config.env is optional for the CLI
	_ = godotenv.Load(`config.env`)

	rootCmd := &cobra.Command{
		Use:   "screenctl",
		Short: "Inspect the screen navigator agents and run their tools locally",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.SetOutput(os.Stderr)
			logger.SetFormatter(&log.TextFormatter{TimestampFormat: time.RFC3339, FullTimestamp: true})
			if verbose {
				logger.SetLevel(log.DebugLevel)
			}
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	stdoutEnc.SetIndent("", "  ")

	agentsCmd := &cobra.Command{
		Use:   "agents",
		Short: "Print the agent configurations as JSON",
		Args:  cobra.NoArgs,
		RunE:  runAgents,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the screenshot found in a directory",
		Long: `analyze treats a directory as the session's artifacts: it looks for
screenshot.png, screenshot.jpg, screenshot.jpeg or screen.png and otherwise
takes the most recently modified image.`,
		Args: cobra.NoArgs,
		RunE: runAnalyze,
	}
	analyzeCmd.Flags().StringVarP(&dir, "dir", "d", ".", "Directory holding the screenshots")

	searchCmd := &cobra.Command{
		Use:   "search <query> [query...]",
		Short: "Run one or more web searches with the configured backend",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSearch,
	}
	searchCmd.Flags().IntVar(&workers, "workers", 4, "Concurrent searches")

	captureCmd := &cobra.Command{
		Use:   "capture <url>",
		Short: "Screenshot a web page with headless Chromium",
		Args:  cobra.ExactArgs(1),
		RunE:  runCapture,
	}
	captureCmd.Flags().StringVarP(&dir, "dir", "d", ".", "Output directory")
	captureCmd.Flags().StringVar(&shotName, "name", "screenshot.png", "Output filename")
	captureCmd.Flags().IntVar(&width, "width", 1280, "Viewport width")
	captureCmd.Flags().IntVar(&height, "height", 720, "Viewport height")
	captureCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Page load timeout")
	captureCmd.Flags().BoolVar(&analyze, "analyze", false, "Analyze the capture afterwards")

	rootCmd.AddCommand(agentsCmd, analyzeCmd, searchCmd, captureCmd)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func runAgents(cmd *cobra.Command, _ []string) error {
	return stdoutEnc.Encode(service.DefaultAgents().List())
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	result, err := analyzeDir(cmd.Context(), dir)
	if err != nil {
		return err
	}
	return stdoutEnc.Encode(result)
}

func analyzeDir(ctx context.Context, dir string) (*models.ScreenAnalysis, error) {
	cfg, err := config.NewAppConfig()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	vision, err := adaptors.NewVisionModel(cfg, logger)
	if err != nil {
		return nil, err
	}

	logger.WithFields(log.Fields{`provider`: cfg.VisionProvider, `model`: cfg.VisionModel, `dir`: dir}).Debug(`analyzing`)
	analyzer := service.NewScreenshotAnalyzer(logger, vision, cfg.VisionModel, cfg.VisionMaxDimension)
	return analyzer.Analyze(ctx, adaptors.NewDirArtifactStore(dir, logger))
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewAppConfig()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	searcher, err := adaptors.NewSearcher(cfg, logger)
	if err != nil {
		return err
	}

	queries := make([]any, 0, len(args))
	for _, a := range args {
		queries = append(queries, a)
	}
	tool := service.NewSearchTool(searcher, workers, logger)
	result, err := tool.Call(cmd.Context(), service.ToolContext{}, map[string]any{"queries": queries})
	if err != nil {
		return err
	}
	return stdoutEnc.Encode(result)
}

func runCapture(cmd *cobra.Command, args []string) error {
	url := args[0]
	capturer := adaptors.NewScreenCapturer(width, height, timeout, logger)

	fmt.Fprintf(os.Stderr, "→ Capturing %s... ", url)
	data, err := capturer.Capture(cmd.Context(), url)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed")
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, shotName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "done (%s, %s)\n", path, humanize.IBytes(uint64(len(data))))

	if !analyze {
		return nil
	}
	result, err := analyzeDir(cmd.Context(), dir)
	if err != nil {
		return err
	}
	return stdoutEnc.Encode(result)
}
