// Package main provides the CLI entry point for sceneline.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/ideamans/go-l10n"

	"github.com/user/sceneline/pkg/adapters/filesink"
	"github.com/user/sceneline/pkg/adapters/framedir"
	"github.com/user/sceneline/pkg/adapters/ggrenderer"
	"github.com/user/sceneline/pkg/adapters/localbatch"
	"github.com/user/sceneline/pkg/adapters/logger"
	"github.com/user/sceneline/pkg/adapters/mp4meta"
	"github.com/user/sceneline/pkg/adapters/nullsink"
	"github.com/user/sceneline/pkg/adapters/osfilesystem"
	"github.com/user/sceneline/pkg/adapters/sqlitestore"
	"github.com/user/sceneline/pkg/config"
	"github.com/user/sceneline/pkg/marker"
	"github.com/user/sceneline/pkg/orchestrator"
	"github.com/user/sceneline/pkg/ports"
	"github.com/user/sceneline/pkg/storyboard"
	"github.com/user/sceneline/pkg/timeline"
)

// CLI defines the command-line interface with subcommands.
type CLI struct {
	Detect     DetectCmd     `cmd:"" help:"Detect scene boundaries in an extracted frame sequence."`
	Probe      ProbeCmd      `cmd:"" help:"Show MP4 container metadata."`
	Mark       MarkCmd       `cmd:"" help:"Interactively mark segments in a frame sequence."`
	Submit     SubmitCmd     `cmd:"" help:"Submit a video to the local library with initial segments."`
	Segments   SegmentsCmd   `cmd:"" help:"Inspect stored segments."`
	Storyboard StoryboardCmd `cmd:"" help:"Render a segment timeline image."`
	Version    VersionCmd    `cmd:"" help:"Show version information."`
}

// commonFlags are shared by the commands that run the detection stack.
type commonFlags struct {
	Config   string `short:"C" help:"YAML configuration file."`
	DB       string `help:"SQLite segment store path (default: ./sceneline.db)."`
	Debug    bool   `short:"d" help:"Enable debug output."`
	DebugDir string `default:"./debug" help:"Directory for debug output."`
	LogLevel string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet    bool   `short:"Q" help:"Suppress all log output."`
}

// DetectCmd runs a detection pass over a frame directory.
type DetectCmd struct {
	commonFlags

	Frames string  `arg:"" help:"Directory of extracted frame images."`
	Video  string  `help:"Matching MP4 file for container metadata."`
	FPS    float64 `help:"Frame rate of the extracted frames (default: 30)."`
	Policy string  `short:"p" default:"auto-scene" enum:"take-all,manual,auto-scene" help:"Split policy applied to the detected boundaries."`

	Threshold *float64 `help:"Scene cut threshold (0-1, default: 0.25)."`
	MinGap    *float64 `help:"Minimum gap between boundaries in seconds (default: 2.0)."`
}

// ProbeCmd prints MP4 container metadata.
type ProbeCmd struct {
	Path string `arg:"" help:"MP4 file path."`
}

// MarkCmd opens an interactive marking session.
type MarkCmd struct {
	commonFlags

	Frames string  `arg:"" help:"Directory of extracted frame images."`
	Video  string  `help:"Matching MP4 file for container metadata."`
	FPS    float64 `help:"Frame rate of the extracted frames (default: 30)."`
}

// SubmitCmd stores a video in the local library and creates its initial
// segments.
type SubmitCmd struct {
	Video      string `arg:"" help:"MP4 file path."`
	Policy     string `short:"p" default:"take-all" enum:"take-all,manual,auto-scene" help:"Split policy for the initial segments."`
	Boundaries string `help:"JSON file with a boundary list in seconds (auto-scene only)."`
	Library    string `default:"./library" help:"Local library directory."`
	DB         string `help:"SQLite segment store path (default: ./sceneline.db)."`
	LogLevel   string `short:"l" default:"info" enum:"debug,info,warn,error" help:"Log level (debug, info, warn, error)."`
	Quiet      bool   `short:"Q" help:"Suppress all log output."`
}

// SegmentsCmd groups the segment inspection subcommands.
type SegmentsCmd struct {
	List   SegmentsListCmd   `cmd:"" help:"List segments for a video."`
	Export SegmentsExportCmd `cmd:"" help:"Export segments as JSON."`
}

// SegmentsListCmd lists stored segments.
type SegmentsListCmd struct {
	VideoID string `arg:"" help:"Video identifier."`
	DB      string `help:"SQLite segment store path (default: ./sceneline.db)."`
}

// SegmentsExportCmd exports stored segments as JSON.
type SegmentsExportCmd struct {
	VideoID string `arg:"" help:"Video identifier."`
	DB      string `help:"SQLite segment store path (default: ./sceneline.db)."`
	Output  string `short:"o" help:"Output file path (stdout when omitted)."`
}

// StoryboardCmd renders a segment timeline image.
type StoryboardCmd struct {
	VideoID string `arg:"" help:"Video identifier."`
	DB      string `help:"SQLite segment store path (default: ./sceneline.db)."`
	Video   string `help:"Matching MP4 file for duration and dimensions."`
	Output  string `short:"o" required:"" help:"Output PNG file path."`
	Width   int    `short:"W" help:"Storyboard width (default: 960)."`
	Height  int    `short:"H" help:"Storyboard height (default: 140)."`
	Config  string `short:"C" help:"YAML configuration file."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

var version = "dev"

func main() {
	cli := CLI{}

	ctx := kong.Parse(&cli,
		kong.Name("sceneline"),
		kong.Description("Detect scene boundaries and mark segments in videos."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// newLogger builds the logger for a command.
func newLogger(quiet bool, level string) ports.Logger {
	if quiet {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(level))
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()

	return ctx, cancel
}

// loadConfig loads the YAML config when given, falling back to defaults.
func (f *commonFlags) loadConfig() (config.Config, error) {
	if f.Config == "" {
		return config.Defaults(), nil
	}
	cfg, err := config.LoadFromFile(f.Config)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (f *commonFlags) dbPath(cfg config.Config) string {
	if f.DB != "" {
		return f.DB
	}
	return cfg.DBPath
}

func (f *commonFlags) newSink(fs ports.FileSystem, renderer ports.Renderer) (ports.DebugSink, error) {
	if !f.Debug {
		return nullsink.New(), nil
	}
	if err := fs.MkdirAll(f.DebugDir); err != nil {
		return nil, fmt.Errorf("create debug directory: %w", err)
	}
	return filesink.New(f.DebugDir, fs, renderer), nil
}

// openSource builds a frame source for a frame directory, borrowing the
// asset id and frame rate from the matching MP4 container when given.
func openSource(framesDir, videoPath string, fps float64, cfg config.Config, fs ports.FileSystem, renderer ports.Renderer, log ports.Logger) (*framedir.Source, error) {
	id := filepath.Base(filepath.Clean(framesDir))

	if fps <= 0 {
		fps = cfg.FrameDirFPS
	}
	if videoPath != "" {
		info, err := mp4meta.Probe(videoPath)
		if err != nil {
			return nil, fmt.Errorf("probe video: %w", err)
		}
		id = info.Asset.ID
		if info.FPS > 0 {
			fps = info.FPS
		}
		log.Debug("Probed %s: %.2fs at %.2f fps", id, info.Asset.Duration, info.FPS)
	}

	return framedir.New(id, framesDir, fps, fs, renderer)
}

// Run executes the detect command.
func (cmd *DetectCmd) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}
	if cmd.Threshold != nil {
		cfg.Threshold = *cmd.Threshold
	}
	if cmd.MinGap != nil {
		cfg.MinGapSec = *cmd.MinGap
	}

	log := newLogger(cmd.Quiet, cmd.LogLevel)

	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	sink, err := cmd.newSink(fs, renderer)
	if err != nil {
		return err
	}

	store, err := sqlitestore.New(cmd.dbPath(cfg), log)
	if err != nil {
		return fmt.Errorf("open segment store: %w", err)
	}
	defer store.Close()

	source, err := openSource(cmd.Frames, cmd.Video, cmd.FPS, cfg, fs, renderer, log)
	if err != nil {
		return err
	}

	queue := orchestrator.New(renderer, store, sink, log, cfg.ToOrchestratorConfig())
	queue.OnProgress = func(p orchestrator.Progress) {
		log.Debug("Sampled %d/%d frames of %s", p.Sampled, p.Total, p.VideoID)
	}

	queue.SetActive(source.ID())
	queue.Enqueue(source, ports.SplitPolicy(cmd.Policy))

	outcomes, err := queue.ProcessAll(ctx)
	if err != nil {
		return err
	}

	for _, outcome := range outcomes {
		if outcome.Discarded {
			continue
		}
		printBoundaries(outcome)
	}
	return nil
}

func printBoundaries(outcome orchestrator.Outcome) {
	parts := make([]string, len(outcome.Boundaries))
	for i, b := range outcome.Boundaries {
		parts[i] = strconv.FormatFloat(b, 'f', -1, 64)
	}
	fmt.Printf("%s: [%s]\n", outcome.VideoID, strings.Join(parts, ", "))
	if len(outcome.SegmentIDs) > 0 {
		fmt.Println(l10n.F("Created %d segments", len(outcome.SegmentIDs)))
	}
}

// Run executes the probe command.
func (cmd *ProbeCmd) Run() error {
	info, err := mp4meta.Probe(cmd.Path)
	if err != nil {
		return err
	}

	fmt.Println(l10n.F("Video: %s", info.Asset.ID))
	if info.Asset.DurationKnown {
		fmt.Println(l10n.F("Duration: %.3fs", info.Asset.Duration))
	} else {
		fmt.Println(l10n.T("Duration: unknown"))
	}
	fmt.Println(l10n.F("Dimensions: %dx%d", info.Asset.Width, info.Asset.Height))
	if info.FPS > 0 {
		fmt.Println(l10n.F("Estimated FPS: %.2f", info.FPS))
	}
	return nil
}

// Run executes the mark command.
func (cmd *MarkCmd) Run() error {
	cfg, err := cmd.loadConfig()
	if err != nil {
		return err
	}

	log := newLogger(cmd.Quiet, cmd.LogLevel)

	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()
	renderer := ggrenderer.New()

	sink, err := cmd.newSink(fs, renderer)
	if err != nil {
		return err
	}

	store, err := sqlitestore.New(cmd.dbPath(cfg), log)
	if err != nil {
		return fmt.Errorf("open segment store: %w", err)
	}
	defer store.Close()

	source, err := openSource(cmd.Frames, cmd.Video, cmd.FPS, cfg, fs, renderer, log)
	if err != nil {
		return err
	}

	queue := orchestrator.New(renderer, store, sink, log, cfg.ToOrchestratorConfig())
	m := queue.NewMarker(source)

	fmt.Println(l10n.F("Marking %s. Commands: seek <t>, start, end, create [description], undo, cancel, status, quit", source.ID()))
	return runMarkSession(ctx, source, m)
}

// runMarkSession reads marking commands from stdin until quit or EOF.
func runMarkSession(ctx context.Context, source ports.FrameSource, m *marker.Marker) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Printf("[%s %.3fs] > ", m.State(), source.Position())
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "seek":
			if len(fields) < 2 {
				fmt.Println(l10n.T("Usage: seek <seconds>"))
				continue
			}
			t, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				fmt.Println(l10n.F("Invalid time: %s", fields[1]))
				continue
			}
			if err := source.Seek(ctx, t); err != nil {
				fmt.Println(l10n.F("Seek failed: %s", err))
			}

		case "start":
			if err := m.MarkStart(ctx); err != nil {
				fmt.Println(err)
			}

		case "end":
			if err := m.MarkEnd(ctx); err != nil {
				fmt.Println(err)
			}

		case "create":
			description := strings.Join(fields[1:], " ")
			result, err := m.Create(ctx, description)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Println(l10n.F("Segment %s created", result.SegmentID))
			// Cursor lands where the segment ended.
			if err := source.Seek(ctx, result.EndTime); err != nil {
				fmt.Println(l10n.F("Seek failed: %s", err))
			}

		case "undo":
			if err := m.RemoveLastMark(); err != nil {
				fmt.Println(err)
			}

		case "cancel":
			m.Cancel()

		case "status":
			printMarkStatus(m)

		case "quit", "exit":
			return nil

		default:
			fmt.Println(l10n.F("Unknown command: %s", fields[0]))
		}
	}
	return scanner.Err()
}

func printMarkStatus(m *marker.Marker) {
	fmt.Println(l10n.F("State: %s", m.State()))
	if start, ok := m.Start(); ok {
		fmt.Println(l10n.F("Start: %.3fs", start))
	}
	if end, ok := m.End(); ok {
		fmt.Println(l10n.F("End: %.3fs", end))
	}
}

// Run executes the submit command.
func (cmd *SubmitCmd) Run() error {
	log := newLogger(cmd.Quiet, cmd.LogLevel)

	ctx, cancel := signalContext(log)
	defer cancel()

	fs := osfilesystem.New()

	data, err := fs.ReadFile(cmd.Video)
	if err != nil {
		return fmt.Errorf("read video: %w", err)
	}

	var boundaries []float64
	if cmd.Boundaries != "" {
		raw, err := fs.ReadFile(cmd.Boundaries)
		if err != nil {
			return fmt.Errorf("read boundaries: %w", err)
		}
		if err := json.Unmarshal(raw, &boundaries); err != nil {
			return fmt.Errorf("parse boundaries: %w", err)
		}
	}

	store, err := openStore(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	uploader := localbatch.New(cmd.Library, fs, store, log)
	batchID, err := uploader.SubmitBatch(ctx, filepath.Base(cmd.Video), data,
		ports.SplitPolicy(cmd.Policy), boundaries)
	if err != nil {
		return err
	}

	fmt.Println(l10n.F("Submitted batch %s", batchID))
	return nil
}

// Run executes the segments list command.
func (cmd *SegmentsListCmd) Run() error {
	store, err := openStore(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListSegments(context.Background(), cmd.VideoID)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println(l10n.F("No segments for %s", cmd.VideoID))
		return nil
	}

	for _, rec := range records {
		fmt.Printf("%3d  %s  %8dms - %8dms  %s\n",
			rec.CreationIndex, rec.ID, rec.StartMs, rec.EndMs, rec.Description)
	}
	return nil
}

// Run executes the segments export command.
func (cmd *SegmentsExportCmd) Run() error {
	store, err := openStore(cmd.DB)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListSegments(context.Background(), cmd.VideoID)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal segments: %w", err)
	}

	if cmd.Output == "" {
		fmt.Println(string(data))
		return nil
	}

	fs := osfilesystem.New()
	if err := fs.WriteFile(cmd.Output, data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	fmt.Println(l10n.F("Exported %d segments to %s", len(records), cmd.Output))
	return nil
}

// Run executes the storyboard command.
func (cmd *StoryboardCmd) Run() error {
	cfg := config.Defaults()
	if cmd.Config != "" {
		var err error
		cfg, err = config.LoadFromFile(cmd.Config)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	dbPath := cmd.DB
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	store, err := openStore(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	records, err := store.ListSegments(context.Background(), cmd.VideoID)
	if err != nil {
		return err
	}

	asset := timeline.VideoAsset{ID: cmd.VideoID}
	if cmd.Video != "" {
		info, err := mp4meta.Probe(cmd.Video)
		if err != nil {
			return fmt.Errorf("probe video: %w", err)
		}
		asset = info.Asset
		asset.ID = cmd.VideoID
	} else {
		// Without the container, the latest segment end bounds the timeline.
		var maxEnd int64
		for _, rec := range records {
			if rec.EndMs > maxEnd {
				maxEnd = rec.EndMs
			}
		}
		if maxEnd == 0 {
			return fmt.Errorf("no segments and no --video to derive a duration from")
		}
		asset.Duration = float64(maxEnd) / 1000.0
		asset.DurationKnown = true
	}

	segments := make([]timeline.Segment, len(records))
	for i, rec := range records {
		segments[i] = timeline.Segment{
			ID:            rec.ID,
			VideoID:       rec.VideoID,
			StartMs:       rec.StartMs,
			EndMs:         rec.EndMs,
			Description:   rec.Description,
			CreationIndex: rec.CreationIndex,
		}
	}

	renderer := ggrenderer.New()

	input := storyboard.DefaultInput(asset)
	input.Segments = segments
	input.Theme = cfg.ToStoryboardTheme()
	if cmd.Width > 0 {
		input.Width = cmd.Width
	} else if cfg.StoryboardWidth > 0 {
		input.Width = cfg.StoryboardWidth
	}
	if cmd.Height > 0 {
		input.Height = cmd.Height
	} else if cfg.StoryboardHeight > 0 {
		input.Height = cfg.StoryboardHeight
	}

	img, err := storyboard.Render(renderer, input)
	if err != nil {
		return fmt.Errorf("render storyboard: %w", err)
	}

	data, err := renderer.EncodeImage(img, ports.FormatPNG, 0)
	if err != nil {
		return fmt.Errorf("encode storyboard: %w", err)
	}

	fs := osfilesystem.New()
	if err := fs.WriteFile(cmd.Output, data); err != nil {
		return fmt.Errorf("write storyboard: %w", err)
	}

	fmt.Println(l10n.F("Storyboard saved to %s", cmd.Output))
	return nil
}

func openStore(dbPath string) (*sqlitestore.Store, error) {
	if dbPath == "" {
		dbPath = config.Defaults().DBPath
	}
	store, err := sqlitestore.New(dbPath, logger.NewNoop())
	if err != nil {
		return nil, fmt.Errorf("open segment store: %w", err)
	}
	return store, nil
}

// Run executes the version command.
func (cmd *VersionCmd) Run() error {
	fmt.Println(l10n.F("sceneline version %s", version))
	return nil
}
