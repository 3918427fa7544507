package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tkukec/arcus-grid/internal/config"
	"github.com/tkukec/arcus-grid/internal/fsutil"
	"github.com/tkukec/arcus-grid/internal/monitoring"
	"github.com/tkukec/arcus-grid/internal/pipeline"
	"github.com/tkukec/arcus-grid/internal/render"
	"github.com/tkukec/arcus-grid/internal/version"
	"github.com/tkukec/arcus-grid/internal/viewer"
)

var (
	configPath  = flag.String("config", "", "Path to JSON run configuration (optional)")
	show        = flag.Bool("show", false, "Open every rendered image in the viewer")
	preview     = flag.Bool("preview", false, "Also write an enlarged, labelled preview per image")
	reportName  = flag.String("report", "", "Write an HTML colour report with this name under the output root")
	verbose     = flag.Bool("verbose", false, "Enable debug logging")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

// loadConfig merges the optional config file with command-line overrides.
// Flags only override the file when they were set explicitly.
func loadConfig(path string, set map[string]bool) (*config.RunConfig, error) {
	cfg := config.EmptyRunConfig()
	if path != "" {
		var err error
		cfg, err = config.LoadRunConfig(path)
		if err != nil {
			return nil, err
		}
	}

	if set["show"] {
		cfg.SetShow(*show)
	}
	if set["report"] {
		cfg.SetReportName(*reportName)
	}
	if set["preview"] && *preview {
		cfg.EnablePreview()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func newPipeline(cfg *config.RunConfig) *pipeline.Pipeline {
	fsys := fsutil.OSFileSystem{}

	var opts []render.Option
	if scale := cfg.GetPreviewScale(); scale > 0 {
		opts = append(opts, render.WithPreview(scale))
	}
	v := viewer.New(viewer.NewRealCommandBuilder(), cfg.GetViewerProgram(), cfg.ViewerArgs)
	renderer := render.NewRenderer(fsys, cfg.GetOutputRoot(), v, opts...)

	return pipeline.New(fsys, renderer, pipeline.Options{
		VisualPath: cfg.GetVisualPath(),
		MorsePath:  cfg.GetMorsePath(),
		VisualDir:  cfg.GetVisualDir(),
		MorseDir:   cfg.GetMorseDir(),
		Show:       cfg.GetShow(),
		ReportName: cfg.GetReportName(),
	})
}

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Fprintln(os.Stdout, version.String())
		return
	}
	monitoring.SetVerbose(*verbose)

	cfg, err := loadConfig(*configPath, setFlags())
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	sum, err := newPipeline(cfg).Run()
	if err != nil {
		log.Fatalf("run failed: %v", err)
	}
	log.Printf("run %s complete: %d visual days, %d morse days, %d files written",
		sum.RunID, sum.VisualDays, sum.MorseDays, len(sum.Outputs))
}
