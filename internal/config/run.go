// Package config loads the optional JSON run configuration.
//
// Every field is optional. Omitted fields fall back to the fixed layout the
// tool has always used, so an empty config (or none at all) reproduces the
// default run.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Defaults for the fixed run layout.
const (
	DefaultVisualPath   = "files/square_codes.txt"
	DefaultMorsePath    = "files/morse_codes.txt"
	DefaultOutputRoot   = "generated"
	DefaultVisualDir    = "visual_by_second"
	DefaultMorseDir     = "morse_by_second"
	DefaultPreviewScale = 32
	maxPreviewScale     = 256
)

// RunConfig represents the root configuration of a run.
type RunConfig struct {
	// Inputs
	VisualPath *string `json:"visual_path,omitempty"`
	MorsePath  *string `json:"morse_path,omitempty"`

	// Outputs, relative to OutputRoot for the two image directories
	OutputRoot *string `json:"output_root,omitempty"`
	VisualDir  *string `json:"visual_dir,omitempty"`
	MorseDir   *string `json:"morse_dir,omitempty"`
	ReportName *string `json:"report_name,omitempty"` // empty disables the report

	// Viewer
	Show          *bool    `json:"show,omitempty"`
	ViewerProgram *string  `json:"viewer_program,omitempty"`
	ViewerArgs    []string `json:"viewer_args,omitempty"`

	// Preview figures; 0 disables
	PreviewScale *int `json:"preview_scale,omitempty"`
}

// Helper functions to create pointers
func ptrBool(v bool) *bool       { return &v }
func ptrString(v string) *string { return &v }
func ptrInt(v int) *int          { return &v }

// EmptyRunConfig returns a RunConfig with all fields unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file.
// The file must have a .json extension and be under the max file size.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	for name, v := range map[string]*string{
		"visual_path": c.VisualPath,
		"morse_path":  c.MorsePath,
		"output_root": c.OutputRoot,
	} {
		if v != nil && strings.TrimSpace(*v) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}

	for name, v := range map[string]*string{
		"visual_dir":  c.VisualDir,
		"morse_dir":   c.MorseDir,
		"report_name": c.ReportName,
	} {
		if v != nil && filepath.IsAbs(*v) {
			return fmt.Errorf("%s must be relative to output_root, got %q", name, *v)
		}
	}

	if c.PreviewScale != nil {
		if *c.PreviewScale < 0 || *c.PreviewScale > maxPreviewScale {
			return fmt.Errorf("preview_scale must be between 0 and %d, got %d", maxPreviewScale, *c.PreviewScale)
		}
	}

	if c.ViewerProgram == nil && len(c.ViewerArgs) > 0 {
		return fmt.Errorf("viewer_args requires viewer_program")
	}

	return nil
}

// SetShow overrides the show flag.
func (c *RunConfig) SetShow(v bool) { c.Show = ptrBool(v) }

// SetReportName overrides the report file name.
func (c *RunConfig) SetReportName(v string) { c.ReportName = ptrString(v) }

// EnablePreview turns previews on at the default scale unless a scale is
// already configured.
func (c *RunConfig) EnablePreview() {
	if c.GetPreviewScale() == 0 {
		c.PreviewScale = ptrInt(DefaultPreviewScale)
	}
}

func stringOr(v *string, def string) string {
	if v == nil || *v == "" {
		return def
	}
	return *v
}

// GetVisualPath returns the visual log path or the default.
func (c *RunConfig) GetVisualPath() string { return stringOr(c.VisualPath, DefaultVisualPath) }

// GetMorsePath returns the morse log path or the default.
func (c *RunConfig) GetMorsePath() string { return stringOr(c.MorsePath, DefaultMorsePath) }

// GetOutputRoot returns the output root or the default.
func (c *RunConfig) GetOutputRoot() string { return stringOr(c.OutputRoot, DefaultOutputRoot) }

// GetVisualDir returns the visual image directory or the default.
func (c *RunConfig) GetVisualDir() string { return stringOr(c.VisualDir, DefaultVisualDir) }

// GetMorseDir returns the morse image directory or the default.
func (c *RunConfig) GetMorseDir() string { return stringOr(c.MorseDir, DefaultMorseDir) }

// GetReportName returns the report file name; empty means disabled.
func (c *RunConfig) GetReportName() string { return stringOr(c.ReportName, "") }

// GetShow returns whether images are opened in the viewer.
func (c *RunConfig) GetShow() bool {
	if c.Show == nil {
		return false // default: never show
	}
	return *c.Show
}

// GetViewerProgram returns the viewer program; empty selects the built-in default.
func (c *RunConfig) GetViewerProgram() string { return stringOr(c.ViewerProgram, "") }

// GetPreviewScale returns the preview scale; 0 disables previews.
func (c *RunConfig) GetPreviewScale() int {
	if c.PreviewScale == nil {
		return 0
	}
	return *c.PreviewScale
}
