// Package config loads the YAML report configuration: which deviation pairs
// to derive and which plots to render. Default returns the curated suite for
// the room-corner evaluation schema.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avandyck/roomeval/src/deviation"
	"github.com/avandyck/roomeval/src/plotting"
)

// PairConfig names one predicted/ground-truth column pair.
type PairConfig struct {
	Predicted   string `yaml:"predicted"`
	GroundTruth string `yaml:"ground_truth"`
}

// PlotConfig describes one plot entry. Kind validity is checked at render
// time, not at parse time.
type PlotConfig struct {
	Kind         string   `yaml:"kind"`
	Columns      []string `yaml:"columns"`
	Title        string   `yaml:"title,omitempty"`
	XLabel       string   `yaml:"x_label,omitempty"`
	YLabel       string   `yaml:"y_label,omitempty"`
	Bins         int      `yaml:"bins,omitempty"`
	TopN         int      `yaml:"top_n,omitempty"`
	Ascending    bool     `yaml:"ascending,omitempty"`
	LabelColumn  string   `yaml:"label_column,omitempty"`
	IdentityLine bool     `yaml:"identity_line,omitempty"`
	Width        int      `yaml:"width,omitempty"`
	Height       int      `yaml:"height,omitempty"`
	FileName     string   `yaml:"file_name,omitempty"`
}

// Config is the full report configuration.
type Config struct {
	OutDir          string       `yaml:"out_dir"`
	AbsDeviation    bool         `yaml:"abs_deviation"`
	ContinueOnError bool         `yaml:"continue_on_error"`
	Pairs           []PairConfig `yaml:"pairs"`
	Plots           []PlotConfig `yaml:"plots"`
}

// Load reads a YAML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "plots"
	}
	return &cfg, nil
}

// Plot converts the YAML entry into a renderer config.
func (p PlotConfig) Plot() plotting.Config {
	return plotting.Config{
		Kind:         plotting.Kind(p.Kind),
		Columns:      p.Columns,
		Title:        p.Title,
		XLabel:       p.XLabel,
		YLabel:       p.YLabel,
		Bins:         p.Bins,
		TopN:         p.TopN,
		Ascending:    p.Ascending,
		LabelColumn:  p.LabelColumn,
		IdentityLine: p.IdentityLine,
		Width:        p.Width,
		Height:       p.Height,
		FileName:     p.FileName,
	}
}

// Suite builds the renderer suite for this config.
func (c *Config) Suite() plotting.Suite {
	s := plotting.Suite{OutDir: c.OutDir, ContinueOnError: c.ContinueOnError}
	for _, p := range c.Plots {
		s.Plots = append(s.Plots, p.Plot())
	}
	return s
}

// DerivePairs converts the configured pairs for the deriver.
func (c *Config) DerivePairs() []deviation.Pair {
	out := make([]deviation.Pair, 0, len(c.Pairs))
	for _, p := range c.Pairs {
		out = append(out, deviation.Pair{Predicted: p.Predicted, GroundTruth: p.GroundTruth})
	}
	return out
}

// Default returns the curated suite for the room-corner evaluation export:
// corner-count agreement, mean angle deviations overall and per floor/ceiling,
// and the best/worst rooms by mean deviation.
func Default() *Config {
	return &Config{
		OutDir: "plots",
		Pairs: []PairConfig{
			{Predicted: "rb_corners", GroundTruth: "gt_corners"},
		},
		Plots: []PlotConfig{
			{Kind: "scatter", Columns: []string{"gt_corners", "rb_corners"}, IdentityLine: true},
			{Kind: "scatter", Columns: []string{"gt_corners", "mean"}},
			{Kind: "scatter", Columns: []string{"floor_mean", "ceiling_mean"}},
			{Kind: "histogram", Columns: []string{"mean"}, XLabel: "Degrees", YLabel: "Frequency"},
			{Kind: "histogram", Columns: []string{"floor_mean"}, XLabel: "Degrees", YLabel: "Frequency"},
			{Kind: "histogram", Columns: []string{"ceiling_mean"}, XLabel: "Degrees", YLabel: "Frequency"},
			{Kind: "boxplot", Columns: []string{"min", "mean", "max"}, Title: "Boxplots for stats", YLabel: "Degrees"},
			{Kind: "boxplot", Columns: []string{"mean", "floor_mean", "ceiling_mean"}, Title: "Boxplots for means", YLabel: "Degrees"},
			{Kind: "boxplot", Columns: []string{"floor_min", "floor_mean", "floor_max"}, Title: "Boxplots for floor stats", YLabel: "Degrees"},
			{Kind: "boxplot", Columns: []string{"ceiling_min", "ceiling_mean", "ceiling_max"}, Title: "Boxplots for ceiling stats", YLabel: "Degrees"},
			{Kind: "boxplot", Columns: []string{"floor_min", "floor_mean", "floor_max", "ceiling_min", "ceiling_mean", "ceiling_max"}, Title: "Boxplots for Floor vs Ceiling", YLabel: "Degrees"},
			{Kind: "bars", Columns: []string{"mean"}, TopN: 10, Ascending: true, LabelColumn: "name", XLabel: "Degrees"},
			{Kind: "bars", Columns: []string{"mean"}, TopN: 10, Ascending: false, LabelColumn: "name", XLabel: "Degrees"},
		},
	}
}
