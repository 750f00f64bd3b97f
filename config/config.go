// Package config holds the plot and logging settings of admixplot. Settings
// come from an optional TOML file; anything it leaves out keeps its default.
package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/carbocation/admixplot/grouplayout"
	"github.com/carbocation/pfx"
)

// EnvPath names the environment variable that may point at a config file.
const EnvPath = "ADMIXPLOT_CONFIG"

// DefaultPalette is the component color cycle. It matches the matplotlib
// tab10 colors followed by five from ColorBrewer Dark2.
var DefaultPalette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf",
	"#1b9e77", "#e7298a", "#66a61e", "#e6ab02", "#a6761d",
}

type Config struct {
	ConfigPath string `toml:"-"`

	Layout         string   `toml:"layout"`
	Width          int      `toml:"width"`
	Height         int      `toml:"height"`
	Palette        []string `toml:"palette"`
	LabelFontSize  float64  `toml:"label_font_size"`
	TitleFontSize  float64  `toml:"title_font_size"`
	LegendFontSize float64  `toml:"legend_font_size"`
	BarWidth       float64  `toml:"bar_width"`
	ShowK          bool     `toml:"show_k"`

	// Rows whose proportions sum further than this from 1 are reported.
	SimplexTolerance float64 `toml:"simplex_tolerance"`

	LogLevel string `toml:"log_level"`
}

// Default returns the settings used when no config file is given. They
// reproduce a 25x5 inch figure at 100 dpi.
func Default() Config {
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)

	return Config{
		Layout:           grouplayout.ModeBoundaries.String(),
		Width:            2500,
		Height:           500,
		Palette:          palette,
		LabelFontSize:    6,
		TitleFontSize:    14,
		LegendFontSize:   9,
		BarWidth:         1,
		ShowK:            true,
		SimplexTolerance: 1e-3,
		LogLevel:         "info",
	}
}

// FromEnv loads the file named by ADMIXPLOT_CONFIG, or returns the defaults if
// the variable is unset.
func FromEnv() (Config, error) {
	path := os.Getenv(EnvPath)
	if path == "" {
		return Default(), nil
	}

	return ParseFromPath(path)
}

// ParseFromPath reads a TOML config file over the defaults and validates the
// result.
func ParseFromPath(path string) (Config, error) {
	out := Default()
	out.ConfigPath = expandHomeDir(path)

	md, err := toml.DecodeFile(out.ConfigPath, &out)
	if err != nil {
		return out, pfx.Err(err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return out, fmt.Errorf("%s: unknown keys %s", out.ConfigPath, strings.Join(keys, ", "))
	}

	// Colors are compared in lower case internally
	for i, v := range out.Palette {
		out.Palette[i] = strings.ToLower(strings.TrimSpace(v))
	}

	if err := out.Validate(); err != nil {
		return out, fmt.Errorf("%s: %w", out.ConfigPath, err)
	}

	return out, nil
}

// Mode returns the configured group layout mode.
func (c Config) Mode() (grouplayout.Mode, error) {
	return grouplayout.ParseMode(c.Layout)
}

// Validate checks that the settings can drive a render.
func (c Config) Validate() error {
	if _, err := c.Mode(); err != nil {
		return err
	}

	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("figure size must be positive, got %dx%d", c.Width, c.Height)
	}

	if c.BarWidth <= 0 || c.BarWidth > 1 {
		return fmt.Errorf("bar_width must be in (0, 1], got %v", c.BarWidth)
	}

	for name, size := range map[string]float64{
		"label_font_size":  c.LabelFontSize,
		"title_font_size":  c.TitleFontSize,
		"legend_font_size": c.LegendFontSize,
	} {
		if size <= 0 {
			return fmt.Errorf("%s must be positive, got %v", name, size)
		}
	}

	if c.SimplexTolerance < 0 {
		return fmt.Errorf("simplex_tolerance must not be negative, got %v", c.SimplexTolerance)
	}

	if len(c.Palette) == 0 {
		return fmt.Errorf("palette must list at least one color")
	}
	for _, v := range c.Palette {
		if !validHexColor(v) {
			return fmt.Errorf("palette color %q is not of the form #rrggbb", v)
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error; got %q", c.LogLevel)
	}

	return nil
}

func validHexColor(code string) bool {
	if len(code) != 7 || code[0] != '#' {
		return false
	}

	_, err := strconv.ParseUint(code[1:], 16, 32)
	return err == nil
}

// Via https://stackoverflow.com/a/17617721/199475
func expandHomeDir(path string) string {
	usr, err := user.Current()
	if err != nil {
		return path
	}

	dir := usr.HomeDir

	if path == "~" {
		path = dir
	} else if strings.HasPrefix(path, "~/") {
		path = filepath.Join(dir, path[2:])
	}

	return path
}
