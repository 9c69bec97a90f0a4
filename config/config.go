// Package config loads the detector's YAML configuration file and layers
// command-line flag overrides on top of it, the way the teacher's
// deviceid/appserver configuration paths work.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	gravesdet "meteorscatter/gravesdet/src"
)

// Station describes the receiving site. It is loaded from the config file
// but no other package reads it; the detector itself is agnostic to siting.
type Station struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lon  float64 `yaml:"lon"`
}

// Config is the full on-disk configuration surface: detector parameters,
// station metadata, and the export paths.
type Config struct {
	SampleRate       float64 `yaml:"sample_rate"`
	TuningOffset     float64 `yaml:"tuning_offset"`
	WideCutoff       float64 `yaml:"wide_cutoff"`
	NarrowCutoff     float64 `yaml:"narrow_cutoff"`
	Threshold        float64 `yaml:"threshold"`
	MinChirpDuration float64 `yaml:"min_chirp_duration"`

	TransmitterHz float64 `yaml:"transmitter_hz"`

	Station Station `yaml:"station"`

	ArchiveDir     string `yaml:"archive_dir"`
	ArchivePattern string `yaml:"archive_pattern"`

	NetExportAddr string `yaml:"net_export_addr"`
	NetExportName string `yaml:"net_export_name"`
	DNSSD         bool   `yaml:"dnssd"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the reference detector defaults plus sensible, inert
// export settings (archival and network export both off).
func Default() Config {
	var params = gravesdet.DefaultParams(8000, 0)
	return Config{
		SampleRate:       params.SampleRate,
		TuningOffset:     params.TuningOffset,
		WideCutoff:       params.WideCutoff,
		NarrowCutoff:     params.NarrowCutoff,
		Threshold:        params.Threshold,
		MinChirpDuration: params.MinChirpDuration,
		TransmitterHz:    143.050e6,
		ArchivePattern:   "chirps-%Y-%m-%d.jsonl",
		LogLevel:         "info",
	}
}

// Load reads and parses a YAML config file, starting from Default() so
// unset fields keep their defaults.
func Load(path string) (Config, error) {
	var cfg = Default()

	var data, readErr = os.ReadFile(path)
	if readErr != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, readErr)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return cfg, nil
}

// DetectorParams extracts the gravesdet.DetectorParams embedded in the
// config.
func (c Config) DetectorParams() gravesdet.DetectorParams {
	return gravesdet.DetectorParams{
		SampleRate:       c.SampleRate,
		TuningOffset:     c.TuningOffset,
		WideCutoff:       c.WideCutoff,
		NarrowCutoff:     c.NarrowCutoff,
		Threshold:        c.Threshold,
		MinChirpDuration: c.MinChirpDuration,
	}
}

// Flags holds the command-line overrides registered by RegisterFlags.
type Flags struct {
	ConfigFile   *string
	SampleRate   *float64
	TuningOffset *float64
	WideCutoff   *float64
	NarrowCutoff *float64
	Threshold    *float64
	ArchiveDir   *string
	NetExport    *string
	LogLevel     *string
}

// RegisterFlags registers the CLI surface, following the teacher's
// short/long flag convention (pflag.*P with a single-letter shorthand).
// Zero-value flags do not override the loaded config: Apply copies a flag
// only when its value is non-zero, except tuning-offset, which it copies
// whenever the flag was set on the command line.
func RegisterFlags() *Flags {
	return &Flags{
		ConfigFile:   pflag.StringP("config-file", "c", "gravesdet.yaml", "Configuration file name."),
		SampleRate:   pflag.Float64P("sample-rate", "r", 0, "Override the configured sample rate, Hz."),
		TuningOffset: pflag.Float64P("tuning-offset", "f", 0, "Override the configured tuning offset, Hz."),
		WideCutoff:   pflag.Float64P("wide-cutoff", "w", 0, "Override the configured wide-band cutoff, Hz."),
		NarrowCutoff: pflag.Float64P("narrow-cutoff", "n", 0, "Override the configured narrow-band cutoff, Hz."),
		Threshold:    pflag.Float64P("threshold", "t", 0, "Override the configured detection threshold."),
		ArchiveDir:   pflag.StringP("archive-dir", "a", "", "Override the configured archive directory."),
		NetExport:    pflag.StringP("net-export", "e", "", "Override the configured network export address (host:port)."),
		LogLevel:     pflag.StringP("log-level", "l", "", "Override the configured log level (debug, info, warn, error)."),
	}
}

// Apply layers flag values onto cfg, returning the merged result. Most
// fields only override on a non-zero value, since zero is never a
// legitimate override for them; tuning-offset is the exception (0 Hz is a
// valid offset), so it overrides whenever the flag was explicitly set on
// the command line.
func (f *Flags) Apply(cfg Config) Config {
	if *f.SampleRate != 0 {
		cfg.SampleRate = *f.SampleRate
	}
	if pflag.CommandLine.Changed("tuning-offset") {
		cfg.TuningOffset = *f.TuningOffset
	}
	if *f.WideCutoff != 0 {
		cfg.WideCutoff = *f.WideCutoff
	}
	if *f.NarrowCutoff != 0 {
		cfg.NarrowCutoff = *f.NarrowCutoff
	}
	if *f.Threshold != 0 {
		cfg.Threshold = *f.Threshold
	}
	if *f.ArchiveDir != "" {
		cfg.ArchiveDir = *f.ArchiveDir
	}
	if *f.NetExport != "" {
		cfg.NetExportAddr = *f.NetExport
	}
	if *f.LogLevel != "" {
		cfg.LogLevel = *f.LogLevel
	}
	return cfg
}
