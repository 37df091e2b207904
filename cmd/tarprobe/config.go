package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
)

// Output formats.
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

// config holds CLI settings. Values from the config file are overridden by
// flags given on the command line.
type config struct {
	Digests          []string `toml:"digests,omitempty"`
	Format           string   `toml:"format,omitempty"`
	List             bool     `toml:"list,omitempty"`
	Decompress       bool     `toml:"decompress,omitempty"`
	Jobs             int      `toml:"jobs,omitempty"`
	Verbose          bool     `toml:"verbose,omitempty"`
	NoColor          bool     `toml:"no_color,omitempty"`
	MaxDecoderMemory uint64   `toml:"max_decoder_memory,omitempty"`

	files []string
}

func defaultConfig() config {
	return config{
		Format: formatText,
		Jobs:   runtime.GOMAXPROCS(0),
	}
}

// defaultConfigName is loaded from the working directory when -config is
// not given.
const defaultConfigName = "tarprobe.toml"

var errUsage = errors.New("usage")

// parseArgs parses flags and the optional config file.
func parseArgs(args []string, fs *flag.FlagSet) (config, error) {
	var (
		configPath string
		digests    string
		flagCfg    config
	)
	fs.StringVar(&configPath, "config", "", "TOML config file")
	fs.StringVar(&digests, "digest", "", "comma-separated digests to compute: crc32,md5,sha1,sha256")
	fs.StringVar(&flagCfg.Format, "format", formatText, "output format: text, json, yaml")
	fs.BoolVar(&flagCfg.List, "list", false, "list entry names")
	fs.BoolVar(&flagCfg.Decompress, "decompress", false, "decode gzip, zstd, xz and lz4 wrappers before scanning")
	fs.IntVar(&flagCfg.Jobs, "jobs", runtime.GOMAXPROCS(0), "files to check concurrently")
	fs.BoolVar(&flagCfg.Verbose, "v", false, "log scan details to stderr")
	fs.BoolVar(&flagCfg.NoColor, "no-color", false, "disable colored output")
	fs.Uint64Var(&flagCfg.MaxDecoderMemory, "max-decoder-memory", 0, "zstd decoder memory limit in bytes (0 = unlimited)")
	if err := fs.Parse(args); err != nil {
		return config{}, fmt.Errorf("%w: %w", errUsage, err)
	}

	cfg := defaultConfig()
	if configPath == "" && statConfig(defaultConfigName) {
		configPath = defaultConfigName
	}
	if configPath != "" {
		if err := loadConfigFile(configPath, &cfg); err != nil {
			return config{}, err
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "digest":
			cfg.Digests = splitList(digests)
		case "format":
			cfg.Format = flagCfg.Format
		case "list":
			cfg.List = flagCfg.List
		case "decompress":
			cfg.Decompress = flagCfg.Decompress
		case "jobs":
			cfg.Jobs = flagCfg.Jobs
		case "v":
			cfg.Verbose = flagCfg.Verbose
		case "no-color":
			cfg.NoColor = flagCfg.NoColor
		case "max-decoder-memory":
			cfg.MaxDecoderMemory = flagCfg.MaxDecoderMemory
		}
	})
	cfg.files = fs.Args()

	if err := cfg.validate(); err != nil {
		return config{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%w: failed to parse %s: %w", errUsage, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: %s: unknown key %q", errUsage, path, undecoded[0].String())
	}
	return nil
}

func (c *config) validate() error {
	switch c.Format {
	case formatText, formatJSON, formatYAML:
	default:
		return fmt.Errorf("%w: unknown format %q", errUsage, c.Format)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("%w: jobs must be at least 1", errUsage)
	}
	if len(c.files) == 0 {
		return fmt.Errorf("%w: no input files", errUsage)
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// statConfig reports whether path names an existing file.
func statConfig(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
