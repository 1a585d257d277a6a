package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/kkyr/fig"
	"github.com/spf13/pflag"
)

const (
	EnvPrefix = "YUVVIEW"
	FileName  = "config.yaml"
)

// Config holds all runtime configuration.
type Config struct {
	Backend string `default:"ebiten"`

	Window struct {
		Title  string `default:"yuvview"`
		Width  int    `default:"1280"`
		Height int    `default:"720"`
		Vsync  bool
	}

	Source Source

	Snapshot struct {
		Dir     string `default:"."`
		Format  string `default:"jpeg"`
		Quality int    `default:"90"`
	}

	Keys map[string]string

	Log struct {
		Debug   bool
		Console bool
		NoColor bool
	}

	Monitoring Monitoring
}

// Source selects the frame producer.
type Source struct {
	Kind   string `default:"pattern"`
	Path   string
	Width  int `default:"640"`
	Height int `default:"480"`
	FPS    int `default:"30"`
	Loop   bool
}

// Monitoring configures the diagnostics HTTP server. Port 0 disables it.
type Monitoring struct {
	Port             int
	URLPrefix        string
	MetricEnabled    bool
	ProfilingEnabled bool
	QoSFeedEnabled   bool
}

func (m Monitoring) IsEnabled() bool {
	return m.Port > 0 && (m.MetricEnabled || m.ProfilingEnabled || m.QoSFeedEnabled)
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	c := &Config{Backend: "ebiten"}
	c.Window.Title = "yuvview"
	c.Window.Width, c.Window.Height = 1280, 720
	c.Window.Vsync = true
	c.Source = Source{Kind: "pattern", Width: 640, Height: 480, FPS: 30, Loop: true}
	c.Snapshot.Dir, c.Snapshot.Format, c.Snapshot.Quality = ".", "jpeg", 90
	c.Log.Console = true
	c.Monitoring.MetricEnabled = true
	c.Monitoring.QoSFeedEnabled = true
	return c
}

// LoadConfig loads a configuration file into the given struct.
// The path param specifies a custom path to the configuration file.
// Reads and puts environment variables with the prefix YUVVIEW_.
// Without a file only the environment is used.
func LoadConfig(config any, path string) error {
	dirs := []string{path}
	if path == "" {
		dirs = append(dirs[:0], ".", "configs")
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append(dirs, filepath.Join(home, ".yuvview"))
		}
	}
	if !exists(dirs) {
		if path != "" {
			return fmt.Errorf("config: no %s in %s", FileName, path)
		}
		return LoadConfigEnv(config)
	}
	return fig.Load(config, fig.File(FileName), fig.Dirs(dirs...), fig.UseEnv(EnvPrefix))
}

// LoadConfigEnv fills config from YUVVIEW_ variables only.
// fig always reads a file, so an empty one is staged in a temp dir.
func LoadConfigEnv(config any) error {
	dir, err := os.MkdirTemp("", "yuvview-conf")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("{}\n"), 0o600); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return fig.Load(config, fig.File(FileName), fig.Dirs(dir), fig.UseEnv(EnvPrefix))
}

func exists(dirs []string) bool {
	for _, d := range dirs {
		if _, err := os.Stat(filepath.Join(d, FileName)); err == nil {
			return true
		}
	}
	return false
}

// Parse reads flags from args, loads the file they point to and applies
// the flags that were set on top of it.
func Parse(args []string) (*Config, error) {
	fs := pflag.NewFlagSet("yuvview", pflag.ContinueOnError)
	var (
		path  string
		size  string
		flags = Default()
	)
	fs.StringVarP(&path, "conf", "c", "", "Set custom configuration file path")
	fs.StringVarP(&flags.Backend, "backend", "b", flags.Backend, "Rendering backend: ebiten or gl")
	fs.StringVarP(&flags.Source.Path, "input", "i", "", "Raw I420 file or image to play")
	fs.StringVar(&flags.Source.Kind, "source", flags.Source.Kind, "Frame source: pattern, raw or image")
	fs.StringVarP(&size, "size", "s", "", "Frame size of raw input, WxH")
	fs.IntVar(&flags.Source.FPS, "fps", flags.Source.FPS, "Frames per second")
	fs.BoolVar(&flags.Source.Loop, "loop", flags.Source.Loop, "Restart the input at EOF")
	fs.BoolVarP(&flags.Log.Debug, "debug", "d", false, "Debug logging")
	fs.IntVar(&flags.Monitoring.Port, "monitoring.port", 0, "Monitoring server port (0 = off)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	conf := Default()
	if err := LoadConfig(conf, path); err != nil {
		return nil, err
	}

	if fs.Changed("backend") {
		conf.Backend = flags.Backend
	}
	if fs.Changed("input") {
		conf.Source.Path = flags.Source.Path
		if !fs.Changed("source") {
			conf.Source.Kind = GuessKind(flags.Source.Path)
		}
	}
	if fs.Changed("source") {
		conf.Source.Kind = flags.Source.Kind
	}
	if fs.Changed("size") {
		w, h, err := ParseSize(size)
		if err != nil {
			return nil, err
		}
		conf.Source.Width, conf.Source.Height = w, h
	}
	if fs.Changed("fps") {
		conf.Source.FPS = flags.Source.FPS
	}
	if fs.Changed("loop") {
		conf.Source.Loop = flags.Source.Loop
	}
	if fs.Changed("debug") {
		conf.Log.Debug = flags.Log.Debug
	}
	if fs.Changed("monitoring.port") {
		conf.Monitoring.Port = flags.Monitoring.Port
	}
	return conf, conf.Validate()
}

// Validate checks values fig cannot.
func (c *Config) Validate() error {
	switch c.Backend {
	case "ebiten", "gl":
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	switch c.Source.Kind {
	case "pattern":
	case "raw", "image":
		if c.Source.Path == "" {
			return fmt.Errorf("config: source %q needs a path", c.Source.Kind)
		}
	default:
		return fmt.Errorf("config: unknown source %q", c.Source.Kind)
	}
	if c.Source.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.Source.FPS)
	}
	if c.Source.Width <= 0 || c.Source.Height <= 0 {
		return fmt.Errorf("config: bad frame size %dx%d", c.Source.Width, c.Source.Height)
	}
	switch c.Snapshot.Format {
	case "jpeg", "jpg", "png":
	default:
		return fmt.Errorf("config: unknown snapshot format %q", c.Snapshot.Format)
	}
	return nil
}

// ParseSize parses "WxH".
func ParseSize(s string) (w, h int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("config: size %q is not WxH", s)
	}
	if w, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("config: size %q: %w", s, err)
	}
	if h, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("config: size %q: %w", s, err)
	}
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("config: size %q must be positive", s)
	}
	return w, h, nil
}

// GuessKind picks the source kind from a file extension.
func GuessKind(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yuv", ".i420", ".raw":
		return "raw"
	case "":
		return "pattern"
	}
	return "image"
}
