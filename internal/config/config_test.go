package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestParseFile(t *testing.T) {
	dir := writeConfig(t, `
backend: gl
window:
  width: 800
  height: 600
source:
  kind: raw
  path: clip.yuv
  width: 352
  height: 288
  fps: 25
keys:
  snapshot: p
monitoring:
  port: 9100
  metricEnabled: true
`)
	conf, err := Parse([]string{"-c", dir})
	if err != nil {
		t.Fatal(err)
	}
	if conf.Backend != "gl" || conf.Window.Width != 800 || conf.Window.Height != 600 {
		t.Errorf("window = %+v, backend = %v", conf.Window, conf.Backend)
	}
	if conf.Source.Kind != "raw" || conf.Source.Width != 352 || conf.Source.FPS != 25 {
		t.Errorf("source = %+v", conf.Source)
	}
	if conf.Keys["snapshot"] != "p" {
		t.Errorf("keys = %v", conf.Keys)
	}
	if conf.Snapshot.Format != "jpeg" || conf.Snapshot.Quality != 90 {
		t.Errorf("defaults not applied: %+v", conf.Snapshot)
	}
	if !conf.Monitoring.IsEnabled() {
		t.Error("monitoring should be enabled")
	}
}

func TestParseFlagsOverrideFile(t *testing.T) {
	dir := writeConfig(t, "source:\n  fps: 25\n")
	conf, err := Parse([]string{"-c", dir, "--fps", "60", "-i", "clip.yuv", "--size", "1280x720", "-b", "gl"})
	if err != nil {
		t.Fatal(err)
	}
	if conf.Source.FPS != 60 {
		t.Errorf("fps = %d", conf.Source.FPS)
	}
	if conf.Source.Kind != "raw" || conf.Source.Path != "clip.yuv" {
		t.Errorf("source = %+v", conf.Source)
	}
	if conf.Source.Width != 1280 || conf.Source.Height != 720 {
		t.Errorf("size = %dx%d", conf.Source.Width, conf.Source.Height)
	}
	if conf.Backend != "gl" {
		t.Errorf("backend = %v", conf.Backend)
	}
}

func TestParseMissingFile(t *testing.T) {
	if _, err := Parse([]string{"-c", t.TempDir()}); err == nil {
		t.Error("expected an error for a directory without config")
	}
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("YUVVIEW_SOURCE_FPS", "12")
	t.Setenv("YUVVIEW_BACKEND", "gl")

	conf := Default()
	if err := LoadConfigEnv(conf); err != nil {
		t.Fatal(err)
	}
	if conf.Source.FPS != 12 || conf.Backend != "gl" {
		t.Errorf("env not applied: fps=%d backend=%s", conf.Source.FPS, conf.Backend)
	}
	if conf.Window.Width != 1280 {
		t.Errorf("defaults lost: %+v", conf.Window)
	}
}

func TestParseEnvOnly(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("HOME", t.TempDir())
	t.Setenv("YUVVIEW_SOURCE_FPS", "15")

	conf, err := Parse(nil)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Source.FPS != 15 || conf.Source.Kind != "pattern" {
		t.Errorf("source = %+v", conf.Source)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mod     func(c *Config)
		wantErr bool
	}{
		{name: "default", mod: func(*Config) {}},
		{name: "backend", mod: func(c *Config) { c.Backend = "vulkan" }, wantErr: true},
		{name: "raw without path", mod: func(c *Config) { c.Source.Kind = "raw" }, wantErr: true},
		{name: "unknown source", mod: func(c *Config) { c.Source.Kind = "rtsp" }, wantErr: true},
		{name: "fps", mod: func(c *Config) { c.Source.FPS = 0 }, wantErr: true},
		{name: "size", mod: func(c *Config) { c.Source.Width = -1 }, wantErr: true},
		{name: "snapshot", mod: func(c *Config) { c.Snapshot.Format = "gif" }, wantErr: true},
		{name: "snapshot jpg", mod: func(c *Config) { c.Snapshot.Format = "jpg" }},
		{name: "snapshot png", mod: func(c *Config) { c.Snapshot.Format = "png" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mod(c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{in: "640x480", w: 640, h: 480},
		{in: "1280X720", w: 1280, h: 720},
		{in: "640", wantErr: true},
		{in: "ax480", wantErr: true},
		{in: "0x480", wantErr: true},
	}
	for _, tt := range tests {
		w, h, err := ParseSize(tt.in)
		if (err != nil) != tt.wantErr || w != tt.w || h != tt.h {
			t.Errorf("ParseSize(%q) = %d, %d, %v", tt.in, w, h, err)
		}
	}
}

func TestGuessKind(t *testing.T) {
	for in, want := range map[string]string{
		"foreman_cif.yuv": "raw",
		"a.I420":          "raw",
		"still.png":       "image",
		"photo.jpeg":      "image",
		"":                "pattern",
	} {
		if got := GuessKind(in); got != want {
			t.Errorf("GuessKind(%q) = %q, want %q", in, got, want)
		}
	}
}
