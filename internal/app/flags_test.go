package app

import (
	"flag"
	"io"
	"testing"

	"burst/internal/burst"
)

func parse(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("burst", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.Bind(fs)
	return cfg, fs.Parse(args)
}

func TestDefaultsAreValid(t *testing.T) {
	cfg, err := parse(t)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	if cfg.Burst != burst.DefaultConfig() {
		t.Fatalf("burst defaults %+v", cfg.Burst)
	}
}

func TestBindParsesBurstOptions(t *testing.T) {
	cfg, err := parse(t,
		"-device", "opencl",
		"-entities", "256",
		"-throttle", "0.5",
		"-radius", "4",
		"-color", "4,2,1",
		"-seed", "7",
		"-debug",
		"-preview",
	)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := burst.Config{
		EntityCount:  256,
		Throttle:     0.5,
		Radius:       4,
		Color:        burst.Color{R: 4, G: 2, B: 1, A: 1},
		RandomSeed:   7,
		DebugOverlay: true,
	}
	if cfg.Burst != want || cfg.Device != "opencl" || !cfg.Preview {
		t.Fatalf("config %+v", cfg)
	}
}

func TestBadColorFailsParse(t *testing.T) {
	if _, err := parse(t, "-color", "red"); err == nil {
		t.Fatal("expected parse error for a malformed color")
	}
}

func TestValidate(t *testing.T) {
	for _, args := range [][]string{
		{"-entities", "0"},
		{"-throttle", "-1"},
		{"-radius", "0"},
		{"-tps", "0"},
		{"-width", "0"},
	} {
		cfg, err := parse(t, args...)
		if err != nil {
			t.Fatalf("parse %v: %v", args, err)
		}
		if cfg.Validate() == nil {
			t.Fatalf("expected %v to be rejected", args)
		}
	}
}
