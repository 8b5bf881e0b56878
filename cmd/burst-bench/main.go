package main

import (
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"burst/internal/beam"
	"burst/internal/burst"
	"burst/internal/core"
	"burst/internal/device"
)

type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

type scenarioResult struct {
	grid    core.Grid
	ticks   int
	elapsed time.Duration
	stats   stateStats
}

func (r scenarioResult) ticksPerSecond() float64 {
	if r.elapsed <= 0 {
		return 0
	}
	return float64(r.ticks) / r.elapsed.Seconds()
}

func main() {
	devName := flag.String("device", "cpu", fmt.Sprintf("compute device %v", device.Names()))
	entities := flag.String("entities", "256,32768", "comma-separated beam counts, one scenario each")
	ticks := flag.Int("ticks", 600, "ticks to simulate per scenario")
	workers := flag.Int("workers", 0, "CPU device workers, 0 for one per core")
	seed := flag.Int("seed", 1337, "seed for the beam distribution")
	var overrides kvList
	flag.Var(&overrides, "set", "config override in key=value form (repeatable)")
	flag.Parse()

	counts, err := parseCounts(*entities)
	if err != nil {
		log.Fatal(err)
	}
	if *ticks <= 0 {
		log.Fatalf("ticks %d must be positive", *ticks)
	}

	kv := map[string]string{}
	for _, o := range overrides {
		parts := strings.SplitN(o, "=", 2)
		if len(parts) != 2 {
			log.Printf("ignoring malformed override %q", o)
			continue
		}
		kv[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	base := burst.FromMap(kv)
	base.RandomSeed = *seed

	dev, err := device.Open(*devName, device.Options{Workers: *workers})
	if err != nil {
		log.Fatal(err)
	}
	defer dev.Close()

	fmt.Printf("Benchmarking %s: %d scenarios, %d ticks, throttle %.2f\n", dev.Name(), len(counts), *ticks, base.Throttle)
	for _, n := range counts {
		cfg := base
		cfg.EntityCount = n
		res, err := runScenario(dev, cfg, *ticks)
		if err != nil {
			log.Fatalf("%d beams: %v", n, err)
		}
		alias := ""
		if res.grid.Aliased(n) {
			alias = fmt.Sprintf(" (aliased, %d over)", n-res.grid.Capacity())
		}
		fmt.Printf("%6d beams grid %dx%d%s: %8.1f ticks/s, %s\n",
			n, res.grid.W, res.grid.H, alias, res.ticksPerSecond(), res.stats)
	}
}

func runScenario(dev device.Device, cfg burst.Config, ticks int) (scenarioResult, error) {
	e := burst.New(dev, beam.Program(), cfg)
	defer e.Dispose()

	start := time.Now()
	for i := 0; i < ticks; i++ {
		if err := e.Advance(core.PreviewDelta, true); err != nil {
			return scenarioResult{}, err
		}
	}
	elapsed := time.Since(start)

	cur := e.Current()
	w, h := cur.Size()
	texels := make([]float32, w*h*core.Channels)
	if err := cur.Read(texels); err != nil {
		return scenarioResult{}, fmt.Errorf("reading state: %w", err)
	}
	return scenarioResult{
		grid:    e.Grid(),
		ticks:   ticks,
		elapsed: elapsed,
		stats:   summarize(texels),
	}, nil
}

func parseCounts(s string) ([]int, error) {
	var counts []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("entities %q: %w", s, err)
		}
		if n <= 0 {
			return nil, fmt.Errorf("entities %q: counts must be positive", s)
		}
		counts = append(counts, n)
	}
	return counts, nil
}
