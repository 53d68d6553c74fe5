package dtnsim

// scenario.go implements the YAML run configuration described in the
// ambient-stack expansion: generators, monitor wiring, and the simulation
// horizon, serialized with gopkg.in/yaml.v3 the way desc-topo.go describes
// topology. Contact-plan ingestion is deliberately not part of this
// format; a ContactPlan is built programmatically or from whatever format
// a caller's tooling produces, then passed to NewSimulator directly.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GeneratorSpec describes one packet generator to instantiate for a run.
type GeneratorSpec struct {
	Kind        string `yaml:"kind"` // "continuous" or "batch"
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	SizeBytes   int64  `yaml:"size_bytes"`
	IntervalMs  int64  `yaml:"interval_ms"`
	StartMs     int64  `yaml:"start_ms"`
	Count       int    `yaml:"count,omitempty"`      // continuous: total packets, 0 = unbounded
	BatchSize   int    `yaml:"batch_size,omitempty"` // batch: packets per firing
	Batches     int    `yaml:"batches,omitempty"`    // batch: total firings, 0 = unbounded
}

func (g GeneratorSpec) validate() error {
	if g.Kind != "continuous" && g.Kind != "batch" {
		return fmt.Errorf("generator: unknown kind %q", g.Kind)
	}
	if g.Source == "" || g.Destination == "" {
		return fmt.Errorf("generator: source and destination are required")
	}
	if g.SizeBytes <= 0 {
		return fmt.Errorf("generator: size_bytes must be positive")
	}
	if g.IntervalMs <= 0 {
		return fmt.Errorf("generator: interval_ms must be positive")
	}
	if g.Kind == "batch" && g.BatchSize <= 0 {
		return fmt.Errorf("generator: batch_size must be positive for a batch generator")
	}
	return nil
}

// MonitorSpec enables a named built-in monitor, currently just the
// Prometheus-backed one; more names can be added as new Monitor
// implementations are written without changing the file format.
type MonitorSpec struct {
	Kind string `yaml:"kind"` // "metrics"
}

// ScenarioConfig is the top-level run description: which generators to
// run, which monitors to attach, and how far to run the simulation.
type ScenarioConfig struct {
	HorizonMs       int64           `yaml:"horizon_ms"`
	HashSeed        *uint64         `yaml:"hash_seed,omitempty"`
	Generators      []GeneratorSpec `yaml:"generators"`
	Monitors        []MonitorSpec   `yaml:"monitors,omitempty"`
	DefaultDatarate int64           `yaml:"default_datarate,omitempty"`
	DefaultDelay    int64           `yaml:"default_delay,omitempty"`
}

// LoadScenarioConfig reads and validates a ScenarioConfig from path.
// Marshaling/IO failures are unrecoverable misconfigurations of the
// deployment environment and panic, matching trace.go's WriteToFile
// convention; content-level invalidity (missing fields, bad generator
// kinds) is returned as a ConfigurationError since it is a mistake in the
// scenario file itself, not the environment.
func LoadScenarioConfig(path string) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		panic(fmt.Sprintf("dtnsim: cannot read scenario file %s: %v", path, err))
	}

	var cfg ScenarioConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		panic(fmt.Sprintf("dtnsim: cannot parse scenario file %s: %v", path, err))
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *ScenarioConfig) validate() error {
	if c.HorizonMs <= 0 {
		return &ConfigurationError{Reason: "horizon_ms must be positive"}
	}
	for i, g := range c.Generators {
		if err := g.validate(); err != nil {
			return &ConfigurationError{Reason: fmt.Sprintf("generators[%d]: %v", i, err)}
		}
	}
	for i, m := range c.Monitors {
		if m.Kind != "metrics" {
			return &ConfigurationError{Reason: fmt.Sprintf("monitors[%d]: unknown kind %q", i, m.Kind)}
		}
	}
	return nil
}

// HashSeedOrDefault returns the configured hash seed, or DefaultHashSeed
// if none was set.
func (c *ScenarioConfig) HashSeedOrDefault() uint64 {
	if c.HashSeed != nil {
		return *c.HashSeed
	}
	return DefaultHashSeed
}

// ApplyTo instantiates this scenario's generators and monitors against sim,
// registering each with its Sink set to sim so injected packets flow into
// the running simulation.
func (c *ScenarioConfig) ApplyTo(sim *Simulator) {
	for _, spec := range c.Generators {
		switch spec.Kind {
		case "continuous":
			g := NewContinuousGenerator(spec.Source, spec.Destination, spec.SizeBytes, spec.IntervalMs, spec.StartMs, spec.Count, sim, sim.NextPacketID)
			sim.RegisterGenerator(g)
		case "batch":
			g := NewBatchGenerator(spec.Source, spec.Destination, spec.SizeBytes, spec.BatchSize, spec.IntervalMs, spec.StartMs, spec.Batches, sim, sim.NextPacketID)
			sim.RegisterGenerator(g)
		}
	}
	for _, spec := range c.Monitors {
		if spec.Kind == "metrics" {
			sim.RegisterMonitor(NewMetricsMonitor())
		}
	}
}
