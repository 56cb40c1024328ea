package testkit

import (
	"fmt"
	"io"
	"math/rand"
	"strings"
)

// NQDSGeneratorConfig configures the synthetic NQDS file generator
type NQDSGeneratorConfig struct {
	Iterations []int    `json:"iterations" yaml:"iterations"`
	Models     int      `json:"models" yaml:"models"`
	Wells      []string `json:"wells" yaml:"wells"`
	Attributes []string `json:"attributes" yaml:"attributes"`
	// MaxMisfit bounds the magnitude of generated values
	MaxMisfit float64 `json:"max_misfit" yaml:"max_misfit"`
	// MissingRate is the probability that a (model, attribute, well) record is skipped
	MissingRate float64 `json:"missing_rate" yaml:"missing_rate"`
	Seed        int64   `json:"seed" yaml:"seed"`
}

// DefaultNQDSConfig returns a small, fully populated dataset layout
func DefaultNQDSConfig() NQDSGeneratorConfig {
	return NQDSGeneratorConfig{
		Iterations: []int{0, 1},
		Models:     10,
		Wells:      []string{"PROD1", "PROD2", "PROD10", "INJ1"},
		Attributes: []string{"QO", "QW", "BHP"},
		MaxMisfit:  20,
		Seed:       42,
	}
}

// NQDSGenerator writes synthetic NQDS exports
type NQDSGenerator struct {
	config NQDSGeneratorConfig
	rng    *rand.Rand
}

// NewNQDSGenerator creates a generator; equal seeds produce identical output
func NewNQDSGenerator(config NQDSGeneratorConfig) *NQDSGenerator {
	return &NQDSGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Header returns the three metadata lines that precede the records
func (g *NQDSGenerator) Header() []string {
	return []string{
		"# NQDS export",
		fmt.Sprintf("# models: %d, wells: %d, attributes: %d", g.config.Models, len(g.config.Wells), len(g.config.Attributes)),
		"Iteration;Model;Name;NQDS",
	}
}

// RecordLines returns record lines ordered by iteration, then model
func (g *NQDSGenerator) RecordLines() []string {
	var lines []string
	for _, iteration := range g.config.Iterations {
		for model := 1; model <= g.config.Models; model++ {
			for _, attribute := range g.config.Attributes {
				for _, well := range g.config.Wells {
					if g.config.MissingRate > 0 && g.rng.Float64() < g.config.MissingRate {
						continue
					}
					lines = append(lines, FormatRecordLine(iteration, model, attribute, well, g.randomMisfit()))
				}
			}
		}
	}
	return lines
}

// Lines returns the header followed by the record lines
func (g *NQDSGenerator) Lines() []string {
	return append(g.Header(), g.RecordLines()...)
}

// WriteTo writes a complete NQDS file to w
func (g *NQDSGenerator) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, strings.Join(g.Lines(), "\n")+"\n")
	return int64(n), err
}

// randomMisfit returns a signed value; sign is an artifact of the simulator
func (g *NQDSGenerator) randomMisfit() float64 {
	v := g.rng.Float64() * g.config.MaxMisfit
	if g.rng.Intn(2) == 0 {
		v = -v
	}
	return v
}

// FormatRecordLine renders one record in NQDS line format
func FormatRecordLine(iteration, model int, attribute, well string, value float64) string {
	return fmt.Sprintf("%d;Mod_%d;NQDS %s - %s;%g", iteration, model, attribute, well, value)
}
