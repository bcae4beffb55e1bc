package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vastyellowNew/implicit-topology/classify"
	"github.com/vastyellowNew/implicit-topology/field"
	"github.com/vastyellowNew/implicit-topology/geom"
	"github.com/vastyellowNew/implicit-topology/integrate"
	"github.com/vastyellowNew/implicit-topology/topology"
)

// runConfig is the YAML layout of a run description file. Relative paths
// are resolved against the config file's directory.
type runConfig struct {
	Field       fieldConfig       `yaml:"field"`
	Structures  structuresConfig  `yaml:"structures"`
	Integration integrationConfig `yaml:"integration"`
	Params      paramsConfig      `yaml:"params"`
}

type fieldConfig struct {
	NX     int       `yaml:"nx"`
	NY     int       `yaml:"ny"`
	Domain []float64 `yaml:"domain"`  // left, bottom, right, top
	Vectors string   `yaml:"vectors"` // CSV of u,v rows, row-major, x fastest
}

type structuresConfig struct {
	Points []pointConfig `yaml:"points"`
	Lines  []lineConfig  `yaml:"lines"`
}

type pointConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	ID int32   `yaml:"id"`
}

type lineConfig struct {
	X1 float64 `yaml:"x1"`
	Y1 float64 `yaml:"y1"`
	X2 float64 `yaml:"x2"`
	Y2 float64 `yaml:"y2"`
	ID int32   `yaml:"id"`
}

type integrationConfig struct {
	Method   string  `yaml:"method"` // rk4 or rk45
	Timestep float64 `yaml:"timestep"`
	MaxError float64 `yaml:"max_error"`
}

type paramsConfig struct {
	StepBudget            int     `yaml:"step_budget"`
	RefinementThreshold   float64 `yaml:"refinement_threshold"`
	RefineAtLabels        bool    `yaml:"refine_at_labels"`
	DistanceDiffThreshold float64 `yaml:"distance_diff_threshold"`
	BatchSize             int     `yaml:"batch_size"`
	StepsPerBatch         int     `yaml:"steps_per_batch"`
}

// loadConfig parses the YAML run description at path.
func loadConfig(path string) (*runConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg runConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Field.Vectors != "" && !filepath.IsAbs(cfg.Field.Vectors) {
		cfg.Field.Vectors = filepath.Join(filepath.Dir(path), cfg.Field.Vectors)
	}
	return &cfg, nil
}

// buildField loads the CSV vector samples and assembles the field.
func (c *runConfig) buildField() (*field.Field, error) {
	if len(c.Field.Domain) != 4 {
		return nil, fmt.Errorf("field.domain must hold left, bottom, right, top")
	}
	domain := geom.NewRect(c.Field.Domain[0], c.Field.Domain[1], c.Field.Domain[2], c.Field.Domain[3])

	vectors, err := readVectorCSV(c.Field.Vectors, c.Field.NX*c.Field.NY)
	if err != nil {
		return nil, err
	}

	nx, ny := c.Field.NX, c.Field.NY
	positions := make([]float64, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			positions = append(positions,
				domain.Min.X+float64(i)/float64(nx-1)*domain.Width(),
				domain.Min.Y+float64(j)/float64(ny-1)*domain.Height())
		}
	}
	return field.New(nx, ny, domain, positions, vectors)
}

// buildStructures flattens the configured points and lines.
func (c *runConfig) buildStructures() (*classify.Structures, error) {
	var (
		points   []float64
		pointIDs []int32
		lines    []float64
		lineIDs  []int32
	)
	for _, p := range c.Structures.Points {
		points = append(points, p.X, p.Y)
		pointIDs = append(pointIDs, p.ID)
	}
	for _, l := range c.Structures.Lines {
		lines = append(lines, l.X1, l.Y1, l.X2, l.Y2)
		lineIDs = append(lineIDs, l.ID)
	}
	return classify.NewStructures(points, pointIDs, lines, lineIDs)
}

// buildIntegration maps the config onto integrator options, filling
// defaults for omitted values.
func (c *runConfig) buildIntegration() (integrate.Options, error) {
	opts := integrate.DefaultOptions()
	switch strings.ToLower(c.Integration.Method) {
	case "", "rk4":
		opts.Method = integrate.RK4
	case "rk45":
		opts.Method = integrate.RK45
	default:
		return opts, fmt.Errorf("unknown integration method %q", c.Integration.Method)
	}
	if c.Integration.Timestep > 0 {
		opts.Timestep = c.Integration.Timestep
	}
	if c.Integration.MaxError > 0 {
		opts.MaxError = c.Integration.MaxError
	}
	return opts, nil
}

// buildParams maps the config onto run parameters.
func (c *runConfig) buildParams() topology.Params {
	return topology.Params{
		StepBudget:            c.Params.StepBudget,
		RefinementThreshold:   c.Params.RefinementThreshold,
		RefineAtLabels:        c.Params.RefineAtLabels,
		DistanceDiffThreshold: c.Params.DistanceDiffThreshold,
		BatchSize:             c.Params.BatchSize,
		StepsPerBatch:         c.Params.StepsPerBatch,
	}
}

// readVectorCSV reads want u,v records.
func readVectorCSV(path string, want int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vectors: %w", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse vectors %s: %w", path, err)
	}
	if len(rows) != want {
		return nil, fmt.Errorf("vectors %s: got %d rows, field needs %d", path, len(rows), want)
	}

	out := make([]float64, 0, 2*want)
	for i, row := range rows {
		if len(row) != 2 {
			return nil, fmt.Errorf("vectors %s: row %d has %d columns, want 2", path, i+1, len(row))
		}
		for _, cell := range row {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("vectors %s: row %d: %w", path, i+1, err)
			}
			out = append(out, v)
		}
	}
	return out, nil
}
