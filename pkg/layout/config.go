package layout

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Config.Validate and New when a physics
// constant is out of range.
var ErrInvalidConfig = errors.New("invalid layout config")

// MaxStabilizationStepsLimit caps the length of a single run.
const MaxStabilizationStepsLimit = 100_000

// Config holds the physics constants of a layout run. It is passed by value
// into New and treated as fixed for the whole run.
type Config struct {
	RepulsionForce        float64       `json:"repulsion_force" toml:"repulsion_force"`
	RepulsionRadius       float64       `json:"repulsion_radius" toml:"repulsion_radius"`
	AttractionForce       float64       `json:"attraction_force" toml:"attraction_force"`
	IdealDistance         float64       `json:"ideal_distance" toml:"ideal_distance"`
	Damping               float64       `json:"damping" toml:"damping"`
	TickInterval          time.Duration `json:"-" toml:"tick_interval"`
	MaxStabilizationSteps int           `json:"max_stabilization_steps" toml:"max_stabilization_steps"`
	Padding               float64       `json:"padding" toml:"padding"`
	CenterForce           float64       `json:"center_force" toml:"center_force"`
}

// DefaultConfig returns the constants used by the demo front end: roughly
// five seconds of ticking at 60 ticks per second.
func DefaultConfig() Config {
	return Config{
		RepulsionForce:        1000,
		RepulsionRadius:       200,
		AttractionForce:       0.05,
		IdealDistance:         120,
		Damping:               0.85,
		TickInterval:          16 * time.Millisecond,
		MaxStabilizationSteps: 300,
		Padding:               40,
		CenterForce:           0,
	}
}

// Validate checks that every constant is usable.
func (c Config) Validate() error {
	switch {
	case c.Damping <= 0 || c.Damping >= 1:
		return fmt.Errorf("%w: damping %v must be in (0,1)", ErrInvalidConfig, c.Damping)
	case c.MaxStabilizationSteps <= 0 || c.MaxStabilizationSteps > MaxStabilizationStepsLimit:
		return fmt.Errorf("%w: max stabilization steps must be in [1,%d]", ErrInvalidConfig, MaxStabilizationStepsLimit)
	case c.TickInterval <= 0:
		return fmt.Errorf("%w: tick interval must be positive", ErrInvalidConfig)
	case c.RepulsionForce < 0 || c.AttractionForce < 0 || c.CenterForce < 0:
		return fmt.Errorf("%w: forces must not be negative", ErrInvalidConfig)
	case c.RepulsionRadius < 0 || c.IdealDistance < 0 || c.Padding < 0:
		return fmt.Errorf("%w: distances must not be negative", ErrInvalidConfig)
	}
	return nil
}

// Overrides is a partial Config. Nil fields keep the base value, so a field
// can be set to zero explicitly.
type Overrides struct {
	RepulsionForce        *float64       `json:"repulsion_force" toml:"repulsion_force"`
	RepulsionRadius       *float64       `json:"repulsion_radius" toml:"repulsion_radius"`
	AttractionForce       *float64       `json:"attraction_force" toml:"attraction_force"`
	IdealDistance         *float64       `json:"ideal_distance" toml:"ideal_distance"`
	Damping               *float64       `json:"damping" toml:"damping"`
	TickInterval          *time.Duration `json:"-" toml:"tick_interval"`
	MaxStabilizationSteps *int           `json:"max_stabilization_steps" toml:"max_stabilization_steps"`
	Padding               *float64       `json:"padding" toml:"padding"`
	CenterForce           *float64       `json:"center_force" toml:"center_force"`
}

// Apply returns c with every set field of o applied on top.
func (o Overrides) Apply(c Config) Config {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.RepulsionForce, o.RepulsionForce)
	set(&c.RepulsionRadius, o.RepulsionRadius)
	set(&c.AttractionForce, o.AttractionForce)
	set(&c.IdealDistance, o.IdealDistance)
	set(&c.Damping, o.Damping)
	set(&c.Padding, o.Padding)
	set(&c.CenterForce, o.CenterForce)
	if o.TickInterval != nil {
		c.TickInterval = *o.TickInterval
	}
	if o.MaxStabilizationSteps != nil {
		c.MaxStabilizationSteps = *o.MaxStabilizationSteps
	}
	return c
}
