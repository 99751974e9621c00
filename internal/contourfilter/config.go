// Package contourfilter implements the geometric validity filter and
// composite scorer that turns raw traced contours into ranked
// quadrilateral candidates (spec §4.6).
package contourfilter

// Config groups every contourFilter tunable (spec §6). Zero-value Config
// is not valid; use DefaultConfig.
type Config struct {
	MinAreaRatio   float64
	MaxAreaRatio   float64
	MinAngle       float64
	MaxAngle       float64
	MinAspectRatio float64
	MaxAspectRatio float64
	Epsilon        float64
	EpsilonValues  []float64
	AreaWeight     float64
	AngleWeight    float64
}

// DefaultConfig returns the configuration documented in spec §4.6/§6.
func DefaultConfig() Config {
	return Config{
		MinAreaRatio:   0.15,
		MaxAreaRatio:   0.98,
		MinAngle:       70,
		MaxAngle:       110,
		MinAspectRatio: 0.3,
		MaxAspectRatio: 3.0,
		Epsilon:        0.02,
		AreaWeight:     0.4,
		AngleWeight:    0.6,
	}
}

// Epsilons returns the explicit epsilon list if configured, otherwise
// the derived five-point sweep around the base epsilon (spec §4.6).
func (c Config) Epsilons() []float64 {
	if len(c.EpsilonValues) > 0 {
		return c.EpsilonValues
	}
	e := c.Epsilon
	return []float64{0.5 * e, 0.75 * e, e, 1.5 * e, 2.0 * e}
}
