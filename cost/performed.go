package cost

import (
	"errors"
	"fmt"
)

// Unset is the sentinel value meaning "inherit from parent" for any
// numeric field in PerformedConfig (spec §4.2, §6, §8 property #7).
const Unset = -1

// StepTighteningConfig penalizes same-foot consecutive steps that are both
// fast and far apart (spec §4.2 "Individual step tightening").
type StepTighteningConfig struct {
	MinTime float64
	MaxTime float64
	Weight  float64
}

func (c StepTighteningConfig) mergeOverride(parent StepTighteningConfig) StepTighteningConfig {
	if c.MinTime == Unset {
		c.MinTime = parent.MinTime
	}
	if c.MaxTime == Unset {
		c.MaxTime = parent.MaxTime
	}
	if c.Weight == Unset {
		c.Weight = parent.Weight
	}

	return c
}

func (c StepTighteningConfig) validate() []error {
	var errs []error
	if c.MinTime != Unset && c.MinTime < 0 {
		errs = append(errs, errors.New("stepTightening.minTime must be >= 0 or Unset"))
	}
	if c.MaxTime != Unset && c.MinTime != Unset && c.MaxTime < c.MinTime {
		errs = append(errs, errors.New("stepTightening.maxTime must be >= minTime"))
	}
	if c.Weight != Unset && c.Weight < 0 {
		errs = append(errs, errors.New("stepTightening.weight must be >= 0 or Unset"))
	}

	return errs
}

// LateralTighteningConfig penalizes windows of steps whose lateral body
// speed exceeds Speed (spec §4.2 "Lateral body tightening"). The performed
// search reads only PatternLength, Speed and Weight: AbsoluteNPS and
// RelativeNPS are merged and validated, but no note-density gate is applied.
type LateralTighteningConfig struct {
	PatternLength int
	Speed         float64
	AbsoluteNPS   float64
	RelativeNPS   float64
	Weight        float64
}

func (c LateralTighteningConfig) mergeOverride(parent LateralTighteningConfig) LateralTighteningConfig {
	if c.PatternLength == Unset {
		c.PatternLength = parent.PatternLength
	}
	if c.Speed == Unset {
		c.Speed = parent.Speed
	}
	if c.AbsoluteNPS == Unset {
		c.AbsoluteNPS = parent.AbsoluteNPS
	}
	if c.RelativeNPS == Unset {
		c.RelativeNPS = parent.RelativeNPS
	}
	if c.Weight == Unset {
		c.Weight = parent.Weight
	}

	return c
}

func (c LateralTighteningConfig) validate() []error {
	var errs []error
	if c.PatternLength != Unset && c.PatternLength < 1 {
		errs = append(errs, errors.New("lateralTightening.patternLength must be >= 1 or Unset"))
	}
	for name, v := range map[string]float64{
		"speed": c.Speed, "absoluteNPS": c.AbsoluteNPS, "relativeNPS": c.RelativeNPS, "weight": c.Weight,
	} {
		if v != Unset && v < 0 {
			errs = append(errs, fmt.Errorf("lateralTightening.%s must be >= 0 or Unset", name))
		}
	}

	return errs
}

// StretchTighteningConfig penalizes feet separation beyond a comfortable
// range, saturating at a maximum (spec §4.2 "Stretch tightening").
type StretchTighteningConfig struct {
	StretchDistanceMin float64
	StretchDistanceMax float64
	Weight             float64
}

func (c StretchTighteningConfig) mergeOverride(parent StretchTighteningConfig) StretchTighteningConfig {
	if c.StretchDistanceMin == Unset {
		c.StretchDistanceMin = parent.StretchDistanceMin
	}
	if c.StretchDistanceMax == Unset {
		c.StretchDistanceMax = parent.StretchDistanceMax
	}
	if c.Weight == Unset {
		c.Weight = parent.Weight
	}

	return c
}

func (c StretchTighteningConfig) validate() []error {
	var errs []error
	if c.StretchDistanceMin != Unset && c.StretchDistanceMax != Unset && c.StretchDistanceMax < c.StretchDistanceMin {
		errs = append(errs, errors.New("stretchTightening.stretchDistanceMax must be >= stretchDistanceMin"))
	}
	if c.Weight != Unset && c.Weight < 0 {
		errs = append(errs, errors.New("stretchTightening.weight must be >= 0 or Unset"))
	}

	return errs
}

// FacingConfig caps the share of steps taken in inward/outward postures
// across the chart (spec §4.2 "Facing").
type FacingConfig struct {
	MaxInwardPercent  float64
	MaxOutwardPercent float64
	Weight            float64
}

func (c FacingConfig) mergeOverride(parent FacingConfig) FacingConfig {
	if c.MaxInwardPercent == Unset {
		c.MaxInwardPercent = parent.MaxInwardPercent
	}
	if c.MaxOutwardPercent == Unset {
		c.MaxOutwardPercent = parent.MaxOutwardPercent
	}
	if c.Weight == Unset {
		c.Weight = parent.Weight
	}

	return c
}

func (c FacingConfig) validate() []error {
	var errs []error
	for name, v := range map[string]float64{"maxInwardPercent": c.MaxInwardPercent, "maxOutwardPercent": c.MaxOutwardPercent} {
		if v != Unset && (v < 0 || v > 1.0) {
			errs = append(errs, fmt.Errorf("facing.%s must be within [0,1] or Unset", name))
		}
	}
	if c.Weight != Unset && c.Weight < 0 {
		errs = append(errs, errors.New("facing.weight must be >= 0 or Unset"))
	}

	return errs
}

// ArrowWeights is a per-lane target distribution for one chart type,
// normalised to sum to 1.0 (spec §4.2 "Desired arrow weights", §8
// property #8).
type ArrowWeights []float64

// NormalizeArrowWeights scales w in place so its entries sum to 1.0. A
// weight list that sums to 0 is left untouched (every lane equally
// unweighted is a legitimate "no preference" configuration, not an error).
func NormalizeArrowWeights(w ArrowWeights) {
	var sum float64
	for _, v := range w {
		sum += v
	}
	if sum == 0 {
		return
	}
	for i := range w {
		w[i] /= sum
	}
}

// PerformedConfig bundles every shaping-cost knob for a performed-chart
// search (spec §6 PerformedChartConfig). ArrowWeights is keyed by chart type
// (e.g. "single", "double") since weights are meaningful only per pad
// family.
type PerformedConfig struct {
	Facing             FacingConfig
	LateralTightening  LateralTighteningConfig
	StepTightening     StepTighteningConfig
	StretchTightening  StretchTighteningConfig
	ArrowWeights       map[string]ArrowWeights
}

// MergeOverride returns a copy of c with every Unset (-1) field replaced by
// parent's corresponding value (spec §6, §8 property #7). ArrowWeights
// entries are merged per chart-type key; a key absent from c but present in
// parent is inherited wholesale.
func (c PerformedConfig) MergeOverride(parent PerformedConfig) PerformedConfig {
	merged := c
	merged.Facing = c.Facing.mergeOverride(parent.Facing)
	merged.LateralTightening = c.LateralTightening.mergeOverride(parent.LateralTightening)
	merged.StepTightening = c.StepTightening.mergeOverride(parent.StepTightening)
	merged.StretchTightening = c.StretchTightening.mergeOverride(parent.StretchTightening)

	merged.ArrowWeights = make(map[string]ArrowWeights, len(parent.ArrowWeights)+len(c.ArrowWeights))
	for k, v := range parent.ArrowWeights {
		merged.ArrowWeights[k] = v
	}
	for k, v := range c.ArrowWeights {
		merged.ArrowWeights[k] = v
	}

	return merged
}

// Validate collects every offending field rather than stopping at the
// first (spec §7: "all validation is non-fatal at leaf level... all
// messages collected before returning ConfigInvalid").
func (c PerformedConfig) Validate() error {
	var errs []error
	errs = append(errs, c.Facing.validate()...)
	errs = append(errs, c.LateralTightening.validate()...)
	errs = append(errs, c.StepTightening.validate()...)
	errs = append(errs, c.StretchTightening.validate()...)

	for chartType, w := range c.ArrowWeights {
		var sum float64
		for _, v := range w {
			sum += v
		}
		if len(w) > 0 && (sum < 1.0-1e-6 || sum > 1.0+1e-6) {
			errs = append(errs, fmt.Errorf("arrowWeights[%s] must sum to 1.0, got %f", chartType, sum))
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrConfigInvalid, errors.Join(errs...))
}
