package chart

import (
	"errors"

	"github.com/katalvlaran/padstep/cost"
	"github.com/katalvlaran/padstep/pad"
)

// Sentinel errors surfaced at the API boundary (spec §6's error-code table).
// Row/field context is attached with fmt.Errorf("...: %w", ...) by the
// packages that detect the failure (expressed, performed, cost, padio);
// callers match with errors.Is against these sentinels, never by string
// comparison.
//
// chart imports cost and pad, so it aliases their sentinels directly. The
// other three are declared here: expressed and performed import chart, and
// each aliases its own raise-site var to the matching var here, so every
// name in this file is live and errors.Is against it succeeds regardless
// of which package a caller imports.
var (
	// ErrConfigInvalid is cost's own config-validation sentinel.
	ErrConfigInvalid = cost.ErrConfigInvalid

	// ErrPadInvalid is pad's own geometry-validation sentinel.
	ErrPadInvalid = pad.ErrInvalid

	// ErrNoValidAssignment: expressed search exhausted the graph.
	// expressed.ErrNoValidAssignment aliases this var.
	ErrNoValidAssignment = errors.New("chart: no valid foot assignment exists for this row")

	// ErrNoTargetMapping: performed search could not map a step kind to the
	// target pad. performed.ErrNoTargetMapping aliases this var.
	ErrNoTargetMapping = errors.New("chart: no target-pad link matches this step kind")

	// ErrCancelled: cooperative cancellation was requested. Both
	// expressed.ErrCancelled and performed.ErrCancelled alias this var.
	ErrCancelled = errors.New("chart: search was cancelled")
)
