package stepgraph

// BuildOption customizes Build before it runs, following the teacher's
// functional-options idiom (builder.BuilderOption): constructors validate
// and panic on meaningless input, Build itself never panics on
// caller-triggered conditions.
type BuildOption func(*buildConfig)

type buildConfig struct {
	maxNodes        int
	stretchDistance float64
}

func defaultBuildConfig() buildConfig {
	return buildConfig{
		maxNodes: 200_000,
		// stretchDistance is the travel distance beyond which a
		// normal-posture step also gets a Stretch link (spec §4.1: Stretch
		// has no dedicated pad predicate; this module treats it as a
		// distance-gated variant of Normal — see DESIGN.md "stretch
		// classification").
		stretchDistance: 2.5,
	}
}

// WithMaxNodes caps how many nodes Build will intern before giving up with
// ErrNodeLimitReached, guarding against a pad whose predicates admit an
// unbounded or unexpectedly huge reachable state space. Panics if n <= 0.
func WithMaxNodes(n int) BuildOption {
	if n <= 0 {
		panic("stepgraph: WithMaxNodes(n<=0)")
	}

	return func(c *buildConfig) { c.maxNodes = n }
}

// WithStretchDistance sets the travel-distance threshold above which a
// Normal-posture single step is also offered under the Stretch posture
// family; the Normal-posture link is kept as well. Panics if d <= 0.
func WithStretchDistance(d float64) BuildOption {
	if d <= 0 {
		panic("stepgraph: WithStretchDistance(d<=0)")
	}

	return func(c *buildConfig) { c.stretchDistance = d }
}
