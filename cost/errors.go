package cost

import "errors"

// ErrConfigInvalid is the sentinel surfaced at the API boundary when
// validation collects one or more field errors (spec §7 taxonomy). Use
// errors.Is to detect it. Validate wraps it together with an errors.Join of
// the individual field complaints in one two-%w error, so errors.Unwrap
// returns nil for it; walk the complaints through its Unwrap() []error.
var ErrConfigInvalid = errors.New("cost: config invalid")
