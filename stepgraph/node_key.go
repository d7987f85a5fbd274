package stepgraph

import "strconv"

// Key returns the canonical structural-equality key for s, used to intern
// nodes during Build (spec §4.1 "Intern the successor node (deduplicate by
// structural equality)"). Two NodeState values are equal iff their keys are
// equal.
func (s NodeState) Key() string {
	buf := make([]byte, 0, 64)
	for f := 0; f < 2; f++ {
		for p := 0; p < 2; p++ {
			fp := s.Feet[f][p]
			buf = appendInt(buf, fp.Lane)
			buf = append(buf, ':')
			buf = appendInt(buf, int(fp.State))
			buf = append(buf, '|')
		}
	}
	buf = appendInt(buf, int(s.Orientation))

	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	return strconv.AppendInt(buf, int64(v), 10)
}
