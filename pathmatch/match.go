// Package pathmatch matches concrete request paths against patterns with
// literal and named-parameter segments, e.g. "/users/:id".
package pathmatch

import "strings"

type Param struct {
	Key   string
	Value string
}

type Params []Param

// ByName returns the value of the first parameter with the given name, or
// the empty string.
func (ps Params) ByName(name string) string {
	for _, p := range ps {
		if p.Key == name {
			return p.Value
		}
	}
	return ""
}

// Match holds one concrete path, split once, and can be tried against any
// number of patterns. Bound parameters from the last successful Against call
// are available through Params. A Match lives for one request.
type Match struct {
	segments []string
	params   Params
}

func Path(path string) *Match {
	return &Match{segments: split(path)}
}

// Against reports whether the path matches pattern. Pattern segments starting
// with ':' bind the concrete segment under that name; all other segments must
// be equal. Segment counts must agree.
func (m *Match) Against(pattern string) bool {
	segments := split(pattern)
	m.params = m.params[:0]

	if len(segments) != len(m.segments) {
		return false
	}

	for i, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			m.params = append(m.params, Param{segment[1:], m.segments[i]})
			continue
		}
		if segment != m.segments[i] {
			return false
		}
	}

	return true
}

func (m *Match) Params() Params {
	return m.params
}

func split(path string) []string {
	return strings.Split(strings.Trim(path, "/"), "/")
}
