package game

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedRoller replays fixed draws so combat can be asserted exactly.
type scriptedRoller struct {
	values []int
	next   int
}

func script(values ...int) *scriptedRoller {
	return &scriptedRoller{values: values}
}

func (s *scriptedRoller) Intn(n int) int {
	if s.next >= len(s.values) {
		panic(fmt.Sprintf("script exhausted after %d draws", s.next))
	}
	v := s.values[s.next]
	s.next++
	if v < 0 || v >= n {
		panic(fmt.Sprintf("scripted draw %d out of range [0, %d)", v, n))
	}
	return v
}

func (s *scriptedRoller) exhausted() bool {
	return s.next == len(s.values)
}

// face converts a die face into the draw that produces it.
func face(f int) int {
	return f - 1
}

type recorder struct {
	events []Event
}

func (r *recorder) Observe(e Event) {
	r.events = append(r.events, e)
}

func (r *recorder) ofType(t EventType) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func newTestPlayer(t *testing.T, name string, roller Roller, kinds ...Kind) *Player {
	t.Helper()
	p, err := NewPlayer(name, 0, roller)
	require.NoError(t, err)
	for _, kind := range kinds {
		p.Army().Add(MustNewUnit(kind))
	}
	return p
}
