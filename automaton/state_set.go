package automaton

import (
	"encoding/binary"
	"fmt"
	"sort"
	"strings"
)

// State is an opaque handle of a state. States of an automaton are numbered densely from 0.
type State int

func (s State) Int() int {
	return int(s)
}

// StateSet is an immutable set of states. The members are kept sorted and free of duplicates, so two sets
// containing the same states have the same Key.
type StateSet struct {
	s []State
}

func NewStateSet(states ...State) StateSet {
	if len(states) == 0 {
		return StateSet{}
	}
	s := make([]State, len(states))
	copy(s, states)
	return StateSet{
		s: sortAndRemoveDuplicates(s),
	}
}

func (s StateSet) Len() int {
	return len(s.s)
}

func (s StateSet) Empty() bool {
	return len(s.s) == 0
}

// States returns the members in ascending order. The caller may modify the returned slice.
func (s StateSet) States() []State {
	ss := make([]State, len(s.s))
	copy(ss, s.s)
	return ss
}

func (s StateSet) Contains(state State) bool {
	i := sort.Search(len(s.s), func(i int) bool {
		return s.s[i] >= state
	})
	return i < len(s.s) && s.s[i] == state
}

func (s StateSet) Union(t StateSet) StateSet {
	if t.Empty() {
		return s
	}
	if s.Empty() {
		return t
	}
	merged := make([]State, 0, len(s.s)+len(t.s))
	merged = append(merged, s.s...)
	merged = append(merged, t.s...)
	return StateSet{
		s: sortAndRemoveDuplicates(merged),
	}
}

func (s StateSet) Intersects(t StateSet) bool {
	i, j := 0, 0
	for i < len(s.s) && j < len(t.s) {
		switch {
		case s.s[i] == t.s[j]:
			return true
		case s.s[i] < t.s[j]:
			i++
		default:
			j++
		}
	}
	return false
}

func (s StateSet) Equal(t StateSet) bool {
	return s.Key() == t.Key()
}

// Key returns a string usable as a map key. Sets with the same members have the same key.
func (s StateSet) Key() string {
	if len(s.s) == 0 {
		return ""
	}
	// This byte sequence is made from state numbers, so it is not a well-formed UTF-8 sequence.
	buf := make([]byte, 0, len(s.s)*binary.MaxVarintLen64)
	b := make([]byte, binary.MaxVarintLen64)
	for _, st := range s.s {
		n := binary.PutUvarint(b, uint64(st))
		buf = append(buf, b[:n]...)
	}
	return string(buf)
}

func (s StateSet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{")
	for i, st := range s.s {
		if i > 0 {
			fmt.Fprintf(&b, ", ")
		}
		fmt.Fprintf(&b, "%v", st)
	}
	fmt.Fprintf(&b, "}")
	return b.String()
}

func sortAndRemoveDuplicates(s []State) []State {
	if len(s) == 0 {
		return s
	}
	sort.Slice(s, func(i, j int) bool {
		return s[i] < s[j]
	})
	last := s[0]
	next := 1
	for _, v := range s[1:] {
		if v == last {
			continue
		}
		s[next] = v
		next++
		last = v
	}
	return s[:next]
}
