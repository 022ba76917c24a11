package automaton

// EpsilonClosure returns the states reachable from the given states through epsilon transitions only,
// including the given states themselves.
func (a *Automaton) EpsilonClosure(set StateSet) StateSet {
	if set.Empty() {
		return set
	}
	visited := make(map[State]struct{}, set.Len())
	stack := make([]State, 0, set.Len())
	for _, s := range set.s {
		visited[s] = struct{}{}
		stack = append(stack, s)
	}
	grown := false
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, to := range a.Targets(s, Epsilon).s {
			if _, ok := visited[to]; ok {
				continue
			}
			visited[to] = struct{}{}
			stack = append(stack, to)
			grown = true
		}
	}
	if !grown {
		return set
	}
	states := make([]State, 0, len(visited))
	for s := range visited {
		states = append(states, s)
	}
	return StateSet{
		s: sortAndRemoveDuplicates(states),
	}
}

// Move returns the union of the destinations of the transitions on sym from every state in the set.
// The result is not closed under epsilon transitions.
func (a *Automaton) Move(set StateSet, sym Symbol) StateSet {
	var states []State
	for _, s := range set.s {
		states = append(states, a.Targets(s, sym).s...)
	}
	if len(states) == 0 {
		return StateSet{}
	}
	return StateSet{
		s: sortAndRemoveDuplicates(states),
	}
}
