package resolver

import (
	"github.com/plumehq/plume"
	"github.com/plumehq/plume/errors"
)

// Resolve computes the instantiation order for a set of system descriptors.
//
// It builds a directed graph with an edge from each capability provider to
// every system requiring that capability, then topologically sorts it with a
// deterministic tie-break: among ready systems, declaration order wins. The
// same descriptor slice always yields the same order.
//
// Resolve is pure: it never mutates its input and has no side effects. On
// failure it returns one of *errors.UnresolvedCapabilityError,
// *errors.AmbiguousCapabilityError or *errors.DependencyCycleError, and the
// caller must not instantiate any system from the set.
func Resolve(descs []plume.Descriptor) ([]plume.Descriptor, error) {
	if err := validate(descs); err != nil {
		return nil, err
	}

	providers, err := providerIndex(descs)
	if err != nil {
		return nil, err
	}

	// dependents[i] lists descriptor indices that must come after i.
	dependents := make([][]int, len(descs))
	indegree := make([]int, len(descs))

	addEdge := func(from, to int) {
		dependents[from] = append(dependents[from], to)
		indegree[to]++
	}

	for i, d := range descs {
		for _, capID := range d.Requires {
			p, ok := providers[capID]
			if !ok {
				return nil, &errors.UnresolvedCapabilityError{
					Capability: string(capID),
					Requester:  d.Name,
				}
			}
			addEdge(p, i)
		}
		// Optional capabilities constrain ordering only when a provider is
		// present in the set; absence is resolved best-effort at lookup time.
		for _, capID := range d.Optional {
			if p, ok := providers[capID]; ok {
				addEdge(p, i)
			}
		}
	}

	order := make([]plume.Descriptor, 0, len(descs))
	placed := make([]bool, len(descs))

	for len(order) < len(descs) {
		next := -1
		for i := range descs {
			if !placed[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next == -1 {
			return nil, &errors.DependencyCycleError{
				Path: cyclePath(descs, dependents, placed),
			}
		}
		placed[next] = true
		order = append(order, descs[next])
		for _, dep := range dependents[next] {
			indegree[dep]--
		}
	}

	return order, nil
}

func validate(descs []plume.Descriptor) error {
	seen := make(map[string]bool, len(descs))
	for _, d := range descs {
		if d.Name == "" {
			return errors.InvalidDescriptor("", "descriptor has no name")
		}
		if seen[d.Name] {
			return errors.Duplicate(errors.PhaseResolve, "system", d.Name)
		}
		seen[d.Name] = true
	}
	return nil
}

// providerIndex maps each capability to the index of its single provider.
// Two providers for the same identifier reject the whole set, whether or not
// anything requires it.
func providerIndex(descs []plume.Descriptor) (map[plume.CapabilityID]int, error) {
	providers := make(map[plume.CapabilityID]int)
	for i, d := range descs {
		for _, capID := range d.Provides {
			if prev, ok := providers[capID]; ok {
				return nil, &errors.AmbiguousCapabilityError{
					Capability: string(capID),
					Providers:  []string{descs[prev].Name, d.Name},
				}
			}
			providers[capID] = i
		}
	}
	return providers, nil
}

// cyclePath extracts one concrete cycle from the unplaced remainder of the
// graph. Every unplaced node still has an unplaced predecessor, so walking
// predecessor edges from any of them must revisit a node; the revisited
// segment is a cycle. The path is returned in dependency order.
func cyclePath(descs []plume.Descriptor, dependents [][]int, placed []bool) []string {
	start := -1
	for i := range descs {
		if !placed[i] {
			start = i
			break
		}
	}
	if start == -1 {
		return nil
	}

	pred := func(node int) int {
		for i := range descs {
			if placed[i] {
				continue
			}
			for _, dep := range dependents[i] {
				if dep == node {
					return i
				}
			}
		}
		return -1
	}

	visitedAt := make(map[int]int)
	var walk []int
	cur := start
	for {
		if at, ok := visitedAt[cur]; ok {
			cycle := walk[at:]
			// walk runs dependent -> provider; reverse for dependency order.
			names := make([]string, 0, len(cycle))
			for i := len(cycle) - 1; i >= 0; i-- {
				names = append(names, descs[cycle[i]].Name)
			}
			return names
		}
		visitedAt[cur] = len(walk)
		walk = append(walk, cur)

		prev := pred(cur)
		if prev == -1 {
			return nil
		}
		cur = prev
	}
}
