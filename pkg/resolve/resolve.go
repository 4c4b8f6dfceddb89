// Package resolve applies human choices to the unmatched residue of a
// matching run. The resolver is a small state machine; a submission is
// committed atomically or rejected in its entirety when two raw strings
// claim the same canonical name.
package resolve

import (
	"errors"
	"fmt"
	"sort"
)

// State of the resolution state machine for one uploaded table.
type State int

const (
	// Unresolved is entered on upload when raw strings lack confident
	// matches.
	Unresolved State = iota
	// AwaitingInput loops on resubmission while collisions exist.
	AwaitingInput
	// Resolved is terminal for the session. It is also the entry state
	// when the matcher leaves zero unmatched strings.
	Resolved
)

func (s State) String() string {
	switch s {
	case Unresolved:
		return "unresolved"
	case AwaitingInput:
		return "awaiting-input"
	case Resolved:
		return "resolved"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// KeepOriginal is the sentinel choice meaning "keep the raw name as its
// own canonical identity". Such raw strings stay unmapped and fall back
// to their own name during enrichment.
const KeepOriginal = "(keep original)"

// Collision reports a canonical name claimed by more than one raw
// string in a submission.
type Collision struct {
	Canonical string   `json:"canonical"`
	Raws      []string `json:"raws"`
}

// ErrResolved is returned when choices are submitted to a resolver
// whose mapping is already committed. Decisions are immutable for the
// session; a new upload creates a new resolver.
var ErrResolved = errors.New("mapping already resolved for this session")

// ErrUnknownRaw is returned when a choice references a raw string that
// is not in the unmatched residue. Automatic matches are never offered
// for human override.
var ErrUnknownRaw = errors.New("choice for a raw string that is not awaiting input")

// Resolver merges human choices into the automatic mapping.
type Resolver struct {
	auto      map[string]string
	unmatched map[string]bool
	state     State
	final     map[string]string
}

// New creates a resolver from the automatic mapping and the unmatched
// residue. With an empty residue the mapping is committed immediately.
func New(auto map[string]string, unmatched []string) *Resolver {
	res := &Resolver{
		auto:      copyMap(auto),
		unmatched: make(map[string]bool, len(unmatched)),
		state:     Unresolved,
	}
	for _, raw := range unmatched {
		res.unmatched[raw] = true
	}
	if len(unmatched) == 0 {
		res.final = copyMap(auto)
		res.state = Resolved
	}
	return res
}

// State returns the current state of the resolver.
func (r *Resolver) State() State { return r.state }

// Submit merges the given choices (raw → canonical, or KeepOriginal)
// into the automatic mapping. When any canonical name ends up assigned
// to more than one raw string, nothing is committed and the collisions
// are returned; the caller resubmits corrected choices. On a
// collision-free submission the mapping is committed and the resolver
// transitions to Resolved.
func (r *Resolver) Submit(choices map[string]string) ([]Collision, error) {
	if r.state == Resolved {
		return nil, ErrResolved
	}
	for raw := range choices {
		if !r.unmatched[raw] {
			return nil, fmt.Errorf("%w: %q", ErrUnknownRaw, raw)
		}
	}

	merged := copyMap(r.auto)
	for raw, choice := range choices {
		if choice == KeepOriginal {
			// stays unmapped, falls back to its own name later
			delete(merged, raw)
			continue
		}
		merged[raw] = choice
	}

	collisions := detectCollisions(merged)
	if len(collisions) > 0 {
		r.state = AwaitingInput
		return collisions, nil
	}

	r.final = merged
	r.state = Resolved
	return nil, nil
}

// Mapping returns the committed raw → canonical mapping. The second
// value is false until the resolver is Resolved.
func (r *Resolver) Mapping() (map[string]string, bool) {
	if r.state != Resolved {
		return nil, false
	}
	return copyMap(r.final), true
}

func detectCollisions(mapping map[string]string) []Collision {
	byCanonical := make(map[string][]string)
	for raw, canonical := range mapping {
		byCanonical[canonical] = append(byCanonical[canonical], raw)
	}
	var res []Collision
	for canonical, raws := range byCanonical {
		if len(raws) < 2 {
			continue
		}
		sort.Strings(raws)
		res = append(res, Collision{Canonical: canonical, Raws: raws})
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Canonical < res[j].Canonical
	})
	return res
}

func copyMap(m map[string]string) map[string]string {
	res := make(map[string]string, len(m))
	for k, v := range m {
		res[k] = v
	}
	return res
}
