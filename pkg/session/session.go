// Package session models the per-upload state of the reconciliation
// pipeline. All mutable state lives on the Session object and is
// discarded when a new file arrives; there is no ambient process-wide
// state.
package session

import (
	"github.com/gnames/gnuuid"
	"github.com/google/uuid"

	"github.com/happidata/whr/pkg/match"
	"github.com/happidata/whr/pkg/resolve"
	"github.com/happidata/whr/pkg/table"
)

// Session carries one uploaded table through the pipeline. Tables are
// stored per stage so a stage can be recomputed from its input without
// re-running earlier stages.
type Session struct {
	// ID identifies this session.
	ID uuid.UUID
	// UploadID is a deterministic identity of the uploaded file,
	// a UUID v5 of its path.
	UploadID string
	// Path of the uploaded file.
	Path string

	Raw          *table.Table
	Standardized *table.Table
	Match        match.Result
	Enriched     *table.Table

	// PreImpute is the snapshot a strategy is applied to. Re-invoking
	// with a different strategy recomputes from here, not cumulatively.
	PreImpute *table.Table
	Imputed   *table.Table

	resolver *resolve.Resolver
}

// New starts a session for an uploaded file. Any state of a previous
// upload is superseded by dropping the old session.
func New(path string, raw *table.Table) *Session {
	return &Session{
		ID:       uuid.New(),
		UploadID: gnuuid.New(path).String(),
		Path:     path,
		Raw:      raw,
	}
}

// BeginResolution installs the matching result and creates the
// resolver. With an empty unmatched residue the session is resolved
// immediately.
func (s *Session) BeginResolution(res match.Result) {
	s.Match = res
	raws := make([]string, len(res.Unmatched))
	for i, u := range res.Unmatched {
		raws[i] = u.Raw
	}
	s.resolver = resolve.New(res.Mapping, raws)
}

// State returns the resolution state. Before BeginResolution it is
// Unresolved.
func (s *Session) State() resolve.State {
	if s.resolver == nil {
		return resolve.Unresolved
	}
	return s.resolver.State()
}

// NeedsInput reports whether human choices are required before the
// pipeline can continue.
func (s *Session) NeedsInput() bool {
	return s.resolver != nil && s.resolver.State() != resolve.Resolved
}

// Submit forwards human choices to the resolver.
func (s *Session) Submit(choices map[string]string) ([]resolve.Collision, error) {
	return s.resolver.Submit(choices)
}

// Mapping returns the finalized raw → canonical mapping once resolved.
func (s *Session) Mapping() (map[string]string, bool) {
	if s.resolver == nil {
		return nil, false
	}
	return s.resolver.Mapping()
}
