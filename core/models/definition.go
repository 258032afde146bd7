package models

import (
	"context"
	"fmt"
	"time"
)

// DefaultRevision is the revision assigned to a definition until changed.
const DefaultRevision = "0"

// JobNameTimeFormat is the filename-compatible ISO8601 layout used when
// formatting job names, e.g. "2018-02-23T12-13-38".
const JobNameTimeFormat = "2006-01-02T15-04-05"

// Parameter is a single declared job definition parameter with its
// stringified value.
type Parameter struct {
	Name  string
	Value string
}

// Definition describes a unit of batch work. Concrete definitions declare
// their parameter list explicitly, in declaration order.
type Definition interface {
	// Name returns the stable job-family identifier. It must not depend
	// on mutable state.
	Name() string

	// Revision returns the revision the definition is pinned to.
	Revision() string

	// Parameters returns the declared parameters in declaration order.
	Parameters() []Parameter

	// Validate checks the definition's preconditions, such as referenced
	// storage objects existing. It is called once before a job accepts
	// the definition and must be safe to call again.
	Validate(ctx context.Context) error
}

// Base carries the revision bookkeeping shared by all job definitions.
// Embed it in concrete definition types.
type Base struct {
	revision string
}

// Revision returns the definition revision, defaulting to "0".
func (b *Base) Revision() string {
	if b.revision == "" {
		return DefaultRevision
	}
	return b.revision
}

// AtRevision pins the definition to a specific revision. Changing the
// revision has no effect on a job already submitted.
func (b *Base) AtRevision(revision string) {
	b.revision = revision
}

// DefinitionID formats the identifier a job is submitted under:
// "name:revision".
func DefinitionID(d Definition) string {
	return fmt.Sprintf("%s:%s", d.Name(), d.Revision())
}

// MakeJobName formats a job name from a definition and a moment in time.
// A zero moment means now.
func MakeJobName(d Definition, moment time.Time) string {
	if moment.IsZero() {
		moment = time.Now()
	}
	return moment.Format(JobNameTimeFormat) + "_" + d.Name()
}

// ParameterMap returns the declared parameters as the string map used
// verbatim as the remote submission parameters payload.
func ParameterMap(d Definition) map[string]string {
	params := d.Parameters()
	mapping := make(map[string]string, len(params))
	for _, p := range params {
		mapping[p.Name] = p.Value
	}
	return mapping
}
