package leaguepulse

import (
	"errors"
	"fmt"
	"time"

	"github.com/leaguepulse/leaguepulse/internal/sleeper"
)

// ErrNotReady is returned by CurrentSnapshot before the first successful
// fetch cycle. It is distinct from "stale due to failure": once a snapshot
// has been published it keeps serving through later failures.
var ErrNotReady = errors.New("leaguepulse: no snapshot published yet")

// FailureKind classifies why a fetch cycle failed.
type FailureKind string

const (
	// FailureNotFound means an identifier does not exist upstream. It is
	// not retried any faster than the normal schedule; it usually means
	// the league id or username needs reconfiguration.
	FailureNotFound FailureKind = "not_found"

	// FailureConnection is a transient transport failure, retried on the
	// next scheduled tick. No backoff: intervals are already
	// time-adaptive, and backoff would starve the system of data once
	// the upstream recovers.
	FailureConnection FailureKind = "connection"

	// FailureIntegrity means the fetched entity sets were mutually
	// inconsistent. It indicates an upstream contract change rather than
	// an outage.
	FailureIntegrity FailureKind = "data_integrity"
)

// Failure records the most recent failed fetch cycle for observers.
type Failure struct {
	Kind FailureKind
	Err  error
	At   time.Time
}

// DataIntegrityError reports that the fetched entity sets violate a
// cross-reference invariant, so no Snapshot can be built from them.
type DataIntegrityError struct {
	Reason string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("leaguepulse: data integrity violation: %s", e.Reason)
}

// classifyFailure maps a cycle error to its failure kind.
func classifyFailure(err error) FailureKind {
	var integrity *DataIntegrityError
	if errors.As(err, &integrity) {
		return FailureIntegrity
	}
	if sleeper.IsNotFound(err) {
		return FailureNotFound
	}
	return FailureConnection
}
