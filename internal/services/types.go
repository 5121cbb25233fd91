package services

import (
	"context"
	"strings"
)

// State classifies a service's health. The set is closed: a status is always
// exactly one of these three values.
type State string

const (
	StateConnected State = "connected"
	StateWarning   State = "warning"
	StateDown      State = "down"
)

// Status is the normalized result of one health check. Produced fresh on
// every poll and never merged across polls.
type Status struct {
	State  State  `json:"status"`
	Detail string `json:"detail"`
}

// Connected builds a healthy status with the given detail text.
func Connected(detail string) Status { return Status{State: StateConnected, Detail: detail} }

// Warning builds a degraded-but-alive status.
func Warning(detail string) Status { return Status{State: StateWarning, Detail: detail} }

// Down builds an unavailable status.
func Down(detail string) Status { return Status{State: StateDown, Detail: detail} }

// Identity names a monitored service. The enumeration is closed; there is no
// dynamic registration. The string values are wire names and must not change.
type Identity string

const (
	Barrier Identity = "barrier"
	SSH     Identity = "ssh"
	SMB     Identity = "smb"
)

// Identities returns the closed enumeration in its fixed order. Aggregated
// output (reconnect-all messages, status snapshots) follows this order.
func Identities() []Identity {
	return []Identity{Barrier, SSH, SMB}
}

// ParseIdentity maps a wire name to an Identity.
func ParseIdentity(s string) (Identity, bool) {
	switch Identity(strings.ToLower(strings.TrimSpace(s))) {
	case Barrier:
		return Barrier, true
	case SSH:
		return SSH, true
	case SMB:
		return SMB, true
	default:
		return "", false
	}
}

// Outcome summarizes one remediation attempt. Remediators always return an
// Outcome; partial success is described in the message, never raised as an
// error.
type Outcome struct {
	Message string `json:"message"`
}

// Checker converts one or more probe results into a normalized Status.
// Implementations are stateless and reentrant.
type Checker interface {
	Identity() Identity
	Check(ctx context.Context) Status
}

// Remediator performs best-effort corrective actions for a degraded service
// and reports what it attempted. Implementations are stateless; mutual
// exclusion per identity is the action coordinator's job.
type Remediator interface {
	Identity() Identity
	Reconnect(ctx context.Context) Outcome
}

// DetailLimit bounds diagnostic detail text so probe failures cannot leak
// unbounded command output into API payloads.
const DetailLimit = 60

// ClipDetail truncates diagnostic text to DetailLimit characters.
func ClipDetail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) <= DetailLimit {
		return s
	}
	return s[:DetailLimit]
}
