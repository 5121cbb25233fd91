package status

import (
	"context"
	"testing"

	"relink/internal/services"
)

type stubChecker struct {
	id     services.Identity
	status services.Status
	panics bool
}

func (s *stubChecker) Identity() services.Identity { return s.id }

func (s *stubChecker) Check(context.Context) services.Status {
	if s.panics {
		panic("probe exploded")
	}
	return s.status
}

func TestSnapshotCombinesAllCheckers(t *testing.T) {
	agg := NewAggregator(nil,
		&stubChecker{id: services.Barrier, status: services.Connected("Client connected")},
		&stubChecker{id: services.SSH, status: services.Warning("SSH OK, tunnel down")},
		&stubChecker{id: services.SMB, status: services.Down("No mount found")},
	)

	snap := agg.Snapshot(context.Background())
	if snap.Barrier.State != services.StateConnected {
		t.Fatalf("barrier: %+v", snap.Barrier)
	}
	if snap.SSH.State != services.StateWarning {
		t.Fatalf("ssh: %+v", snap.SSH)
	}
	if snap.SMB.State != services.StateDown {
		t.Fatalf("smb: %+v", snap.SMB)
	}
}

func TestSnapshotIsolatesPanickingChecker(t *testing.T) {
	agg := NewAggregator(nil,
		&stubChecker{id: services.Barrier, status: services.Connected("Client connected")},
		&stubChecker{id: services.SSH, panics: true},
		&stubChecker{id: services.SMB, status: services.Connected("/Volumes/share")},
	)

	snap := agg.Snapshot(context.Background())
	if snap.SSH.State != services.StateDown {
		t.Fatalf("panicking checker should degrade to down: %+v", snap.SSH)
	}
	if snap.Barrier.State != services.StateConnected || snap.SMB.State != services.StateConnected {
		t.Fatalf("other services must be unaffected: %+v", snap)
	}
	if len(snap.SSH.Detail) > services.DetailLimit {
		t.Fatalf("panic detail not clipped: %q", snap.SSH.Detail)
	}
}

func TestSnapshotIsIdempotent(t *testing.T) {
	agg := NewAggregator(nil,
		&stubChecker{id: services.Barrier, status: services.Down("Server not running")},
		&stubChecker{id: services.SSH, status: services.Down("Unreachable")},
		&stubChecker{id: services.SMB, status: services.Down("No mount found")},
	)

	first := agg.Snapshot(context.Background())
	second := agg.Snapshot(context.Background())
	if first != second {
		t.Fatalf("consecutive snapshots differ: %+v vs %+v", first, second)
	}
}

func TestSnapshotWithoutCheckers(t *testing.T) {
	snap := NewAggregator(nil).Snapshot(context.Background())
	for _, st := range []services.Status{snap.Barrier, snap.SSH, snap.SMB} {
		if st.State != services.StateDown {
			t.Fatalf("expected down for unregistered service: %+v", st)
		}
	}
}
