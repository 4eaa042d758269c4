package promhooks

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsTrackLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := New(reg, "users")

	h.Hit()
	h.Hit()
	h.Created("a", 5*time.Millisecond)
	h.Created("b", 5*time.Millisecond)
	h.Removed("a")
	h.ProducerError("c", nil)
	h.DisposalError("a", nil)

	if got := testutil.ToFloat64(h.hits); got != 2 {
		t.Errorf("hits = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.creations); got != 2 {
		t.Errorf("creations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(h.removals); got != 1 {
		t.Errorf("removals = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.producerErrors); got != 1 {
		t.Errorf("producerErrors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.disposalErrors); got != 1 {
		t.Errorf("disposalErrors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(h.entries); got != 1 {
		t.Errorf("entries = %v, want 1 (2 created - 1 removed)", got)
	}

	h.Cleared(1)
	if got := testutil.ToFloat64(h.entries); got != 0 {
		t.Errorf("entries after Cleared = %v, want 0", got)
	}

	h.Created("d", time.Millisecond)
	h.TornDown(1)
	if got := testutil.ToFloat64(h.entries); got != 0 {
		t.Errorf("entries after TornDown = %v, want 0", got)
	}
}

func TestTwoCachesOneRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	// distinct cache labels must not collide
	a := New(reg, "sessions")
	b := New(reg, "profiles")
	a.Hit()
	b.Hit()
	b.Hit()
	if got := testutil.ToFloat64(a.hits); got != 1 {
		t.Errorf("sessions hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(b.hits); got != 2 {
		t.Errorf("profiles hits = %v, want 2", got)
	}
}
