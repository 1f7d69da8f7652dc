package orders

import (
	"testing"

	"mandi/models"
)

func TestForwardProgression(t *testing.T) {
	// Walking the forward action from pending must pass through every
	// intermediate state before reaching picked_up.
	want := []string{
		models.OrderConfirmed,
		models.OrderPreparing,
		models.OrderReady,
		models.OrderPickedUp,
	}

	status := models.OrderPending
	for _, expect := range want {
		next, ok := NextStatus(status)
		if !ok {
			t.Fatalf("no forward step from %q", status)
		}
		if next != expect {
			t.Fatalf("from %q: want %q, got %q", status, expect, next)
		}
		status = next
	}

	if _, ok := NextStatus(models.OrderPickedUp); ok {
		t.Fatal("picked_up must have no forward step")
	}
	if _, ok := NextStatus(models.OrderCancelled); ok {
		t.Fatal("cancelled must have no forward step")
	}
}

func TestCancelAvailability(t *testing.T) {
	for _, s := range []string{models.OrderPending, models.OrderConfirmed, models.OrderPreparing, models.OrderReady} {
		if !CanCancel(s) {
			t.Fatalf("cancel should be offered from %q", s)
		}
	}
	for _, s := range []string{models.OrderPickedUp, models.OrderCancelled, "bogus"} {
		if CanCancel(s) {
			t.Fatalf("cancel must not be offered from %q", s)
		}
	}
}

func TestActionsFromPending(t *testing.T) {
	got := Actions(models.OrderPending)
	if len(got) != 2 || got[0] != models.OrderConfirmed || got[1] != models.OrderCancelled {
		t.Fatalf("from pending the only actions are confirm and cancel, got %v", got)
	}

	if got := Actions(models.OrderPickedUp); len(got) != 0 {
		t.Fatalf("terminal state offers no actions, got %v", got)
	}
}
