package leagueerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMatchesKindAndReasonThroughWrapping(t *testing.T) {
	err := fmt.Errorf("create offer: %w", New(Conflict, AlreadySigned, "player %s is already signed", "u1"))

	if !errors.Is(err, Conflict) {
		t.Fatalf("expected wrapped error to match Conflict")
	}
	if !errors.Is(err, AlreadySigned) {
		t.Fatalf("expected wrapped error to match AlreadySigned")
	}
	if errors.Is(err, NotFound) {
		t.Fatalf("did not expect NotFound match")
	}
	if errors.Is(err, OfferExpired) {
		t.Fatalf("did not expect OfferExpired match")
	}
	if got := KindOf(err); got != Conflict {
		t.Errorf("KindOf = %q, want %q", got, Conflict)
	}
	if got := ReasonOf(err); got != AlreadySigned {
		t.Errorf("ReasonOf = %q, want %q", got, AlreadySigned)
	}
}

func TestUntypedErrorIsInternal(t *testing.T) {
	err := errors.New("boom")
	if got := KindOf(err); got != Internal {
		t.Errorf("KindOf = %q, want %q", got, Internal)
	}
	if got := ReasonOf(err); got != ReasonNone {
		t.Errorf("ReasonOf = %q, want empty", got)
	}
}

func TestTargetReasonsMatchInvalidTarget(t *testing.T) {
	for _, r := range []Reason{SelfTarget, BotTarget, IsManager, IsAssistant} {
		err := New(Conflict, r, "denied")
		if !errors.Is(err, InvalidTarget) {
			t.Errorf("%s should match InvalidTarget", r)
		}
		if !errors.Is(err, r) {
			t.Errorf("%s should match itself", r)
		}
	}
	if errors.Is(New(Conflict, AlreadySigned, "denied"), InvalidTarget) {
		t.Errorf("AlreadySigned must not match InvalidTarget")
	}
}
