package entity

import (
	"testing"
	"time"
)

func TestLifecycleMarkDeleted(t *testing.T) {
	l := Active()
	if l.IsDeleted() {
		t.Fatal("new lifecycle should be active")
	}

	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	if !l.MarkDeleted(at) {
		t.Fatal("expected first transition to succeed")
	}
	if !l.IsDeleted() || l.DeletedAt == nil || !l.DeletedAt.Equal(at) {
		t.Fatalf("unexpected lifecycle after delete: %+v", l)
	}

	// Deletion is terminal; a second transition leaves the stamp alone.
	if l.MarkDeleted(at.Add(time.Hour)) {
		t.Fatal("expected second transition to be rejected")
	}
	if !l.DeletedAt.Equal(at) {
		t.Fatalf("deletedAt changed to %v", l.DeletedAt)
	}
}

func TestFromFlag(t *testing.T) {
	if FromFlag(false, nil).IsDeleted() {
		t.Fatal("expected active")
	}
	now := time.Now().UTC()
	l := FromFlag(true, &now)
	if !l.IsDeleted() || l.DeletedAt != &now {
		t.Fatalf("unexpected lifecycle: %+v", l)
	}
}
