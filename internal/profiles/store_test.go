package profiles

import (
	"testing"

	"github.com/david/grant-match/internal/models"
)

func TestStore_PutAssignsIDAndCreatedAt(t *testing.T) {
	s := NewStore()
	stored := s.Put(models.Profile{UserType: "startup"})

	if stored.ID == "" {
		t.Fatal("expected generated profile id")
	}
	if stored.CreatedAt == nil {
		t.Fatal("expected created_at to be set")
	}

	got, err := s.Get(stored.ID)
	if err != nil {
		t.Fatalf("get after put: %v", err)
	}
	if got.UserType != "startup" {
		t.Fatalf("unexpected stored profile: %+v", got)
	}
}

func TestStore_PutKeepsExistingID(t *testing.T) {
	s := NewStore()
	stored := s.Put(models.Profile{ID: "fixed-id"})
	if stored.ID != "fixed-id" {
		t.Fatalf("expected id to be preserved, got %s", stored.ID)
	}
}

func TestStore_GetUnknownID(t *testing.T) {
	s := NewStore()
	if _, err := s.Get("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
