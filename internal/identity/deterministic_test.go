package identity

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDIsStable(t *testing.T) {
	a := UUID("go-onboarding:test:key")
	b := UUID("  go-onboarding:test:key ")
	if a == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if a != b {
		t.Fatalf("expected trimmed keys to match, got %s and %s", a, b)
	}
	if UUID("") != uuid.Nil {
		t.Fatal("expected nil uuid for empty key")
	}
}

func TestResourceUUIDVariesByInput(t *testing.T) {
	parent := ResourceUUID("sequence", uuid.Nil, "engineering")
	seen := map[uuid.UUID]string{}
	for name, id := range map[string]uuid.UUID{
		"sequence/engineering": parent,
		"sequence/sales":       ResourceUUID("sequence", uuid.Nil, "sales"),
		"to_do/engineering":    ResourceUUID("to_do", uuid.Nil, "engineering"),
		"condition/day-1":      ResourceUUID("condition", parent, "day-1"),
		"condition/day-1@root": ResourceUUID("condition", uuid.Nil, "day-1"),
	} {
		if other, ok := seen[id]; ok {
			t.Fatalf("collision between %s and %s", name, other)
		}
		seen[id] = name
	}
	if ResourceUUID("TO_DO", uuid.Nil, "laptop") != ResourceUUID("to_do", uuid.Nil, " laptop ") {
		t.Fatal("expected kind and handle to be normalized")
	}
}

func TestColleagueUUIDNormalizesEmail(t *testing.T) {
	if ColleagueUUID("Jane@Example.com ") != ColleagueUUID("jane@example.com") {
		t.Fatal("expected email normalization")
	}
}

func TestBlockUUIDDependsOnPosition(t *testing.T) {
	owner := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	if BlockUUID(owner, 0) == BlockUUID(owner, 1) {
		t.Fatal("expected distinct ids per position")
	}
	if BlockUUID(owner, 2) != BlockUUID(owner, 2) {
		t.Fatal("expected stable ids")
	}
}
