package prescription

import (
	"testing"

	"github.com/openrx/pharmacy-api/catalog"
)

func matcherStore() *catalog.Store {
	return catalog.NewStore([]catalog.Medicine{
		{ID: "1", Name: "Amoxicillin 500mg", GenericName: "Amoxicillin"},
		{ID: "2", Name: "Advil", GenericName: "Ibuprofen"},
		{ID: "3", Name: "Vitamin D3", GenericName: "Cholecalciferol"},
	})
}

func TestResolveByName(t *testing.T) {
	resolved := Resolve([]Candidate{{RawName: "amoxicillin", Quantity: 2}}, matcherStore())

	if len(resolved) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(resolved))
	}
	if resolved[0].Resolved == nil {
		t.Fatal("Expected candidate to resolve")
	}
	if resolved[0].Resolved.ID != "1" {
		t.Errorf("Expected medicine 1, got %s", resolved[0].Resolved.ID)
	}
	if resolved[0].Quantity != 2 {
		t.Errorf("Resolve must not change quantity, got %d", resolved[0].Quantity)
	}
}

func TestResolveByGenericName(t *testing.T) {
	resolved := Resolve([]Candidate{{RawName: "ibuprofen", Quantity: 1}}, matcherStore())

	if resolved[0].Resolved == nil || resolved[0].Resolved.ID != "2" {
		t.Errorf("Expected generic name match on medicine 2, got %+v", resolved[0].Resolved)
	}
}

func TestResolveCaseInsensitive(t *testing.T) {
	for _, name := range []string{"AMOXICILLIN", "Amoxicillin", "  amoxicillin  "} {
		resolved := Resolve([]Candidate{{RawName: name, Quantity: 1}}, matcherStore())
		if resolved[0].Resolved == nil {
			t.Errorf("Expected %q to resolve", name)
		}
	}
}

func TestResolveSubstringBothDirections(t *testing.T) {
	// Candidate name contains the catalog name.
	resolved := Resolve([]Candidate{{RawName: "extra strength advil caplets", Quantity: 1}}, matcherStore())
	if resolved[0].Resolved == nil || resolved[0].Resolved.ID != "2" {
		t.Errorf("Expected containment match on medicine 2, got %+v", resolved[0].Resolved)
	}

	// Catalog name contains the candidate name.
	resolved = Resolve([]Candidate{{RawName: "vitamin", Quantity: 1}}, matcherStore())
	if resolved[0].Resolved == nil || resolved[0].Resolved.ID != "3" {
		t.Errorf("Expected containment match on medicine 3, got %+v", resolved[0].Resolved)
	}
}

func TestResolveMissLeavesNil(t *testing.T) {
	resolved := Resolve([]Candidate{{RawName: "unobtainium", Quantity: 1}}, matcherStore())
	if resolved[0].Resolved != nil {
		t.Errorf("Expected miss, got %+v", resolved[0].Resolved)
	}
}

func TestResolveEmptyNameNeverMatches(t *testing.T) {
	resolved := Resolve([]Candidate{{RawName: "   ", Quantity: 1}}, matcherStore())
	if resolved[0].Resolved != nil {
		t.Errorf("Blank name must not match, got %+v", resolved[0].Resolved)
	}
}

func TestResolveFirstCatalogEntryWins(t *testing.T) {
	store := catalog.NewStore([]catalog.Medicine{
		{ID: "a", Name: "Paracetamol 500mg"},
		{ID: "b", Name: "Paracetamol 1000mg"},
	})

	resolved := Resolve([]Candidate{{RawName: "paracetamol", Quantity: 1}}, store)
	if resolved[0].Resolved == nil || resolved[0].Resolved.ID != "a" {
		t.Errorf("Expected first entry to win, got %+v", resolved[0].Resolved)
	}
}
