package creature

import (
	"testing"

	"github.com/emberhatch/menagerie/internal/platform/errors"
)

func TestAffinityParseRoundTrip(t *testing.T) {
	for _, affinity := range Affinities() {
		got, err := ParseAffinity(affinity.String())
		if err != nil {
			t.Fatalf("ParseAffinity(%q) returned error: %v", affinity.String(), err)
		}
		if got != affinity {
			t.Fatalf("ParseAffinity(%q) = %v, want %v", affinity.String(), got, affinity)
		}
	}
}

func TestParseAffinityRejectsUnknown(t *testing.T) {
	_, err := ParseAffinity("plasma")
	if err == nil {
		t.Fatal("ParseAffinity succeeded, want error")
	}
	if !errors.IsCode(err, errors.CodeCatalogAffinityUnknown) {
		t.Fatalf("ParseAffinity error code = %v, want %v", errors.GetCode(err), errors.CodeCatalogAffinityUnknown)
	}
}

func TestAffinitiesOrderIsStable(t *testing.T) {
	want := []Affinity{AffinityFire, AffinityWater, AffinityEarth, AffinityAir, AffinityLight, AffinityDark}
	got := Affinities()
	if len(got) != len(want) {
		t.Fatalf("Affinities() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Affinities()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAffinityValid(t *testing.T) {
	for _, affinity := range Affinities() {
		if !affinity.Valid() {
			t.Errorf("affinity %v reported invalid", affinity)
		}
	}
	if AffinityUnspecified.Valid() {
		t.Error("AffinityUnspecified reported valid")
	}
}
