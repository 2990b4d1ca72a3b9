package identity

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
)

var canonical = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-5[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestDerive_KnownVector(t *testing.T) {
	// uuid5(NAMESPACE_DNS, "python.org") is a widely published reference value.
	got := Derive(uuid.NameSpaceDNS, "python.org")
	want := "886313e1-3b8a-5372-9b90-0c9aee199e5d"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestID_UsesURLNamespace(t *testing.T) {
	if Namespace.String() != "6ba7b811-9dad-11d1-80b4-00c04fd430c8" {
		t.Fatalf("unexpected namespace %s", Namespace)
	}
	if ID("buyer") != Derive(uuid.NameSpaceURL, "buyer") {
		t.Error("expected ID to derive from the URL namespace")
	}
}

func TestID_Deterministic(t *testing.T) {
	seeds := []string{"", "buyer", "checkbox:Accept terms", "Accept terms:Yes", "sig:seller:Vendedor", "ñandú"}
	for _, seed := range seeds {
		a, b := ID(seed), ID(seed)
		if a != b {
			t.Errorf("seed %q: expected identical ids, got %q and %q", seed, a, b)
		}
		if !canonical.MatchString(a) {
			t.Errorf("seed %q: id %q is not a canonical v5 uuid", seed, a)
		}
	}
}

func TestID_DistinctSeeds(t *testing.T) {
	if ID("Accept terms:Yes") == ID("Accept terms:No") {
		t.Error("expected different ids for different seeds")
	}
}
