package specialty

import "testing"

func TestValid(t *testing.T) {
	for _, name := range Names() {
		if !Valid(name) {
			t.Errorf("expected %q to be valid", name)
		}
	}
	if Valid("Astrology") {
		t.Error("expected unknown name to be invalid")
	}
	if Valid("neurology") {
		t.Error("expected matching to be case-sensitive")
	}
	if Valid("") {
		t.Error("expected empty name to be invalid")
	}
}

func TestNames_Count(t *testing.T) {
	if len(Names()) != 9 {
		t.Errorf("expected 9 specialties, got %d", len(Names()))
	}
}

func TestNames_CopyIsIndependent(t *testing.T) {
	names := Names()
	names[0] = "tampered"
	if Names()[0] == "tampered" {
		t.Error("expected Names to return an independent copy")
	}
}
