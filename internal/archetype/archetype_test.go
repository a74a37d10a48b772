package archetype

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Archetype
		hasError bool
	}{
		{"blackbird", Blackbird, false},
		{"Blackbird", Blackbird, false},
		{"CITIZEN", Citizen, false},
		{"privileged", Privileged, false},
		{"survivalist", Survivalist, false},
		{"rogue", NoneArchetype, true},
		{"", NoneArchetype, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Parse(%q) expected error, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestString(t *testing.T) {
	if got := Blackbird.String(); got != "Blackbird" {
		t.Errorf("Blackbird.String() = %q", got)
	}
	if got := NoneArchetype.String(); got != "None" {
		t.Errorf("NoneArchetype.String() = %q, want \"None\"", got)
	}
}

func TestAll(t *testing.T) {
	all := All()
	if len(all) != 4 {
		t.Fatalf("All() returned %d archetypes, want 4", len(all))
	}
	for _, a := range all {
		if !a.IsValid() {
			t.Errorf("archetype %q from All() should be valid", a)
		}
	}
}
