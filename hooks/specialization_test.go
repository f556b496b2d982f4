package hooks

import (
	"errors"
	"testing"
)

func TestAttachSpecialization(t *testing.T) {
	types := &TypeTable{
		Specializations: map[string]bool{SpecializationName: true},
		Types: map[string][]string{
			"tractor": {"motorized"},
			"trailer": {"attachable", SpecializationName},
			"combine": {},
		},
	}

	n, err := AttachSpecialization(types, SpecializationName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 types to gain the specialization, got %d", n)
	}
	for _, name := range types.TypeNames() {
		if !types.TypeHasSpecialization(name, SpecializationName) {
			t.Errorf("%s is missing the specialization", name)
		}
	}

	n, err = AttachSpecialization(types, SpecializationName)
	if err != nil || n != 0 {
		t.Errorf("second attach should be a no-op, got %d (%v)", n, err)
	}
	if len(types.Types["trailer"]) != 2 {
		t.Errorf("specialization added twice: %v", types.Types["trailer"])
	}
}

func TestAttachUnknownSpecialization(t *testing.T) {
	types := &TypeTable{Types: map[string][]string{"tractor": {}}}
	_, err := AttachSpecialization(types, SpecializationName)
	if !errors.Is(err, ErrUnknownSpecialization) {
		t.Errorf("expected ErrUnknownSpecialization, got %v", err)
	}
}
