package hooks

import (
	"errors"
	"fmt"
	"sort"
)

// SpecializationName is the vehicle specialization that runs the combination rewrite on load
const SpecializationName = "moddirCombinations"

// ErrUnknownSpecialization is returned when attaching a specialization the game hasn't registered
var ErrUnknownSpecialization = errors.New("unknown specialization")

// VehicleTypes is the game's vehicle type manager
type VehicleTypes interface {
	// HasSpecialization reports whether a specialization with this name is registered at all
	HasSpecialization(name string) bool
	TypeNames() []string
	TypeHasSpecialization(typeName string, name string) bool
	AddSpecialization(typeName string, name string) error
}

// AttachSpecialization adds a registered specialization to every vehicle type that doesn't carry it yet.
// It returns the number of types it was added to.
func AttachSpecialization(types VehicleTypes, name string) (int, error) {
	if !types.HasSpecialization(name) {
		return 0, fmt.Errorf("%w: %s", ErrUnknownSpecialization, name)
	}
	n := 0
	for _, t := range types.TypeNames() {
		if types.TypeHasSpecialization(t, name) {
			continue
		}
		if err := types.AddSpecialization(t, name); err != nil {
			return n, fmt.Errorf("failed to add %s to %s: %w", name, t, err)
		}
		n++
	}
	return n, nil
}

// TypeTable is an in-memory VehicleTypes, mapping type name to its specializations
type TypeTable struct {
	Specializations map[string]bool
	Types           map[string][]string
}

// HasSpecialization implements VehicleTypes
func (t *TypeTable) HasSpecialization(name string) bool {
	return t.Specializations[name]
}

// TypeNames implements VehicleTypes, sorted for a stable order
func (t *TypeTable) TypeNames() []string {
	names := make([]string, 0, len(t.Types))
	for k := range t.Types {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// TypeHasSpecialization implements VehicleTypes
func (t *TypeTable) TypeHasSpecialization(typeName string, name string) bool {
	for _, s := range t.Types[typeName] {
		if s == name {
			return true
		}
	}
	return false
}

// AddSpecialization implements VehicleTypes
func (t *TypeTable) AddSpecialization(typeName string, name string) error {
	specs, ok := t.Types[typeName]
	if !ok {
		return fmt.Errorf("unknown vehicle type %s", typeName)
	}
	t.Types[typeName] = append(specs, name)
	return nil
}
