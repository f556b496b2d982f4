package core

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Registry stores the installed mods, usually in mods.toml
type Registry struct {
	// Folder the mods were scanned from, stored in forward slash format
	ModsFolder string         `toml:"mods-folder,omitempty"`
	Mods       map[string]Mod `toml:"mods"`
	file       string
}

// NewRegistry creates an empty registry that will be written to file
func NewRegistry(file string) Registry {
	return Registry{Mods: make(map[string]Mod), file: file}
}

// LoadRegistry loads the registry from a TOML file
func LoadRegistry(file string) (Registry, error) {
	var reg Registry
	if _, err := toml.DecodeFile(file, &reg); err != nil {
		return Registry{}, err
	}
	if reg.Mods == nil {
		reg.Mods = make(map[string]Mod)
	}
	// The name is the table key, it isn't stored twice
	for k, v := range reg.Mods {
		v.name = k
		reg.Mods[k] = v
	}
	reg.file = file
	return reg, nil
}

// FindMod implements ModLookup
func (reg Registry) FindMod(name string) (Mod, bool) {
	mod, ok := reg.Mods[name]
	return mod, ok
}

// Names returns all registered mod names, sorted
func (reg Registry) Names() []string {
	names := make([]string, 0, len(reg.Mods))
	for k := range reg.Mods {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// AddMod adds or replaces a mod
func (reg *Registry) AddMod(name string, mod Mod) {
	if reg.Mods == nil {
		reg.Mods = make(map[string]Mod)
	}
	mod.name = name
	reg.Mods[name] = mod
}

// RemoveMod removes a mod, returning false if it wasn't registered
func (reg *Registry) RemoveMod(name string) bool {
	if _, ok := reg.Mods[name]; !ok {
		return false
	}
	delete(reg.Mods, name)
	return true
}

// File returns the path the registry is loaded from and written to
func (reg Registry) File() string {
	return reg.file
}

// Write saves the registry file
func (reg Registry) Write() error {
	if len(reg.file) == 0 {
		return errors.New("registry has no file to write to")
	}
	if err := os.MkdirAll(filepath.Dir(reg.file), 0755); err != nil {
		return err
	}
	f, err := os.Create(reg.file)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	// Disable indentation
	enc.Indent = ""
	return enc.Encode(reg)
}
