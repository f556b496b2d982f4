package core

import "strings"

// Mod stores what the game's mod manager knows about an installed mod. This is written to the registry file.
type Mod struct {
	name      string // Registry key, the mod's folder or archive name without extension
	Directory string `toml:"directory"`
	Title     string `toml:"title,omitempty"`
	Version   string `toml:"version,omitempty"`
	// Path to the mod archive or folder the directory was taken from
	File string `toml:"file,omitempty"`
}

// ModLookup finds a mod by name. The game's mod manager and Registry both satisfy it.
type ModLookup interface {
	FindMod(name string) (Mod, bool)
}

// ModLister is implemented by lookups that can also enumerate their mod names, for suggestions.
type ModLister interface {
	ModLookup
	Names() []string
}

// Name returns the name the mod is registered under
func (m Mod) Name() string {
	return m.name
}

// HasDirectory reports whether the mod has a usable install directory
func (m Mod) HasDirectory() bool {
	return len(strings.TrimSpace(m.Directory)) > 0
}

// ModMap is an in-memory ModLookup, mostly useful for embedding and tests.
type ModMap map[string]string

// FindMod implements ModLookup
func (m ModMap) FindMod(name string) (Mod, bool) {
	dir, ok := m[name]
	if !ok {
		return Mod{}, false
	}
	return Mod{name: name, Directory: dir}, true
}

// Names implements ModLister
func (m ModMap) Names() []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	return names
}
