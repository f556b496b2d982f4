// Package hooks wraps the game's filename, XML string and store combination functions so that $moddir<Name>$/
// tokens are resolved before the game sees them.
package hooks

import (
	"sync"

	"github.com/fsmodding/moddir/core"
)

// FilenameFunc resolves a path relative to a base directory (the game's Utils.getFilename)
type FilenameFunc func(filename string, baseDir string) string

// XMLStringFunc reads a string from a loaded XML file (the game's getXMLString)
type XMLStringFunc func(x core.XMLAttributes, key string) (string, bool)

// ResolveCombinationsFunc links store combinations to store items (the game's StoreManager.resolveCombinations)
type ResolveCombinationsFunc func()

// Host is the set of game functions the hooks replace. Installing a hook swaps the field for a wrapper that
// delegates to the previous value. The host records which fields are wrapped, so every Integration sharing
// it wraps each function at most once.
type Host struct {
	GetFilename         FilenameFunc
	GetXMLString        XMLStringFunc
	ResolveCombinations ResolveCombinationsFunc

	Capabilities CapabilityRegistry
}

// Capability names, used as keys in the CapabilityRegistry
const (
	CapabilityFilename            = "Utils.getFilename"
	CapabilityXMLString           = "getXMLString"
	CapabilityResolveCombinations = "StoreManager.resolveCombinations"
)

// CapabilityRegistry records which host functions have been wrapped, so each is wrapped at most once
type CapabilityRegistry struct {
	mu        sync.Mutex
	installed map[string]bool
}

// Install runs install unless the capability is already marked installed, then marks it.
// It returns true if install ran.
func (c *CapabilityRegistry) Install(name string, install func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.installed[name] {
		return false
	}
	if c.installed == nil {
		c.installed = make(map[string]bool)
	}
	install()
	c.installed[name] = true
	return true
}

// Installed reports whether the capability has been wrapped
func (c *CapabilityRegistry) Installed(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.installed[name]
}
