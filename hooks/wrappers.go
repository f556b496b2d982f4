package hooks

import (
	"errors"

	"github.com/charmbracelet/log"
	"github.com/dlclark/regexp2"
	"github.com/fsmodding/moddir/core"
)

var combinationFilenameKey = regexp2.MustCompile(`^vehicle\.combinations\.combination\(\d+\)#xmlFilename$`, regexp2.None)

// WrapFilename returns a FilenameFunc that expands loose $moddir<Name>$/ tokens before calling orig.
// The function is called for almost every path the game loads, so anything that isn't a resolvable token is
// passed through unchanged.
func WrapFilename(orig FilenameFunc, r core.Resolver, logger *log.Logger) FilenameFunc {
	return func(filename string, baseDir string) string {
		resolved, err := r.ResolveLoose(filename)
		if err == nil {
			filename = resolved
		} else {
			warnUnresolved(logger, filename, err)
		}
		if orig == nil {
			return filename
		}
		return orig(filename, baseDir)
	}
}

// WrapXMLString returns an XMLStringFunc that resolves combination xmlFilename values after orig reads them
func WrapXMLString(orig XMLStringFunc, r core.Resolver, logger *log.Logger) XMLStringFunc {
	return func(x core.XMLAttributes, key string) (string, bool) {
		var value string
		var ok bool
		if orig != nil {
			value, ok = orig(x, key)
		} else if x != nil {
			value, ok = x.GetString(key)
		}
		if !ok || len(value) == 0 {
			return value, ok
		}
		if match, err := combinationFilenameKey.MatchString(key); err != nil || !match {
			return value, ok
		}
		resolved, err := r.ResolveLoose(value)
		if err != nil {
			warnUnresolved(logger, value, err)
			return value, ok
		}
		if resolved != value && logger != nil {
			logger.Debug("resolved combination", "key", key, "from", value, "to", resolved)
		}
		return resolved, ok
	}
}

// WrapResolveCombinations returns a ResolveCombinationsFunc that reconciles the catalog before calling orig
func WrapResolveCombinations(orig ResolveCombinationsFunc, catalog func() *core.Catalog, r core.Resolver, logger *log.Logger) ResolveCombinationsFunc {
	return func() {
		if catalog != nil {
			stats := core.Reconcile(catalog(), r, logger)
			if logger != nil && stats.Visited > 0 {
				logger.Debug("reconciled store combinations", "visited", stats.Visited, "linked", stats.Linked)
			}
		}
		if orig != nil {
			orig()
		}
	}
}

// Only tokens that name a mod are worth a warning; ordinary paths are expected to fall through
func warnUnresolved(logger *log.Logger, value string, err error) {
	if logger == nil || errors.Is(err, core.ErrNotToken) {
		return
	}
	logger.Warn("could not resolve mod directory token", "value", value, "error", err)
}
