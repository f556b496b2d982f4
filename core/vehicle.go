package core

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// CombinationKey returns the XML key of the i-th combination entry of a vehicle file
func CombinationKey(i int) string {
	return fmt.Sprintf("vehicle.combinations.combination(%d)", i)
}

// RewriteResult lists what happened to each combination entry, by index
type RewriteResult struct {
	Rewritten  []int
	Skipped    []int
	Unresolved []int
}

// RewriteVehicleCombinations expands $moddir<Name>$/ tokens in the xmlFilename attribute of every combination in a
// vehicle file, writing the absolute path back in place. Entries are walked from index 0 until one is missing.
// currentModDir is the directory of the mod the vehicle belongs to; it is only used when the referenced mod is
// installed but has no directory. Unresolvable entries are left untouched and logged.
func RewriteVehicleCombinations(x XMLAttributes, mods ModLookup, currentModDir string, logger *log.Logger) RewriteResult {
	var res RewriteResult
	r := NewResolver(mods)
	for i := 0; ; i++ {
		key := CombinationKey(i)
		if !x.HasProperty(key) {
			break
		}
		attrKey := key + "#xmlFilename"
		value, ok := x.GetString(attrKey)
		if !ok || len(value) == 0 || IsDataPath(value) || IsSelfModPath(value) {
			res.Skipped = append(res.Skipped, i)
			continue
		}
		tok, ok := ParseToken(value, true)
		if !ok {
			res.Skipped = append(res.Skipped, i)
			continue
		}

		fixed, err := r.ResolveStrict(value)
		if errors.Is(err, ErrNoDirectory) {
			// Last resort: look for the file inside the vehicle's own mod
			fixed, err = "", fmt.Errorf("%w and no current mod directory", err)
			if len(currentModDir) > 0 {
				fixed, err = JoinModPath(currentModDir, tok.Path)
			}
			if err == nil && logger != nil {
				logger.Warn("mod has no directory, using current mod directory", "mod", tok.Mod, "path", fixed)
			}
		}
		if err != nil {
			if logger != nil {
				logger.Warn("could not resolve combination", "key", attrKey, "value", value, "error", err)
			}
			res.Unresolved = append(res.Unresolved, i)
			continue
		}

		if err := x.SetString(attrKey, fixed); err != nil {
			if logger != nil {
				logger.Warn("could not write combination", "key", attrKey, "error", err)
			}
			res.Unresolved = append(res.Unresolved, i)
			continue
		}
		if logger != nil {
			logger.Debug("rewrote combination", "key", attrKey, "from", value, "to", fixed)
		}
		res.Rewritten = append(res.Rewritten, i)
	}
	return res
}
