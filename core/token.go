package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dlclark/regexp2"
	"github.com/sahilm/fuzzy"
)

// The foreign mod token: $moddir<ModName>$/<rest>. The loose form tolerates a missing leading "$".
var (
	strictTokenExpr = regexp2.MustCompile(`^\$moddir([A-Za-z0-9_-]+)\$/(.+)$`, regexp2.Singleline)
	looseTokenExpr  = regexp2.MustCompile(`^\$?moddir([A-Za-z0-9_-]+)\$/(.+)$`, regexp2.Singleline)
)

var (
	// ErrNotToken is returned when a path isn't a $moddir<Name>$/ reference at all
	ErrNotToken = errors.New("not a mod directory token")
	// ErrModNotFound is returned when the referenced mod isn't installed
	ErrModNotFound = errors.New("mod not found")
	// ErrNoDirectory is returned when the referenced mod is installed but has no directory
	ErrNoDirectory = errors.New("mod has no directory")
	// ErrPathEscape is returned when the referenced path climbs out of the mod directory
	ErrPathEscape = errors.New("path escapes mod directory")
)

// ModNotFoundError carries the missing mod name and any similarly named installed mods
type ModNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *ModNotFoundError) Error() string {
	if len(e.Suggestions) > 0 {
		return fmt.Sprintf("mod %q not found (did you mean %s?)", e.Name, strings.Join(e.Suggestions, ", "))
	}
	return fmt.Sprintf("mod %q not found", e.Name)
}

func (e *ModNotFoundError) Unwrap() error {
	return ErrModNotFound
}

// Token is a parsed $moddir<Mod>$/<Path> reference
type Token struct {
	Mod  string
	Path string
}

// ParseToken matches a path against the token pattern. With strict set the leading "$" is required.
func ParseToken(s string, strict bool) (Token, bool) {
	expr := looseTokenExpr
	if strict {
		expr = strictTokenExpr
	}
	m, err := expr.FindStringMatch(s)
	if err != nil || m == nil {
		return Token{}, false
	}
	return Token{
		Mod:  m.GroupByNumber(1).String(),
		Path: m.GroupByNumber(2).String(),
	}, true
}

// Resolver expands mod directory tokens using a mod lookup
type Resolver struct {
	Mods ModLookup
}

// NewResolver creates a Resolver for the given mods
func NewResolver(mods ModLookup) Resolver {
	return Resolver{Mods: mods}
}

// ResolveStrict expands "$moddir<Name>$/<path>" into an absolute path
func (r Resolver) ResolveStrict(token string) (string, error) {
	return r.resolve(token, true)
}

// ResolveLoose expands "$moddir<Name>$/<path>" or "moddir<Name>$/<path>" into an absolute path
func (r Resolver) ResolveLoose(token string) (string, error) {
	return r.resolve(token, false)
}

func (r Resolver) resolve(s string, strict bool) (string, error) {
	tok, ok := ParseToken(s, strict)
	if !ok {
		return "", ErrNotToken
	}
	mod, err := r.lookup(tok.Mod)
	if err != nil {
		return "", err
	}
	if !mod.HasDirectory() {
		return "", fmt.Errorf("%w: %s", ErrNoDirectory, tok.Mod)
	}
	return JoinModPath(mod.Directory, tok.Path)
}

func (r Resolver) lookup(name string) (Mod, error) {
	if r.Mods == nil {
		return Mod{}, &ModNotFoundError{Name: name}
	}
	mod, ok := r.Mods.FindMod(name)
	if !ok {
		return Mod{}, &ModNotFoundError{Name: name, Suggestions: r.suggest(name)}
	}
	return mod, nil
}

// suggest returns up to three installed mod names that fuzzy match name
func (r Resolver) suggest(name string) []string {
	lister, ok := r.Mods.(ModLister)
	if !ok {
		return nil
	}
	names := lister.Names()
	found := fuzzy.Find(name, names)
	// Mod names are often the wanted name with a prefix; match the other way round too
	if len(found) == 0 {
		for _, n := range names {
			if len(fuzzy.Find(n, []string{name})) > 0 {
				found = append(found, fuzzy.Match{Str: n})
			}
		}
	}
	var out []string
	for _, m := range found {
		if len(out) == 3 {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// ResolveCombinationPath resolves a store combination reference. Strict tokens are tried first, then loose
// ones; anything else is sanitized and returned as is, so a value is always produced.
func (r Resolver) ResolveCombinationPath(raw string) string {
	if fixed, err := r.ResolveStrict(raw); err == nil {
		return fixed
	}
	if fixed, err := r.ResolveLoose(raw); err == nil {
		return fixed
	}
	return Sanitize(raw)
}

// JoinModPath joins a mod directory and a path inside it. Paths containing ".." segments are rejected.
func JoinModPath(dir string, rel string) (string, error) {
	rel = strings.TrimLeft(Normalize(rel), "/")
	for _, seg := range strings.Split(rel, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %s", ErrPathEscape, rel)
		}
	}
	return Normalize(dir + "/" + rel), nil
}
