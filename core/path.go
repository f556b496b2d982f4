package core

import (
	"path"
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
)

var duplicateSlashes = regexp.MustCompile(`/{2,}`)

// Well-formed path forms understood by the game. Anything else is treated as a plain path.
var (
	dataPathExpr    = regexp2.MustCompile(`^\$data/`, regexp2.None)
	selfModPathExpr = regexp2.MustCompile(`^\$moddir\$/`, regexp2.None)
	modDirPathExpr  = regexp2.MustCompile(`^\$moddir[A-Za-z0-9_-]+\$/`, regexp2.None)
)

// Normalize converts backslashes to forward slashes and collapses runs of slashes into one.
// Normalize(Normalize(p)) == Normalize(p) for every p.
func Normalize(p string) string {
	if len(p) == 0 {
		return p
	}
	p = strings.ReplaceAll(p, "\\", "/")
	return duplicateSlashes.ReplaceAllString(p, "/")
}

// Sanitize normalizes a path that is about to be compared against store paths.
// Paths that are not one of the well-formed $data/, $moddir$/ or $moddir<Name>$/ forms have every
// literal "$" removed first, which repairs references such as "ModName$/file.xml".
func Sanitize(p string) string {
	if !IsDataPath(p) && !IsSelfModPath(p) && !matches(modDirPathExpr, p) {
		p = strings.ReplaceAll(p, "$", "")
	}
	return Normalize(p)
}

// IsDataPath reports whether p references the game's built-in data folder ($data/...)
func IsDataPath(p string) bool {
	return matches(dataPathExpr, p)
}

// IsSelfModPath reports whether p references the mod it is shipped in ($moddir$/...)
func IsSelfModPath(p string) bool {
	return matches(selfModPathExpr, p)
}

// Basename returns the last element of a game path, accepting either slash direction.
func Basename(p string) string {
	p = Normalize(p)
	if len(p) == 0 {
		return ""
	}
	return path.Base(p)
}

func matches(expr *regexp2.Regexp, s string) bool {
	ok, err := expr.MatchString(s)
	return err == nil && ok
}
