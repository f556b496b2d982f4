package cmdshared

import (
	"errors"
	"fmt"

	"github.com/fsmodding/moddir/core"
)

// PrintResolveError explains why a token couldn't be resolved
func PrintResolveError(token string, err error) {
	var notFound *core.ModNotFoundError
	switch {
	case errors.Is(err, core.ErrNotToken):
		fmt.Printf("%q is not a $moddir<Name>$/ reference\n", token)
	case errors.As(err, &notFound):
		fmt.Printf("Mod %s is not installed\n", notFound.Name)
		for _, s := range notFound.Suggestions {
			fmt.Printf("  did you mean %s?\n", s)
		}
	default:
		fmt.Printf("Failed to resolve %s: %v\n", token, err)
	}
}
