package core

import "github.com/charmbracelet/log"

// ReconcileStats counts what a reconciliation pass did
type ReconcileStats struct {
	Visited   int // Combinations processed in this pass
	Rewritten int // Combinations whose path changed
	Linked    int // Combinations matched to a store item
	Skipped   int // Combinations already done in an earlier pass
}

// Reconcile resolves every pending combination path in the catalog and links it to the store item it references.
// Items are matched by sanitized path first, then by file name alone. Every visited combination is marked done
// whether or not it matched, so running the pass again changes nothing.
func Reconcile(cat *Catalog, r Resolver, logger *log.Logger) ReconcileStats {
	var stats ReconcileStats
	if cat == nil {
		return stats
	}
	for _, item := range cat.Items {
		for _, comb := range item.Combinations {
			if comb == nil {
				continue
			}
			if comb.Done {
				stats.Skipped++
				continue
			}
			stats.Visited++

			raw := comb.Path
			fixed := r.ResolveCombinationPath(raw)

			linked, ok := cat.FindByPath(fixed)
			if !ok {
				linked, ok = cat.FindByBasename(fixed)
			}

			if fixed != raw {
				comb.Path = fixed
				stats.Rewritten++
			}
			if ok {
				comb.Link = linked
				comb.LinkPath = linked.XMLFilename
				stats.Linked++
			} else if logger != nil {
				logger.Debug("no store item for combination", "item", item.XMLFilename, "path", fixed)
			}
			comb.Done = true
		}
	}
	return stats
}
