package core

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/kylelemons/godebug/pretty"
)

type combinationState struct {
	Path     string
	LinkPath string
	Linked   bool
	Done     bool
}

func snapshot(cat *Catalog) []combinationState {
	var out []combinationState
	for _, item := range cat.Items {
		for _, comb := range item.Combinations {
			out = append(out, combinationState{
				Path:     comb.Path,
				LinkPath: comb.LinkPath,
				Linked:   comb.Link != nil,
				Done:     comb.Done,
			})
		}
	}
	return out
}

func newTestCatalog() (*Catalog, *StoreItem, *Combination) {
	combo := &StoreItem{Name: "Combo", XMLFilename: "$moddirBar$/combo.xml"}
	comb := &Combination{Path: "$moddirBar$/combo.xml"}
	tractor := &StoreItem{
		Name:         "Tractor",
		XMLFilename:  "/mods/Base/tractor.xml",
		Combinations: []*Combination{comb},
	}
	cat := NewCatalog("")
	cat.AddItem(combo)
	cat.AddItem(tractor)
	return cat, combo, comb
}

func TestReconcileLinksForeignCombination(t *testing.T) {
	cat, combo, comb := newTestCatalog()
	r := NewResolver(ModMap{"Bar": "/mods/Bar/"})

	stats := Reconcile(cat, r, log.New(io.Discard))

	if comb.Path != "/mods/Bar/combo.xml" {
		t.Errorf("expected path /mods/Bar/combo.xml, got %q", comb.Path)
	}
	if comb.Link != combo {
		t.Errorf("expected combination to link to %v, got %v", combo.Name, comb.Link)
	}
	if comb.LinkPath != combo.XMLFilename {
		t.Errorf("expected cached link path %q, got %q", combo.XMLFilename, comb.LinkPath)
	}
	if !comb.Done {
		t.Error("combination not marked done")
	}
	want := ReconcileStats{Visited: 1, Rewritten: 1, Linked: 1}
	if diff := pretty.Compare(stats, want); diff != "" {
		t.Errorf("unexpected stats (-got +want):\n%s", diff)
	}
}

func TestReconcileMatchesSanitizedPath(t *testing.T) {
	target := &StoreItem{XMLFilename: "/mods/Bar/combo.xml"}
	comb := &Combination{Path: "moddirBar$/combo.xml"}
	cat := NewCatalog("")
	cat.AddItem(&StoreItem{XMLFilename: "/mods/Other/combo.xml"})
	cat.AddItem(target)
	cat.AddItem(&StoreItem{XMLFilename: "/mods/Base/tractor.xml", Combinations: []*Combination{comb}})

	Reconcile(cat, NewResolver(ModMap{"Bar": "/mods/Bar/"}), nil)

	// The exact path wins over the earlier item with the same file name
	if comb.Link != target {
		t.Errorf("expected link to %s, got %v", target.XMLFilename, comb.Link)
	}
}

func TestReconcileNoMatch(t *testing.T) {
	comb := &Combination{Path: "vehicles//unknown.xml"}
	cat := NewCatalog("")
	cat.AddItem(&StoreItem{XMLFilename: "/mods/Base/tractor.xml", Combinations: []*Combination{comb}})

	stats := Reconcile(cat, NewResolver(ModMap{}), nil)

	if comb.Link != nil {
		t.Errorf("expected no link, got %v", comb.Link)
	}
	if !comb.Done {
		t.Error("unmatched combination must still be marked done")
	}
	if comb.Path != "vehicles/unknown.xml" {
		t.Errorf("expected sanitized path, got %q", comb.Path)
	}
	if stats.Linked != 0 || stats.Visited != 1 {
		t.Errorf("unexpected stats %+v", stats)
	}
}

func TestReconcileIdempotent(t *testing.T) {
	cat, _, _ := newTestCatalog()
	cat.Items[1].Combinations = append(cat.Items[1].Combinations,
		&Combination{Path: "$moddirGhost$/x.xml"},
		&Combination{Path: "$data/vehicles/trailer.xml"},
	)
	r := NewResolver(ModMap{"Bar": "/mods/Bar/"})

	Reconcile(cat, r, nil)
	first := snapshot(cat)

	// Done entries must not be recomputed, even if the registry changes
	r = NewResolver(ModMap{"Bar": "/elsewhere/Bar/", "Ghost": "/mods/Ghost/"})
	stats := Reconcile(cat, r, nil)
	second := snapshot(cat)

	if diff := pretty.Compare(second, first); diff != "" {
		t.Errorf("second pass changed state (-got +want):\n%s", diff)
	}
	if stats.Visited != 0 || stats.Skipped != 3 {
		t.Errorf("expected all combinations skipped, got %+v", stats)
	}
}

func TestReconcileNilCatalog(t *testing.T) {
	if stats := Reconcile(nil, NewResolver(ModMap{}), nil); stats != (ReconcileStats{}) {
		t.Errorf("expected empty stats, got %+v", stats)
	}
}
