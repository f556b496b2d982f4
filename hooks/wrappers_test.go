package hooks

import (
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/fsmodding/moddir/core"
)

var testResolver = core.NewResolver(core.ModMap{"Foo": "/mods/Foo/"})

func TestWrapFilename(t *testing.T) {
	var seen []string
	orig := func(filename string, baseDir string) string {
		seen = append(seen, filename)
		return baseDir + filename
	}
	wrapped := WrapFilename(orig, testResolver, log.New(io.Discard))

	testCases := []struct {
		input    string
		expected string
	}{
		{"moddirFoo$/x.xml", "/mods/Foo/x.xml"},
		{"$moddirFoo$/x.xml", "/mods/Foo/x.xml"},
		{"textures/a.dds", "textures/a.dds"},
		{"$data/vehicles/x.xml", "$data/vehicles/x.xml"},
		{"$moddirGhost$/x.xml", "$moddirGhost$/x.xml"},
	}
	for i, tc := range testCases {
		wrapped(tc.input, "base/")
		if seen[i] != tc.expected {
			t.Errorf("input %q: original received %q, expected %q", tc.input, seen[i], tc.expected)
		}
	}
	if result := wrapped("textures/a.dds", "base/"); result != "base/textures/a.dds" {
		t.Errorf("original result not returned, got %q", result)
	}
}

const hookVehicleXML = `<vehicle>
    <base><filename>$moddirFoo$/model.i3d</filename></base>
    <combinations>
        <combination xmlFilename="$moddirFoo$/combo.xml"/>
        <combination xmlFilename="$moddirGhost$/combo.xml"/>
        <combination xmlFilename="vehicles/trailer.xml"/>
    </combinations>
</vehicle>`

func TestWrapXMLString(t *testing.T) {
	x, err := core.ParseXML(strings.NewReader(hookVehicleXML))
	if err != nil {
		t.Fatal(err)
	}
	wrapped := WrapXMLString(func(x core.XMLAttributes, key string) (string, bool) {
		return x.GetString(key)
	}, testResolver, nil)

	testCases := []struct {
		key      string
		expected string
	}{
		{"vehicle.combinations.combination(0)#xmlFilename", "/mods/Foo/combo.xml"},
		{"vehicle.combinations.combination(1)#xmlFilename", "$moddirGhost$/combo.xml"},
		{"vehicle.combinations.combination(2)#xmlFilename", "vehicles/trailer.xml"},
		// Only combination keys are touched
		{"vehicle.base.filename", "$moddirFoo$/model.i3d"},
	}
	for _, tc := range testCases {
		value, ok := wrapped(x, tc.key)
		if !ok || value != tc.expected {
			t.Errorf("key %q: expected %q, got (%q, %v)", tc.key, tc.expected, value, ok)
		}
	}

	// Reading must not modify the document
	if raw, _ := x.GetString("vehicle.combinations.combination(0)#xmlFilename"); raw != "$moddirFoo$/combo.xml" {
		t.Errorf("document modified, got %q", raw)
	}
	if _, ok := wrapped(x, "vehicle.combinations.combination(9)#xmlFilename"); ok {
		t.Error("missing key reported as present")
	}
}

func TestWrapResolveCombinations(t *testing.T) {
	comb := &core.Combination{Path: "$moddirFoo$/combo.xml"}
	cat := core.NewCatalog("")
	cat.AddItem(&core.StoreItem{XMLFilename: "/mods/Foo/combo.xml"})
	cat.AddItem(&core.StoreItem{XMLFilename: "/mods/Base/tractor.xml", Combinations: []*core.Combination{comb}})

	called := false
	wrapped := WrapResolveCombinations(func() {
		called = true
		if !comb.Done {
			t.Error("original called before reconciliation")
		}
	}, func() *core.Catalog { return cat }, testResolver, nil)
	wrapped()

	if !called {
		t.Error("original not called")
	}
	if comb.Link != cat.Items[0] {
		t.Errorf("combination not linked, got %v", comb.Link)
	}
}
