package core

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testVehicleXML = `<?xml version="1.0" encoding="utf-8" standalone="no"?>
<vehicle type="tractor">
    <storeData>
        <name>Test Tractor</name>
    </storeData>
    <combinations>
        <combination xmlFilename="$moddirBar$/combo.xml"/>
        <combination xmlFilename="$data/vehicles/trailer.xml"/>
    </combinations>
</vehicle>
`

func parseTestXML(t *testing.T, doc string) *XMLFile {
	t.Helper()
	x, err := ParseXML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("failed to parse xml: %v", err)
	}
	return x
}

func TestXMLFileGetString(t *testing.T) {
	x := parseTestXML(t, testVehicleXML)

	testCases := []struct {
		key      string
		expected string
		ok       bool
	}{
		{"vehicle#type", "tractor", true},
		{"vehicle.storeData.name", "Test Tractor", true},
		{"vehicle.combinations.combination#xmlFilename", "$moddirBar$/combo.xml", true},
		{"vehicle.combinations.combination(0)#xmlFilename", "$moddirBar$/combo.xml", true},
		{"vehicle.combinations.combination(1)#xmlFilename", "$data/vehicles/trailer.xml", true},
		{"vehicle.combinations.combination(2)#xmlFilename", "", false},
		{"vehicle.combinations.combination(0)#missing", "", false},
		{"placeable.storeData.name", "", false},
		{"vehicle.combinations.combination(x)#xmlFilename", "", false},
	}

	for _, tc := range testCases {
		value, ok := x.GetString(tc.key)
		if ok != tc.ok || value != tc.expected {
			t.Errorf("key %q: expected (%q, %v), got (%q, %v)", tc.key, tc.expected, tc.ok, value, ok)
		}
	}
}

func TestXMLFileHasProperty(t *testing.T) {
	x := parseTestXML(t, testVehicleXML)

	if !x.HasProperty(CombinationKey(1)) {
		t.Error("combination(1) should exist")
	}
	if x.HasProperty(CombinationKey(2)) {
		t.Error("combination(2) should not exist")
	}
	if !x.HasProperty(CombinationKey(0) + "#xmlFilename") {
		t.Error("combination(0)#xmlFilename should exist")
	}
	if x.HasProperty(CombinationKey(0) + "#other") {
		t.Error("combination(0)#other should not exist")
	}
}

func TestXMLFileSetStringRoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "tractor.xml")
	if err := os.WriteFile(file, []byte(testVehicleXML), 0644); err != nil {
		t.Fatal(err)
	}
	x, err := LoadXMLFile(file)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}

	key := CombinationKey(0) + "#xmlFilename"
	if err := x.SetString(key, "/mods/Bar/combo.xml"); err != nil {
		t.Fatalf("failed to set: %v", err)
	}
	if err := x.SetString(CombinationKey(1)+"#note", "added"); err != nil {
		t.Fatalf("failed to add attribute: %v", err)
	}
	if err := x.Save(); err != nil {
		t.Fatalf("failed to save: %v", err)
	}

	reloaded, err := LoadXMLFile(file)
	if err != nil {
		t.Fatalf("failed to reload: %v", err)
	}
	if value, _ := reloaded.GetString(key); value != "/mods/Bar/combo.xml" {
		t.Errorf("expected rewritten value, got %q", value)
	}
	if value, _ := reloaded.GetString(CombinationKey(1) + "#note"); value != "added" {
		t.Errorf("expected added attribute, got %q", value)
	}
	if value, _ := reloaded.GetString("vehicle.storeData.name"); value != "Test Tractor" {
		t.Errorf("unrelated content lost, got %q", value)
	}
}

func TestXMLFileSetStringMissingElement(t *testing.T) {
	x := parseTestXML(t, testVehicleXML)
	err := x.SetString(CombinationKey(5)+"#xmlFilename", "a.xml")
	if !errors.Is(err, ErrNoElement) {
		t.Errorf("expected ErrNoElement, got %v", err)
	}
}

func TestXMLFileWriteTo(t *testing.T) {
	x := parseTestXML(t, testVehicleXML)
	var buf bytes.Buffer
	n, err := x.WriteTo(&buf)
	if err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("reported %d bytes, wrote %d", n, buf.Len())
	}
	if !strings.HasPrefix(buf.String(), "<?xml") {
		t.Error("missing xml header")
	}
}
