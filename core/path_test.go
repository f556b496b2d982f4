package core

import "testing"

func TestNormalize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"vehicles/tractor.xml", "vehicles/tractor.xml"},
		{"a//\\b", "a/b"},
		{"C:\\mods\\FS22_Bar\\combo.xml", "C:/mods/FS22_Bar/combo.xml"},
		{"/mods//Bar///x.xml", "/mods/Bar/x.xml"},
		{"$moddirBar$/combo.xml", "$moddirBar$/combo.xml"},
	}

	for _, tc := range testCases {
		result := Normalize(tc.input)
		if result != tc.expected {
			t.Errorf("Normalize(%q): expected %q, got %q", tc.input, tc.expected, result)
		}
		if again := Normalize(result); again != result {
			t.Errorf("Normalize is not idempotent for %q: %q then %q", tc.input, result, again)
		}
	}
}

func TestSanitize(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"ModName$/file.xml", "ModName/file.xml"},
		{"vehicles//foo.xml", "vehicles/foo.xml"},
		{"$data/vehicles/x.xml", "$data/vehicles/x.xml"},
		{"$moddir$/x.xml", "$moddir$/x.xml"},
		{"$moddirBar$//combo.xml", "$moddirBar$/combo.xml"},
		{"moddirBar$/combo.xml", "moddirBar/combo.xml"},
	}

	for _, tc := range testCases {
		if result := Sanitize(tc.input); result != tc.expected {
			t.Errorf("Sanitize(%q): expected %q, got %q", tc.input, tc.expected, result)
		}
	}
}

func TestBuiltinForms(t *testing.T) {
	if !IsDataPath("$data/vehicles/x.xml") {
		t.Error("$data/ path not recognised")
	}
	if IsDataPath("data/vehicles/x.xml") {
		t.Error("path without $ recognised as data path")
	}
	if !IsSelfModPath("$moddir$/x.xml") {
		t.Error("$moddir$/ path not recognised")
	}
	if IsSelfModPath("$moddirBar$/x.xml") {
		t.Error("foreign mod path recognised as self mod path")
	}
}

func TestBasename(t *testing.T) {
	if b := Basename("$moddirBar$/sub\\combo.xml"); b != "combo.xml" {
		t.Errorf("expected combo.xml, got %q", b)
	}
	if b := Basename(""); b != "" {
		t.Errorf("expected empty basename, got %q", b)
	}
}
