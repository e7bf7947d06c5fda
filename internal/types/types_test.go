package types

import (
	"regexp"
	"testing"
)

func TestNewID(t *testing.T) {
	hex32 := regexp.MustCompile(`^[0-9a-f]{32}$`)
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID()
		if !hex32.MatchString(id) {
			t.Fatalf("id %q is not 32 hex chars", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestLanguageDisplayName(t *testing.T) {
	l := &Language{LangName: "English", NativeName: "english (legacy)"}
	if l.DisplayName() != "English" {
		t.Fatalf("DisplayName = %q", l.DisplayName())
	}
	legacy := &Language{NativeName: "Español"}
	if legacy.DisplayName() != "Español" {
		t.Fatalf("legacy DisplayName = %q", legacy.DisplayName())
	}
}

func TestPresetByID(t *testing.T) {
	preset, ok := PresetByID(PresetThumbnail)
	if !ok || !preset.Thumbnail || !preset.Supplementary {
		t.Fatalf("thumbnail preset = %+v, %v", preset, ok)
	}
	if _, ok := PresetByID("bogus"); ok {
		t.Fatalf("unknown preset should not resolve")
	}
}

func TestContentNodeIsLeaf(t *testing.T) {
	if (&ContentNode{Kind: KindTopic}).IsLeaf() {
		t.Fatalf("topics are not leaves")
	}
	if !(&ContentNode{Kind: KindExercise}).IsLeaf() {
		t.Fatalf("exercises are leaves")
	}
}
