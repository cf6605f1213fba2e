package palette

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/scripts-richard/huectl/internal/color"
)

func TestLoad_Missing(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "colors.json"))
	if err != nil {
		t.Fatalf("Load of missing file: %v", err)
	}
	if len(p) != 0 {
		t.Errorf("missing file should yield empty palette, got %v", p)
	}
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("malformed palette should be a hard error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "colors.json")

	p := Palette{
		"red":    {R: 255},
		"teal":   {G: 128, B: 128},
		"purple": {R: 100, G: 10, B: 100},
	}
	if err := p.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded, p) {
		t.Errorf("round trip gave %v, want %v", loaded, p)
	}

	want := []string{"purple", "red", "teal"}
	if !reflect.DeepEqual(loaded.Names(), want) {
		t.Errorf("Names() = %v, want %v", loaded.Names(), want)
	}
}

func TestResolve(t *testing.T) {
	p := Palette{"red": {R: 255}}

	c, err := p.Resolve("red")
	if err != nil || c != (color.RGB{R: 255}) {
		t.Errorf("Resolve(red) = (%v, %v)", c, err)
	}

	c, err = p.Resolve("#640a64")
	if err != nil || c != (color.RGB{R: 100, G: 10, B: 100}) {
		t.Errorf("Resolve(#640a64) = (%v, %v)", c, err)
	}

	if _, err := p.Resolve("chartreuse"); err == nil {
		t.Error("unknown name should fail")
	}
}

func TestParseHex_Invalid(t *testing.T) {
	for _, s := range []string{"", "#fff", "#gggggg", "123456x"} {
		if _, err := ParseHex(s); err == nil {
			t.Errorf("ParseHex(%q) should fail", s)
		}
	}
}
