package catalog

import (
	"image/color"
	"testing"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
		ok   bool
	}{
		{"#8fa3b8", color.RGBA{0x8f, 0xa3, 0xb8, 0xff}, true},
		{"#ff000080", color.RGBA{0xff, 0, 0, 0x80}, true},
		{"8fa3b8", color.RGBA{}, false},
		{"#12345", color.RGBA{}, false},
		{"#zzzzzz", color.RGBA{}, false},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err == nil) != tt.ok {
			t.Errorf("%q: expected ok=%v, got err %v", tt.in, tt.ok, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestBuiltinColorsParse(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, tpl := range c.All() {
		if _, err := tpl.Visual.RGBA(); err != nil {
			t.Errorf("%s: %v", tpl.ID, err)
		}
	}
}
