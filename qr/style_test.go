package qr

import (
	"image/color"
	"testing"
)

func TestDefaultStyle(t *testing.T) {
	s := DefaultStyle()
	if s.Foreground != "#262626" || s.Background != "#FFFFFF" || s.ModuleSize != 8 || s.BorderWidth != 2 {
		t.Errorf("unexpected defaults: %+v", s)
	}
	if s.Normalize() != s {
		t.Error("defaults should already be normalized")
	}
}

func TestNormalize_Clamps(t *testing.T) {
	tests := []struct {
		module, border         int
		wantModule, wantBorder int
	}{
		{0, -1, MinModuleSize, MinBorderWidth},
		{4, 0, 5, 0},
		{5, 10, 5, 10},
		{20, 11, 20, 10},
		{21, 100, MaxModuleSize, MaxBorderWidth},
		{-50, 5, 5, 5},
	}

	for _, tt := range tests {
		got := Style{Foreground: "#000000", Background: "#FFFFFF", ModuleSize: tt.module, BorderWidth: tt.border}.Normalize()
		if got.ModuleSize != tt.wantModule {
			t.Errorf("module %d: expected %d, got %d", tt.module, tt.wantModule, got.ModuleSize)
		}
		if got.BorderWidth != tt.wantBorder {
			t.Errorf("border %d: expected %d, got %d", tt.border, tt.wantBorder, got.BorderWidth)
		}
	}
}

func TestNormalize_Colors(t *testing.T) {
	got := Style{Foreground: "ff0000", Background: "#0f0", ModuleSize: 8, BorderWidth: 2}.Normalize()
	if got.Foreground != "#FF0000" {
		t.Errorf("expected #FF0000, got %s", got.Foreground)
	}
	if got.Background != "#00FF00" {
		t.Errorf("expected #00FF00, got %s", got.Background)
	}

	got = Style{Foreground: "red", Background: "", ModuleSize: 8, BorderWidth: 2}.Normalize()
	if got.Foreground != DefaultForeground {
		t.Errorf("invalid foreground should fall back to %s, got %s", DefaultForeground, got.Foreground)
	}
	if got.Background != DefaultBackground {
		t.Errorf("empty background should fall back to %s, got %s", DefaultBackground, got.Background)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.RGBA
		wantErr bool
	}{
		{"#262626", color.RGBA{0x26, 0x26, 0x26, 0xff}, false},
		{"#abcdef", color.RGBA{0xab, 0xcd, 0xef, 0xff}, false},
		{"#FFF", color.RGBA{0xff, 0xff, 0xff, 0xff}, false},
		{" #000000 ", color.RGBA{0, 0, 0, 0xff}, false},
		{"#12345", color.RGBA{}, true},
		{"#GGGGGG", color.RGBA{}, true},
		{"0x1234", color.RGBA{}, true},
		{"", color.RGBA{}, true},
	}

	for _, tt := range tests {
		got, err := ParseHexColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.in, tt.want, got)
		}
	}
}
