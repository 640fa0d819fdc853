package sanitize

import (
	"testing"
	"time"
)

func TestSegment(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain", input: "sk", want: "sk"},
		{name: "uppercase folded", input: "SK", want: "sk"},
		{name: "spaces stripped", input: " databazy sk ", want: "databazysk"},
		{name: "diacritics stripped", input: "pekáreň", want: "pekre"},
		{name: "path traversal stripped", input: "../../etc", want: "etc"},
		{name: "underscores and hyphens kept", input: "cap_data-2026", want: "cap_data-2026"},
		{name: "nothing valid", input: "!!!", want: ""},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Segment(tt.input); got != tt.want {
				t.Errorf("Segment(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestShopKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain shop", input: "billa", want: "billa"},
		{name: "spaces collapse to underscore", input: "Coop Jednota", want: "coop_jednota"},
		{name: "dots kept", input: "tesco.sk", want: "tesco.sk"},
		{name: "leading and trailing runs trimmed", input: "  Lidl!  ", want: "lidl"},
		{name: "consecutive invalid chars collapse", input: "Kaufland & Co", want: "kaufland_co"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShopKey(tt.input); got != tt.want {
				t.Errorf("ShopKey(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFlyerFileName(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		shop string
		from string
		to   string
		want string
	}{
		{
			name: "full window",
			shop: "billa",
			from: "01.09.2026",
			to:   "07.09.2026",
			want: "billa_01.09-07.09.2026.json",
		},
		{
			name: "blank dates fall back to today",
			shop: "lidl",
			from: "",
			to:   "",
			want: "lidl_31.08-31.08.2026.json",
		},
		{
			name: "unparsable dates fall back to today",
			shop: "lidl",
			from: "zajtra",
			to:   "pozajtra",
			want: "lidl_31.08-31.08.2026.json",
		},
		{
			name: "blank shop falls back",
			shop: "",
			from: "01.09.2026",
			to:   "07.09.2026",
			want: "letak_01.09-07.09.2026.json",
		},
		{
			name: "messy shop cleaned",
			shop: "Coop Jednota",
			from: "01.09.2026",
			to:   "07.09.2026",
			want: "coop_jednota_01.09-07.09.2026.json",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FlyerFileName(tt.shop, tt.from, tt.to, now); got != tt.want {
				t.Errorf("FlyerFileName(%q, %q, %q) = %q, want %q", tt.shop, tt.from, tt.to, got, tt.want)
			}
		})
	}
}
