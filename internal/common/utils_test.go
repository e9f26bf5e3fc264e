package common

import "testing"

func TestHasAny(t *testing.T) {
	tests := []struct {
		s    string
		subs []string
		want bool
	}{
		{"north columbia", []string{"monashee", "north columbia"}, true},
		{"sea to sky", []string{"monashee", "north columbia"}, false},
		{"monashee west", []string{"monashee"}, true},
		{"anything", nil, false},
		{"", []string{""}, true},
	}
	for _, tt := range tests {
		if got := HasAny(tt.s, tt.subs...); got != tt.want {
			t.Errorf("HasAny(%q, %v) = %v, want %v", tt.s, tt.subs, got, tt.want)
		}
	}
}
