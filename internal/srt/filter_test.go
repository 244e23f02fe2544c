package srt

import "testing"

func TestIsMeaningful(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{text: "", want: false},
		{text: "   ", want: false},
		{text: "Hi", want: false},
		{text: "  Hi  ", want: false},
		{text: "Hi.", want: true},
		{text: "Hmm.", want: false},
		{text: "HMM.", want: false},
		{text: " hmm. ", want: false},
		{text: "Hmmmm.", want: true},
		{text: "Mmm.", want: false},
		{text: "Aaaa.", want: false},
		{text: "...", want: false},
		{text: "..", want: false},
		{text: "....", want: true},
		{text: "hmm", want: true},
		{text: "çok", want: true},
		{text: "né", want: false},
	}
	for _, tt := range tests {
		if got := IsMeaningful(tt.text); got != tt.want {
			t.Errorf("IsMeaningful(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}
