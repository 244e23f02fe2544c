package language

import "testing"

func TestToISO2(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"eng", "en"},
		{"EN-us", "en"},
		{" tur ", "tr"},
		{"tr", "tr"},
		{"deu", "de"},
		{"", ""},
		{"und", ""},
		{"not a language", ""},
	}
	for _, tt := range tests {
		if got := ToISO2(tt.in); got != tt.want {
			t.Errorf("ToISO2(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatches(t *testing.T) {
	if !Matches("eng", "en") {
		t.Fatal("expected eng to match en")
	}
	if Matches("eng", "tur") {
		t.Fatal("did not expect eng to match tur")
	}
	if Matches("", "") {
		t.Fatal("empty codes should not match")
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName("tr"); got != "Turkish" {
		t.Fatalf("DisplayName(tr) = %q", got)
	}
	if got := DisplayName("??"); got != "??" {
		t.Fatalf("DisplayName(??) = %q", got)
	}
}
