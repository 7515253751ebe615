package core

import "testing"

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"red", ColorRed, false},
		{"Bright_Yellow", ColorBrightYellow, false},
		{" bright cyan ", ColorBrightCyan, false},
		{"grey", ColorGray, false},
		{"default", ColorDefault, false},
		{"purple", ColorDefault, true},
		{"", ColorDefault, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseColor(%q) = %v, %v; want %v, err %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	for c := ColorDefault; c <= ColorGray; c++ {
		got, err := ParseColor(c.String())
		if err != nil || got != c {
			t.Errorf("ParseColor(%q) = %v, %v", c.String(), got, err)
		}
	}
	if s := Color(200).String(); s != "Color(200)" {
		t.Errorf("out of range String() = %q", s)
	}
}
