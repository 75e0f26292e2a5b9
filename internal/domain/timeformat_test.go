package domain

import "testing"

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name    string
		seconds float64
		want    string
	}{
		{name: "zero", seconds: 0, want: "0:00"},
		{name: "seconds only", seconds: 5, want: "0:05"},
		{name: "one minute five", seconds: 65, want: "1:05"},
		{name: "over an hour", seconds: 3665, want: "1:01:05"},
		{name: "exact hour", seconds: 3600, want: "1:00:00"},
		{name: "fraction floors", seconds: 59.9, want: "0:59"},
		{name: "ten hours", seconds: 36125, want: "10:02:05"},
		{name: "negative clamps", seconds: -3, want: "0:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTime(tt.seconds); got != tt.want {
				t.Errorf("FormatTime(%v) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}
