package durafmt

import "testing"

func TestSeconds(t *testing.T) {
	tests := []struct {
		secs   float64
		expect string
	}{
		{0, "00:00"},
		{-5, "00:00"},
		{9.6, "00:09"},
		{75, "01:15"},
		{3599, "59:59"},
		{3600, "01:00:00"},
		{3725.2, "01:02:05"},
	}

	for _, test := range tests {
		if got := Seconds(test.secs); got != test.expect {
			t.Errorf("Seconds(%g) = %q, want %q", test.secs, got, test.expect)
		}
	}
}
