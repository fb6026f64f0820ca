package voicetrack

import "testing"

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{0, "0.00초"},
		{5.5, "5.50초"},
		{59.999, "60.00초"},
		{60, "1분 0.00초"},
		{65, "1분 5.00초"},
		{3599, "59분 59.00초"},
		{3600, "1시간 0분 0.00초"},
		{3725, "1시간 2분 5.00초"},
		{7384.5, "2시간 3분 4.50초"},
		{-1, "0.00초"},
	}
	for _, tc := range cases {
		if got := FormatDuration(tc.seconds); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}
