package preview

import (
	"math/big"
	"testing"
)

func TestFormatNum(t *testing.T) {
	cases := map[int64]string{
		123:             "123",
		1230:            "1.23K",
		12300:           "12.3K",
		123000:          "123K",
		56_700_000:      "56.7M",
		56_700_000_000:  "56.7B",
	}
	for n, want := range cases {
		if got := FormatNum(big.NewInt(n)); got != want {
			t.Errorf("FormatNum(%d) = %q, want %q", n, got, want)
		}
	}
	if got := FormatNum(big.NewInt(56_700_000_000_000)); got != "56.7T" {
		t.Errorf("FormatNum(56.7T) = %q, want 56.7T", got)
	}
}

func TestFormatETA(t *testing.T) {
	if got := FormatETA(50.0, 60); got != "1 mins, 0 secs" {
		t.Errorf("FormatETA(50, 60) = %q, want %q", got, "1 mins, 0 secs")
	}
	if got := FormatETA(0.00001, 1); got != "115 days, 17 hours, 46 mins, 39 secs" {
		t.Errorf("FormatETA(0.00001, 1) = %q, want %q", got, "115 days, 17 hours, 46 mins, 39 secs")
	}
}

func TestFormatETAUnknown(t *testing.T) {
	if got := FormatETA(0, 10); got != "Unknown" {
		t.Errorf("FormatETA(0, 10) = %q, want Unknown", got)
	}
}
