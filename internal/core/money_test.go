package core

import (
	"errors"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		err error
	}{
		{"1", "1", nil},
		{"12.5", "12.5", nil},
		{"12,50", "12.5", nil},
		{" 2.50 ", "2.5", nil},
		{"0", "0", nil},
		{"0.001", "0.001", nil},
		{"-1", "", ErrNegativeAmount},
		{"abc", "", ErrInvalidAmount},
		{"1.2.3", "", ErrInvalidAmount},
		{"", "", ErrInvalidAmount},
		{"1,000", "", ErrInvalidAmount},
		{"1.000,50", "", ErrInvalidAmount},
		{"1,000.50", "", ErrInvalidAmount},
		{"1,0005", "1.0005", nil},
		{"1e20", "100000000000000000000", nil},
		{"1e21", "", ErrInvalidAmount},
		{"1e-20", "0.00000000000000000001", nil},
		{"1e-2000000000", "", ErrInvalidAmount},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.err != nil {
			if !errors.Is(err, tc.err) {
				t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
			}
			continue
		}
		if err != nil || got.String() != tc.out {
			t.Fatalf("%q expected %s, got %s (err=%v)", tc.in, tc.out, got, err)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	for in, want := range map[string]string{"12.5": "$12.50", "0": "$0.00", "3.456": "$3.46"} {
		d, err := ParseAmount(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if got := FormatMoney(d); got != want {
			t.Fatalf("%q expected %s, got %s", in, want, got)
		}
	}
}
