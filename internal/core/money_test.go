package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"1500.50", 150050, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"0", 0, false},
		{"0.00", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyDecimalString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{150050, "1500.50"},
		{-19050, "-190.50"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).DecimalString(); got != tc.want {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyFormatEuros(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{123456, "1.234,56 €"},
		{100, "1,00 €"},
		{-150050, "-1.500,50 €"},
		{123456789, "1.234.567,89 €"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).FormatEuros(); got != tc.want {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := Money{Cents: 200000}
	b := Money{Cents: 19050}
	if got := a.Sub(b); got.Cents != 180950 {
		t.Fatalf("sub=%d", got.Cents)
	}
	if got := a.Add(b); got.Cents != 219050 {
		t.Fatalf("add=%d", got.Cents)
	}
}
