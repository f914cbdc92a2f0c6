//-------------------------------------------------------------------------
//
// FlexiMart Data Platform
//
// Copyright (c) 2025 - 2026, FlexiMart
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package etl

import (
	"testing"
	"time"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bare ten digits", "9876543210", "+91-9876543210"},
		{"already standardized", "+91-9988776655", "+91-9988776655"},
		{"leading zero trunk prefix", "09988112233", "+91-9988112233"},
		{"country code no dash", "+919876501234", "+91-9876501234"},
		{"spaces and dashes", "98765 432 10", "+91-9876543210"},
		{"too short", "98765", ""},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"letters only", "not a phone", ""},
		{"overlong keeps last ten", "12345678901234", "+91-5678901234"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input)
			if got != tt.want {
				t.Errorf("NormalizePhone(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFlexDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"iso", "2024-01-15", "2024-01-15", true},
		{"slash ambiguous defaults month first", "04/05/2024", "2024-04-05", true},
		{"slash day first when first part over 12", "13/05/2024", "2024-05-13", true},
		{"dash month first when second part over 12", "05-13-2024", "2024-05-13", true},
		{"slash month first when second part over 12", "01/25/2024", "2024-01-25", true},
		{"year first with slashes", "2024/3/7", "2024-03-07", true},
		{"empty", "", "", false},
		{"garbage", "not-a-date", "", false},
		{"invalid calendar day", "31/04/2024", "", false},
		{"invalid iso day", "2024-02-30", "", false},
		{"two parts only", "05/2024", "", false},
		{"no delimiter", "20240115", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFlexDate(tt.input)
			if ok != tt.ok {
				t.Fatalf("ParseFlexDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseFlexDate(%q) = %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseFlexDate(%q) location = %v, want UTC", tt.input, got.Location())
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input string
		want  Category
	}{
		{"Electronics", CategoryElectronics},
		{"electronics", CategoryElectronics},
		{"ELECTRONIC", CategoryElectronics},
		{"  Fashion  ", CategoryFashion},
		{"apparel", CategoryFashion},
		{"Groceries", CategoryGroceries},
		{"grocery", CategoryGroceries},
		{"Toys", CategoryUnknown},
		{"", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := NormalizeCategory(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCategoryString(t *testing.T) {
	tests := []struct {
		cat  Category
		want string
	}{
		{CategoryElectronics, "Electronics"},
		{CategoryFashion, "Fashion"},
		{CategoryGroceries, "Groceries"},
		{CategoryUnknown, "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.cat.String(); got != tt.want {
			t.Errorf("Category(%d).String() = %q, want %q", tt.cat, got, tt.want)
		}
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		name       string
		email      string
		customerID string
		want       string
		wantFilled bool
	}{
		{"present email lowercased", "Alice@Example.COM", "C001", "alice@example.com", false},
		{"missing email filled", "", "C007", "unknown+c007@fleximart.local", true},
		{"whitespace only filled", "   ", "7", "unknown+7@fleximart.local", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, filled := NormalizeEmail(tt.email, tt.customerID)
			if got != tt.want || filled != tt.wantFilled {
				t.Errorf("NormalizeEmail(%q, %q) = (%q, %v), want (%q, %v)",
					tt.email, tt.customerID, got, filled, tt.want, tt.wantFilled)
			}
		})
	}
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"bangalore", "Bangalore"},
		{"NEW   delhi", "New Delhi"},
		{"  mumbai ", "Mumbai"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeCity(tt.input); got != tt.want {
			t.Errorf("NormalizeCity(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"199.99", 199.99, true},
		{"0", 0, true},
		{" 45999 ", 45999, true},
		{"", 0, false},
		{"-10", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePrice(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseStock(t *testing.T) {
	tests := []struct {
		input string
		want  int
		ok    bool
	}{
		{"25", 25, true},
		{"0", 0, true},
		{"", 0, false},
		{"-3", 0, false},
		{"lots", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseStock(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseStock(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
		ok     bool
	}{
		{"odd count picks middle", []float64{300, 100, 200}, 200, true},
		{"even count averages middle pair", []float64{400, 100, 300, 200}, 250, true},
		{"single value", []float64{42}, 42, true},
		{"two values", []float64{100, 300}, 200, true},
		{"empty", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Median(tt.values)
			if got != tt.want || ok != tt.ok {
				t.Errorf("Median(%v) = (%v, %v), want (%v, %v)", tt.values, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("Median mutated its input: %v", values)
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{1.005, 1.0}, // 1.005 is stored just below 1.005 in binary
		{2.346, 2.35},
		{100.0, 100.0},
		{0.125, 0.13},
	}
	for _, tt := range tests {
		if got := Round2(tt.input); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
