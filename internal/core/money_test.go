package core

import "testing"

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", want: "12.34"},
		{name: "comma separator", input: "12,34", want: "12.34"},
		{name: "whole number", input: "1000", want: "1000"},
		{name: "leading whitespace", input: "  7.5", want: "7.5"},
		{name: "zero is allowed", input: "0", want: "0"},
		{name: "negative rejected", input: "-5", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
		{name: "garbage rejected", input: "12a.4", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMoney(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseMoney(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMoney(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseMoney(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoney_Add(t *testing.T) {
	a := MoneyFromInt(100)
	b, _ := ParseMoney("0.45")
	if got := a.Add(b).String(); got != "100.45" {
		t.Errorf("Add = %s, want 100.45", got)
	}
}
