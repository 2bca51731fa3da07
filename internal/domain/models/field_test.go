package models

import "testing"

func TestParseField(t *testing.T) {
	cases := []struct {
		in      string
		want    Field
		wantErr bool
	}{
		{in: "volume", want: FieldVolume},
		{in: "Volume", want: FieldVolume},
		{in: " value ", want: FieldValue},
		{in: "nilai", want: FieldValue},
		{in: "frequency", want: FieldFrequency},
		{in: "Frekuensi", want: FieldFrequency},
		{in: "", wantErr: true},
		{in: "turnover", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseField(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("want %v got %v", tc.want, got)
			}
		})
	}
}

func TestFieldString(t *testing.T) {
	if FieldVolume.String() != "volume" || FieldValue.String() != "value" || FieldFrequency.String() != "frequency" {
		t.Fatal("unexpected field names")
	}
}

func TestAllFieldsOrder(t *testing.T) {
	if len(AllFields) != 3 || AllFields[0] != FieldVolume || AllFields[1] != FieldValue || AllFields[2] != FieldFrequency {
		t.Fatalf("unexpected canonical order: %v", AllFields)
	}
}
