package models

import (
	"database/sql/driver"
	"reflect"
	"testing"
)

func TestStringSlice_Value(t *testing.T) {
	tests := []struct {
		name    string
		s       StringSlice
		wantVal driver.Value
		wantErr bool
	}{
		{
			name:    "nil slice",
			s:       nil,
			wantVal: "[]",
			wantErr: false,
		},
		{
			name:    "empty slice",
			s:       StringSlice{},
			wantVal: "[]",
			wantErr: false,
		},
		{
			name:    "slice with elements",
			s:       StringSlice{"grammar", "listening"},
			wantVal: `["grammar","listening"]`,
			wantErr: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.s.Value()
			if (err != nil) != tt.wantErr {
				t.Errorf("Value() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.wantVal) {
				t.Errorf("Value() = %v, want %v", got, tt.wantVal)
			}
		})
	}
}

func TestStringSlice_Scan(t *testing.T) {
	tests := []struct {
		name    string
		value   interface{}
		want    StringSlice
		wantErr bool
	}{
		{
			name:  "nil value",
			value: nil,
			want:  StringSlice{},
		},
		{
			name:  "empty bytes",
			value: []byte{},
			want:  StringSlice{},
		},
		{
			name:  "null literal",
			value: "null",
			want:  StringSlice{},
		},
		{
			name:  "json array string",
			value: `["grammar","listening"]`,
			want:  StringSlice{"grammar", "listening"},
		},
		{
			name:  "json array bytes",
			value: []byte(`["speaking"]`),
			want:  StringSlice{"speaking"},
		},
		{
			name:    "unsupported type",
			value:   42,
			wantErr: true,
		},
		{
			name:    "malformed json",
			value:   "not json",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s StringSlice
			err := s.Scan(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("Scan() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && !reflect.DeepEqual(s, tt.want) {
				t.Errorf("Scan() = %v, want %v", s, tt.want)
			}
		})
	}
}

func TestStringMap_RoundTrip(t *testing.T) {
	m := StringMap{"sec-1:0": "goes", "sec-1:1": "were"}

	val, err := m.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}

	var got StringMap
	if err := got.Scan(val); err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("round trip = %v, want %v", got, m)
	}
}

func TestStringMap_ScanNil(t *testing.T) {
	var m StringMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) error = %v", err)
	}
	if len(m) != 0 {
		t.Errorf("Scan(nil) = %v, want empty map", m)
	}
}
