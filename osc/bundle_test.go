package osc

import (
	"reflect"
	"testing"
)

func TestBundle_MarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		if tt.obj == nil {
			continue
		}
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.obj.MarshalBinary()
			if (err != nil) != tt.wantErr {
				t.Errorf("MarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.raw) {
				t.Errorf("MarshalBinary() got = %v, want %v", got, tt.raw)
			}
		})
	}
}

func TestBundle_UnmarshalBinary(t *testing.T) {
	for _, tt := range bundleTestCases {
		t.Run(tt.name, func(t *testing.T) {
			b := new(Bundle)
			err := b.UnmarshalBinary(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("UnmarshalBinary() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(b, tt.obj) {
				t.Errorf("UnmarshalBinary() got = %v, want %v", b, tt.obj)
			}
		})
	}
}

func TestBundle_Append(t *testing.T) {
	b := NewBundle()

	if err := b.Append(NewMessage("/a")); err != nil {
		t.Fatalf("Append(message) error = %v", err)
	}
	if err := b.Append(NewBundle()); err != nil {
		t.Fatalf("Append(bundle) error = %v", err)
	}
	if err := b.Append(nil); err == nil {
		t.Error("Append(nil) expected error")
	}
	if got, want := len(b.Elements), 2; got != want {
		t.Errorf("len(Elements) = %d, want %d", got, want)
	}
}
