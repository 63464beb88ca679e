package types

import "testing"

func TestAllBitsCoversReservedRange(t *testing.T) {
	if AllBits != ReservedBits {
		t.Errorf("AllBits = %#x, want all 22 reserved bits set (%#x)", AllBits, ReservedBits)
	}
}

func TestAggregatedRolesAreNested(t *testing.T) {
	tests := []struct {
		name   string
		narrow Mask
		wide   Mask
	}{
		{"viewer subset of editor", ViewerBits, EditorBits},
		{"editor subset of admin", EditorBits, AdminBits},
		{"admin subset of all", AdminBits, AllBits},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wide&tt.narrow != tt.narrow {
				t.Errorf("%#x is not a subset of %#x", tt.narrow, tt.wide)
			}
		})
	}
}

func TestMaskHeld(t *testing.T) {
	tests := []struct {
		name     string
		held     Mask
		required Mask
		want     bool
	}{
		{"zero required always satisfied", 0xF, 0, true},
		{"exact match", BitGrant, BitGrant, true},
		{"superset satisfies", AllBits, BitGrant | BitRevoke, true},
		{"missing bit fails", BitGrant, BitGrant | BitRevoke, false},
		{"empty held fails nonzero required", 0, BitGrant, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.held.Held(tt.required); got != tt.want {
				t.Errorf("Held() = %v, want %v", got, tt.want)
			}
		})
	}
}
