package backend

import (
	"strings"
	"testing"
)

func TestTunableFlagNames(t *testing.T) {
	names := TunableFlagNames()

	if len(names) != len(tunableFlags) {
		t.Fatalf("TunableFlagNames() returned %d names, want %d",
			len(names), len(tunableFlags))
	}
	for _, name := range names {
		if _, ok := tunableFlags[name]; !ok {
			t.Errorf("unexpected flag name %q", name)
		}
	}
}

func TestAllowedValues(t *testing.T) {
	if got := AllowedValues("NUM_THREADS"); len(got) != 4 {
		t.Errorf("AllowedValues(NUM_THREADS) = %v, want 4 values", got)
	}
	if got := AllowedValues("NOT_A_FLAG"); got != nil {
		t.Errorf("AllowedValues(NOT_A_FLAG) = %v, want nil", got)
	}
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name    string
		flags   map[string]any
		wantErr bool
	}{
		{
			name:  "all valid",
			flags: map[string]any{"NUM_THREADS": 8, "CPU_FALLBACK": false},
		},
		{
			name:  "float threshold",
			flags: map[string]any{"FLUSH_THRESHOLD": -1.0},
		},
		{
			name:    "unknown flag",
			flags:   map[string]any{"TURBO": true},
			wantErr: true,
		},
		{
			name:    "value outside range",
			flags:   map[string]any{"GPU_INFERENCE_PRIORITY": 4},
			wantErr: true,
		},
		{
			name:    "wrong type",
			flags:   map[string]any{"USE_XNNPACK": "true"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			batch, err := validateFlags(tt.flags)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				return
			}
			if err != nil {
				t.Fatalf("validateFlags() error = %v", err)
			}
			if len(batch) != len(tt.flags) {
				t.Errorf("batch has %d entries, want %d", len(batch), len(tt.flags))
			}
		})
	}
}

func TestFlagValueEqual(t *testing.T) {
	tests := []struct {
		allowed any
		value   any
		want    bool
	}{
		{1, float64(1), true},
		{1, 1, true},
		{0.1, float64(0.1), true},
		{true, true, true},
		{1, float64(1.5), false},
		{true, "true", false},
	}

	for _, tt := range tests {
		if got := flagValueEqual(tt.allowed, tt.value); got != tt.want {
			t.Errorf("flagValueEqual(%v, %v) = %v, want %v",
				tt.allowed, tt.value, got, tt.want)
		}
	}
}

func TestInvalidArgumentError_Message(t *testing.T) {
	err := &InvalidArgumentError{
		Flag:   "NUM_THREADS",
		Value:  3,
		Reason: "value is outside the allowed range",
	}
	if !strings.Contains(err.Error(), "NUM_THREADS") {
		t.Errorf("error message should name the flag: %q", err.Error())
	}

	unavailable := &BackendUnavailableError{Name: "quantum"}
	if !strings.Contains(unavailable.Error(), "quantum") {
		t.Errorf("error message should name the backend: %q", unavailable.Error())
	}
}
