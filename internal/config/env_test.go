package config

import (
	"errors"
	"strconv"
	"testing"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("ORBIT_TEST_SET", "value")
	if got := GetEnv("ORBIT_TEST_SET", "fallback"); got != "value" {
		t.Errorf("GetEnv(set) = %q, want %q", got, "value")
	}
	if got := GetEnv("ORBIT_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv(unset) = %q, want %q", got, "fallback")
	}
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    int
		wantErr bool
	}{
		{"unset", "", 5, false},
		{"number", "12", 12, false},
		{"negative", "-3", -3, false},
		{"garbage", "twelve", 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ORBIT_TEST_INT", tt.value)
			got, err := GetEnvInt("ORBIT_TEST_INT", 5)
			if got != tt.want {
				t.Errorf("GetEnvInt(%q) = %d, want %d", tt.value, got, tt.want)
			}
			if (err != nil) != tt.wantErr {
				t.Errorf("GetEnvInt(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, strconv.ErrSyntax) {
				t.Errorf("error %v does not wrap strconv.ErrSyntax", err)
			}
		})
	}
}

func TestGetEnvInt64AndBool(t *testing.T) {
	t.Setenv("ORBIT_TEST_SEED", "1234567890123")
	t.Setenv("ORBIT_TEST_BOOL", "true")

	seed, err := GetEnvInt64("ORBIT_TEST_SEED", 0)
	if err != nil || seed != 1234567890123 {
		t.Errorf("GetEnvInt64() = %d, %v", seed, err)
	}
	on, err := GetEnvBool("ORBIT_TEST_BOOL", false)
	if err != nil || !on {
		t.Errorf("GetEnvBool() = %v, %v", on, err)
	}

	t.Setenv("ORBIT_TEST_BOOL", "maybe")
	if _, err := GetEnvBool("ORBIT_TEST_BOOL", false); err == nil {
		t.Error("GetEnvBool(maybe) error = nil")
	}
}
