package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/cache/positions.json",
			expected: filepath.Join(home, "cache", "positions.json"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/var/cache/tide/positions.json",
			expected: "/var/cache/tide/positions.json",
		},
		{
			name:     "relative path unchanged",
			input:    "positions.json",
			expected: "positions.json",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := expandPath(tt.input); got != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}

	if got := cfg.GetVolumeStep(); got != 0.07 {
		t.Errorf("GetVolumeStep() = %v, want 0.07", got)
	}
	if got := cfg.GetSeekStep(); got != 5*time.Second {
		t.Errorf("GetSeekStep() = %v, want 5s", got)
	}
	if got := cfg.GetSeekStepLarge(); got != time.Minute {
		t.Errorf("GetSeekStepLarge() = %v, want 1m", got)
	}
	if !cfg.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = false, want true by default")
	}
	if got := cfg.GetLogLevel(); got != "info" {
		t.Errorf("GetLogLevel() = %q, want info", got)
	}
}

func TestDefaults_Overridden(t *testing.T) {
	off := false
	cfg := &Config{
		VolumeStep:           0.1,
		SeekStepSeconds:      10,
		SeekStepLargeSeconds: 120,
		Notifications:        &off,
		LogLevel:             "debug",
	}

	if got := cfg.GetVolumeStep(); got != 0.1 {
		t.Errorf("GetVolumeStep() = %v, want 0.1", got)
	}
	if got := cfg.GetSeekStep(); got != 10*time.Second {
		t.Errorf("GetSeekStep() = %v, want 10s", got)
	}
	if got := cfg.GetSeekStepLarge(); got != 2*time.Minute {
		t.Errorf("GetSeekStepLarge() = %v, want 2m", got)
	}
	if cfg.NotificationsEnabled() {
		t.Error("NotificationsEnabled() = true, want false")
	}
	if got := cfg.GetLogLevel(); got != "debug" {
		t.Errorf("GetLogLevel() = %q, want debug", got)
	}
}

func TestDefaults_OutOfRangeVolumeStep(t *testing.T) {
	cfg := &Config{VolumeStep: 1.5}

	if got := cfg.GetVolumeStep(); got != 0.07 {
		t.Errorf("GetVolumeStep() = %v, want default for out-of-range value", got)
	}
}
