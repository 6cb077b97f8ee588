package validation

import (
	"strings"
	"testing"
	"time"

	"habitual/internal/apperr"
	"habitual/internal/models"
)

func TestHabitName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "simple name",
			input: "Drink water",
			want:  "Drink water",
		},
		{
			name:  "name with dash and digits",
			input: "10k-steps",
			want:  "10k-steps",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  Meditate  ",
			want:  "Meditate",
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			input:   "   ",
			wantErr: true,
		},
		{
			name:    "too long",
			input:   strings.Repeat("a", 51),
			wantErr: true,
		},
		{
			name:    "special characters rejected",
			input:   "drink water!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := HabitName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("HabitName() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("HabitName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "alphanumeric ok", input: "alice42"},
		{name: "empty", input: "", wantErr: true},
		{name: "spaces rejected", input: "alice smith", wantErr: true},
		{name: "symbols rejected", input: "alice_42", wantErr: true},
		{name: "too long", input: strings.Repeat("a", 31), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Username(tt.input); (err != nil) != tt.wantErr {
				t.Errorf("Username() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFrequency(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    models.Frequency
		wantErr bool
	}{
		{name: "daily", input: "daily", want: models.FrequencyDaily},
		{name: "weekly", input: "weekly", want: models.FrequencyWeekly},
		{name: "case insensitive", input: "Daily", want: models.FrequencyDaily},
		{name: "monthly rejected", input: "monthly", wantErr: true},
		{name: "empty rejected", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Frequency(tt.input)
			if tt.wantErr {
				if err != apperr.ErrInvalidFrequency {
					t.Errorf("Frequency() error = %v, want ErrInvalidFrequency", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Frequency() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Frequency() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDate(t *testing.T) {
	got, err := Date("2024-01-03", time.UTC)
	if err != nil {
		t.Fatalf("Date() unexpected error: %v", err)
	}
	want := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Date() = %v, want %v", got, want)
	}

	if _, err := Date("01/03/2024", time.UTC); err == nil {
		t.Error("Date() expected error for non-ISO format")
	}
}

func TestTimezone(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		want     bool
	}{
		{name: "empty is local", timezone: "", want: true},
		{name: "Local keyword", timezone: "Local", want: true},
		{name: "valid IANA zone", timezone: "Europe/Berlin", want: true},
		{name: "invalid zone", timezone: "Invalid/Zone", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Timezone(tt.timezone); got != tt.want {
				t.Errorf("Timezone(%q) = %v, want %v", tt.timezone, got, tt.want)
			}
		})
	}
}
