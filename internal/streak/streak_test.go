package streak

import (
	"testing"
	"time"

	"habitual/internal/apperr"
	"habitual/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestForInvalidFrequency(t *testing.T) {
	_, err := For(models.Frequency("monthly"), time.UTC)
	if err != apperr.ErrInvalidFrequency {
		t.Errorf("For() error = %v, want ErrInvalidFrequency", err)
	}
}

func TestComputeDaily(t *testing.T) {
	tests := []struct {
		name        string
		completions []time.Time
		now         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name:        "empty log",
			completions: nil,
			now:         date(2024, 1, 3),
			wantCurrent: 0,
			wantLongest: 0,
		},
		{
			name: "three consecutive days ending today",
			completions: []time.Time{
				date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3),
			},
			now:         date(2024, 1, 3),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "gap resets current but not longest",
			completions: []time.Time{
				date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 5),
			},
			now:         date(2024, 1, 5),
			wantCurrent: 1,
			wantLongest: 2,
		},
		{
			name: "grace period keeps yesterday's streak",
			completions: []time.Time{
				date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3),
			},
			now:         date(2024, 1, 4),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "streak lapses after a full missed day",
			completions: []time.Time{
				date(2024, 1, 1), date(2024, 1, 2), date(2024, 1, 3),
			},
			now:         date(2024, 1, 5),
			wantCurrent: 0,
			wantLongest: 3,
		},
		{
			name: "duplicate timestamps within a day count once",
			completions: []time.Time{
				date(2024, 1, 1),
				time.Date(2024, 1, 1, 22, 0, 0, 0, time.UTC),
				date(2024, 1, 2),
			},
			now:         date(2024, 1, 2),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "run across a year boundary",
			completions: []time.Time{
				date(2023, 12, 30), date(2023, 12, 31), date(2024, 1, 1),
			},
			now:         date(2024, 1, 1),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "unsorted input is tolerated",
			completions: []time.Time{
				date(2024, 1, 3), date(2024, 1, 1), date(2024, 1, 2),
			},
			now:         date(2024, 1, 3),
			wantCurrent: 3,
			wantLongest: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(models.FrequencyDaily, tt.completions, tt.now, time.UTC)
			if err != nil {
				t.Fatalf("Compute() unexpected error: %v", err)
			}
			if got.Current != tt.wantCurrent {
				t.Errorf("Compute() current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Compute() longest = %d, want %d", got.Longest, tt.wantLongest)
			}
			if got.Longest < got.Current {
				t.Errorf("Compute() longest %d < current %d", got.Longest, got.Current)
			}
		})
	}
}

func TestComputeWeekly(t *testing.T) {
	// 2024-01-01 is a Monday, ISO week 1 of 2024.
	tests := []struct {
		name        string
		completions []time.Time
		now         time.Time
		wantCurrent int
		wantLongest int
	}{
		{
			name: "three consecutive weeks ending this week",
			completions: []time.Time{
				date(2024, 1, 2), date(2024, 1, 9), date(2024, 1, 16),
			},
			now:         date(2024, 1, 18),
			wantCurrent: 3,
			wantLongest: 3,
		},
		{
			name: "grace week keeps last week's streak",
			completions: []time.Time{
				date(2024, 1, 2), date(2024, 1, 9),
			},
			now:         date(2024, 1, 17),
			wantCurrent: 2,
			wantLongest: 2,
		},
		{
			name: "missed week breaks the streak",
			completions: []time.Time{
				date(2024, 1, 2), date(2024, 1, 9),
			},
			now:         date(2024, 1, 31),
			wantCurrent: 0,
			wantLongest: 2,
		},
		{
			name: "run across an ISO year boundary",
			completions: []time.Time{
				// 2020 has 53 ISO weeks; Dec 28 2020 is week 53.
				date(2020, 12, 28), date(2021, 1, 4),
			},
			now:         date(2021, 1, 6),
			wantCurrent: 2,
			wantLongest: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(models.FrequencyWeekly, tt.completions, tt.now, time.UTC)
			if err != nil {
				t.Fatalf("Compute() unexpected error: %v", err)
			}
			if got.Current != tt.wantCurrent {
				t.Errorf("Compute() current = %d, want %d", got.Current, tt.wantCurrent)
			}
			if got.Longest != tt.wantLongest {
				t.Errorf("Compute() longest = %d, want %d", got.Longest, tt.wantLongest)
			}
		})
	}
}

func TestIsDue(t *testing.T) {
	tests := []struct {
		name        string
		freq        models.Frequency
		completions []time.Time
		now         time.Time
		want        bool
	}{
		{
			name: "daily with no completions is due",
			freq: models.FrequencyDaily,
			now:  date(2024, 1, 3),
			want: true,
		},
		{
			name:        "daily completed today is not due",
			freq:        models.FrequencyDaily,
			completions: []time.Time{date(2024, 1, 3)},
			now:         time.Date(2024, 1, 3, 23, 59, 0, 0, time.UTC),
			want:        false,
		},
		{
			name:        "daily completed yesterday is due again",
			freq:        models.FrequencyDaily,
			completions: []time.Time{date(2024, 1, 2)},
			now:         date(2024, 1, 3),
			want:        true,
		},
		{
			name:        "weekly completed earlier this week is not due",
			freq:        models.FrequencyWeekly,
			completions: []time.Time{date(2024, 1, 15)},
			now:         date(2024, 1, 19),
			want:        false,
		},
		{
			name:        "weekly completed last week is due",
			freq:        models.FrequencyWeekly,
			completions: []time.Time{date(2024, 1, 12)},
			now:         date(2024, 1, 15),
			want:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := IsDue(tt.freq, tt.completions, tt.now, time.UTC)
			if err != nil {
				t.Fatalf("IsDue() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsDue() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindDuplicate(t *testing.T) {
	existing := date(2024, 1, 3)

	t.Run("same day is a duplicate", func(t *testing.T) {
		dup, found, err := FindDuplicate(models.FrequencyDaily,
			[]time.Time{existing}, time.Date(2024, 1, 3, 22, 0, 0, 0, time.UTC), time.UTC)
		if err != nil {
			t.Fatalf("FindDuplicate() unexpected error: %v", err)
		}
		if !found {
			t.Fatal("FindDuplicate() found = false, want true")
		}
		if !dup.Equal(existing) {
			t.Errorf("FindDuplicate() = %v, want %v", dup, existing)
		}
	})

	t.Run("next day is not a duplicate", func(t *testing.T) {
		_, found, err := FindDuplicate(models.FrequencyDaily,
			[]time.Time{existing}, date(2024, 1, 4), time.UTC)
		if err != nil {
			t.Fatalf("FindDuplicate() unexpected error: %v", err)
		}
		if found {
			t.Error("FindDuplicate() found = true, want false")
		}
	})

	t.Run("same ISO week is a duplicate for weekly", func(t *testing.T) {
		_, found, err := FindDuplicate(models.FrequencyWeekly,
			[]time.Time{date(2024, 1, 15)}, date(2024, 1, 21), time.UTC)
		if err != nil {
			t.Fatalf("FindDuplicate() unexpected error: %v", err)
		}
		if !found {
			t.Error("FindDuplicate() found = false, want true")
		}
	})
}

func TestNextEligible(t *testing.T) {
	t.Run("daily rolls to next midnight", func(t *testing.T) {
		got, err := NextEligible(models.FrequencyDaily, date(2024, 1, 3), time.UTC)
		if err != nil {
			t.Fatalf("NextEligible() unexpected error: %v", err)
		}
		want := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("NextEligible() = %v, want %v", got, want)
		}
	})

	t.Run("weekly rolls to next Monday", func(t *testing.T) {
		got, err := NextEligible(models.FrequencyWeekly, date(2024, 1, 17), time.UTC)
		if err != nil {
			t.Fatalf("NextEligible() unexpected error: %v", err)
		}
		want := time.Date(2024, 1, 22, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("NextEligible() = %v, want %v", got, want)
		}
	})

	t.Run("weekly crosses a 53-week ISO year", func(t *testing.T) {
		got, err := NextEligible(models.FrequencyWeekly, date(2020, 12, 29), time.UTC)
		if err != nil {
			t.Fatalf("NextEligible() unexpected error: %v", err)
		}
		want := time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC)
		if !got.Equal(want) {
			t.Errorf("NextEligible() = %v, want %v", got, want)
		}
	})
}
