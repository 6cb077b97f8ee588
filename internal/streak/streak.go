package streak

import (
	"sort"
	"time"

	"habitual/internal/apperr"
	"habitual/internal/models"
)

// Period identifies one tracking unit of a habit. For daily habits it is a
// calendar day (Year, day-of-year); for weekly habits an ISO week-year and
// week number. Periods from different cadences are never mixed.
type Period struct {
	Year int
	Seq  int
}

// Cadence is the period arithmetic for one frequency value. All derivation
// happens in a single location so "today" tracks the user's timezone.
type Cadence interface {
	// PeriodOf returns the period containing t.
	PeriodOf(t time.Time) Period
	// Next returns the period immediately following p.
	Next(p Period) Period
	// StartOf returns the instant p begins.
	StartOf(p Period) time.Time
}

type daily struct {
	loc *time.Location
}

func (d daily) PeriodOf(t time.Time) Period {
	t = t.In(d.loc)
	return Period{Year: t.Year(), Seq: t.YearDay()}
}

func (d daily) Next(p Period) Period {
	// time.Date normalizes day-of-year overflow across year boundaries.
	return d.PeriodOf(time.Date(p.Year, 1, p.Seq+1, 12, 0, 0, 0, d.loc))
}

func (d daily) StartOf(p Period) time.Time {
	return time.Date(p.Year, 1, p.Seq, 0, 0, 0, 0, d.loc)
}

type weekly struct {
	loc *time.Location
}

func (w weekly) PeriodOf(t time.Time) Period {
	year, week := t.In(w.loc).ISOWeek()
	return Period{Year: year, Seq: week}
}

func (w weekly) Next(p Period) Period {
	if p.Seq < weeksInISOYear(p.Year, w.loc) {
		return Period{Year: p.Year, Seq: p.Seq + 1}
	}
	return Period{Year: p.Year + 1, Seq: 1}
}

func (w weekly) StartOf(p Period) time.Time {
	// Jan 4 always falls in ISO week 1 of its year.
	jan4 := time.Date(p.Year, 1, 4, 0, 0, 0, 0, w.loc)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // sunday
	}
	monday := jan4.AddDate(0, 0, 1-weekday)
	return monday.AddDate(0, 0, (p.Seq-1)*7)
}

// weeksInISOYear returns 52 or 53. Dec 28 is always in the last ISO week.
func weeksInISOYear(year int, loc *time.Location) int {
	_, week := time.Date(year, 12, 28, 0, 0, 0, 0, loc).ISOWeek()
	return week
}

// For returns the Cadence for a frequency, deriving periods in loc.
func For(freq models.Frequency, loc *time.Location) (Cadence, error) {
	switch freq {
	case models.FrequencyDaily:
		return daily{loc: loc}, nil
	case models.FrequencyWeekly:
		return weekly{loc: loc}, nil
	default:
		return nil, apperr.ErrInvalidFrequency
	}
}

// periodKeys reduces completion timestamps to deduplicated, ascending
// period keys. The store rejects duplicate periods on insert, but the
// computation stays defensive about them.
func periodKeys(c Cadence, completions []time.Time) []Period {
	seen := make(map[Period]struct{}, len(completions))
	keys := make([]Period, 0, len(completions))
	for _, t := range completions {
		p := c.PeriodOf(t)
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		keys = append(keys, p)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Year != keys[j].Year {
			return keys[i].Year < keys[j].Year
		}
		return keys[i].Seq < keys[j].Seq
	})
	return keys
}

// Compute derives the current and longest streak for a habit from its
// completion log. The current streak is the maximal consecutive run ending
// at the most recent completed period, provided that period is the present
// one or the one immediately before it: a habit still pending today keeps
// yesterday's streak until the period fully elapses without a completion.
func Compute(freq models.Frequency, completions []time.Time, now time.Time, loc *time.Location) (models.Streak, error) {
	c, err := For(freq, loc)
	if err != nil {
		return models.Streak{}, err
	}

	keys := periodKeys(c, completions)
	if len(keys) == 0 {
		return models.Streak{}, nil
	}

	longest := 1
	run := 1
	for i := 1; i < len(keys); i++ {
		if keys[i] == c.Next(keys[i-1]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	// run now holds the length of the consecutive run ending at the most
	// recent completed period.
	current := run
	last := keys[len(keys)-1]
	today := c.PeriodOf(now)
	if last != today && c.Next(last) != today {
		current = 0
	}

	return models.Streak{Current: current, Longest: longest}, nil
}

// IsDue reports whether the habit still needs a completion for the period
// containing now.
func IsDue(freq models.Frequency, completions []time.Time, now time.Time, loc *time.Location) (bool, error) {
	c, err := For(freq, loc)
	if err != nil {
		return false, err
	}
	today := c.PeriodOf(now)
	for _, t := range completions {
		if c.PeriodOf(t) == today {
			return false, nil
		}
	}
	return true, nil
}

// FindDuplicate returns the existing completion that shares t's period, if
// any. Used to reject a second completion within the same period.
func FindDuplicate(freq models.Frequency, completions []time.Time, t time.Time, loc *time.Location) (time.Time, bool, error) {
	c, err := For(freq, loc)
	if err != nil {
		return time.Time{}, false, err
	}
	key := c.PeriodOf(t)
	for _, existing := range completions {
		if c.PeriodOf(existing) == key {
			return existing, true, nil
		}
	}
	return time.Time{}, false, nil
}

// NextEligible returns the instant the period after t's period begins,
// i.e. the earliest moment the habit can be completed again.
func NextEligible(freq models.Frequency, t time.Time, loc *time.Location) (time.Time, error) {
	c, err := For(freq, loc)
	if err != nil {
		return time.Time{}, err
	}
	return c.StartOf(c.Next(c.PeriodOf(t))), nil
}
