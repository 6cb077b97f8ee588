package stats

import (
	"fmt"
	"time"

	"habitual/internal/cli"
	"habitual/internal/models"
	"habitual/internal/streak"
	"habitual/internal/utils"
	"habitual/internal/validation"
)

type StatsCmd struct {
	Due       DueCmd       `cmd:"" help:"List habits still due in the current period."`
	Streaks   StreaksCmd   `cmd:"" help:"Show current and longest streaks per habit."`
	Longest   LongestCmd   `cmd:"" help:"Show the habit(s) with the longest streak overall."`
	Frequency FrequencyCmd `cmd:"" help:"List habits filtered by cadence."`
}

type DueCmd struct{}

func (c *DueCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	habits, err := appCtx.Store.ListHabits(user.ID)
	if err != nil {
		return err
	}

	loc := appCtx.Location()
	now := time.Now().In(loc)

	var due []models.Habit
	for _, h := range habits {
		completions, err := appCtx.Store.ListCompletions(h.ID)
		if err != nil {
			return err
		}
		isDue, err := streak.IsDue(h.Frequency, completions, now, loc)
		if err != nil {
			return err
		}
		if isDue {
			due = append(due, h)
		}
	}

	if len(due) == 0 {
		fmt.Println(cli.SuccessStyle.Render("Nothing due right now. Great work!"))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("Habits due today"))
	for _, h := range due {
		fmt.Printf("%s (%s)\n", h.DisplayName, h.Frequency)
	}
	return nil
}

type StreaksCmd struct{}

func (c *StreaksCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	habits, err := appCtx.Store.ListHabits(user.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits to analyze. Create one with 'habitual habit add'.")
		return nil
	}

	loc := appCtx.Location()
	now := time.Now().In(loc)

	for _, h := range habits {
		completions, err := appCtx.Store.ListCompletions(h.ID)
		if err != nil {
			return err
		}
		st, err := streak.Compute(h.Frequency, completions, now, loc)
		if err != nil {
			return err
		}
		unit := h.Frequency.PeriodUnit()
		fmt.Printf("%-30s %s\n", h.DisplayName,
			cli.StreakStyle.Render(fmt.Sprintf("current %d %s(s), longest %d", st.Current, unit, st.Longest)))
	}
	return nil
}

type LongestCmd struct{}

func (c *LongestCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	habits, err := appCtx.Store.ListHabits(user.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits to analyze. Create one with 'habitual habit add'.")
		return nil
	}

	loc := appCtx.Location()
	now := time.Now().In(loc)

	best := 0
	byHabit := make(map[string]int, len(habits))
	for _, h := range habits {
		completions, err := appCtx.Store.ListCompletions(h.ID)
		if err != nil {
			return err
		}
		st, err := streak.Compute(h.Frequency, completions, now, loc)
		if err != nil {
			return err
		}
		byHabit[h.ID] = st.Longest
		if st.Longest > best {
			best = st.Longest
		}
	}

	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Longest streak: %d completion(s)", best)))
	for _, h := range habits {
		if byHabit[h.ID] == best {
			fmt.Printf("- %s (%s)\n", h.DisplayName, h.Frequency)
		}
	}
	return nil
}

type FrequencyCmd struct {
	Frequency string `arg:"" help:"Cadence to filter by: daily or weekly."`
}

func (c *FrequencyCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	freq, err := validation.Frequency(c.Frequency)
	if err != nil {
		return err
	}

	habits, err := appCtx.Store.ListHabitsByFrequency(user.ID, freq)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Printf("No habits with %q frequency.\n", freq)
		return nil
	}

	loc := appCtx.Location()
	fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("Habits with %q frequency", freq)))
	for _, h := range habits {
		fmt.Printf("%s %s\n", h.DisplayName,
			cli.MutedStyle.Render("- created "+utils.FormatDate(h.CreatedAt.In(loc))))
	}
	return nil
}
