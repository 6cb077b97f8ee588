package habits

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitual/internal/apperr"
	"habitual/internal/cli"
	"habitual/internal/models"
	"habitual/internal/streak"
	"habitual/internal/utils"
	"habitual/internal/validation"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Create a new habit."`
	List   HabitListCmd   `cmd:"" help:"List your habits with streaks."`
	Done   HabitDoneCmd   `cmd:"" help:"Mark a habit completed for the current period."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its completion history."`
	Log    HabitLogCmd    `cmd:"" help:"Show completion history (ASCII grid)."`
}

type HabitAddCmd struct {
	Name      string `arg:"" optional:"" help:"Habit name."`
	Frequency string `help:"Cadence: daily or weekly." short:"f" default:""`
}

func (c *HabitAddCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	rawName := c.Name
	if rawName == "" {
		rawName, err = cli.PromptText("Habit name")
		if err != nil {
			return err
		}
	}
	name, err := validation.HabitName(rawName)
	if err != nil {
		return err
	}

	var freq models.Frequency
	if c.Frequency == "" {
		freq, err = cli.SelectFrequency("Select a habit frequency")
	} else {
		freq, err = validation.Frequency(c.Frequency)
	}
	if err != nil {
		return err
	}

	if _, err := appCtx.Store.GetHabitByName(user.ID, name); err == nil {
		return fmt.Errorf("%w: %q", apperr.ErrDuplicateHabit, name)
	} else if !errors.Is(err, apperr.ErrHabitNotFound) {
		return err
	}

	habit := models.Habit{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Name:        strings.ToLower(name),
		DisplayName: name,
		Frequency:   freq,
		CreatedAt:   time.Now(),
	}
	if err := appCtx.Store.CreateHabit(habit); err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(
		fmt.Sprintf("Created habit %q (%s) for %s", name, freq, user.DisplayName)))
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	habits, err := appCtx.Store.ListHabits(user.ID)
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Create one with 'habitual habit add'.")
		return nil
	}

	loc := appCtx.Location()
	now := time.Now().In(loc)

	fmt.Println(cli.TitleStyle.Render("Tracked habits"))
	for _, h := range habits {
		completions, err := appCtx.Store.ListCompletions(h.ID)
		if err != nil {
			return err
		}
		st, err := streak.Compute(h.Frequency, completions, now, loc)
		if err != nil {
			return err
		}
		due, err := streak.IsDue(h.Frequency, completions, now, loc)
		if err != nil {
			return err
		}

		marker := cli.SuccessStyle.Render("done")
		if due {
			marker = cli.WarningStyle.Render("due")
		}
		fmt.Printf("%-30s %-7s %s  %s\n",
			h.DisplayName, h.Frequency, marker,
			cli.MutedStyle.Render(fmt.Sprintf("streak %d, longest %d, since %s",
				st.Current, st.Longest, utils.FormatDate(h.CreatedAt.In(loc)))))
	}
	return nil
}

type HabitDoneCmd struct {
	Name string `arg:"" optional:"" help:"Habit name."`
	Date string `help:"Backfill date in YYYY-MM-DD format (default: now)." default:""`
}

func (c *HabitDoneCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	loc := appCtx.Location()
	habit, err := resolveHabit(appCtx, user, c.Name, "Select a habit to mark as completed")
	if err != nil {
		return err
	}

	completedAt := time.Now().In(loc)
	if c.Date != "" {
		completedAt, err = validation.Date(c.Date, loc)
		if err != nil {
			return err
		}
	}

	completion := models.Completion{
		ID:          uuid.New().String(),
		HabitID:     habit.ID,
		CompletedAt: completedAt,
	}
	if err := appCtx.Store.RecordCompletion(habit, completion, loc); err != nil {
		if errors.Is(err, apperr.ErrDuplicateCompletion) {
			next, nerr := streak.NextEligible(habit.Frequency, completedAt, loc)
			if nerr != nil {
				return err
			}
			fmt.Println(cli.WarningStyle.Render(
				fmt.Sprintf("Already completed this %s.", habit.Frequency.PeriodUnit())))
			fmt.Printf("You can complete it again in %s.\n",
				utils.FormatWait(next, time.Now().In(loc)))
			return nil
		}
		return err
	}

	completions, err := appCtx.Store.ListCompletions(habit.ID)
	if err != nil {
		return err
	}
	st, err := streak.Compute(habit.Frequency, completions, time.Now().In(loc), loc)
	if err != nil {
		return err
	}

	unit := habit.Frequency.PeriodUnit()
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Habit %q marked as completed!", habit.DisplayName)))
	fmt.Printf("%s | longest %d %s(s)\n",
		cli.StreakStyle.Render(fmt.Sprintf("Current streak: %d %s(s)", st.Current, unit)),
		st.Longest, unit)
	return nil
}

type HabitDeleteCmd struct {
	Name  string `arg:"" optional:"" help:"Habit name to delete."`
	Force bool   `help:"Skip the confirmation prompt." short:"y"`
}

func (c *HabitDeleteCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	habit, err := resolveHabit(appCtx, user, c.Name, "Select a habit to delete")
	if err != nil {
		return err
	}

	if !c.Force {
		ok, err := cli.Confirm(fmt.Sprintf(
			"Delete habit %q and all its completions? This cannot be undone.", habit.DisplayName))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	appCtx.PerformAutomaticBackup()

	if err := appCtx.Store.DeleteHabit(habit.ID); err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Deleted habit %q.", habit.DisplayName)))
	return nil
}

type HabitLogCmd struct {
	Name string `arg:"" optional:"" help:"Habit name."`
	Days int    `help:"Number of days to show." default:"14"`
}

func (c *HabitLogCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	habit, err := resolveHabit(appCtx, user, c.Name, "Select a habit to show")
	if err != nil {
		return err
	}

	completions, err := appCtx.Store.ListCompletions(habit.ID)
	if err != nil {
		return err
	}

	loc := appCtx.Location()
	cadence, err := streak.For(habit.Frequency, loc)
	if err != nil {
		return err
	}

	completed := make(map[streak.Period]bool, len(completions))
	for _, t := range completions {
		completed[cadence.PeriodOf(t)] = true
	}

	end := time.Now().In(loc)
	start := end.AddDate(0, 0, -(c.Days - 1))

	fmt.Printf("%s (last %d days):\n", habit.DisplayName, c.Days)
	var header, marks strings.Builder
	for i := 0; i < c.Days; i++ {
		day := start.AddDate(0, 0, i)
		header.WriteString(fmt.Sprintf(" %5s", day.Format("01/02")))
		if completed[cadence.PeriodOf(day)] {
			marks.WriteString("   x  ")
		} else {
			marks.WriteString("   .  ")
		}
	}
	fmt.Println(header.String())
	fmt.Println(marks.String())
	return nil
}

// resolveHabit finds a habit by name, or prompts when no name was given.
func resolveHabit(appCtx *cli.Context, user models.User, name, prompt string) (models.Habit, error) {
	if name != "" {
		habit, err := appCtx.Store.GetHabitByName(user.ID, name)
		if errors.Is(err, apperr.ErrHabitNotFound) {
			return models.Habit{}, fmt.Errorf("%w: %q", apperr.ErrHabitNotFound, name)
		}
		return habit, err
	}

	habits, err := appCtx.Store.ListHabits(user.ID)
	if err != nil {
		return models.Habit{}, err
	}
	return cli.SelectHabit(prompt, habits)
}
