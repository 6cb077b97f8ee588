package system

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitual/internal/auth"
	"habitual/internal/cli"
	"habitual/internal/models"
)

type SeedCmd struct {
	Password string `help:"Password assigned to every seeded user." default:"habitual"`
	Weeks    int    `help:"Weeks of completion history to generate." default:"6"`
}

// Run populates the store with demo users, habits and several weeks of
// history, including a few intentionally broken streaks. Development and
// demo use only.
func (cmd *SeedCmd) Run(appCtx *cli.Context) error {
	hash, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return err
	}

	seedHabits := map[string][]struct {
		name string
		freq models.Frequency
	}{
		"alice": {
			{"Meditate", models.FrequencyDaily},
			{"Drink water", models.FrequencyDaily},
			{"Read 20 pages", models.FrequencyDaily},
			{"Weekly review", models.FrequencyWeekly},
			{"Call family", models.FrequencyWeekly},
		},
		"bob": {
			{"Morning run", models.FrequencyDaily},
			{"Meal prep", models.FrequencyWeekly},
		},
		"charlie": {
			{"Practice guitar", models.FrequencyDaily},
			{"Clean apartment", models.FrequencyWeekly},
		},
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	start := time.Now().AddDate(0, 0, -cmd.Weeks*7)

	for username, habits := range seedHabits {
		user := models.User{
			ID:           uuid.New().String(),
			Name:         username,
			DisplayName:  strings.ToUpper(username[:1]) + username[1:],
			PasswordHash: hash,
			CreatedAt:    start.AddDate(0, 0, -1),
		}
		if err := appCtx.Store.CreateUser(user); err != nil {
			return fmt.Errorf("failed to seed user %s: %w", username, err)
		}

		for _, h := range habits {
			habit := models.Habit{
				ID:          uuid.New().String(),
				UserID:      user.ID,
				Name:        strings.ToLower(h.name),
				DisplayName: h.name,
				Frequency:   h.freq,
				CreatedAt:   start.AddDate(0, 0, -1),
			}
			if err := appCtx.Store.CreateHabit(habit); err != nil {
				return fmt.Errorf("failed to seed habit %s: %w", h.name, err)
			}

			step := 1
			if h.freq == models.FrequencyWeekly {
				step = 7
			}
			for day := 0; day < cmd.Weeks*7; day += step {
				// Skip roughly one in eight periods to break some streaks.
				if rng.Intn(8) == 0 {
					continue
				}
				completedAt := start.AddDate(0, 0, day).
					Add(time.Duration(8+rng.Intn(12)) * time.Hour)
				completion := models.Completion{
					ID:          uuid.New().String(),
					HabitID:     habit.ID,
					CompletedAt: completedAt,
				}
				if err := appCtx.Store.RecordCompletion(habit, completion, appCtx.Location()); err != nil {
					return fmt.Errorf("failed to seed completion for %s: %w", h.name, err)
				}
			}
		}
	}

	fmt.Printf("Seeded %d users with %d weeks of history. All passwords: %q\n",
		len(seedHabits), cmd.Weeks, cmd.Password)
	return nil
}
