package users

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitual/internal/apperr"
	"habitual/internal/auth"
	"habitual/internal/cli"
	"habitual/internal/models"
	"habitual/internal/validation"
)

type UserCmd struct {
	Register UserRegisterCmd `cmd:"" help:"Create a new user account."`
	Login    UserLoginCmd    `cmd:"" help:"Log in as an existing user."`
	Logout   UserLogoutCmd   `cmd:"" help:"Log out of the current session."`
	List     UserListCmd     `cmd:"" help:"List registered users."`
	Delete   UserDeleteCmd   `cmd:"" help:"Delete the current user and all their habits."`
	Whoami   UserWhoamiCmd   `cmd:"" help:"Show the logged-in user."`
}

type UserRegisterCmd struct {
	Name     string `arg:"" help:"Username (letters and numbers only)."`
	Password string `help:"Password; prompted when omitted." default:""`
}

func (c *UserRegisterCmd) Run(appCtx *cli.Context) error {
	name, err := validation.Username(c.Name)
	if err != nil {
		return err
	}

	if _, err := appCtx.Store.GetUserByName(name); err == nil {
		return apperr.ErrDuplicateUser
	} else if !errors.Is(err, apperr.ErrUserNotFound) {
		return err
	}

	password := c.Password
	if password == "" {
		password, err = cli.PromptPassword("Choose a password")
		if err != nil {
			return err
		}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Name:         strings.ToLower(name),
		DisplayName:  name,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := appCtx.Store.CreateUser(user); err != nil {
		return err
	}

	// Registering also logs the new user in.
	if err := appCtx.Store.SetSessionUser(user.ID); err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("User %q created and logged in.", name)))
	return nil
}

type UserLoginCmd struct {
	Name     string `arg:"" help:"Username."`
	Password string `help:"Password; prompted when omitted." default:""`
}

func (c *UserLoginCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.Store.GetUserByName(c.Name)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			// Don't reveal which of the two was wrong.
			return auth.ErrInvalidCredentials
		}
		return err
	}

	password := c.Password
	if password == "" {
		password, err = cli.PromptPassword("Password")
		if err != nil {
			return err
		}
	}
	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return err
	}

	if err := appCtx.Store.SetSessionUser(user.ID); err != nil {
		return err
	}
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Logged in as %s.", user.DisplayName)))
	return nil
}

type UserLogoutCmd struct{}

func (c *UserLogoutCmd) Run(appCtx *cli.Context) error {
	if err := appCtx.Store.ClearSession(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

type UserListCmd struct{}

func (c *UserListCmd) Run(appCtx *cli.Context) error {
	users, err := appCtx.Store.ListUsers()
	if err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users registered. Create one with 'habitual user register'.")
		return nil
	}
	for _, u := range users {
		fmt.Println(u.DisplayName)
	}
	return nil
}

type UserDeleteCmd struct {
	Force bool `help:"Skip the confirmation prompt." short:"y"`
}

func (c *UserDeleteCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}

	if !c.Force {
		ok, err := cli.Confirm(fmt.Sprintf(
			"Delete account %q with all its habits and completions? This cannot be undone.",
			user.DisplayName))
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Deletion cancelled.")
			return nil
		}
	}

	appCtx.PerformAutomaticBackup()

	if err := appCtx.Store.DeleteUser(user.ID); err != nil {
		return err
	}
	// The session row cascades with the user.
	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Account %q deleted.", user.DisplayName)))
	return nil
}

type UserWhoamiCmd struct{}

func (c *UserWhoamiCmd) Run(appCtx *cli.Context) error {
	user, err := appCtx.CurrentUser()
	if err != nil {
		return err
	}
	fmt.Println(user.DisplayName)
	return nil
}
