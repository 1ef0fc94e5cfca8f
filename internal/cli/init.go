package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/juliexu77/babyrhythm/internal/constants"
	"github.com/juliexu77/babyrhythm/internal/timeutil"
)

type InitCmd struct {
	Yes bool `help:"Skip the interactive setup and accept defaults."`

	Timezone  string `help:"IANA timezone name, or Local." default:""`
	Birthdate string `help:"Baby's birthdate (YYYY-MM-DD)." default:""`
}

func (c *InitCmd) Run(ctx *Context) error {
	if err := ctx.Store.Init(); err != nil {
		return err
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.Timezone != "" {
		settings.Timezone = c.Timezone
	}
	if c.Birthdate != "" {
		settings.Birthdate = c.Birthdate
	}

	if !c.Yes {
		if err := promptSetup(&settings.Timezone, &settings.Birthdate, &settings.NightStartHour, &settings.NightEndHour, &settings.NotificationsEnabled); err != nil {
			return err
		}
	}

	if _, err := timeutil.LoadLocation(settings.Timezone); err != nil {
		return err
	}
	if settings.Birthdate != "" {
		if _, err := time.Parse(constants.DateFormat, settings.Birthdate); err != nil {
			return fmt.Errorf("invalid birthdate (expected YYYY-MM-DD): %w", err)
		}
	}

	if err := ctx.Store.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	fmt.Printf("Initialized babyrhythm storage at %s\n", ctx.Store.GetConfigPath())
	return nil
}

func promptSetup(timezone, birthdate *string, nightStart, nightEnd *int, notifications *bool) error {
	startStr := strconv.Itoa(*nightStart)
	endStr := strconv.Itoa(*nightEnd)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Timezone").
				Description("IANA name like America/New_York, or Local for the system timezone.").
				Value(timezone).
				Validate(func(s string) error {
					if _, err := timeutil.LoadLocation(s); err != nil {
						return fmt.Errorf("unknown timezone")
					}
					return nil
				}),
			huh.NewInput().
				Title("Baby's birthdate").
				Description("YYYY-MM-DD; used for age-based schedule predictions. Leave empty to skip.").
				Value(birthdate).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if _, err := time.Parse(constants.DateFormat, s); err != nil {
						return fmt.Errorf("expected YYYY-MM-DD")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Title("Night sleep starts at").
				Options(
					huh.NewOption("6:00 PM", "18"),
					huh.NewOption("7:00 PM", "19"),
					huh.NewOption("8:00 PM", "20"),
					huh.NewOption("9:00 PM", "21"),
				).
				Value(&startStr),
			huh.NewSelect[string]().
				Title("Night sleep ends at").
				Options(
					huh.NewOption("6:00 AM", "6"),
					huh.NewOption("7:00 AM", "7"),
					huh.NewOption("8:00 AM", "8"),
				).
				Value(&endStr),
			huh.NewConfirm().
				Title("Enable desktop notifications?").
				Value(notifications),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	start, err := strconv.Atoi(startStr)
	if err != nil {
		return fmt.Errorf("invalid night start hour: %w", err)
	}
	end, err := strconv.Atoi(endStr)
	if err != nil {
		return fmt.Errorf("invalid night end hour: %w", err)
	}
	*nightStart = start
	*nightEnd = end
	return nil
}
