package cli

import (
	"fmt"

	"github.com/juliexu77/babyrhythm/internal/keyring"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NightStartHour       *int    `help:"Hour the night-sleep window opens (0-23)."`
	NightEndHour         *int    `help:"Hour the night-sleep window closes (0-23)."`
	Timezone             *string `help:"IANA timezone name, or Local."`
	Birthdate            *string `help:"Baby's birthdate (YYYY-MM-DD)."`
	Household            *string `help:"Household id events and flags are keyed by."`
	NotificationsEnabled *bool   `help:"Enable or disable desktop notifications."`

	ConnectionString *string `help:"Store a PostgreSQL connection string in the OS keyring."`
}

func (c *SettingsCmd) Run(ctx *Context) error {
	if c.ConnectionString != nil {
		if err := keyring.SetConnectionString(*c.ConnectionString); err != nil {
			return err
		}
		fmt.Println("Connection string stored in the OS keyring. Run with `--config keyring` to use it.")
		return nil
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Night Start Hour:      %d\n", settings.NightStartHour)
		fmt.Printf("  Night End Hour:        %d\n", settings.NightEndHour)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Birthdate:             %s\n", settings.Birthdate)
		fmt.Printf("  Household:             %s\n", settings.Household)
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		return nil
	}

	updated := false
	if c.NightStartHour != nil {
		if *c.NightStartHour < 0 || *c.NightStartHour > 23 {
			return fmt.Errorf("night start hour must be 0-23")
		}
		settings.NightStartHour = *c.NightStartHour
		updated = true
	}
	if c.NightEndHour != nil {
		if *c.NightEndHour < 0 || *c.NightEndHour > 23 {
			return fmt.Errorf("night end hour must be 0-23")
		}
		settings.NightEndHour = *c.NightEndHour
		updated = true
	}
	if c.Timezone != nil {
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.Birthdate != nil {
		settings.Birthdate = *c.Birthdate
		updated = true
	}
	if c.Household != nil {
		settings.Household = *c.Household
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
