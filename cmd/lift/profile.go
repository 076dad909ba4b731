// ABOUTME: CLI commands for the local profile and preferences.
// ABOUTME: profile shows settings; profile set changes them.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/lift/internal/models"
	"github.com/spf13/cobra"
)

var (
	profileUnit        string
	profileRest        int
	profileTheme       string
	profileUsername    string
	profileDisplayName string
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile and preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		printProfile(user)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change preferences",
	Long: `Change profile fields and preferences. Only the flags you pass change.

EXAMPLES:

  lift profile set --unit kg
  lift profile set --rest 120
  lift profile set --theme dark --display-name "Sam"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		prefs, profile := profileUpdateFromFlags(cmd)
		if prefs == (models.PreferencesUpdate{}) && profile == (models.ProfileUpdate{}) {
			return fmt.Errorf("nothing to change: pass --unit, --rest, --theme, --username or --display-name")
		}
		if err := prefs.Validate(); err != nil {
			return err
		}

		ctx := cmd.Context()
		if prefs != (models.PreferencesUpdate{}) {
			if err := db.UpdatePreferences(ctx, user.ID, prefs); err != nil {
				return fmt.Errorf("failed to update preferences: %w", err)
			}
		}
		if profile != (models.ProfileUpdate{}) {
			if err := db.UpdateProfile(ctx, user.ID, profile); err != nil {
				return fmt.Errorf("failed to update profile: %w", err)
			}
		}

		updated, err := db.GetUser(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to reload profile: %w", err)
		}
		user = updated

		color.Green("✓ Profile updated")
		printProfile(user)
		return nil
	},
}

func init() {
	profileSetCmd.Flags().StringVar(&profileUnit, "unit", "", "weight unit (kg or lbs)")
	profileSetCmd.Flags().IntVar(&profileRest, "rest", 0, "default rest in seconds")
	profileSetCmd.Flags().StringVar(&profileTheme, "theme", "", "light, dark or auto")
	profileSetCmd.Flags().StringVar(&profileUsername, "username", "", "username")
	profileSetCmd.Flags().StringVar(&profileDisplayName, "display-name", "", "display name")

	profileCmd.AddCommand(profileSetCmd)
	rootCmd.AddCommand(profileCmd)
}

// profileUpdateFromFlags builds partial updates from the flags that were set.
func profileUpdateFromFlags(cmd *cobra.Command) (models.PreferencesUpdate, models.ProfileUpdate) {
	var prefs models.PreferencesUpdate
	var profile models.ProfileUpdate
	flags := cmd.Flags()
	if flags.Changed("unit") {
		prefs.WeightUnit = models.Ptr(models.WeightUnit(profileUnit))
	}
	if flags.Changed("rest") {
		prefs.DefaultRestSeconds = models.Ptr(profileRest)
	}
	if flags.Changed("theme") {
		prefs.Theme = models.Ptr(models.Theme(profileTheme))
	}
	if flags.Changed("username") {
		profile.Username = models.Ptr(profileUsername)
	}
	if flags.Changed("display-name") {
		profile.DisplayName = models.Ptr(profileDisplayName)
	}
	return prefs, profile
}

func printProfile(u *models.User) {
	faint := color.New(color.Faint)
	color.New(color.Bold).Println(u.DisplayName)
	fmt.Printf("  Username:     %s\n", u.Username)
	fmt.Printf("  Weight unit:  %s\n", u.Preferences.WeightUnit)
	fmt.Printf("  Default rest: %s\n", formatDuration(u.Preferences.DefaultRestSeconds))
	fmt.Printf("  Theme:        %s\n", u.Preferences.Theme)
	fmt.Printf("  %s\n", faint.Sprintf("Member since %s", u.CreatedAt.Local().Format("Jan 2, 2006")))
}
