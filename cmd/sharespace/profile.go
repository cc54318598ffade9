package main

import (
	"errors"

	"github.com/spf13/cobra"

	"sharespace/internal/client"
	"sharespace/internal/mood"
)

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the profile of the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := c.token()
			if err != nil {
				return err
			}
			user, err := c.api.Me(cmd.Context(), token)
			if err != nil {
				return err
			}
			c.printProfile(user)
			return nil
		},
	}
}

func (c *cli) profileCmd() *cobra.Command {
	profile := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	var name, bio, picture string
	set := &cobra.Command{
		Use:   "set",
		Short: "Update name, bio or profile picture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var update client.ProfileUpdate
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("bio") {
				update.Bio = &bio
			}
			if cmd.Flags().Changed("picture") {
				update.ProfilePictureURL = &picture
			}
			if update == (client.ProfileUpdate{}) {
				return errors.New("nothing to update, pass --name, --bio or --picture")
			}

			token, err := c.token()
			if err != nil {
				return err
			}
			res, err := c.api.UpdateMe(cmd.Context(), token, update)
			if err != nil {
				return err
			}
			if res.Message != "" {
				c.printf("%s\n", res.Message)
			}
			if res.User != nil {
				if err := c.local.SaveSession("", res.User); err != nil {
					return err
				}
				c.printProfile(res.User)
			}
			return nil
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&bio, "bio", "", "bio, at most 500 characters")
	set.Flags().StringVar(&picture, "picture", "", "profile picture URL")

	profile.AddCommand(set)
	return profile
}

func (c *cli) moodCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mood",
		Short: "Open the mood tracker",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runUI(true)
		},
	}
}

func (c *cli) printProfile(u *client.User) {
	c.printf("ID:      %s\n", u.ID)
	c.printf("Name:    %s\n", u.Name)
	c.printf("Email:   %s\n", u.Email)
	if u.Bio != "" {
		c.printf("Bio:     %s\n", u.Bio)
	}
	if u.ProfilePictureURL != nil {
		c.printf("Picture: %s\n", *u.ProfilePictureURL)
	}
	if !u.CreatedAt.IsZero() {
		c.printf("Joined:  %s\n", mood.FormatTimestamp(u.CreatedAt))
	}
}
