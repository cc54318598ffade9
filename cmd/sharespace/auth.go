package main

import (
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"sharespace/internal/client"
)

func (c *cli) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			email, err := c.valueOrPrompt(email, "Email")
			if err != nil {
				return err
			}
			password, err := c.passwordOrPrompt(password)
			if err != nil {
				return err
			}

			out, err := c.sess.Login(cmd.Context(), email, password)
			if err != nil {
				c.log.Debug("login failed", zap.Int("status", client.StatusOf(err)), zap.Error(err))
				return errors.New(client.MessageOr(err, client.LoginFailed))
			}
			c.report(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (c *cli) signupCmd() *cobra.Command {
	var name, email, password string
	cmd := &cobra.Command{
		Use:     "signup",
		Aliases: []string{"register"},
		Short:   "Create an account and store the session token",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := c.valueOrPrompt(name, "Name")
			if err != nil {
				return err
			}
			email, err := c.valueOrPrompt(email, "Email")
			if err != nil {
				return err
			}
			password, err := c.passwordOrPrompt(password)
			if err != nil {
				return err
			}

			out, err := c.sess.Signup(cmd.Context(), name, email, password)
			if err != nil {
				c.log.Debug("signup failed", zap.Int("status", client.StatusOf(err)), zap.Error(err))
				return errors.New(client.MessageOr(err, client.SignupFailed))
			}
			c.report(out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.sess.Logout(); err != nil {
				return err
			}
			c.printf("Logged out.\n")
			return nil
		},
	}
}

func (c *cli) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check the stored token with the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := c.token()
			if err != nil {
				return err
			}
			res, err := c.api.Verify(cmd.Context(), token)
			if err != nil {
				if client.StatusOf(err) == http.StatusUnauthorized {
					if clearErr := c.sess.Logout(); clearErr != nil {
						c.log.Warn("clear session failed", zap.Error(clearErr))
					}
					return errors.New("session expired, please log in again")
				}
				return err
			}
			if res.User == nil {
				c.printf("Token is valid.\n")
				return nil
			}
			c.printf("Token is valid for %s <%s>.\n", res.User.Name, res.User.Email)
			return nil
		},
	}
}

func (c *cli) report(out client.Outcome) {
	if out.Toast != "" {
		c.printf("%s\n", out.Toast)
	}
	if out.User != nil {
		c.printf("Signed in as %s <%s>.\n", out.User.Name, out.User.Email)
	}
}
