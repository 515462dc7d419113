package routes

import (
	"fmt"

	"github.com/spf13/cobra"
)

func RegisterAuthRoutes(root *cobra.Command, c *ServiceContainer) {
	root.AddCommand(
		&cobra.Command{
			Use:   "login <token>",
			Short: "Sign in with a session token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.Auth.SignIn(args[0]); err != nil {
					return err
				}
				c.Notices.Success("Signed in.")
				if err := c.Dashboard.Refresh(cmd.Context()); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "whoami",
			Short: "Show the signed-in user",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				user, err := c.Dashboard.CurrentUser()
				if err != nil {
					return err
				}
				name := user.Name
				if name == "" {
					name = user.ID
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", name, user.Email)
				return err
			},
		},
		&cobra.Command{
			Use:   "logout",
			Short: "Sign out and forget the stored token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.Dashboard.SignOut()
			},
		},
	)
}
