package routes

import (
	"strings"

	"github.com/spf13/cobra"
)

func RegisterSearchRoutes(root *cobra.Command, c *ServiceContainer) {
	root.AddCommand(
		&cobra.Command{
			Use:   "search [term...]",
			Short: "Search the whole drive; with no term, leave search",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.Dashboard.SetSearchTerm(cmd.Context(), strings.Join(args, " ")); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "shared",
			Short: "List the items other people shared with you",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.Dashboard.SharedWithMe(cmd.Context()); err != nil {
					return err
				}
				return c.render()
			},
		},
	)
}
