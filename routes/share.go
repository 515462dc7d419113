package routes

import (
	"fmt"
	"strings"

	"drivedash/models"

	"github.com/spf13/cobra"
)

func RegisterShareRoutes(root *cobra.Command, c *ServiceContainer) {
	var role string
	share := &cobra.Command{
		Use:   "share <item> <email>",
		Short: "Give another user access to a file or folder",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := c.lookup(args[0])
			if err != nil {
				return err
			}
			dialog := c.Dashboard.ShareItem(item)
			defer c.Dashboard.CloseShare()
			_, err = dialog.ShareWithUser(cmd.Context(), args[1], models.Role(role))
			return err
		},
	}
	share.Flags().StringVarP(&role, "role", "r", string(models.Roles[0]), "access to grant: "+roleNames())

	root.AddCommand(
		share,
		&cobra.Command{
			Use:   "link <file>",
			Short: "Get a public link to a file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := c.lookup(args[0])
				if err != nil {
					return err
				}
				dialog := c.Dashboard.ShareItem(item)
				defer c.Dashboard.CloseShare()
				url, err := dialog.PublicLink(cmd.Context())
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
				return err
			},
		},
	)
}

func roleNames() string {
	names := make([]string, len(models.Roles))
	for i, r := range models.Roles {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}
