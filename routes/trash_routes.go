package routes

import (
	"fmt"

	"drivedash/models"

	"github.com/spf13/cobra"
)

func RegisterTrashRoutes(root *cobra.Command, c *ServiceContainer) {
	var yes bool
	rm := &cobra.Command{
		Use:   "rm <item>",
		Short: "Move a file or folder to the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			item, err := c.lookup(args[0])
			if err != nil {
				return err
			}
			c.Dashboard.RequestTrash(item)
			if !yes {
				return confirmPrompt(cmd, item)
			}
			if err := c.Dashboard.ConfirmTrash(cmd.Context()); err != nil {
				return err
			}
			return c.render()
		},
	}
	rm.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation")

	root.AddCommand(
		rm,
		&cobra.Command{
			Use:   "confirm",
			Short: "Confirm the pending move to trash",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if c.Dashboard.Snapshot().PendingTrash == nil {
					return fmt.Errorf("nothing to confirm")
				}
				if err := c.Dashboard.ConfirmTrash(cmd.Context()); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "cancel",
			Short: "Cancel the pending move to trash",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, args []string) {
				c.Dashboard.CancelTrash()
			},
		},
	)
}

func confirmPrompt(cmd *cobra.Command, item models.Item) error {
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "Move %q to trash? Type `confirm` or `cancel`.\n", item.ItemName())
	return err
}
