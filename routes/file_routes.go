package routes

import (
	"fmt"
	"strings"

	"drivedash/listing"
	"drivedash/models"

	"github.com/spf13/cobra"
)

func RegisterFileRoutes(root *cobra.Command, c *ServiceContainer) {
	root.AddCommand(
		&cobra.Command{
			Use:   "open <item>",
			Short: "Open a file in the browser, or enter a folder",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := c.lookup(args[0])
				if err != nil {
					return err
				}
				if err := c.Listing.Activate(cmd.Context(), item); err != nil {
					return err
				}
				if _, ok := item.(models.Folder); ok {
					return c.render()
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "rename <item> <new name>",
			Short: "Rename a file or folder",
			Args:  cobra.MinimumNArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := c.lookup(args[0])
				if err != nil {
					return err
				}
				c.Listing.BeginRename(item)
				c.Listing.SetDraft(strings.Join(args[1:], " "))
				if err := c.Listing.CommitRename(cmd.Context()); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "upload <path>...",
			Short: "Upload local files into the current folder",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				files := make([]models.UploadSource, 0, len(args))
				for _, path := range args {
					src, err := models.UploadSourceFromPath(path)
					if err != nil {
						return fmt.Errorf("cannot upload %s: %w", path, err)
					}
					files = append(files, src)
				}
				if err := c.Dashboard.UploadBatch(cmd.Context(), files); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "menu <item> [share|rename|trash]",
			Short: "Toggle the action menu of an item, or run one of its actions",
			Args:  cobra.RangeArgs(1, 2),
			RunE: func(cmd *cobra.Command, args []string) error {
				item, err := c.lookup(args[0])
				if err != nil {
					return err
				}
				if len(args) == 1 {
					c.Listing.ToggleMenu(item)
					return c.render()
				}
				action, err := listing.ParseAction(args[1])
				if err != nil {
					return err
				}
				dialog, err := c.Listing.Choose(item, action)
				if err != nil {
					return err
				}
				switch action {
				case listing.ActionShare:
					fmt.Fprintf(cmd.OutOrStdout(), "Sharing %q: use `share %s <email>` or `link %s`.\n",
						dialog.Item().ItemName(), args[0], args[0])
					return nil
				case listing.ActionTrash:
					return confirmPrompt(cmd, item)
				}
				return c.render()
			},
		},
	)
}
