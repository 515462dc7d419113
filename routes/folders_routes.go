package routes

import (
	"fmt"
	"strconv"
	"strings"

	"drivedash/models"
	"drivedash/state"

	"github.com/spf13/cobra"
)

func RegisterFolderRoutes(root *cobra.Command, c *ServiceContainer) {
	root.AddCommand(
		&cobra.Command{
			Use:     "ls",
			Aliases: []string{"refresh"},
			Short:   "Reload and show the current listing",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.Dashboard.Refresh(cmd.Context()); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "cd <folder|..|/>",
			Short: "Enter a folder from the listing, go up, or go to My Drive",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				switch args[0] {
				case "/":
					if err := c.Dashboard.ClickBreadcrumb(ctx, 0); err != nil {
						return err
					}
				case "..":
					crumbs := c.Dashboard.Snapshot().Navigation.Breadcrumbs
					if len(crumbs) < 2 {
						return fmt.Errorf("already at %s", models.RootName)
					}
					if err := c.Dashboard.ClickBreadcrumb(ctx, len(crumbs)-2); err != nil {
						return err
					}
				default:
					item, err := c.lookup(args[0])
					if err != nil {
						return err
					}
					if _, ok := item.(models.Folder); !ok {
						return fmt.Errorf("%q is not a folder", item.ItemName())
					}
					if err := c.Listing.Activate(ctx, item); err != nil {
						return err
					}
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "crumb [index]",
			Short: "Show the breadcrumbs, or jump to one of them",
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				crumbs := c.Dashboard.Snapshot().Navigation.Breadcrumbs
				if len(args) == 0 {
					for i, b := range crumbs {
						fmt.Fprintf(cmd.OutOrStdout(), "%d  %s\n", i, b.Name)
					}
					return nil
				}
				index, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("breadcrumb index %q is not a number", args[0])
				}
				if err := c.Dashboard.ClickBreadcrumb(cmd.Context(), index); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:   "mkdir [name]",
			Short: "Create a folder in the current folder",
			Long:  "Create a folder in the current folder. Without a name the folder is called \"Untitled folder\".",
			RunE: func(cmd *cobra.Command, args []string) error {
				c.Dashboard.OpenNewFolderDialog()
				if len(args) > 0 {
					c.Dashboard.SetNewFolderName(strings.Join(args, " "))
				}
				if _, err := c.Dashboard.CreateFolder(cmd.Context(), c.Dashboard.Snapshot().NewFolder.Draft); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:       "sort <name-asc|name-desc|date-desc|date-asc>",
			Short:     "Change the sort order of folder listings",
			Args:      cobra.ExactArgs(1),
			ValidArgs: sortArgs(),
			RunE: func(cmd *cobra.Command, args []string) error {
				opt, err := state.ParseSortOption(args[0])
				if err != nil {
					return err
				}
				if err := c.Dashboard.SetSort(cmd.Context(), opt); err != nil {
					return err
				}
				return c.render()
			},
		},
		&cobra.Command{
			Use:       "view <grid|list>",
			Short:     "Switch between the grid and the list view",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{string(state.ViewGrid), string(state.ViewList)},
			RunE: func(cmd *cobra.Command, args []string) error {
				mode, err := state.ParseViewMode(args[0])
				if err != nil {
					return err
				}
				c.Dashboard.SetViewMode(mode)
				return c.render()
			},
		},
	)
}

func sortArgs() []string {
	out := make([]string, len(state.SortOptions))
	for i, opt := range state.SortOptions {
		out[i] = string(opt)
	}
	return out
}
