package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewTagsCommand creates the tags command group.
func NewTagsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tags",
		Aliases: []string{"tag"},
		Short:   "Manage tags",
		Long:    "List, create, update, and delete tags",
	}

	cmd.AddCommand(newTagsListCommand())
	cmd.AddCommand(newTagsGetCommand())
	cmd.AddCommand(newTagsCreateCommand())
	cmd.AddCommand(newTagsUpdateCommand())
	cmd.AddCommand(newTagsDeleteCommand())

	return cmd
}

func newTagsListCommand() *cobra.Command {
	var (
		flags  listFlags
		colors []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		Long:  "List all tags visible in a folder, snippet, or device",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			opts := flags.options()
			if cmd.Flags().Changed("colors") {
				opts.WithFilter("colors", colors)
			}

			tags, err := client.Tags().List(cmd.Context(), flags.scope(), opts)
			if err != nil {
				return fmt.Errorf("failed to list tags: %w", err)
			}

			return outputTagsList(tags)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&colors, "colors", nil, "filter by color")

	return cmd
}

func outputTagsList(tags []ccm.Tag) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(tags)
	case OutputFormatYAML:
		return encodeYAML(tags)
	default:
		return outputTagsTable(tags)
	}
}

func outputTagsTable(tags []ccm.Tag) error {
	if len(tags) == 0 {
		_, _ = os.Stdout.WriteString("No tags found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Color", "Comments", "Container")

	for _, tag := range tags {
		color := tag.Color
		if color == "" {
			color = NotAvailable
		}

		_ = table.Append(tag.Name, color, tag.Comments,
			containerCell(tag.Folder, tag.Snippet, tag.Device))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newTagsGetCommand() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "get TAG_ID_OR_NAME",
		Short: "Get tag details",
		Long:  "Display a tag by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			tag, err := resolveTag(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			return outputTagDetails(tag)
		},
	}

	flags.register(cmd)

	return cmd
}

// resolveTag looks up a tag by id first, then by name within the given
// container.
func resolveTag(ctx context.Context, client ccm.Client, nameOrID string, flags *scopeFlags) (*ccm.Tag, error) {
	tag, err := client.Tags().Get(ctx, nameOrID)
	if err == nil {
		return tag, nil
	}

	if !ccm.IsNotFound(err) || !flags.isSet() {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	tag, err = client.Tags().Fetch(ctx, flags.scope(), nameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to find tag '%s': %w", nameOrID, err)
	}

	return tag, nil
}

func outputTagDetails(tag *ccm.Tag) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(tag)
	case OutputFormatYAML:
		return encodeYAML(tag)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", tag.ID)
		_ = table.Append("Name", tag.Name)
		_ = table.Append("Color", tag.Color)
		_ = table.Append("Comments", tag.Comments)
		_ = table.Append("Container", containerCell(tag.Folder, tag.Snippet, tag.Device))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func newTagsCreateCommand() *cobra.Command {
	var (
		flags    scopeFlags
		color    string
		comments string
	)

	cmd := &cobra.Command{
		Use:   "create TAG_NAME",
		Short: "Create a new tag",
		Long:  "Create a tag in a folder, snippet, or device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.TagCreate{
				Scope:    flags.scope(),
				Name:     args[0],
				Color:    color,
				Comments: comments,
			}

			tag, err := client.Tags().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create tag: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created tag '%s' (%s)\n", tag.Name, tag.ID)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&color, "color", "", "tag color, e.g. Red")
	cmd.Flags().StringVar(&comments, "comments", "", "tag comments")

	return cmd
}

func newTagsUpdateCommand() *cobra.Command {
	var (
		name     string
		color    string
		comments string
	)

	cmd := &cobra.Command{
		Use:   "update TAG_ID",
		Short: "Update a tag",
		Long:  "Replace a tag's definition in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.TagUpdate{
				Name:     name,
				Color:    color,
				Comments: comments,
			}

			tag, err := client.Tags().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update tag: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated tag '%s'\n", tag.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "tag name")
	cmd.Flags().StringVar(&color, "color", "", "tag color")
	cmd.Flags().StringVar(&comments, "comments", "", "tag comments")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTagsDeleteCommand() *cobra.Command {
	var (
		flags scopeFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete TAG_ID_OR_NAME",
		Short: "Delete a tag",
		Long:  "Delete a tag by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			tag, err := resolveTag(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Delete tag '%s'? (y/N): ", tag.Name)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			err = client.Tags().Delete(cmd.Context(), tag.ID)
			if err != nil {
				return fmt.Errorf("failed to delete tag: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted tag '%s'\n", tag.Name)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
