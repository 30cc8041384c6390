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

// NewAddressGroupsCommand creates the address-groups command group.
func NewAddressGroupsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "address-groups",
		Aliases: []string{"address-group", "groups"},
		Short:   "Manage address groups",
		Long:    "List, create, update, and delete address groups",
	}

	cmd.AddCommand(newAddressGroupsListCommand())
	cmd.AddCommand(newAddressGroupsGetCommand())
	cmd.AddCommand(newAddressGroupsCreateCommand())
	cmd.AddCommand(newAddressGroupsUpdateCommand())
	cmd.AddCommand(newAddressGroupsDeleteCommand())

	return cmd
}

func newAddressGroupsListCommand() *cobra.Command {
	var (
		flags  listFlags
		types  []string
		values []string
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List address groups",
		Long:  "List all address groups visible in a folder, snippet, or device",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			opts := flags.options()
			if cmd.Flags().Changed("types") {
				opts.WithFilter("types", types)
			}

			if cmd.Flags().Changed("values") {
				opts.WithFilter("values", values)
			}

			if cmd.Flags().Changed("tags") {
				opts.WithFilter("tags", tags)
			}

			groups, err := client.AddressGroups().List(cmd.Context(), flags.scope(), opts)
			if err != nil {
				return fmt.Errorf("failed to list address groups: %w", err)
			}

			return outputAddressGroupsList(groups)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&types, "types", nil, "filter by group type (static, dynamic)")
	cmd.Flags().StringSliceVar(&values, "values", nil, "filter by member or filter expression")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "filter by tag")

	return cmd
}

func outputAddressGroupsList(groups []ccm.AddressGroup) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(groups)
	case OutputFormatYAML:
		return encodeYAML(groups)
	default:
		return outputAddressGroupsTable(groups)
	}
}

func outputAddressGroupsTable(groups []ccm.AddressGroup) error {
	if len(groups) == 0 {
		_, _ = os.Stdout.WriteString("No address groups found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Type", "Members", "Container", "Tags")

	for _, group := range groups {
		kind, members := addressGroupForm(&group)
		_ = table.Append(group.Name, kind, members,
			containerCell(group.Folder, group.Snippet, group.Device),
			listCell(group.Tags))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// addressGroupForm reports whether a group is static or dynamic and
// summarizes its membership.
func addressGroupForm(group *ccm.AddressGroup) (string, string) {
	if group.Dynamic != nil {
		return "dynamic", group.Dynamic.Filter
	}

	if len(group.Static) > 0 {
		return "static", listCell(group.Static)
	}

	return NotAvailable, NotAvailable
}

func newAddressGroupsGetCommand() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "get GROUP_ID_OR_NAME",
		Short: "Get address group details",
		Long:  "Display an address group by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			group, err := resolveAddressGroup(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			return outputAddressGroupDetails(group)
		},
	}

	flags.register(cmd)

	return cmd
}

// resolveAddressGroup looks up an address group by id first, then by name
// within the given container.
func resolveAddressGroup(ctx context.Context, client ccm.Client, nameOrID string, flags *scopeFlags) (*ccm.AddressGroup, error) {
	group, err := client.AddressGroups().Get(ctx, nameOrID)
	if err == nil {
		return group, nil
	}

	if !ccm.IsNotFound(err) || !flags.isSet() {
		return nil, fmt.Errorf("failed to get address group: %w", err)
	}

	group, err = client.AddressGroups().Fetch(ctx, flags.scope(), nameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to find address group '%s': %w", nameOrID, err)
	}

	return group, nil
}

func outputAddressGroupDetails(group *ccm.AddressGroup) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(group)
	case OutputFormatYAML:
		return encodeYAML(group)
	default:
		kind, members := addressGroupForm(group)

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", group.ID)
		_ = table.Append("Name", group.Name)
		_ = table.Append("Type", kind)
		_ = table.Append("Members", members)
		_ = table.Append("Description", group.Description)
		_ = table.Append("Container", containerCell(group.Folder, group.Snippet, group.Device))
		_ = table.Append("Tags", listCell(group.Tags))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func newAddressGroupsCreateCommand() *cobra.Command {
	var (
		flags       scopeFlags
		description string
		static      []string
		dynamic     string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "create GROUP_NAME",
		Short: "Create a new address group",
		Long:  "Create a static or dynamic address group in a folder, snippet, or device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (len(static) == 0) == (dynamic == "") {
				return ErrGroupFormRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.AddressGroupCreate{
				Scope:       flags.scope(),
				Name:        args[0],
				Description: description,
				Static:      static,
				Tags:        tags,
			}

			if dynamic != "" {
				request.Dynamic = &ccm.DynamicFilter{Filter: dynamic}
			}

			group, err := client.AddressGroups().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create address group: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created address group '%s' (%s)\n", group.Name, group.ID)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&description, "description", "", "group description")
	cmd.Flags().StringSliceVar(&static, "static", nil, "static member addresses")
	cmd.Flags().StringVar(&dynamic, "dynamic", "", "dynamic tag filter, e.g. \"'web' and 'prod'\"")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags to attach")

	return cmd
}

func newAddressGroupsUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		static      []string
		dynamic     string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update GROUP_ID",
		Short: "Update an address group",
		Long:  "Replace an address group's definition in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.AddressGroupUpdate{
				Name:        name,
				Description: description,
				Static:      static,
				Tags:        tags,
			}

			if dynamic != "" {
				request.Dynamic = &ccm.DynamicFilter{Filter: dynamic}
			}

			group, err := client.AddressGroups().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update address group: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated address group '%s'\n", group.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")
	cmd.Flags().StringSliceVar(&static, "static", nil, "static member addresses")
	cmd.Flags().StringVar(&dynamic, "dynamic", "", "dynamic tag filter")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags to attach")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAddressGroupsDeleteCommand() *cobra.Command {
	var (
		flags scopeFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete GROUP_ID_OR_NAME",
		Short: "Delete an address group",
		Long:  "Delete an address group by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			group, err := resolveAddressGroup(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Delete address group '%s'? (y/N): ", group.Name)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			err = client.AddressGroups().Delete(cmd.Context(), group.ID)
			if err != nil {
				return fmt.Errorf("failed to delete address group: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted address group '%s'\n", group.Name)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
