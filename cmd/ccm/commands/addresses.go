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

// NewAddressesCommand creates the addresses command group.
func NewAddressesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "addresses",
		Aliases: []string{"address"},
		Short:   "Manage address objects",
		Long:    "List, create, update, and delete address objects",
	}

	cmd.AddCommand(newAddressesListCommand())
	cmd.AddCommand(newAddressesGetCommand())
	cmd.AddCommand(newAddressesCreateCommand())
	cmd.AddCommand(newAddressesUpdateCommand())
	cmd.AddCommand(newAddressesDeleteCommand())

	return cmd
}

func newAddressesListCommand() *cobra.Command {
	var (
		flags  listFlags
		types  []string
		values []string
		tags   []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List addresses",
		Long:  "List all addresses visible in a folder, snippet, or device",
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

			addresses, err := client.Addresses().List(cmd.Context(), flags.scope(), opts)
			if err != nil {
				return fmt.Errorf("failed to list addresses: %w", err)
			}

			return outputAddressesList(addresses)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&types, "types", nil, "filter by address type (ip-netmask, ip-range, ip-wildcard, fqdn)")
	cmd.Flags().StringSliceVar(&values, "values", nil, "filter by address value")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "filter by tag")

	return cmd
}

func outputAddressesList(addresses []ccm.Address) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(addresses)
	case OutputFormatYAML:
		return encodeYAML(addresses)
	default:
		return outputAddressesTable(addresses)
	}
}

func outputAddressesTable(addresses []ccm.Address) error {
	if len(addresses) == 0 {
		_, _ = os.Stdout.WriteString("No addresses found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Type", "Value", "Container", "Tags")

	for _, address := range addresses {
		kind, value := addressForm(&address)
		_ = table.Append(address.Name, kind, value,
			containerCell(address.Folder, address.Snippet, address.Device),
			listCell(address.Tags))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// addressForm reports which address form a record uses and its value.
func addressForm(address *ccm.Address) (string, string) {
	switch {
	case address.IPNetmask != "":
		return "ip-netmask", address.IPNetmask
	case address.IPRange != "":
		return "ip-range", address.IPRange
	case address.IPWildcard != "":
		return "ip-wildcard", address.IPWildcard
	case address.FQDN != "":
		return "fqdn", address.FQDN
	default:
		return NotAvailable, NotAvailable
	}
}

func newAddressesGetCommand() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "get ADDRESS_ID_OR_NAME",
		Short: "Get address details",
		Long:  "Display an address by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			address, err := resolveAddress(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			return outputAddressDetails(address)
		},
	}

	flags.register(cmd)

	return cmd
}

// resolveAddress looks up an address by id first, then by name within the
// given container.
func resolveAddress(ctx context.Context, client ccm.Client, nameOrID string, flags *scopeFlags) (*ccm.Address, error) {
	address, err := client.Addresses().Get(ctx, nameOrID)
	if err == nil {
		return address, nil
	}

	if !ccm.IsNotFound(err) || !flags.isSet() {
		return nil, fmt.Errorf("failed to get address: %w", err)
	}

	address, err = client.Addresses().Fetch(ctx, flags.scope(), nameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to find address '%s': %w", nameOrID, err)
	}

	return address, nil
}

func outputAddressDetails(address *ccm.Address) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(address)
	case OutputFormatYAML:
		return encodeYAML(address)
	default:
		kind, value := addressForm(address)

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", address.ID)
		_ = table.Append("Name", address.Name)
		_ = table.Append("Type", kind)
		_ = table.Append("Value", value)
		_ = table.Append("Description", address.Description)
		_ = table.Append("Container", containerCell(address.Folder, address.Snippet, address.Device))
		_ = table.Append("Tags", listCell(address.Tags))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

func newAddressesCreateCommand() *cobra.Command {
	var (
		flags       scopeFlags
		description string
		ipNetmask   string
		ipRange     string
		ipWildcard  string
		fqdn        string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "create ADDRESS_NAME",
		Short: "Create a new address",
		Long:  "Create a new address object in a folder, snippet, or device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			forms := 0
			for _, form := range []string{ipNetmask, ipRange, ipWildcard, fqdn} {
				if form != "" {
					forms++
				}
			}

			if forms != 1 {
				return ErrAddressFormRequired
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.AddressCreate{
				Scope:       flags.scope(),
				Name:        args[0],
				Description: description,
				IPNetmask:   ipNetmask,
				IPRange:     ipRange,
				IPWildcard:  ipWildcard,
				FQDN:        fqdn,
				Tags:        tags,
			}

			address, err := client.Addresses().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create address: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created address '%s' (%s)\n", address.Name, address.ID)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&description, "description", "", "address description")
	cmd.Flags().StringVar(&ipNetmask, "ip-netmask", "", "IP address or network, e.g. 10.0.0.0/24")
	cmd.Flags().StringVar(&ipRange, "ip-range", "", "IP range, e.g. 10.0.0.10-10.0.0.20")
	cmd.Flags().StringVar(&ipWildcard, "ip-wildcard", "", "IP wildcard mask")
	cmd.Flags().StringVar(&fqdn, "fqdn", "", "fully qualified domain name")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags to attach")

	return cmd
}

func newAddressesUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		ipNetmask   string
		ipRange     string
		ipWildcard  string
		fqdn        string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update ADDRESS_ID",
		Short: "Update an address",
		Long:  "Replace an address object's definition in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.AddressUpdate{
				Name:        name,
				Description: description,
				IPNetmask:   ipNetmask,
				IPRange:     ipRange,
				IPWildcard:  ipWildcard,
				FQDN:        fqdn,
				Tags:        tags,
			}

			address, err := client.Addresses().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update address: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated address '%s'\n", address.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "address name")
	cmd.Flags().StringVar(&description, "description", "", "address description")
	cmd.Flags().StringVar(&ipNetmask, "ip-netmask", "", "IP address or network")
	cmd.Flags().StringVar(&ipRange, "ip-range", "", "IP range")
	cmd.Flags().StringVar(&ipWildcard, "ip-wildcard", "", "IP wildcard mask")
	cmd.Flags().StringVar(&fqdn, "fqdn", "", "fully qualified domain name")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags to attach")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newAddressesDeleteCommand() *cobra.Command {
	var (
		flags scopeFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete ADDRESS_ID_OR_NAME",
		Short: "Delete an address",
		Long:  "Delete an address by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			address, err := resolveAddress(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Delete address '%s'? (y/N): ", address.Name)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			err = client.Addresses().Delete(cmd.Context(), address.ID)
			if err != nil {
				return fmt.Errorf("failed to delete address: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted address '%s'\n", address.Name)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
