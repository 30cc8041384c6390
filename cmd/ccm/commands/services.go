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

// NewServicesCommand creates the services command group.
func NewServicesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service"},
		Short:   "Manage service objects",
		Long:    "List, create, update, and delete TCP and UDP service definitions",
	}

	cmd.AddCommand(newServicesListCommand())
	cmd.AddCommand(newServicesGetCommand())
	cmd.AddCommand(newServicesCreateCommand())
	cmd.AddCommand(newServicesUpdateCommand())
	cmd.AddCommand(newServicesDeleteCommand())

	return cmd
}

func newServicesListCommand() *cobra.Command {
	var (
		flags     listFlags
		protocols []string
		tags      []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List services",
		Long:  "List all services visible in a folder, snippet, or device",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			opts := flags.options()
			if cmd.Flags().Changed("protocols") {
				opts.WithFilter("protocols", protocols)
			}

			if cmd.Flags().Changed("tags") {
				opts.WithFilter("tags", tags)
			}

			services, err := client.Services().List(cmd.Context(), flags.scope(), opts)
			if err != nil {
				return fmt.Errorf("failed to list services: %w", err)
			}

			return outputServicesList(services)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&protocols, "protocols", nil, "filter by protocol (tcp, udp)")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "filter by tag")

	return cmd
}

func outputServicesList(services []ccm.Service) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(services)
	case OutputFormatYAML:
		return encodeYAML(services)
	default:
		return outputServicesTable(services)
	}
}

func outputServicesTable(services []ccm.Service) error {
	if len(services) == 0 {
		_, _ = os.Stdout.WriteString("No services found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Protocol", "Port", "Container", "Tags")

	for _, service := range services {
		protocol, port := serviceForm(&service)
		_ = table.Append(service.Name, protocol, port,
			containerCell(service.Folder, service.Snippet, service.Device),
			listCell(service.Tags))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// serviceForm reports a service's protocol and port specification.
func serviceForm(service *ccm.Service) (string, string) {
	if service.Protocol == nil {
		return NotAvailable, NotAvailable
	}

	if service.Protocol.TCP != nil {
		return "tcp", service.Protocol.TCP.Port
	}

	if service.Protocol.UDP != nil {
		return "udp", service.Protocol.UDP.Port
	}

	return NotAvailable, NotAvailable
}

func newServicesGetCommand() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "get SERVICE_ID_OR_NAME",
		Short: "Get service details",
		Long:  "Display a service by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			service, err := resolveService(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			return outputServiceDetails(service)
		},
	}

	flags.register(cmd)

	return cmd
}

// resolveService looks up a service by id first, then by name within the
// given container.
func resolveService(ctx context.Context, client ccm.Client, nameOrID string, flags *scopeFlags) (*ccm.Service, error) {
	service, err := client.Services().Get(ctx, nameOrID)
	if err == nil {
		return service, nil
	}

	if !ccm.IsNotFound(err) || !flags.isSet() {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	service, err = client.Services().Fetch(ctx, flags.scope(), nameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to find service '%s': %w", nameOrID, err)
	}

	return service, nil
}

func outputServiceDetails(service *ccm.Service) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(service)
	case OutputFormatYAML:
		return encodeYAML(service)
	default:
		protocol, port := serviceForm(service)

		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", service.ID)
		_ = table.Append("Name", service.Name)
		_ = table.Append("Protocol", protocol)
		_ = table.Append("Port", port)
		_ = table.Append("Description", service.Description)
		_ = table.Append("Container", containerCell(service.Folder, service.Snippet, service.Device))
		_ = table.Append("Tags", listCell(service.Tags))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// buildServiceProtocol constructs the protocol definition from the --tcp and
// --udp flags. Exactly one must be set.
func buildServiceProtocol(tcpPort, udpPort string) (*ccm.ServiceProtocol, error) {
	if (tcpPort == "") == (udpPort == "") {
		return nil, ErrServiceProtoRequired
	}

	if tcpPort != "" {
		return &ccm.ServiceProtocol{TCP: &ccm.ProtocolSpec{Port: tcpPort}}, nil
	}

	return &ccm.ServiceProtocol{UDP: &ccm.ProtocolSpec{Port: udpPort}}, nil
}

func newServicesCreateCommand() *cobra.Command {
	var (
		flags       scopeFlags
		description string
		tcpPort     string
		udpPort     string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "create SERVICE_NAME",
		Short: "Create a new service",
		Long:  "Create a TCP or UDP service definition in a folder, snippet, or device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			protocol, err := buildServiceProtocol(tcpPort, udpPort)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.ServiceCreate{
				Scope:       flags.scope(),
				Name:        args[0],
				Description: description,
				Protocol:    protocol,
				Tags:        tags,
			}

			service, err := client.Services().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create service: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created service '%s' (%s)\n", service.Name, service.ID)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&description, "description", "", "service description")
	cmd.Flags().StringVar(&tcpPort, "tcp", "", "TCP port list, e.g. 80,8080 or 1024-2048")
	cmd.Flags().StringVar(&udpPort, "udp", "", "UDP port list")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags to attach")

	return cmd
}

func newServicesUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		tcpPort     string
		udpPort     string
		tags        []string
	)

	cmd := &cobra.Command{
		Use:   "update SERVICE_ID",
		Short: "Update a service",
		Long:  "Replace a service's definition in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			protocol, err := buildServiceProtocol(tcpPort, udpPort)
			if err != nil {
				return err
			}

			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.ServiceUpdate{
				Name:        name,
				Description: description,
				Protocol:    protocol,
				Tags:        tags,
			}

			service, err := client.Services().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update service: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated service '%s'\n", service.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "service name")
	cmd.Flags().StringVar(&description, "description", "", "service description")
	cmd.Flags().StringVar(&tcpPort, "tcp", "", "TCP port list")
	cmd.Flags().StringVar(&udpPort, "udp", "", "UDP port list")
	cmd.Flags().StringSliceVar(&tags, "tag", nil, "tags to attach")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newServicesDeleteCommand() *cobra.Command {
	var (
		flags scopeFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete SERVICE_ID_OR_NAME",
		Short: "Delete a service",
		Long:  "Delete a service by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			service, err := resolveService(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Delete service '%s'? (y/N): ", service.Name)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			err = client.Services().Delete(cmd.Context(), service.ID)
			if err != nil {
				return fmt.Errorf("failed to delete service: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted service '%s'\n", service.Name)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
