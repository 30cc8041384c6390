package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewSecurityRulesCommand creates the security-rules command group.
func NewSecurityRulesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "security-rules",
		Aliases: []string{"security-rule", "rules"},
		Short:   "Manage security rules",
		Long:    "List, create, update, and delete security policy rules",
	}

	cmd.AddCommand(newSecurityRulesListCommand())
	cmd.AddCommand(newSecurityRulesGetCommand())
	cmd.AddCommand(newSecurityRulesCreateCommand())
	cmd.AddCommand(newSecurityRulesUpdateCommand())
	cmd.AddCommand(newSecurityRulesDeleteCommand())

	return cmd
}

func newSecurityRulesListCommand() *cobra.Command {
	var (
		flags    listFlags
		action   []string
		disabled bool
		tags     []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List security rules",
		Long:  "List all security rules visible in a folder, snippet, or device",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			opts := flags.options()
			if cmd.Flags().Changed("action") {
				opts.WithFilter("action", action)
			}

			if cmd.Flags().Changed("disabled") {
				opts.WithFilter("disabled", disabled)
			}

			if cmd.Flags().Changed("tags") {
				opts.WithFilter("tags", tags)
			}

			rules, err := client.SecurityRules().List(cmd.Context(), flags.scope(), opts)
			if err != nil {
				return fmt.Errorf("failed to list security rules: %w", err)
			}

			return outputSecurityRulesList(rules)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&action, "action", nil, "filter by action (allow, deny, drop)")
	cmd.Flags().BoolVar(&disabled, "disabled", false, "filter by disabled state")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "filter by tag")

	return cmd
}

func outputSecurityRulesList(rules []ccm.SecurityRule) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(rules)
	case OutputFormatYAML:
		return encodeYAML(rules)
	default:
		return outputSecurityRulesTable(rules)
	}
}

func outputSecurityRulesTable(rules []ccm.SecurityRule) error {
	if len(rules) == 0 {
		_, _ = os.Stdout.WriteString("No security rules found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Action", "Source", "Destination", "Disabled", "Container")

	for _, rule := range rules {
		_ = table.Append(rule.Name, rule.Action,
			listCell(rule.Source), listCell(rule.Destination),
			strconv.FormatBool(rule.Disabled),
			containerCell(rule.Folder, rule.Snippet, rule.Device))
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newSecurityRulesGetCommand() *cobra.Command {
	var flags scopeFlags

	cmd := &cobra.Command{
		Use:   "get RULE_ID_OR_NAME",
		Short: "Get security rule details",
		Long:  "Display a security rule by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			rule, err := resolveSecurityRule(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			return outputSecurityRuleDetails(rule)
		},
	}

	flags.register(cmd)

	return cmd
}

// resolveSecurityRule looks up a security rule by id first, then by name
// within the given container.
func resolveSecurityRule(ctx context.Context, client ccm.Client, nameOrID string, flags *scopeFlags) (*ccm.SecurityRule, error) {
	rule, err := client.SecurityRules().Get(ctx, nameOrID)
	if err == nil {
		return rule, nil
	}

	if !ccm.IsNotFound(err) || !flags.isSet() {
		return nil, fmt.Errorf("failed to get security rule: %w", err)
	}

	rule, err = client.SecurityRules().Fetch(ctx, flags.scope(), nameOrID)
	if err != nil {
		return nil, fmt.Errorf("failed to find security rule '%s': %w", nameOrID, err)
	}

	return rule, nil
}

func outputSecurityRuleDetails(rule *ccm.SecurityRule) error {
	output := viper.GetString("output")
	switch output {
	case OutputFormatJSON:
		return encodeJSON(rule)
	case OutputFormatYAML:
		return encodeYAML(rule)
	default:
		table := tablewriter.NewWriter(os.Stdout)
		table.Header("Property", "Value")
		_ = table.Append("ID", rule.ID)
		_ = table.Append("Name", rule.Name)
		_ = table.Append("Action", rule.Action)
		_ = table.Append("Disabled", strconv.FormatBool(rule.Disabled))
		_ = table.Append("From", listCell(rule.From))
		_ = table.Append("To", listCell(rule.To))
		_ = table.Append("Source", listCell(rule.Source))
		_ = table.Append("Destination", listCell(rule.Destination))
		_ = table.Append("Application", listCell(rule.Application))
		_ = table.Append("Service", listCell(rule.Service))
		_ = table.Append("Log Setting", rule.LogSetting)
		_ = table.Append("Container", containerCell(rule.Folder, rule.Snippet, rule.Device))
		_ = table.Append("Tags", listCell(rule.Tags))

		err := table.Render()
		if err != nil {
			return fmt.Errorf("failed to render table: %w", err)
		}

		return nil
	}
}

// securityRuleFlags holds the rule definition flags shared by create and
// update.
type securityRuleFlags struct {
	description string
	action      string
	disabled    bool
	from        []string
	to          []string
	source      []string
	destination []string
	application []string
	service     []string
	tags        []string
	logSetting  string
}

func (f *securityRuleFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.description, "description", "", "rule description")
	cmd.Flags().StringVar(&f.action, "action", "allow", "rule action (allow, deny, drop)")
	cmd.Flags().BoolVar(&f.disabled, "disabled", false, "create the rule disabled")
	cmd.Flags().StringSliceVar(&f.from, "from", []string{"any"}, "source zones")
	cmd.Flags().StringSliceVar(&f.to, "to", []string{"any"}, "destination zones")
	cmd.Flags().StringSliceVar(&f.source, "source", []string{"any"}, "source addresses")
	cmd.Flags().StringSliceVar(&f.destination, "destination", []string{"any"}, "destination addresses")
	cmd.Flags().StringSliceVar(&f.application, "application", []string{"any"}, "applications")
	cmd.Flags().StringSliceVar(&f.service, "service", []string{"any"}, "services")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "tags to attach")
	cmd.Flags().StringVar(&f.logSetting, "log-setting", "", "log forwarding profile")
}

func newSecurityRulesCreateCommand() *cobra.Command {
	var (
		scope scopeFlags
		rule  securityRuleFlags
	)

	cmd := &cobra.Command{
		Use:   "create RULE_NAME",
		Short: "Create a new security rule",
		Long:  "Create a security rule in a folder, snippet, or device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.SecurityRuleCreate{
				Scope:       scope.scope(),
				Name:        args[0],
				Description: rule.description,
				Action:      rule.action,
				Disabled:    rule.disabled,
				From:        rule.from,
				To:          rule.to,
				Source:      rule.source,
				Destination: rule.destination,
				Application: rule.application,
				Service:     rule.service,
				Tags:        rule.tags,
				LogSetting:  rule.logSetting,
			}

			created, err := client.SecurityRules().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create security rule: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Created security rule '%s' (%s)\n", created.Name, created.ID)

			return nil
		},
	}

	scope.register(cmd)
	rule.register(cmd)

	return cmd
}

func newSecurityRulesUpdateCommand() *cobra.Command {
	var (
		name string
		rule securityRuleFlags
	)

	cmd := &cobra.Command{
		Use:   "update RULE_ID",
		Short: "Update a security rule",
		Long:  "Replace a security rule's definition in place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			request := &ccm.SecurityRuleUpdate{
				Name:        name,
				Description: rule.description,
				Action:      rule.action,
				Disabled:    rule.disabled,
				From:        rule.from,
				To:          rule.to,
				Source:      rule.source,
				Destination: rule.destination,
				Application: rule.application,
				Service:     rule.service,
				Tags:        rule.tags,
				LogSetting:  rule.logSetting,
			}

			updated, err := client.SecurityRules().Update(cmd.Context(), args[0], request)
			if err != nil {
				return fmt.Errorf("failed to update security rule: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Updated security rule '%s'\n", updated.Name)

			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "rule name")
	rule.register(cmd)
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newSecurityRulesDeleteCommand() *cobra.Command {
	var (
		flags scopeFlags
		force bool
	)

	cmd := &cobra.Command{
		Use:   "delete RULE_ID_OR_NAME",
		Short: "Delete a security rule",
		Long:  "Delete a security rule by id, or by name within a container",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient(cmd.Context())
			if err != nil {
				return err
			}

			rule, err := resolveSecurityRule(cmd.Context(), client, args[0], &flags)
			if err != nil {
				return err
			}

			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Delete security rule '%s'? (y/N): ", rule.Name)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			err = client.SecurityRules().Delete(cmd.Context(), rule.ID)
			if err != nil {
				return fmt.Errorf("failed to delete security rule: %w", err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted security rule '%s'\n", rule.Name)

			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}
