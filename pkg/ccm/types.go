package ccm

import (
	"encoding/json"
	"fmt"
)

// Address is a named address object: a host, network, range, wildcard, or
// domain name. Exactly one of the address forms is set.
type Address struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	IPNetmask  string `json:"ip_netmask,omitempty"`
	IPRange    string `json:"ip_range,omitempty"`
	IPWildcard string `json:"ip_wildcard,omitempty"`
	FQDN       string `json:"fqdn,omitempty"`

	Tags []string `json:"tag,omitempty"`

	Folder  string `json:"folder,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Device  string `json:"device,omitempty"`
}

// AddressCreate is the payload for creating an address.
type AddressCreate struct {
	Scope

	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IPNetmask   string   `json:"ip_netmask,omitempty"`
	IPRange     string   `json:"ip_range,omitempty"`
	IPWildcard  string   `json:"ip_wildcard,omitempty"`
	FQDN        string   `json:"fqdn,omitempty"`
	Tags        []string `json:"tag,omitempty"`
}

// AddressUpdate is the payload for replacing an address in place.
type AddressUpdate struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	IPNetmask   string   `json:"ip_netmask,omitempty"`
	IPRange     string   `json:"ip_range,omitempty"`
	IPWildcard  string   `json:"ip_wildcard,omitempty"`
	FQDN        string   `json:"fqdn,omitempty"`
	Tags        []string `json:"tag,omitempty"`
}

// DynamicFilter selects address group members by tag expression, for example
// "'web' and 'prod'".
type DynamicFilter struct {
	Filter string `json:"filter"`
}

// AddressGroup is a named collection of addresses. Static groups list their
// members; dynamic groups select members with a tag filter. Exactly one of
// Static or Dynamic is set.
type AddressGroup struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Static      []string       `json:"static,omitempty"`
	Dynamic     *DynamicFilter `json:"dynamic,omitempty"`
	Tags        []string       `json:"tag,omitempty"`

	Folder  string `json:"folder,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Device  string `json:"device,omitempty"`
}

// AddressGroupCreate is the payload for creating an address group.
type AddressGroupCreate struct {
	Scope

	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Static      []string       `json:"static,omitempty"`
	Dynamic     *DynamicFilter `json:"dynamic,omitempty"`
	Tags        []string       `json:"tag,omitempty"`
}

// AddressGroupUpdate is the payload for replacing an address group in place.
type AddressGroupUpdate struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Static      []string       `json:"static,omitempty"`
	Dynamic     *DynamicFilter `json:"dynamic,omitempty"`
	Tags        []string       `json:"tag,omitempty"`
}

// ProtocolOverride tunes session timeouts for a service.
type ProtocolOverride struct {
	Timeout          int `json:"timeout,omitempty"`
	HalfcloseTimeout int `json:"halfclose_timeout,omitempty"`
	TimewaitTimeout  int `json:"timewait_timeout,omitempty"`
}

// ProtocolSpec gives the port list for one transport protocol, for example
// "80,8080" or "1024-2048".
type ProtocolSpec struct {
	Port     string            `json:"port"`
	Override *ProtocolOverride `json:"override,omitempty"`
}

// ServiceProtocol holds a service's protocol definition. Exactly one of TCP
// or UDP is set.
type ServiceProtocol struct {
	TCP *ProtocolSpec `json:"tcp,omitempty"`
	UDP *ProtocolSpec `json:"udp,omitempty"`
}

// Service is a TCP or UDP service definition.
type Service struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Protocol    *ServiceProtocol `json:"protocol,omitempty"`
	Tags        []string         `json:"tag,omitempty"`

	Folder  string `json:"folder,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Device  string `json:"device,omitempty"`
}

// ServiceCreate is the payload for creating a service.
type ServiceCreate struct {
	Scope

	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Protocol    *ServiceProtocol `json:"protocol,omitempty"`
	Tags        []string         `json:"tag,omitempty"`
}

// ServiceUpdate is the payload for replacing a service in place.
type ServiceUpdate struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Protocol    *ServiceProtocol `json:"protocol,omitempty"`
	Tags        []string         `json:"tag,omitempty"`
}

// Tag is a label that can be attached to other configuration objects.
type Tag struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Comments string `json:"comments,omitempty"`

	Folder  string `json:"folder,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Device  string `json:"device,omitempty"`
}

// TagCreate is the payload for creating a tag.
type TagCreate struct {
	Scope

	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Comments string `json:"comments,omitempty"`
}

// TagUpdate is the payload for replacing a tag in place.
type TagUpdate struct {
	Name     string `json:"name"`
	Color    string `json:"color,omitempty"`
	Comments string `json:"comments,omitempty"`
}

// SecurityRule is a single policy rule.
type SecurityRule struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	Action   string `json:"action,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`

	From        []string `json:"from,omitempty"`
	To          []string `json:"to,omitempty"`
	Source      []string `json:"source,omitempty"`
	Destination []string `json:"destination,omitempty"`
	Application []string `json:"application,omitempty"`
	Service     []string `json:"service,omitempty"`
	Tags        []string `json:"tag,omitempty"`

	LogSetting string `json:"log_setting,omitempty"`

	Folder  string `json:"folder,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Device  string `json:"device,omitempty"`
}

// SecurityRuleCreate is the payload for creating a security rule.
type SecurityRuleCreate struct {
	Scope

	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Action      string   `json:"action,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
	From        []string `json:"from,omitempty"`
	To          []string `json:"to,omitempty"`
	Source      []string `json:"source,omitempty"`
	Destination []string `json:"destination,omitempty"`
	Application []string `json:"application,omitempty"`
	Service     []string `json:"service,omitempty"`
	Tags        []string `json:"tag,omitempty"`
	LogSetting  string   `json:"log_setting,omitempty"`
}

// SecurityRuleUpdate is the payload for replacing a security rule in place.
type SecurityRuleUpdate struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Action      string   `json:"action,omitempty"`
	Disabled    bool     `json:"disabled,omitempty"`
	From        []string `json:"from,omitempty"`
	To          []string `json:"to,omitempty"`
	Source      []string `json:"source,omitempty"`
	Destination []string `json:"destination,omitempty"`
	Application []string `json:"application,omitempty"`
	Service     []string `json:"service,omitempty"`
	Tags        []string `json:"tag,omitempty"`
	LogSetting  string   `json:"log_setting,omitempty"`
}

// DecodeRecord converts a raw record into its typed form.
func DecodeRecord[T any](record RawRecord) (*T, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	var out T

	err = json.Unmarshal(data, &out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}

	return &out, nil
}

// DecodeRecords converts raw records into their typed form, preserving order.
func DecodeRecords[T any](records []RawRecord) ([]T, error) {
	out := make([]T, 0, len(records))

	for i, record := range records {
		typed, err := DecodeRecord[T](record)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}

		out = append(out, *typed)
	}

	return out, nil
}
