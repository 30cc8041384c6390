package ccm

import (
	"fmt"
	"strings"
)

// Container query parameter names.
const (
	scopeFolder  = "folder"
	scopeSnippet = "snippet"
	scopeDevice  = "device"
)

// Scope identifies the configuration container that owns a resource.
// Exactly one of Folder, Snippet, or Device must be set.
type Scope struct {
	Folder  string `json:"folder,omitempty"`
	Snippet string `json:"snippet,omitempty"`
	Device  string `json:"device,omitempty"`
}

// InFolder returns a Scope targeting the named folder.
func InFolder(name string) Scope {
	return Scope{Folder: name}
}

// InSnippet returns a Scope targeting the named snippet.
func InSnippet(name string) Scope {
	return Scope{Snippet: name}
}

// OnDevice returns a Scope targeting the named device.
func OnDevice(name string) Scope {
	return Scope{Device: name}
}

// Validate checks that exactly one container is set and that its value is
// not blank.
func (s Scope) Validate() error {
	_, _, err := s.Param()

	return err
}

// Param returns the query parameter name and trimmed value that select the
// scope's container.
func (s Scope) Param() (string, string, error) {
	var (
		key   string
		value string
		count int
	)

	if s.Folder != "" {
		key, value, count = scopeFolder, s.Folder, count+1
	}

	if s.Snippet != "" {
		key, value, count = scopeSnippet, s.Snippet, count+1
	}

	if s.Device != "" {
		key, value, count = scopeDevice, s.Device, count+1
	}

	if count != 1 {
		return "", "", ErrInvalidScope
	}

	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", "", fmt.Errorf("%w: %s", ErrMissingScopeValue, key)
	}

	return key, trimmed, nil
}

// String implements fmt.Stringer.
func (s Scope) String() string {
	key, value, err := s.Param()
	if err != nil {
		return "invalid scope"
	}

	return key + "=" + value
}
