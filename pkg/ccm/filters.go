package ccm

import (
	"fmt"
	"sort"
)

// ListOptions narrow the results of a List call after pagination completes.
// A nil *ListOptions applies no filtering.
type ListOptions struct {
	// ExactMatch keeps only records defined directly in the requested
	// container, dropping records inherited from ancestors.
	ExactMatch bool

	// ExcludeFolders drops records defined in the named folders.
	ExcludeFolders []string
	// ExcludeSnippets drops records defined in the named snippets.
	ExcludeSnippets []string
	// ExcludeDevices drops records defined on the named devices.
	ExcludeDevices []string

	// Filters holds resource-specific filters keyed by option name. The
	// keys a resource supports are listed in its client documentation.
	Filters map[string]interface{}
}

// NewListOptions returns empty options ready for chaining.
func NewListOptions() *ListOptions {
	return &ListOptions{}
}

// WithExactMatch toggles exact container matching.
func (o *ListOptions) WithExactMatch(on bool) *ListOptions {
	o.ExactMatch = on

	return o
}

// WithExcludeFolders adds folders to exclude from results.
func (o *ListOptions) WithExcludeFolders(folders ...string) *ListOptions {
	o.ExcludeFolders = append(o.ExcludeFolders, folders...)

	return o
}

// WithExcludeSnippets adds snippets to exclude from results.
func (o *ListOptions) WithExcludeSnippets(snippets ...string) *ListOptions {
	o.ExcludeSnippets = append(o.ExcludeSnippets, snippets...)

	return o
}

// WithExcludeDevices adds devices to exclude from results.
func (o *ListOptions) WithExcludeDevices(devices ...string) *ListOptions {
	o.ExcludeDevices = append(o.ExcludeDevices, devices...)

	return o
}

// WithFilter sets a resource-specific filter by option key.
func (o *ListOptions) WithFilter(key string, value interface{}) *ListOptions {
	if o.Filters == nil {
		o.Filters = make(map[string]interface{})
	}

	o.Filters[key] = value

	return o
}

// FilterKind describes how a resource filter compares its option value
// against a record field.
type FilterKind int

const (
	// FilterList intersects a list of wanted values with the record's
	// values. An empty wanted list matches no records.
	FilterList FilterKind = iota
	// FilterScalar compares a single string for equality.
	FilterScalar
	// FilterBool compares a boolean. Records missing the field count as
	// false.
	FilterBool
)

// FilterSpec declares one typed filter a resource supports.
type FilterSpec struct {
	// Key is the option name callers use in ListOptions.Filters.
	Key string

	// Field is the record field the filter inspects.
	Field string

	// Kind selects the comparison behavior.
	Kind FilterKind

	// Extract overrides field lookup for values derived from record
	// structure, such as an address's form. Consulted only for FilterList.
	Extract func(RawRecord) []string
}

// ApplyFilters runs the filtering pipeline over records: exact-match against
// the request scope, container exclusions, then resource-specific filters.
// Filter options are validated before any record is inspected, so invalid
// values surface even when the record set is empty.
func ApplyFilters(records []RawRecord, scope Scope, opts *ListOptions, specs []FilterSpec) ([]RawRecord, error) {
	if opts == nil {
		return records, nil
	}

	typed, err := normalizeFilters(opts.Filters, specs)
	if err != nil {
		return nil, err
	}

	out := records

	if opts.ExactMatch {
		out = filterExactMatch(out, scope)
	}

	out = excludeContainers(out, scopeFolder, opts.ExcludeFolders)
	out = excludeContainers(out, scopeSnippet, opts.ExcludeSnippets)
	out = excludeContainers(out, scopeDevice, opts.ExcludeDevices)

	for _, filter := range typed {
		out = filter.apply(out)
	}

	return out, nil
}

// recordFilter is a validated resource-specific filter ready to run.
type recordFilter struct {
	spec   FilterSpec
	values []string
	value  string
	flag   bool
}

// normalizeFilters validates filter options against the resource's specs and
// returns them in deterministic key order.
func normalizeFilters(filters map[string]interface{}, specs []FilterSpec) ([]recordFilter, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	bySpec := make(map[string]FilterSpec, len(specs))
	for _, spec := range specs {
		bySpec[spec.Key] = spec
	}

	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	out := make([]recordFilter, 0, len(keys))

	for _, key := range keys {
		spec, ok := bySpec[key]
		if !ok {
			return nil, fmt.Errorf("%w: unknown filter %q", ErrInvalidFilterValue, key)
		}

		filter := recordFilter{spec: spec}
		raw := filters[key]

		switch spec.Kind {
		case FilterList:
			values, ok := toStringList(raw)
			if !ok {
				return nil, fmt.Errorf("%w: filter %q takes a list of strings", ErrInvalidFilterValue, key)
			}

			filter.values = values
		case FilterScalar:
			value, ok := raw.(string)
			if !ok {
				return nil, fmt.Errorf("%w: filter %q takes a string", ErrInvalidFilterValue, key)
			}

			filter.value = value
		case FilterBool:
			flag, ok := raw.(bool)
			if !ok {
				return nil, fmt.Errorf("%w: filter %q takes a bool", ErrInvalidFilterValue, key)
			}

			filter.flag = flag
		}

		out = append(out, filter)
	}

	return out, nil
}

func toStringList(raw interface{}) ([]string, bool) {
	switch value := raw.(type) {
	case []string:
		return value, true
	case []interface{}:
		out := make([]string, 0, len(value))

		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}

			out = append(out, s)
		}

		return out, true
	default:
		return nil, false
	}
}

func (f recordFilter) apply(records []RawRecord) []RawRecord {
	out := make([]RawRecord, 0, len(records))

	for _, record := range records {
		if f.matches(record) {
			out = append(out, record)
		}
	}

	return out
}

func (f recordFilter) matches(record RawRecord) bool {
	switch f.spec.Kind {
	case FilterList:
		return matchAny(f.recordValues(record), f.values)
	case FilterScalar:
		value, ok := record.StringField(f.spec.Field)

		return ok && value == f.value
	case FilterBool:
		return record.BoolField(f.spec.Field) == f.flag
	default:
		return false
	}
}

func (f recordFilter) recordValues(record RawRecord) []string {
	if f.spec.Extract != nil {
		return f.spec.Extract(record)
	}

	return record.StringsField(f.spec.Field)
}

// matchAny reports whether any of the record's values appears in the wanted
// set. An empty wanted set matches nothing.
func matchAny(recordValues, wanted []string) bool {
	for _, want := range wanted {
		for _, have := range recordValues {
			if have == want {
				return true
			}
		}
	}

	return false
}

// filterExactMatch keeps records whose container field equals the request
// scope's value.
func filterExactMatch(records []RawRecord, scope Scope) []RawRecord {
	key, value, err := scope.Param()
	if err != nil {
		return records
	}

	out := make([]RawRecord, 0, len(records))

	for _, record := range records {
		have, ok := record.StringField(key)
		if ok && have == value {
			out = append(out, record)
		}
	}

	return out
}

// excludeContainers drops records whose container field matches any of the
// excluded names.
func excludeContainers(records []RawRecord, field string, excluded []string) []RawRecord {
	if len(excluded) == 0 {
		return records
	}

	drop := make(map[string]struct{}, len(excluded))
	for _, name := range excluded {
		drop[name] = struct{}{}
	}

	out := make([]RawRecord, 0, len(records))

	for _, record := range records {
		value, ok := record.StringField(field)
		if ok {
			_, skip := drop[value]
			if skip {
				continue
			}
		}

		out = append(out, record)
	}

	return out
}
