package ccm

import "fmt"

// ResolveByName picks the record whose "name" field equals name. When several
// records match, the first one wins and a warning is logged; when none match,
// ErrNotFound is returned. The chosen record must carry a non-empty id.
func ResolveByName(records []RawRecord, name string, logger Logger) (RawRecord, error) {
	var matches []RawRecord

	for _, record := range records {
		have, ok := record.StringField("name")
		if ok && have == name {
			matches = append(matches, record)
		}
	}

	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	if len(matches) > 1 && logger != nil {
		logger.Warn("multiple records matched name", map[string]interface{}{
			"name":  name,
			"count": len(matches),
		})
	}

	chosen := matches[0]

	id, ok := chosen.StringField("id")
	if !ok || id == "" {
		return nil, fmt.Errorf("%w: record %q has no id", ErrMalformedRecord, name)
	}

	return chosen, nil
}
