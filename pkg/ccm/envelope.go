package ccm

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// RawRecord is a single configuration object as returned by the API, before
// typed decoding.
type RawRecord map[string]interface{}

// StringField returns the named field when it is present and a string.
func (r RawRecord) StringField(key string) (string, bool) {
	value, ok := r[key].(string)

	return value, ok
}

// StringsField returns the named field as a list of strings. A bare string
// is treated as a one-element list; non-string elements are skipped.
func (r RawRecord) StringsField(key string) []string {
	switch value := r[key].(type) {
	case string:
		return []string{value}
	case []interface{}:
		out := make([]string, 0, len(value))

		for _, item := range value {
			s, ok := item.(string)
			if ok {
				out = append(out, s)
			}
		}

		return out
	default:
		return nil
	}
}

// BoolField returns the named field as a bool. Missing or non-bool fields
// return false.
func (r RawRecord) BoolField(key string) bool {
	value, _ := r[key].(bool)

	return value
}

// ResponseShape identifies the JSON layout of a list or fetch response.
type ResponseShape int

const (
	// ShapeWrappedList is an object with a "data" array plus totals.
	ShapeWrappedList ResponseShape = iota
	// ShapeRawList is a bare top-level JSON array.
	ShapeRawList
	// ShapeSingleObject is a single JSON object without a "data" key.
	ShapeSingleObject
)

// String implements fmt.Stringer.
func (s ResponseShape) String() string {
	switch s {
	case ShapeWrappedList:
		return "wrapped-list"
	case ShapeRawList:
		return "raw-list"
	case ShapeSingleObject:
		return "single-object"
	default:
		return "unknown"
	}
}

// Envelope is the normalized form of a list or fetch response body.
type Envelope struct {
	Shape   ResponseShape
	Records []RawRecord

	// Totals reported by wrapped-list responses. They are informational
	// only; pagination never consults them.
	Total  int
	Limit  int
	Offset int
}

// First returns the first record in the envelope.
func (e *Envelope) First() (RawRecord, bool) {
	if len(e.Records) == 0 {
		return nil, false
	}

	return e.Records[0], true
}

// DecodeEnvelope normalizes the three response layouts the API serves: an
// object wrapping a "data" array, a bare array, and a single object. Any
// other layout yields ErrMalformedResponse.
func DecodeEnvelope(body []byte) (*Envelope, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	switch trimmed[0] {
	case '{':
		return decodeObjectEnvelope(trimmed)
	case '[':
		return decodeListEnvelope(trimmed)
	default:
		return nil, fmt.Errorf("%w: expected a JSON object or array", ErrMalformedResponse)
	}
}

// decodeObjectEnvelope handles the wrapped-list and single-object layouts.
// The presence of a "data" key decides between them.
func decodeObjectEnvelope(body []byte) (*Envelope, error) {
	var wrapped struct {
		Data   json.RawMessage `json:"data"`
		Total  int             `json:"total"`
		Limit  int             `json:"limit"`
		Offset int             `json:"offset"`
	}

	err := json.Unmarshal(body, &wrapped)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if wrapped.Data != nil {
		records, err := decodeRecordArray(wrapped.Data)
		if err != nil {
			return nil, err
		}

		return &Envelope{
			Shape:   ShapeWrappedList,
			Records: records,
			Total:   wrapped.Total,
			Limit:   wrapped.Limit,
			Offset:  wrapped.Offset,
		}, nil
	}

	var record RawRecord

	err = json.Unmarshal(body, &record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	return &Envelope{Shape: ShapeSingleObject, Records: []RawRecord{record}}, nil
}

func decodeListEnvelope(body []byte) (*Envelope, error) {
	records, err := decodeRecordArray(body)
	if err != nil {
		return nil, err
	}

	return &Envelope{Shape: ShapeRawList, Records: records}, nil
}

// decodeRecordArray decodes a JSON array whose elements must all be objects.
func decodeRecordArray(data []byte) ([]RawRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, fmt.Errorf("%w: data is not an array", ErrMalformedResponse)
	}

	var records []RawRecord

	err := json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	for i, record := range records {
		if record == nil {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrMalformedResponse, i)
		}
	}

	return records, nil
}
