package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/ccm-client/internal/http"
	"github.com/fivetwenty-io/ccm-client/pkg/ccm"
)

// resourceConfig names one resource: its endpoint, the nouns used in error
// messages, and the typed filters its listings accept.
type resourceConfig struct {
	endpoint string
	singular string
	plural   string
	filters  []ccm.FilterSpec
}

// resourceClient is the shared engine behind every resource client. The
// per-resource clients differ only in endpoint, filter table, and record
// type.
type resourceClient[T any] struct {
	httpClient *http.Client
	endpoint   string
	singular   string
	plural     string
	filters    []ccm.FilterSpec
	limit      int
	logger     ccm.Logger
}

// newResourceClient creates a resource engine. A non-positive limit selects
// the default page size.
func newResourceClient[T any](httpClient *http.Client, cfg resourceConfig, limit int, logger ccm.Logger) *resourceClient[T] {
	if limit <= 0 {
		limit = ccm.DefaultPageSize
	}

	return &resourceClient[T]{
		httpClient: httpClient,
		endpoint:   cfg.endpoint,
		singular:   cfg.singular,
		plural:     cfg.plural,
		filters:    cfg.filters,
		limit:      limit,
		logger:     logger,
	}
}

// create POSTs the request body, with its container scope flattened into the
// JSON, and decodes the created record.
func (r *resourceClient[T]) create(ctx context.Context, scope ccm.Scope, body interface{}) (*T, error) {
	err := scope.Validate()
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.singular, err)
	}

	resp, err := r.httpClient.Post(ctx, r.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", r.singular, err)
	}

	return r.decodeRecord(resp.Body)
}

// get retrieves a single record by id.
func (r *resourceClient[T]) get(ctx context.Context, id string) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("getting %s: %w", r.singular, ccm.ErrMissingID)
	}

	resp, err := r.httpClient.Get(ctx, r.endpoint+"/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", r.singular, err)
	}

	return r.decodeRecord(resp.Body)
}

// update replaces a record in place. The API keys updates on the object id,
// so the body carries no container scope.
func (r *resourceClient[T]) update(ctx context.Context, id string, body interface{}) (*T, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("updating %s: %w", r.singular, ccm.ErrMissingID)
	}

	resp, err := r.httpClient.Put(ctx, r.endpoint+"/"+id, body)
	if err != nil {
		return nil, fmt.Errorf("updating %s: %w", r.singular, err)
	}

	return r.decodeRecord(resp.Body)
}

// delete removes a record by id.
func (r *resourceClient[T]) delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("deleting %s: %w", r.singular, ccm.ErrMissingID)
	}

	_, err := r.httpClient.Delete(ctx, r.endpoint+"/"+id)
	if err != nil {
		return fmt.Errorf("deleting %s: %w", r.singular, err)
	}

	return nil
}

// list retrieves every record in the scope, walking pages until a short one,
// then applies client-side filters.
func (r *resourceClient[T]) list(ctx context.Context, scope ccm.Scope, opts *ccm.ListOptions) ([]T, error) {
	key, value, err := scope.Param()
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.plural, err)
	}

	records, err := ccm.WalkPages(ctx, r.limit, func(ctx context.Context, limit, offset int) ([]ccm.RawRecord, error) {
		query := url.Values{}
		query.Set(key, value)
		query.Set("limit", strconv.Itoa(limit))
		query.Set("offset", strconv.Itoa(offset))

		resp, err := r.httpClient.Get(ctx, r.endpoint, query)
		if err != nil {
			return nil, err
		}

		envelope, err := ccm.DecodeEnvelope(resp.Body)
		if err != nil {
			return nil, err
		}

		return envelope.Records, nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.plural, err)
	}

	filtered, err := ccm.ApplyFilters(records, scope, opts, r.filters)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.plural, err)
	}

	typed, err := ccm.DecodeRecords[T](filtered)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", r.plural, err)
	}

	return typed, nil
}

// fetch retrieves a single record by name within the scope. The name is sent
// as a server-side filter; the response may still hold several candidates,
// which the resolver narrows to one.
func (r *resourceClient[T]) fetch(ctx context.Context, scope ccm.Scope, name string) (*T, error) {
	key, value, err := scope.Param()
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.singular, err)
	}

	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("fetching %s: %w", r.singular, ccm.ErrMissingName)
	}

	query := url.Values{}
	query.Set(key, value)
	query.Set("name", name)

	resp, err := r.httpClient.Get(ctx, r.endpoint, query)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.singular, err)
	}

	envelope, err := ccm.DecodeEnvelope(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.singular, err)
	}

	record, err := ccm.ResolveByName(envelope.Records, name, r.logger)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.singular, err)
	}

	typed, err := ccm.DecodeRecord[T](record)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", r.singular, err)
	}

	return typed, nil
}

// maxLimit reports the page size used by list.
func (r *resourceClient[T]) maxLimit() int {
	return r.limit
}

// setMaxLimit changes the page size used by subsequent list calls.
func (r *resourceClient[T]) setMaxLimit(limit int) error {
	err := ccm.ValidatePageSize(limit)
	if err != nil {
		return fmt.Errorf("setting %s page size: %w", r.singular, err)
	}

	r.limit = limit

	return nil
}

// decodeRecord parses a single-object response body.
func (r *resourceClient[T]) decodeRecord(body []byte) (*T, error) {
	var record T

	err := json.Unmarshal(body, &record)
	if err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", r.singular, err)
	}

	return &record, nil
}
