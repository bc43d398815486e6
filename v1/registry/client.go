package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// contentType is the media type the Confluent registry speaks.
const contentType = "application/vnd.schemaregistry.v1+json"

// maxErrorBody caps how much of an error response body is kept in an APIError.
const maxErrorBody = 512

// Registry provides an interface for administering a Confluent Schema Registry.
// It covers the read and delete surface used by the auditing and lifecycle
// components; it intentionally has no registration or serialization concerns.
type Registry interface {
	// ListSubjects returns all subject names. With includeDeleted the
	// listing also contains soft-deleted subjects.
	ListSubjects(ctx context.Context, includeDeleted bool) ([]string, error)

	// GetVersions returns the registered version numbers of a subject.
	GetVersions(ctx context.Context, subject string) ([]int, error)

	// GetVersion retrieves one version of a subject.
	GetVersion(ctx context.Context, subject string, version int) (*Version, error)

	// GetLatestVersion retrieves the latest version of a subject.
	GetLatestVersion(ctx context.Context, subject string) (*Version, error)

	// GetGlobalConfig returns the registry-wide compatibility setting.
	GetGlobalConfig(ctx context.Context) (*CompatibilityConfig, error)

	// GetSubjectConfig returns the subject-level compatibility override.
	// Subjects without an override yield ErrNotFound.
	GetSubjectConfig(ctx context.Context, subject string) (*CompatibilityConfig, error)

	// DeleteSubject deletes a subject and returns the deleted version
	// numbers. A plain delete is a soft delete; with permanent the subject
	// is removed for good (the registry requires a prior soft delete).
	DeleteSubject(ctx context.Context, subject string, permanent bool) ([]int, error)

	// DeleteVersion deletes a single version of a subject and returns
	// the deleted version number.
	DeleteVersion(ctx context.Context, subject string, version int) (int, error)
}

// Client is the default implementation of Registry
// that communicates with a Confluent Schema Registry over HTTP.
//
// Unlike a serializer-side registry client there is no schema caching here:
// the admin surface has to observe live registry state, and a cache would
// mask exactly the deletions this client exists to perform.
type Client struct {
	url        string
	httpClient *http.Client

	// Authentication
	apiKey    string
	apiSecret string
}

// NewClient creates a new schema registry admin client.
// Returns the concrete *Client type.
func NewClient(config Config) (*Client, error) {
	if config.URL == "" {
		return nil, fmt.Errorf("schema registry URL is required")
	}

	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	return &Client{
		url: strings.TrimRight(config.URL, "/"),
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		apiKey:    config.APIKey,
		apiSecret: config.APISecret,
	}, nil
}

// do performs one registry request and decodes the JSON response into out.
// Non-200 responses become an *APIError carrying the status and a body
// excerpt; 404 additionally matches ErrNotFound. out may be nil when the
// response body is irrelevant.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, out interface{}) error {
	endpoint := c.url + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if c.apiKey != "" {
		req.SetBasicAuth(c.apiKey, c.apiSecret)
	}
	req.Header.Set("Accept", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// ListSubjects returns all subject names registered in the registry.
// With includeDeleted the listing also contains soft-deleted subjects.
// The order is whatever the registry returned; callers must not rely on it.
func (c *Client) ListSubjects(ctx context.Context, includeDeleted bool) ([]string, error) {
	query := url.Values{}
	if includeDeleted {
		query.Set("deleted", "true")
	}

	var subjects []string
	if err := c.do(ctx, http.MethodGet, "/subjects", query, &subjects); err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

// GetVersions returns the registered version numbers of a subject.
func (c *Client) GetVersions(ctx context.Context, subject string) ([]int, error) {
	var versions []int
	path := fmt.Sprintf("/subjects/%s/versions", subject)
	if err := c.do(ctx, http.MethodGet, path, nil, &versions); err != nil {
		return nil, fmt.Errorf("failed to fetch versions for %q: %w", subject, err)
	}
	return versions, nil
}

// GetVersion retrieves a specific version of a subject.
func (c *Client) GetVersion(ctx context.Context, subject string, version int) (*Version, error) {
	var v Version
	path := fmt.Sprintf("/subjects/%s/versions/%d", subject, version)
	if err := c.do(ctx, http.MethodGet, path, nil, &v); err != nil {
		return nil, fmt.Errorf("failed to fetch version %d of %q: %w", version, subject, err)
	}
	v.Subject = subject
	return &v, nil
}

// GetLatestVersion retrieves the latest version of a subject.
func (c *Client) GetLatestVersion(ctx context.Context, subject string) (*Version, error) {
	var v Version
	path := fmt.Sprintf("/subjects/%s/versions/latest", subject)
	if err := c.do(ctx, http.MethodGet, path, nil, &v); err != nil {
		return nil, fmt.Errorf("failed to fetch latest version of %q: %w", subject, err)
	}
	v.Subject = subject
	return &v, nil
}

// GetGlobalConfig returns the registry-wide compatibility setting.
func (c *Client) GetGlobalConfig(ctx context.Context) (*CompatibilityConfig, error) {
	var cfg CompatibilityConfig
	if err := c.do(ctx, http.MethodGet, "/config", nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to fetch global config: %w", err)
	}
	return &cfg, nil
}

// GetSubjectConfig returns the compatibility override of a subject.
// Subjects without an override yield an error matching ErrNotFound;
// callers usually fall back to the global config in that case.
func (c *Client) GetSubjectConfig(ctx context.Context, subject string) (*CompatibilityConfig, error) {
	var cfg CompatibilityConfig
	path := fmt.Sprintf("/config/%s", subject)
	if err := c.do(ctx, http.MethodGet, path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to fetch config for %q: %w", subject, err)
	}
	return &cfg, nil
}

// DeleteSubject deletes all versions of a subject and returns the deleted
// version numbers. Without permanent this is a soft delete: the subject
// disappears from plain listings but stays recoverable. With permanent the
// registry removes it for good; the registry itself requires that a soft
// delete happened first.
func (c *Client) DeleteSubject(ctx context.Context, subject string, permanent bool) ([]int, error) {
	query := url.Values{}
	if permanent {
		query.Set("permanent", "true")
	}

	var versions []int
	path := fmt.Sprintf("/subjects/%s", subject)
	if err := c.do(ctx, http.MethodDelete, path, query, &versions); err != nil {
		return nil, fmt.Errorf("failed to delete subject %q: %w", subject, err)
	}
	return versions, nil
}

// DeleteVersion soft-deletes a single version of a subject and returns the
// deleted version number.
func (c *Client) DeleteVersion(ctx context.Context, subject string, version int) (int, error) {
	var deleted int
	path := fmt.Sprintf("/subjects/%s/versions/%d", subject, version)
	if err := c.do(ctx, http.MethodDelete, path, nil, &deleted); err != nil {
		return 0, fmt.Errorf("failed to delete version %d of %q: %w", version, subject, err)
	}
	return deleted, nil
}

// Timeout reports the per-request timeout the client was built with.
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}
