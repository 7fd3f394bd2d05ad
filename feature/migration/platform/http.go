package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// httpClient is the JSON-over-HTTP implementation of Client.
type httpClient struct {
	base   string
	apiKey string
	http   *http.Client
}

// NewHTTPClient creates a Client talking to the platform's REST API.
func NewHTTPClient(cfg Config) Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &httpClient{
		base:   cfg.BaseURL,
		apiKey: cfg.ApiKey,
		http:   &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

func (c *httpClient) do(ctx context.Context, method, path string, body any, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, err
	}
	if out != nil && resp.StatusCode < 300 && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp.StatusCode, fmt.Errorf("malformed platform response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

func (c *httpClient) FindEntity(ctx context.Context, groupID, entityID string) (Entity, error) {
	var ent RemoteEntity
	code, err := c.do(ctx, http.MethodGet,
		fmt.Sprintf("/groups/%s/entities/%s", url.PathEscape(groupID), url.PathEscape(entityID)),
		nil, &ent)
	if err != nil {
		return nil, err
	}
	switch {
	case code == http.StatusNotFound:
		return nil, nil
	case code >= 300:
		return nil, fmt.Errorf("platform returned %d for entity %s/%s", code, groupID, entityID)
	}
	return &ent, nil
}

func (c *httpClient) CreateEntity(ctx context.Context, groupID string, fields CreateFields) (*CreateResult, error) {
	var payload struct {
		Entity *RemoteEntity `json:"entity"`
		Errors []string      `json:"errors"`
	}
	code, err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/groups/%s/entities", url.PathEscape(groupID)),
		fields, &payload)
	if err != nil {
		return nil, err
	}
	switch {
	case code == http.StatusOK || code == http.StatusCreated:
		return &CreateResult{OK: true, Entity: payload.Entity}, nil
	case code == http.StatusUnprocessableEntity:
		if len(payload.Errors) == 0 {
			payload.Errors = []string{"creation rejected by platform"}
		}
		return &CreateResult{OK: false, Errors: payload.Errors}, nil
	default:
		return nil, fmt.Errorf("platform returned %d creating entity in group %s", code, groupID)
	}
}

func (c *httpClient) FindParentGroup(ctx context.Context, groupID string) (bool, error) {
	code, err := c.do(ctx, http.MethodGet,
		"/groups/"+url.PathEscape(groupID), nil, nil)
	if err != nil {
		return false, err
	}
	switch {
	case code == http.StatusNotFound:
		return false, nil
	case code >= 300:
		return false, fmt.Errorf("platform returned %d for group %s", code, groupID)
	}
	return true, nil
}

func (c *httpClient) SetStatus(ctx context.Context, groupID, entityID string, status Status) error {
	body := map[string]string{"status": string(status)}
	code, err := c.do(ctx, http.MethodPut,
		fmt.Sprintf("/groups/%s/entities/%s/status", url.PathEscape(groupID), url.PathEscape(entityID)),
		body, nil)
	if err != nil {
		return err
	}
	if code >= 300 {
		return fmt.Errorf("platform returned %d setting status of %s/%s", code, groupID, entityID)
	}
	return nil
}

func (c *httpClient) EnsureLabel(ctx context.Context, name string) (bool, error) {
	code, err := c.do(ctx, http.MethodPut, "/labels/"+url.PathEscape(name), nil, nil)
	if err != nil {
		return false, err
	}
	if code >= 300 {
		return false, fmt.Errorf("platform returned %d ensuring label %q", code, name)
	}
	return true, nil
}

func (c *httpClient) ApplyLabel(ctx context.Context, groupID, entityID, name string) error {
	code, err := c.do(ctx, http.MethodPost,
		fmt.Sprintf("/groups/%s/entities/%s/labels/%s",
			url.PathEscape(groupID), url.PathEscape(entityID), url.PathEscape(name)),
		nil, nil)
	if err != nil {
		return err
	}
	if code >= 300 {
		return fmt.Errorf("platform returned %d applying label %q to %s/%s", code, name, groupID, entityID)
	}
	return nil
}

func (c *httpClient) RemoveLabel(ctx context.Context, groupID, entityID, name string) error {
	code, err := c.do(ctx, http.MethodDelete,
		fmt.Sprintf("/groups/%s/entities/%s/labels/%s",
			url.PathEscape(groupID), url.PathEscape(entityID), url.PathEscape(name)),
		nil, nil)
	if err != nil {
		return err
	}
	if code >= 300 && code != http.StatusNotFound {
		return fmt.Errorf("platform returned %d removing label %q from %s/%s", code, name, groupID, entityID)
	}
	return nil
}
