package drs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/helixarchive/common/pkg/httpx"
)

var (
	ErrObjectNotFound = errors.New("drs: object not found")
	ErrUnauthorized   = errors.New("drs: access denied")
)

// ObjectInfo is the subset of the DRS object response the fleet cares about.
type ObjectInfo struct {
	ID            string         `json:"id"`
	Name          string         `json:"name,omitempty"`
	SelfURI       string         `json:"self_uri"`
	Size          int64          `json:"size"`
	Checksums     []Checksum     `json:"checksums"`
	AccessMethods []AccessMethod `json:"access_methods,omitempty"`
	CreatedTime   string         `json:"created_time,omitempty"`
}

type Checksum struct {
	Checksum string `json:"checksum"`
	Type     string `json:"type"`
}

type AccessMethod struct {
	Type      string `json:"type"`
	AccessURL *struct {
		URL string `json:"url"`
	} `json:"access_url,omitempty"`
	AccessID string `json:"access_id,omitempty"`
}

// Client resolves DRS URIs to object metadata via the GA4GH DRS HTTP API.
type Client struct {
	http httpx.Client
}

// NewClient builds a resolver on top of the shared httpx client.
func NewClient(cfg httpx.Config) *Client {
	return &Client{http: httpx.New(cfg)}
}

// NewClientWith wraps a caller-provided httpx client, e.g. for tests.
func NewClientWith(client httpx.Client) *Client {
	return &Client{http: client}
}

// Resolve fetches the object metadata a DRS URI points at. An Authorization
// header value may be passed for servers fronting controlled-access data.
func (c *Client) Resolve(ctx context.Context, rawURI, authorization string) (ObjectInfo, error) {
	uri, err := ParseURI(rawURI)
	if err != nil {
		return ObjectInfo{}, err
	}

	headers := map[string]string{}
	if authorization != "" {
		headers["Authorization"] = authorization
	}

	resp, err := c.http.DoGET(ctx, uri.ObjectURL(), nil, headers)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("drs: resolve %s: %w", rawURI, err)
	}

	switch resp.Status {
	case http.StatusOK:
	case http.StatusNotFound:
		return ObjectInfo{}, fmt.Errorf("%w: %s", ErrObjectNotFound, rawURI)
	case http.StatusUnauthorized, http.StatusForbidden:
		return ObjectInfo{}, fmt.Errorf("%w: %s", ErrUnauthorized, rawURI)
	default:
		return ObjectInfo{}, fmt.Errorf("drs: resolve %s: unexpected status %d", rawURI, resp.Status)
	}

	var info ObjectInfo
	if err := json.Unmarshal(resp.Body, &info); err != nil {
		return ObjectInfo{}, fmt.Errorf("drs: decode object response: %w", err)
	}
	return info, nil
}
