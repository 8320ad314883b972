// Package panelapp provides a client for the PanelApp panel database API.
package panelapp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production PanelApp API endpoint.
const DefaultBaseURL = "https://panelapp.genomicsengland.co.uk/api/v1"

// Sentinel errors for panel lookups.
var (
	ErrPanelNotFound        = errors.New("panel not found")
	ErrPanelVersionNotFound = errors.New("panel version not found")
)

// Client queries the PanelApp REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a PanelApp client against the production API.
func NewClient() *Client {
	return NewClientWithBaseURL(DefaultBaseURL)
}

// NewClientWithBaseURL creates a client against a custom endpoint,
// useful for testing against an httptest server.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// GetPanel fetches the current version of a panel by its identifier
// (e.g. "R207"). Returns ErrPanelNotFound on a 404 response.
func (c *Client) GetPanel(ctx context.Context, panelID string) (*Panel, error) {
	u := fmt.Sprintf("%s/panels/%s/", c.baseURL, url.PathEscape(panelID))
	p, err := c.fetchPanel(ctx, u)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("panel %q: %w", panelID, ErrPanelNotFound)
		}
		return nil, fmt.Errorf("get panel %q: %w", panelID, err)
	}
	return p, nil
}

// GetPanelVersion fetches a specific historical version of a panel by its
// numeric primary key. Returns ErrPanelVersionNotFound on a 404 response.
func (c *Client) GetPanelVersion(ctx context.Context, primaryKey int, version string) (*Panel, error) {
	u := fmt.Sprintf("%s/panels/%d/?version=%s", c.baseURL, primaryKey, url.QueryEscape(version))
	p, err := c.fetchPanel(ctx, u)
	if err != nil {
		if errors.Is(err, errNotFound) {
			return nil, fmt.Errorf("panel %d version %s: %w", primaryKey, version, ErrPanelVersionNotFound)
		}
		return nil, fmt.Errorf("get panel %d version %s: %w", primaryKey, version, err)
	}
	return p, nil
}

// errNotFound is an internal marker distinguishing 404s from other HTTP failures.
var errNotFound = errors.New("not found")

func (c *Client) fetchPanel(ctx context.Context, u string) (*Panel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("panelapp request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("panelapp error %d: %s", resp.StatusCode, string(body))
	}

	var raw rawPanel
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode panel response: %w", err)
	}

	return raw.toPanel(), nil
}

// rawPanel mirrors the PanelApp JSON panel document.
type rawPanel struct {
	ID      int     `json:"id"`
	Name    string  `json:"name"`
	Version string  `json:"version"`
	Genes   []struct {
		GeneData struct {
			GeneSymbol string `json:"gene_symbol"`
		} `json:"gene_data"`
		ConfidenceLevel string `json:"confidence_level"`
	} `json:"genes"`
	RelevantDisorders []string `json:"relevant_disorders"`
}

func (rp *rawPanel) toPanel() *Panel {
	p := &Panel{
		PrimaryKey: rp.ID,
		Name:       rp.Name,
		Version:    rp.Version,
	}

	// The R-number lives in relevant_disorders for Genomics England panels.
	for _, d := range rp.RelevantDisorders {
		if len(d) > 1 && d[0] == 'R' {
			p.ID = d
			break
		}
	}

	p.Genes = make([]Gene, 0, len(rp.Genes))
	for _, g := range rp.Genes {
		if g.GeneData.GeneSymbol == "" {
			continue
		}
		p.Genes = append(p.Genes, Gene{
			Symbol:     g.GeneData.GeneSymbol,
			Confidence: parseConfidence(g.ConfidenceLevel),
		})
	}

	return p
}

// parseConfidence maps the API's string confidence_level ("1".."3") to an
// integer tier. Unknown values map to tier 0, which no threshold includes.
func parseConfidence(s string) int {
	switch s {
	case "1":
		return 1
	case "2":
		return 2
	case "3":
		return 3
	}
	return 0
}
