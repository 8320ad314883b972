package panelapp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const r207JSON = `{
	"id": 635,
	"name": "Inherited breast cancer and ovarian cancer",
	"version": "2.2",
	"relevant_disorders": ["R207"],
	"genes": [
		{"gene_data": {"gene_symbol": "BRCA1"}, "confidence_level": "3"},
		{"gene_data": {"gene_symbol": "BRCA2"}, "confidence_level": "3"},
		{"gene_data": {"gene_symbol": "RAD51C"}, "confidence_level": "2"},
		{"gene_data": {"gene_symbol": "NBN"}, "confidence_level": "1"}
	]
}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClientWithBaseURL(srv.URL)
}

func TestGetPanel(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/panels/R207/", r.URL.Path)
		fmt.Fprint(w, r207JSON)
	})

	panel, err := client.GetPanel(context.Background(), "R207")
	require.NoError(t, err)

	assert.Equal(t, "R207", panel.ID)
	assert.Equal(t, 635, panel.PrimaryKey)
	assert.Equal(t, "2.2", panel.Version)
	assert.Equal(t, "Inherited breast cancer and ovarian cancer", panel.Name)
	assert.Len(t, panel.Genes, 4)
}

func TestGetPanel_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetPanel(context.Background(), "R999999")
	require.ErrorIs(t, err, ErrPanelNotFound)
}

func TestGetPanel_ServerError(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.GetPanel(context.Background(), "R207")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPanelNotFound)
}

func TestGetPanelVersion(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/panels/635/", r.URL.Path)
		assert.Equal(t, "1.0", r.URL.Query().Get("version"))
		fmt.Fprint(w, `{
			"id": 635, "name": "Inherited breast cancer and ovarian cancer",
			"version": "1.0", "relevant_disorders": ["R207"],
			"genes": [{"gene_data": {"gene_symbol": "BRCA1"}, "confidence_level": "3"}]
		}`)
	})

	panel, err := client.GetPanelVersion(context.Background(), 635, "1.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0", panel.Version)
	assert.Len(t, panel.Genes, 1)
}

func TestGetPanelVersion_NotFound(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.GetPanelVersion(context.Background(), 635, "99.0")
	require.ErrorIs(t, err, ErrPanelVersionNotFound)
}

func TestGetPanel_SkipsEmptyGeneSymbols(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"id": 1, "name": "p", "version": "1.0",
			"genes": [
				{"gene_data": {"gene_symbol": ""}, "confidence_level": "3"},
				{"gene_data": {"gene_symbol": "TP53"}, "confidence_level": "3"}
			]
		}`)
	})

	panel, err := client.GetPanel(context.Background(), "1")
	require.NoError(t, err)
	require.Len(t, panel.Genes, 1)
	assert.Equal(t, "TP53", panel.Genes[0].Symbol)
}
