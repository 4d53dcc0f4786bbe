// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/desertthunder/stationer/internal/models"
)

// MockSource is a test double for [services.Source] that counts fetches.
type MockSource struct {
	Stations []models.Station
	Err      error
	Calls    int
}

func (m *MockSource) Fetch(ctx context.Context) ([]models.Station, error) {
	m.Calls++
	if m.Err != nil {
		return nil, m.Err
	}
	return append([]models.Station(nil), m.Stations...), nil
}

func (m *MockSource) Name() string { return "mock" }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// StationTable renders rows as an HTML page holding a "standard sortable" table.
//
// Each row is {frequency, name, url, rds, power, tower}; the header row is added automatically.
func StationTable(rows ...[6]string) string {
	page := `<html><body><table class="wikitable"><tr><td>decoy</td></tr></table>` +
		`<table class="standard sortable"><tr><th>MHz</th><th>Name</th><th>Site</th><th>RDS</th><th>kW</th><th>Tower</th></tr>`
	for _, r := range rows {
		page += "<tr>" +
			"<td>" + r[0] + "</td>" +
			`<td><a href="/wiki/station">` + r[1] + "</a></td>" +
			`<td><a href="` + r[2] + `">site</a></td>` +
			"<td>" + r[3] + "</td>" +
			"<td>" + r[4] + "</td>" +
			"<td>" + r[5] + "</td>" +
			"</tr>"
	}
	return page + "</table></body></html>"
}
