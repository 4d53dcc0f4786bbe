package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/stationer/internal/models"
	"github.com/desertthunder/stationer/internal/shared"
	tu "github.com/desertthunder/stationer/internal/testing"
)

func TestParseStations(t *testing.T) {
	t.Run("parses every row after the header", func(t *testing.T) {
		page := tu.StationTable(
			[6]string{"98,5", "Radio A", "http://a.example", "+", "2,5", "TV Tower"},
			[6]string{"101.7", "Radio Alpha Prime", "http://b.example", "", "10", "Hotel"},
		)

		stations, err := ParseStations(strings.NewReader(page), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(stations) != 2 {
			t.Fatalf("expected 2 stations, got %d", len(stations))
		}

		want := models.Station{Frequency: 985, Name: "Radio A", URL: "http://a.example", HasRDS: true, Capacity: 2.5, Tower: "TV Tower"}
		if stations[0] != want {
			t.Errorf("unexpected first station: %+v", stations[0])
		}

		if stations[1].Frequency != 1017 || stations[1].Name != "Radio Alpha Prime" || stations[1].HasRDS {
			t.Errorf("unexpected second station: %+v", stations[1])
		}
	})

	t.Run("keeps out of band rows", func(t *testing.T) {
		page := tu.StationTable(
			[6]string{"80.0", "Low", "", "", "", ""},
			[6]string{"110.0", "High", "", "", "", ""},
		)

		stations, err := ParseStations(strings.NewReader(page), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stations) != 2 {
			t.Errorf("parser should not filter the band, got %d stations", len(stations))
		}
	})

	t.Run("name without link falls back to cell text", func(t *testing.T) {
		page := `<table class="sortable standard"><tbody>
			<tr><th>h</th></tr>
			<tr><td>100.0</td><td> Plain FM </td><td></td><td>+</td><td></td><td>Mast</td></tr>
		</tbody></table>`

		stations, err := ParseStations(strings.NewReader(page), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stations) != 1 || stations[0].Name != "Plain FM" || stations[0].URL != "" {
			t.Errorf("unexpected stations: %+v", stations)
		}
	})

	t.Run("header only", func(t *testing.T) {
		stations, err := ParseStations(strings.NewReader(tu.StationTable()), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(stations) != 0 {
			t.Errorf("expected no stations, got %d", len(stations))
		}
	})

	t.Run("entities are decoded", func(t *testing.T) {
		page := tu.StationTable([6]string{"104.0", "Rock &amp; Roll", "", "", "", ""})
		stations, err := ParseStations(strings.NewReader(page), nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stations[0].Name != "Rock & Roll" {
			t.Errorf("expected decoded entity, got %q", stations[0].Name)
		}
	})
}

func TestParseStations_Malformed(t *testing.T) {
	tt := []struct {
		name    string
		page    string
		wantErr error
	}{
		{
			name:    "missing table",
			page:    `<html><body><table class="wikitable"><tr><td>x</td></tr></table></body></html>`,
			wantErr: shared.ErrMalformedRecord,
		},
		{
			name:    "unparseable frequency",
			page:    tu.StationTable([6]string{"FM", "Radio", "", "", "", ""}),
			wantErr: models.ErrInvalidFrequency,
		},
		{
			name:    "unparseable power",
			page:    tu.StationTable([6]string{"98.5", "Radio", "", "", "lots", ""}),
			wantErr: shared.ErrMalformedRecord,
		},
		{
			name:    "empty name",
			page:    tu.StationTable([6]string{"98.5", "  ", "", "", "", ""}),
			wantErr: shared.ErrMalformedRecord,
		},
		{
			name:    "short row",
			page:    `<table class="standard sortable"><tr><th>h</th></tr><tr><td>98.5</td><td>Radio</td></tr></table>`,
			wantErr: shared.ErrMalformedRecord,
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseStations(strings.NewReader(tc.page), nil)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if !errors.Is(err, shared.ErrMalformedRecord) {
				t.Errorf("expected every parse failure to be ErrMalformedRecord, got %v", err)
			}
		})
	}
}
