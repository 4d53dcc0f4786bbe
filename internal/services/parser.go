package services

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/desertthunder/stationer/internal/models"
	"github.com/desertthunder/stationer/internal/shared"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// stationColumns is the number of cells a reference row must have.
const stationColumns = 6

// ParseStations reads the first "standard sortable" table of an HTML document.
//
// The first row is the header and is skipped. names repairs the station name; nil leaves it as is.
func ParseStations(r io.Reader, names *NameDecoder) ([]models.Station, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse document: %w", shared.ErrMalformedRecord, err)
	}

	table := findNode(doc, isStationTable)
	if table == nil {
		return nil, fmt.Errorf("%w: no table with class \"standard sortable\"", shared.ErrMalformedRecord)
	}

	rows := tableRows(table)
	if len(rows) == 0 {
		return nil, nil
	}

	stations := make([]models.Station, 0, len(rows)-1)
	for i, tr := range rows[1:] {
		station, err := parseRow(tr, names)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", shared.ErrMalformedRecord, i+1, err)
		}
		stations = append(stations, station)
	}

	return stations, nil
}

func parseRow(tr *html.Node, names *NameDecoder) (models.Station, error) {
	cells := childElements(tr, atom.Td)
	if len(cells) < stationColumns {
		return models.Station{}, fmt.Errorf("expected %d cells, found %d", stationColumns, len(cells))
	}

	frequency, err := models.ParseFrequency(textContent(cells[0]))
	if err != nil {
		return models.Station{}, err
	}

	nameNode := cells[1]
	if a := firstChildElement(cells[1], atom.A); a != nil {
		nameNode = a
	}
	name := strings.TrimSpace(names.Decode(textContent(nameNode)))
	if name == "" {
		return models.Station{}, fmt.Errorf("station %s has no name", frequency)
	}

	var url string
	if a := firstChildElement(cells[2], atom.A); a != nil {
		url = attr(a, "href")
	}

	capacity, err := parseDecimal(textContent(cells[4]))
	if err != nil {
		return models.Station{}, fmt.Errorf("station %s: invalid power: %w", frequency, err)
	}

	return models.Station{
		Frequency: frequency,
		Name:      name,
		URL:       url,
		HasRDS:    strings.TrimSpace(textContent(cells[3])) == "+",
		Capacity:  capacity,
		Tower:     strings.TrimSpace(textContent(cells[5])),
	}, nil
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func isStationTable(n *html.Node) bool {
	if n.Type != html.ElementNode || n.DataAtom != atom.Table {
		return false
	}
	classes := strings.Fields(attr(n, "class"))
	var standard, sortable bool
	for _, c := range classes {
		switch c {
		case "standard":
			standard = true
		case "sortable":
			sortable = true
		}
	}
	return standard && sortable
}

// findNode returns the first node in document order matching pred.
func findNode(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findNode(c, pred); found != nil {
			return found
		}
	}
	return nil
}

// tableRows returns the rows of table, looking through thead/tbody/tfoot but not into nested tables.
func tableRows(table *html.Node) []*html.Node {
	var rows []*html.Node
	for c := table.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.Tr:
			rows = append(rows, c)
		case atom.Thead, atom.Tbody, atom.Tfoot:
			rows = append(rows, childElements(c, atom.Tr)...)
		}
	}
	return rows
}

func childElements(n *html.Node, a atom.Atom) []*html.Node {
	var result []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			result = append(result, c)
		}
	}
	return result
}

func firstChildElement(n *html.Node, a atom.Atom) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			return c
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
