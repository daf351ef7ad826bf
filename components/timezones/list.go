package timezones

import (
	"bufio"
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

//go:embed data/zones.txt
var zonesFile []byte

var embeddedZones = sync.OnceValues(func() ([]string, error) {
	return LoadZones(bytes.NewReader(zonesFile))
})

// DefaultZones returns a copy of the embedded zone list, sorted.
func DefaultZones() ([]string, error) {
	zones, err := embeddedZones()
	if err != nil {
		return nil, fmt.Errorf("timezones: embedded list: %w", err)
	}
	return slices.Clone(zones), nil
}

// LoadZones reads one zone name per line. Text after '#' is ignored. The
// result is sorted without duplicates. A line holding more than one word is
// rejected with its line number.
func LoadZones(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, fmt.Errorf("timezones: missing reader")
	}

	var zones []string
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line, _, _ := strings.Cut(scanner.Text(), "#")
		switch words := strings.Fields(line); len(words) {
		case 0:
		case 1:
			zones = append(zones, words[0])
		default:
			return nil, fmt.Errorf("timezones: line %d: want one zone name, got %q", n, strings.TrimSpace(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("timezones: read zones: %w", err)
	}

	slices.Sort(zones)
	return slices.Compact(zones), nil
}
