package engine

import (
	"bytes"
	"errors"
	"fmt"
	"hoteldash/internal/models"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"
	"unsafe"

	"github.com/goccy/go-json"
)

var (
	ErrUnknownFormat = errors.New("unknown dataset format")
	ErrMissingColumn = errors.New("missing required column")
)

// Dataset formats understood by Load.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// --- 1. FAST ZERO-ALLOC PARSERS ---

func unsafeToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}

// fastInt parses "123" -> 123. Anything but ASCII digits fails.
func fastInt(b []byte) (int, bool) {
	if len(b) == 0 {
		return 0, false
	}
	var n int
	for _, c := range b {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// occupants parses a head count; the public dataset writes "NA" for unknown children.
func occupants(b []byte) (int, bool) {
	if len(b) == 0 || string(b) == "NA" {
		return 0, true
	}
	return fastInt(b)
}

// interner hands out one shared string per distinct value.
type interner struct {
	m    map[string]string
	list []string
}

func newInterner() *interner {
	return &interner{m: make(map[string]string)}
}

func (in *interner) get(b []byte) string {
	if s, ok := in.m[unsafeToString(b)]; ok {
		return s
	}
	s := string(b)
	in.m[s] = s
	in.list = append(in.list, s)
	return s
}

// --- 2. HEADER ---

type columns struct {
	hotel, year, month, day, adults, children, babies, country int
	width                                                      int
}

func parseHeader(line []byte) (columns, error) {
	line = bytes.TrimPrefix(line, []byte("\xef\xbb\xbf"))
	pos := make(map[string]int)
	for i, name := range bytes.Split(line, []byte{','}) {
		pos[string(bytes.TrimSpace(name))] = i
	}

	var cols columns
	for name, dst := range map[string]*int{
		"hotel":                     &cols.hotel,
		"arrival_date_year":         &cols.year,
		"arrival_date_month":        &cols.month,
		"arrival_date_day_of_month": &cols.day,
		"adults":                    &cols.adults,
		"children":                  &cols.children,
		"babies":                    &cols.babies,
		"country":                   &cols.country,
	} {
		i, ok := pos[name]
		if !ok {
			return cols, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
		*dst = i
		if i+1 > cols.width {
			cols.width = i + 1
		}
	}
	return cols, nil
}

// --- 3. MAIN LOADER ---

// Load reads a dataset file in the given format.
func Load(format, path string) (*Dataset, error) {
	switch format {
	case FormatCSV:
		return LoadCSV(path)
	case FormatJSON:
		return LoadJSON(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// LoadCSV reads the hotel bookings CSV. Quoted fields are not supported.
func LoadCSV(path string) (*Dataset, error) {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	ds, err := ParseCSV(content)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	ds.Source = path
	ds.LoadTime = time.Since(start)

	slog.Info("Dataset loaded",
		"source", path,
		"rows", ds.Len(),
		"rejected", ds.Rejected,
		"countries", len(ds.CountryDict),
		"duration", ds.LoadTime)
	return ds, nil
}

// ParseCSV parses CSV content in parallel over newline-aligned chunks.
// Record order matches row order.
func ParseCSV(content []byte) (*Dataset, error) {
	header := content
	if idx := bytes.IndexByte(content, '\n'); idx != -1 {
		header, content = content[:idx], content[idx+1:]
	} else {
		content = nil
	}
	cols, err := parseHeader(bytes.TrimRight(header, "\r"))
	if err != nil {
		return nil, err
	}

	// A. Chunk boundaries, each one starting right after a newline
	numWorkers := runtime.NumCPU()
	chunkSize := len(content) / numWorkers
	bounds := []int{0}
	for i := 1; i < numWorkers && chunkSize > 0; i++ {
		pos := i * chunkSize
		if pos <= bounds[len(bounds)-1] {
			continue
		}
		idx := bytes.IndexByte(content[pos:], '\n')
		if idx == -1 {
			break
		}
		pos += idx + 1
		if pos < len(content) {
			bounds = append(bounds, pos)
		}
	}
	bounds = append(bounds, len(content))

	// B. Parallel parsing
	type partial struct {
		records  []models.Booking
		rejected int
		country  *interner
		hotel    *interner
	}
	parts := make([]*partial, len(bounds)-1)

	var wg sync.WaitGroup
	for w := range parts {
		wg.Add(1)
		go func(idx int, chunk []byte) {
			defer wg.Done()

			p := &partial{
				records: make([]models.Booking, 0, bytes.Count(chunk, []byte{'\n'})+1),
				country: newInterner(),
				hotel:   newInterner(),
			}
			parts[idx] = p
			months := newInterner()
			fields := make([][]byte, cols.width)

			for len(chunk) > 0 {
				var line []byte
				line, chunk, _ = bytes.Cut(chunk, []byte{'\n'})
				line = bytes.TrimRight(line, "\r")
				if len(line) == 0 {
					continue
				}

				// Hop over fields up to the last one we need
				rest := line
				n := 0
				for n < cols.width {
					var found bool
					fields[n], rest, found = bytes.Cut(rest, []byte{','})
					n++
					if !found {
						break
					}
				}
				if n < cols.width {
					p.rejected++
					continue
				}

				year, okY := fastInt(fields[cols.year])
				day, okD := fastInt(fields[cols.day])
				adults, okA := occupants(fields[cols.adults])
				children, okC := occupants(fields[cols.children])
				babies, okB := occupants(fields[cols.babies])
				if !(okY && okD && okA && okC && okB) {
					p.rejected++
					continue
				}

				p.records = append(p.records, models.Booking{
					Hotel:        p.hotel.get(fields[cols.hotel]),
					ArrivalYear:  year,
					ArrivalMonth: months.get(fields[cols.month]),
					ArrivalDay:   day,
					Adults:       adults,
					Children:     children,
					Babies:       babies,
					Country:      p.country.get(fields[cols.country]),
				})
			}
		}(w, content[bounds[w]:bounds[w+1]])
	}
	wg.Wait()

	// C. Merge in chunk order, folding worker dictionaries into one
	total := 0
	for _, p := range parts {
		total += len(p.records)
	}
	ds := &Dataset{Records: make([]models.Booking, 0, total)}
	countries := newInterner()
	hotels := newInterner()
	for _, p := range parts {
		for _, s := range p.country.list {
			countries.get([]byte(s))
		}
		for _, s := range p.hotel.list {
			hotels.get([]byte(s))
		}
		for _, b := range p.records {
			b.Country = countries.m[b.Country]
			b.Hotel = hotels.m[b.Hotel]
			ds.Records = append(ds.Records, b)
		}
		ds.Rejected += p.rejected
	}
	ds.CountryDict = countries.list
	ds.HotelDict = hotels.list
	return ds, nil
}

// LoadJSON reads a JSON array of bookings with the dataset's snake_case keys.
func LoadJSON(path string) (*Dataset, error) {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}

	var records []models.Booking
	if err := json.Unmarshal(content, &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	ds := NewDataset(path, records)
	ds.LoadTime = time.Since(start)

	slog.Info("Dataset loaded",
		"source", path,
		"rows", ds.Len(),
		"countries", len(ds.CountryDict),
		"duration", ds.LoadTime)
	return ds, nil
}
