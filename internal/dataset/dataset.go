package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/vanai-hackathon/surveyscope/internal/model"
)

var (
	// ErrColumnNotFound is returned when a column is not part of the dataset.
	ErrColumnNotFound = errors.New("column not found")

	// ErrEmptyDataset is returned when the input holds no header row.
	ErrEmptyDataset = errors.New("no columns to parse from file")

	// ErrTooManyFields is returned when a row has more cells than the header.
	ErrTooManyFields = errors.New("too many fields")
)

// utf8BOM is stripped from the start of the input. Spreadsheet exports
// often carry it, and it would otherwise end up in the first column name.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Dataset is a loaded survey table. Rows are respondents and columns are
// survey fields. All cells are kept as text; missing cells are tracked
// separately from empty answers.
type Dataset struct {
	df dataframe.DataFrame
}

// loadOptions configures Load and Read.
type loadOptions struct {
	delimiter rune
	missing   []string
}

// LoadOption configures how a dataset is parsed.
type LoadOption func(*loadOptions)

// WithDelimiter sets the field delimiter. The default is a comma.
func WithDelimiter(r rune) LoadOption {
	return func(o *loadOptions) {
		o.delimiter = r
	}
}

// WithMissingValues replaces the tokens that mark a missing cell.
func WithMissingValues(values []string) LoadOption {
	return func(o *loadOptions) {
		o.missing = values
	}
}

// Load reads the CSV file at path.
func Load(path string, opts ...LoadOption) (*Dataset, error) {
	f, err := os.Open(path) //nolint:gosec // User-provided dataset path is intentional
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return Read(f, opts...)
}

// Read parses CSV data with a header row from r.
func Read(r io.Reader, opts ...LoadOption) (*Dataset, error) {
	o := loadOptions{
		delimiter: ',',
		missing:   MissingValues,
	}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDataset
	}

	records, err := readRecords(data, o.delimiter)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}

	records[0] = dedupeNames(records[0])

	var df dataframe.DataFrame
	if len(records) == 1 {
		df = emptyFrame(records[0])
	} else {
		df = dataframe.LoadRecords(records,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
			dataframe.NaNValues(missingTokens(o.missing)),
		)
	}
	if df.Err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", df.Err)
	}

	return &Dataset{df: df}, nil
}

// readRecords splits data into records. Rows shorter than the header are
// padded with empty (missing) cells; longer rows are an error.
func readRecords(data []byte, delimiter rune) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delimiter
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return records, nil
	}

	width := len(records[0])
	for i := 1; i < len(records); i++ {
		switch n := len(records[i]); {
		case n > width:
			return nil, fmt.Errorf("failed to parse CSV: %w: row %d has %d fields, header has %d",
				ErrTooManyFields, i, n, width)
		case n < width:
			padded := make([]string, width)
			copy(padded, records[i])
			records[i] = padded
		}
	}
	return records, nil
}

// dedupeNames renames repeated column names to name.1, name.2 and so on.
// The first occurrence keeps its name.
func dedupeNames(names []string) []string {
	out := make([]string, len(names))
	used := make(map[string]bool, len(names))
	next := make(map[string]int, len(names))
	for i, n := range names {
		candidate := n
		for used[candidate] {
			next[n]++
			candidate = n + "." + strconv.Itoa(next[n])
		}
		used[candidate] = true
		out[i] = candidate
	}
	return out
}

// emptyFrame builds a frame with the given columns and no rows.
func emptyFrame(names []string) dataframe.DataFrame {
	cols := make([]series.Series, len(names))
	for i, n := range names {
		cols[i] = series.New([]string{}, series.String, n)
	}
	return dataframe.New(cols...)
}

// missingTokens returns tokens with the empty string added. Padded cells
// are empty, so an empty cell is always missing.
func missingTokens(tokens []string) []string {
	for _, t := range tokens {
		if t == "" {
			return tokens
		}
	}
	out := make([]string, 0, len(tokens)+1)
	out = append(out, tokens...)
	return append(out, "")
}

// Rows returns the number of respondents.
func (d *Dataset) Rows() int {
	return d.df.Nrow()
}

// Columns returns the number of survey fields.
func (d *Dataset) Columns() int {
	return d.df.Ncol()
}

// Names returns the column names in file order.
func (d *Dataset) Names() []string {
	return d.df.Names()
}

// HasColumn reports whether the dataset has a column with exactly this name.
func (d *Dataset) HasColumn(name string) bool {
	for _, n := range d.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// ColumnsContaining returns the column names that contain marker and do
// not contain exclude. An empty exclude excludes nothing.
func (d *Dataset) ColumnsContaining(marker, exclude string) []string {
	matched := make([]string, 0)
	for _, n := range d.df.Names() {
		if !strings.Contains(n, marker) {
			continue
		}
		if exclude != "" && strings.Contains(n, exclude) {
			continue
		}
		matched = append(matched, n)
	}
	return matched
}

// column returns the series for name or ErrColumnNotFound.
func (d *Dataset) column(name string) (series.Series, error) {
	if !d.HasColumn(name) {
		return series.Series{}, fmt.Errorf("%w: %s", ErrColumnNotFound, name)
	}
	s := d.df.Col(name)
	if s.Err != nil {
		return series.Series{}, fmt.Errorf("failed to read column %s: %w", name, s.Err)
	}
	return s, nil
}

// Column returns every cell of a column. present[i] is false when the
// cell at row i is missing, in which case values[i] is empty.
func (d *Dataset) Column(name string) (values []string, present []bool, err error) {
	s, err := d.column(name)
	if err != nil {
		return nil, nil, err
	}

	values = make([]string, s.Len())
	present = make([]bool, s.Len())
	for i := 0; i < s.Len(); i++ {
		e := s.Elem(i)
		if e.IsNA() {
			continue
		}
		values[i] = e.String()
		present[i] = true
	}
	return values, present, nil
}

// ValueCounts returns the distinct non-missing values of a column with
// their counts, sorted by descending count. Values with equal counts keep
// the order in which they first appear. Percentages are left at zero;
// model.NewDistribution fills them in against the row count.
func (d *Dataset) ValueCounts(name string) ([]model.Frequency, error) {
	values, present, err := d.Column(name)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	order := make([]string, 0)
	for i, v := range values {
		if !present[i] {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	result := make([]model.Frequency, len(order))
	for i, v := range order {
		result[i] = model.Frequency{Value: v, Count: counts[v]}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	return result, nil
}

// NonMissing returns the non-missing cells of a column in row order,
// exactly as they appear in the file.
func (d *Dataset) NonMissing(name string) ([]string, error) {
	values, present, err := d.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]string, 0, len(values))
	for i, v := range values {
		if present[i] {
			out = append(out, v)
		}
	}
	return out, nil
}

// Numeric returns the cells of a column that read as numbers, in row
// order. Missing cells and text that is not a number are skipped.
func (d *Dataset) Numeric(name string) ([]float64, error) {
	values, present, err := d.Column(name)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(values))
	for i, v := range values {
		if !present[i] {
			continue
		}
		f, ok := ParseNumber(v)
		if !ok {
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

// ParseNumber reads s as a decimal number, ignoring surrounding spaces.
// NaN is treated as not a number.
func ParseNumber(s string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// Records returns the column names and every row in file order. A nil
// cell is missing.
func (d *Dataset) Records() ([]string, [][]*string, error) {
	names := d.Names()
	rows := make([][]*string, d.Rows())
	for i := range rows {
		rows[i] = make([]*string, len(names))
	}

	for j, name := range names {
		values, present, err := d.Column(name)
		if err != nil {
			return nil, nil, err
		}
		for i := range values {
			if present[i] {
				v := values[i]
				rows[i][j] = &v
			}
		}
	}
	return names, rows, nil
}
