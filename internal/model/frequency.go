package model

// Frequency is one category of a categorical column and how often it occurs.
type Frequency struct {
	// Value is the category as it appears in the dataset.
	Value string `json:"value"`

	// Count is the number of rows holding Value.
	Count int `json:"count"`

	// Percent is Count divided by the total number of rows, times 100.
	// Rows with a missing value still count toward the total, so the
	// percentages of a column only reach 100 when nothing is missing.
	Percent float64 `json:"percent"`
}

// Distribution is the frequency table of one demographic column.
type Distribution struct {
	// Column is the dataset column the distribution was computed from.
	Column string `json:"column"`

	// TotalRows is the denominator used for every percentage.
	TotalRows int `json:"total_rows"`

	// Distinct is the number of distinct non-missing values in the column,
	// which may exceed len(Entries) when the distribution is truncated.
	Distinct int `json:"distinct"`

	// Entries holds the categories sorted by descending count.
	Entries []Frequency `json:"entries"`
}

// NewDistribution builds a Distribution from counts already sorted by
// descending count. Percentages are relative to totalRows. A positive limit
// keeps only the first limit entries.
func NewDistribution(column string, counts []Frequency, totalRows, limit int) *Distribution {
	d := &Distribution{
		Column:    column,
		TotalRows: totalRows,
		Distinct:  len(counts),
	}

	n := len(counts)
	if limit > 0 && n > limit {
		n = limit
	}

	d.Entries = make([]Frequency, n)
	for i := 0; i < n; i++ {
		d.Entries[i] = Frequency{
			Value:   counts[i].Value,
			Count:   counts[i].Count,
			Percent: percentOf(counts[i].Count, totalRows),
		}
	}

	return d
}

// Truncated reports whether some categories were left out by a limit.
func (d *Distribution) Truncated() bool {
	return d.Distinct > len(d.Entries)
}

// CoveredPercent returns the sum of the listed percentages.
func (d *Distribution) CoveredPercent() float64 {
	var sum float64
	for _, e := range d.Entries {
		sum += e.Percent
	}
	return sum
}

func percentOf(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
