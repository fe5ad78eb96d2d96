package dataset

// MissingValues lists the cell contents treated as missing by default.
// It covers empty cells and the placeholders that spreadsheet tools and
// statistics packages write when exporting survey tables.
var MissingValues = []string{
	"",
	"#N/A",
	"#N/A N/A",
	"#NA",
	"-1.#IND",
	"-1.#QNAN",
	"-NaN",
	"-nan",
	"1.#IND",
	"1.#QNAN",
	"<NA>",
	"<nil>",
	"N/A",
	"NA",
	"NULL",
	"NaN",
	"None",
	"n/a",
	"nan",
	"null",
}
