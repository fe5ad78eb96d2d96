package database

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/vanai-hackathon/surveyscope/internal/dataset"
)

const surveyCSV = `AgeRollup_Broad,Q1_Experience_with_AI,"Q17 ""quoted"" name",score
18-34,Daily,a,0.2
18-34,Daily,b,0.4
35-54,Never,c,0.9
35-54,Never,d,not scored
55+,,e,
`

// setupTestDB opens a database and loads surveyCSV into it.
func setupTestDB(t *testing.T) *ResponseDB {
	t.Helper()

	ds, err := dataset.Read(strings.NewReader(surveyCSV))
	if err != nil {
		t.Fatalf("failed to read dataset: %v", err)
	}

	ctx := context.Background()
	db, err := OpenMemory(ctx)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})

	if err := db.LoadDataset(ctx, ds); err != nil {
		t.Fatalf("failed to load dataset: %v", err)
	}
	return db
}

func TestLoadDataset(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)

	t.Run("keeps every row and column", func(t *testing.T) {
		t.Parallel()

		rs, err := db.Query(context.Background(), "SELECT COUNT(*) FROM responses")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rs.Rows[0][0] != "5" {
			t.Errorf("expected 5 rows, got %s", rs.Rows[0][0])
		}
		if len(db.Columns()) != 4 {
			t.Errorf("expected 4 columns, got %v", db.Columns())
		}
	})

	t.Run("stores numbers as real and missing as null", func(t *testing.T) {
		t.Parallel()

		rs, err := db.Query(context.Background(),
			"SELECT typeof(score), COUNT(*) FROM responses GROUP BY 1 ORDER BY 1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got := make(map[string]string)
		for _, row := range rs.Rows {
			got[row[0]] = row[1]
		}
		if got["real"] != "3" || got["text"] != "1" || got["null"] != "1" {
			t.Errorf("unexpected storage classes %v", got)
		}
	})

	t.Run("quotes awkward column names", func(t *testing.T) {
		t.Parallel()

		rs, err := db.Query(context.Background(), `SELECT "Q17 ""quoted"" name" FROM responses LIMIT 1`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rs.Rows[0][0] != "a" {
			t.Errorf("expected a, got %s", rs.Rows[0][0])
		}
	})
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("renders nulls", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		rs, err := db.Query(context.Background(),
			"SELECT Q1_Experience_with_AI FROM responses WHERE AgeRollup_Broad = '55+'")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(rs.Rows) != 1 || rs.Rows[0][0] != "NULL" {
			t.Errorf("expected NULL, got %v", rs.Rows)
		}
	})

	t.Run("invalid SQL returns error", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		if _, err := db.Query(context.Background(), "SELEC nothing"); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("query before load", func(t *testing.T) {
		t.Parallel()

		db, err := OpenMemory(context.Background())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := db.Query(context.Background(), "SELECT 1"); !errors.Is(err, ErrNotLoaded) {
			t.Errorf("expected ErrNotLoaded, got %v", err)
		}
	})
}

func TestMeanByGroup(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)

	t.Run("averages numeric scores per group", func(t *testing.T) {
		t.Parallel()

		means, err := db.MeanByGroup(context.Background(), "AgeRollup_Broad", "score")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(means) != 2 {
			t.Fatalf("expected 2 groups with scores, got %+v", means)
		}
		if means[0].Group != "35-54" || means[0].Count != 1 || math.Abs(means[0].Mean-0.9) > 1e-9 {
			t.Errorf("unexpected first group %+v", means[0])
		}
		if means[1].Group != "18-34" || means[1].Count != 2 || math.Abs(means[1].Mean-0.3) > 1e-9 {
			t.Errorf("unexpected second group %+v", means[1])
		}
	})

	t.Run("skips missing groups", func(t *testing.T) {
		t.Parallel()

		means, err := db.MeanByGroup(context.Background(), "Q1_Experience_with_AI", "score")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, m := range means {
			if m.Group == "NULL" {
				t.Error("expected missing group to be skipped")
			}
		}
	})

	t.Run("unknown column", func(t *testing.T) {
		t.Parallel()

		_, err := db.MeanByGroup(context.Background(), "nope", "score")
		if !errors.Is(err, ErrUnknownColumn) {
			t.Errorf("expected ErrUnknownColumn, got %v", err)
		}
	})
}
