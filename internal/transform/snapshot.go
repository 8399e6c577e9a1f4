package transform

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/otaviomart/olist-warehouse/internal/table"
)

// WriteSnapshot serializes each Silver table as a CSV file under dir,
// one file per table, for inspection and debugging. Later stages read
// the in-memory Silver result, never these files.
func WriteSnapshot(dir string, silver map[string]*table.Table) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create silver dir: %w", err)
	}

	names := make([]string, 0, len(silver))
	for name := range silver {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if err := writeTable(filepath.Join(dir, name+".csv"), silver[name]); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path string, t *table.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write snapshot for table %q: %w", t.Name, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return fmt.Errorf("write snapshot for table %q: %w", t.Name, err)
	}

	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = row[col].Format()
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write snapshot for table %q: %w", t.Name, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write snapshot for table %q: %w", t.Name, err)
	}
	return nil
}
