package importer

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// Inspect prints the sheet names of the workbook at path followed by the
// first limit rows of each sheet, which is usually enough to check the
// header row before an import.
func Inspect(w io.Writer, path string, limit int) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	fmt.Fprintf(w, "Sheets: %q\n", sheets)

	for _, sheet := range sheets {
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return errors.Wrapf(err, "read sheet %q", sheet)
		}

		fmt.Fprintf(w, "\n--- %s: %d rows ---\n", sheet, len(rows))
		for i, row := range rows {
			if i >= limit {
				break
			}

			cells, err := json.Marshal(row)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%d %d %s\n", i, len(row), cells)
		}
	}

	return nil
}
