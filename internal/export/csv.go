package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

// WriteCSV пишет те же строки, что и WriteXLSX: заголовок Headers, затем Rows(items).
// Разделитель запятая, строки через \n; ячейки с запятой, кавычкой или переводом строки берутся в кавычки.
func WriteCSV(w io.Writer, items []domain.RunItem) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range Rows(items) {
		if err := cw.Write(row.strings()); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// CSVFileName - имя csv-файла для скачивания.
func CSVFileName(run *domain.Run) string {
	return fileName(run, "csv")
}

func (r Row) strings() []string {
	return []string{r.Domain, r.Article, r.SearchQuery, r.URL, r.Title, r.Error}
}
