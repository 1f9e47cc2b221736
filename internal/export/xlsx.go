package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kitbuilder587/boolsearch/internal/domain"
)

const SheetName = "Risultati"

var Headers = []string{"Dominio", "Articolo", "Query di Ricerca", "Link Articolo", "Titolo", "Errore"}

// Row - строка отчета, колонки в порядке Headers.
type Row struct {
	Domain      string
	Article     string
	SearchQuery string
	URL         string
	Title       string
	Error       string
}

func (r Row) values() []interface{} {
	return []interface{}{r.Domain, r.Article, r.SearchQuery, r.URL, r.Title, r.Error}
}

// Rows разворачивает результаты запуска в строки отчета, с региональными копиями для tiscali.
func Rows(items []domain.RunItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := Row{
			Domain:      it.Domain,
			Article:     it.Article,
			SearchQuery: it.SearchQuery,
			URL:         it.Result.URL,
			Title:       it.Result.Title,
			Error:       it.Result.Error,
		}
		rows = append(rows, row)

		if it.Result.Found() && it.Result.Error == "" {
			rows = append(rows, regionalRows(row)...)
		}
	}
	return rows
}

func WriteXLSX(w io.Writer, items []domain.RunItem) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Headers))
	for i, h := range Headers {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(Headers))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastCol+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(SheetName, "A", lastCol, 32); err != nil {
		return fmt.Errorf("set width: %w", err)
	}

	for i, row := range Rows(items) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := row.values()
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// FileName - имя xlsx-файла для скачивания, по дате запуска.
func FileName(run *domain.Run) string {
	return fileName(run, "xlsx")
}

func fileName(run *domain.Run, ext string) string {
	name := "ricerche"
	if p := domain.Slugify(run.Project); p != "" {
		name += "_" + p
	}
	return fmt.Sprintf("%s_%s.%s", name, run.CreatedAt.Format("2006-01-02"), ext)
}
