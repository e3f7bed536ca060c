// Package export writes a fetched list to a spreadsheet, so a filtered
// selection of recipes can leave the app.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"cardapio/internal/domain"
)

// Format is a supported output format
type Format int

const (
	FormatXLSX Format = iota
	FormatCSV
)

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return FormatXLSX, nil
	case ".csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unsupported export file %q: must end with .xlsx or .csv", path)
	}
}

const sheet = "Sheet1"

var header = []string{"id", "title", "category", "diets", "prep_minutes", "author", "favorited", "published_at", "slug"}

func row(it domain.ListItem, tax domain.Taxonomy) []string {
	diets := make([]string, 0, len(it.DietTagIDs))
	for _, id := range it.DietTagIDs {
		if name := tax.DietTagName(id); name != "" {
			diets = append(diets, name)
		}
	}
	var favorited, published, prep string
	if it.IsFavorited {
		favorited = "yes"
	}
	if !it.PublishedAt.IsZero() {
		published = it.PublishedAt.Format("2006-01-02")
	}
	if it.PrepMinutes > 0 {
		prep = strconv.Itoa(it.PrepMinutes)
	}
	return []string{
		strconv.FormatInt(it.ID, 10),
		it.Title,
		tax.CategoryName(it.CategoryID),
		strings.Join(diets, ", "),
		prep,
		it.Author,
		favorited,
		published,
		it.Slug,
	}
}

// WriteXLSX writes items as a single-sheet workbook
func WriteXLSX(w io.Writer, items []domain.ListItem, tax domain.Taxonomy) error {
	f := excelize.NewFile()
	defer f.Close()

	// StreamWriter keeps memory flat for long lists
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}
	if err := sw.SetRow("A1", cells(header)); err != nil {
		return err
	}
	for i, it := range items {
		cellAddr, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cellAddr, cells(row(it, tax))); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return err
	}
	return f.Write(w)
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// WriteCSV writes items as comma separated values with a header row
func WriteCSV(w io.Writer, items []domain.ListItem, tax domain.Taxonomy) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, it := range items {
		if err := cw.Write(row(it, tax)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile exports items to path in the format its extension names
func WriteFile(path string, items []domain.ListItem, tax domain.Taxonomy) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	switch format {
	case FormatCSV:
		err = WriteCSV(f, items, tax)
	default:
		err = WriteXLSX(f, items, tax)
	}
	if err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
