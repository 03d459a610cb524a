package importer

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/services"
)

// SheetSelector locates the price rows in a store's HTML sheet
const SheetSelector = "table.prices tr"

// SkippedRow is a sheet row that could not be turned into a product
type SkippedRow struct {
	Row    int
	Reason string
}

// Sheet is the result of parsing one price sheet
type Sheet struct {
	Products []domain.Product
	Skipped  []SkippedRow
}

// ParsePriceSheet reads `name | size | price` rows from every table.prices in r.
// Header rows (th cells only) are ignored; malformed rows are reported in Skipped.
func ParsePriceSheet(r io.Reader) (Sheet, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Sheet{}, fmt.Errorf("failed to parse price sheet: %w", err)
	}

	sheet := Sheet{Products: []domain.Product{}}
	doc.Find(SheetSelector).Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}
		if cells.Length() < 3 {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Row: i, Reason: "expected name, size and price"})
			return
		}

		name := cleanText(cells.Eq(0).Text())
		if name == "" {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Row: i, Reason: "missing name"})
			return
		}
		value, unit, err := ParseSize(cells.Eq(1).Text())
		if err != nil {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Row: i, Reason: err.Error()})
			return
		}
		cents, err := ParsePriceCents(cells.Eq(2).Text())
		if err != nil {
			sheet.Skipped = append(sheet.Skipped, SkippedRow{Row: i, Reason: err.Error()})
			return
		}

		sheet.Products = append(sheet.Products, domain.Product{
			Name:       name,
			Unit:       unit,
			SizeValue:  value,
			SizeUnit:   unit,
			PriceCents: cents,
		})
	})
	return sheet, nil
}

func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// ParseSize splits a package size such as "1 kg", "500g" or "1,5 l".
// The unit must be one the price normalizer understands.
func ParseSize(raw string) (float64, string, error) {
	s := strings.ReplaceAll(cleanText(raw), " ", "")
	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.' && r != ','
	})
	if split <= 0 {
		return 0, "", fmt.Errorf("invalid size %q", raw)
	}

	value, err := strconv.ParseFloat(strings.Replace(s[:split], ",", ".", 1), 64)
	if err != nil || value <= 0 {
		return 0, "", fmt.Errorf("invalid size %q", raw)
	}
	unit := strings.ToLower(s[split:])
	if _, ok := services.LookupUnit(unit); !ok {
		return 0, "", fmt.Errorf("unknown unit %q", unit)
	}
	return value, unit, nil
}

// ParsePriceCents converts "1,99 €", "€1.50" or "1.234,56" into cents.
// When both separators appear the last one is the decimal mark.
func ParsePriceCents(raw string) (int64, error) {
	s := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '.' || r == ',' || r == '-' {
			return r
		}
		return -1
	}, raw)
	if s == "" {
		return 0, fmt.Errorf("invalid price %q", raw)
	}

	lastDot, lastComma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	default:
		s = strings.Replace(s, ",", ".", 1)
	}

	value, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if value < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return int64(math.Round(value * 100)), nil
}
