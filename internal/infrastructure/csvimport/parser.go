// Package csvimport lee el CSV de carga inicial del catálogo
// (columnas Name, Quantity, Price, Category, Description).
package csvimport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/inventory-tracker/internal/application/dto"
)

// Encoding codificación del archivo de entrada.
type Encoding string

const (
	// EncodingAuto usa UTF-8 si el contenido es válido y si no ISO-8859-1.
	EncodingAuto   Encoding = "auto"
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin1"
)

// ParseEncoding interpreta el nombre de la codificación (flag del seed).
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf-8", "utf8":
		return EncodingUTF8, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return EncodingLatin1, nil
	}
	return "", fmt.Errorf("codificación no soportada: %q", s)
}

// Result filas válidas del CSV. Lines[i] es el número de fila (desde 1, sin encabezado) de Items[i].
type Result struct {
	Items  []dto.CreateItemRequest
	Lines  []int
	Errors []dto.ImportRowError
}

var (
	// ErrMissingHeader el archivo no tiene encabezado.
	ErrMissingHeader = errors.New("csv sin encabezado")
	// ErrMissingName el encabezado no incluye la columna Name.
	ErrMissingName = errors.New("csv sin columna Name")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse lee el CSV completo. Las filas con valores inválidos se reportan en Errors y no detienen la lectura.
func Parse(r io.Reader, enc Encoding) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer csv: %w", err)
	}
	raw = bytes.TrimPrefix(raw, utf8BOM)

	var src io.Reader = bytes.NewReader(raw)
	if enc == EncodingLatin1 || (enc == EncodingAuto && !utf8.Valid(raw)) {
		src = transform.NewReader(src, charmap.ISO8859_1.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	cols := columnIndexes(header)
	if cols["name"] < 0 {
		return nil, ErrMissingName
	}

	res := &Result{}
	row := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		row++
		if err != nil {
			res.Errors = append(res.Errors, dto.ImportRowError{Row: row, Message: err.Error()})
			continue
		}
		if blank(record) {
			continue
		}
		item, perr := parseRecord(record, cols)
		if perr != nil {
			res.Errors = append(res.Errors, dto.ImportRowError{Row: row, Name: item.Name, Message: perr.Error()})
			continue
		}
		res.Items = append(res.Items, item)
		res.Lines = append(res.Lines, row)
	}
	return res, nil
}

func columnIndexes(header []string) map[string]int {
	cols := map[string]int{"name": -1, "quantity": -1, "price": -1, "category": -1, "description": -1}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := cols[key]; ok && cols[key] < 0 {
			cols[key] = i
		}
	}
	return cols
}

func field(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseRecord(record []string, cols map[string]int) (dto.CreateItemRequest, error) {
	item := dto.CreateItemRequest{
		Name:        field(record, cols["name"]),
		Category:    field(record, cols["category"]),
		Description: field(record, cols["description"]),
		Price:       decimal.Zero,
	}
	if q := field(record, cols["quantity"]); q != "" {
		n, err := strconv.ParseInt(q, 10, 64)
		if err != nil {
			return item, fmt.Errorf("Quantity inválida %q", q)
		}
		item.Quantity = n
	}
	if p := field(record, cols["price"]); p != "" {
		d, err := decimal.NewFromString(p)
		if err != nil {
			return item, fmt.Errorf("Price inválido %q", p)
		}
		item.Price = d
	}
	return item, nil
}

func blank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
