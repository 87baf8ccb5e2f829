// seed_catalog genera scripts SQL para poblar los catálogos de lectura (productos, clientes y compradores)
// a partir de las hojas exportadas por la oficina de acopio.
//
// Uso: go run ./cmd/seed_catalog <products|clients|buyers> <archivo.csv> [salida.sql]
// El CSV va separado por ';' con fila de encabezado. Si el archivo no es UTF-8 se lee como Windows-1252
// (exportación por defecto de Excel en español). Los decimales admiten coma.
// Por defecto escribe seed_<tipo>.sql en el directorio actual.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/ColiJD/CafeHenola-sub001/internal/domain/entity"
)

const (
	kindProducts = "products"
	kindClients  = "clients"
	kindBuyers   = "buyers"
)

// counterpartRow fila de clientes o compradores.
type counterpartRow struct {
	ID    string
	Name  string
	TaxID string
}

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog <products|clients|buyers> <archivo.csv> [salida.sql]")
		os.Exit(2)
	}
	kind, csvPath := os.Args[1], os.Args[2]
	outPath := "seed_" + kind + ".sql"
	if len(os.Args) > 3 {
		outPath = os.Args[3]
	}

	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var sql bytes.Buffer
	var count int
	switch kind {
	case kindProducts:
		products, err := parseProducts(decodeLegacy(raw))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Productos: %v\n", err)
			os.Exit(1)
		}
		writeProductsSQL(&sql, products)
		count = len(products)
	case kindClients, kindBuyers:
		rows, err := parseCounterparts(decodeLegacy(raw))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", kind, err)
			os.Exit(1)
		}
		writeCounterpartsSQL(&sql, kind, rows)
		count = len(rows)
	default:
		fmt.Fprintf(os.Stderr, "tipo desconocido %q\n", kind)
		os.Exit(2)
	}

	if err := os.WriteFile(outPath, sql.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d filas de %s\n", outPath, count, kind)
}

// decodeLegacy devuelve un lector UTF-8; lo que no sea UTF-8 válido se trata como Windows-1252.
func decodeLegacy(raw []byte) io.Reader {
	if utf8.Valid(raw) {
		return bytes.NewReader(bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf")))
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.Windows1252.NewDecoder())
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	return cr
}

// records lee todas las filas salvo el encabezado y las vacías. Devuelve cada fila con su número de línea.
func records(r io.Reader, minFields int) ([][]string, []int, error) {
	cr := newReader(r)
	var rows [][]string
	var lines []int
	header := true
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if header {
			header = false
			continue
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < minFields {
			return nil, nil, fmt.Errorf("línea %d: se esperaban %d columnas, hay %d", line, minFields, len(rec))
		}
		for i := range rec {
			rec[i] = strings.TrimSpace(rec[i])
		}
		rows = append(rows, rec)
		lines = append(lines, line)
	}
	return rows, lines, nil
}

// parseProducts columnas: id;nombre;tara;descuento;factor.
func parseProducts(r io.Reader) ([]entity.Product, error) {
	rows, lines, err := records(r, 5)
	if err != nil {
		return nil, err
	}
	products := make([]entity.Product, 0, len(rows))
	for i, rec := range rows {
		line := lines[i]
		if rec[0] == "" || rec[1] == "" {
			return nil, fmt.Errorf("línea %d: id y nombre son obligatorios", line)
		}
		tare, err := parseNumber(rec[2])
		if err != nil || tare.IsNegative() {
			return nil, fmt.Errorf("línea %d: tara inválida %q", line, rec[2])
		}
		discount, err := parseNumber(rec[3])
		if err != nil || discount.IsNegative() || discount.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("línea %d: descuento inválido %q", line, rec[3])
		}
		factor, err := parseNumber(rec[4])
		if err != nil || !factor.IsPositive() {
			return nil, fmt.Errorf("línea %d: factor inválido %q", line, rec[4])
		}
		products = append(products, entity.Product{
			ID:         rec[0],
			Name:       rec[1],
			Tare:       tare,
			Discount:   discount,
			GoldFactor: factor,
		})
	}
	return products, nil
}

// parseCounterparts columnas: id;nombre[;nit].
func parseCounterparts(r io.Reader) ([]counterpartRow, error) {
	rows, lines, err := records(r, 2)
	if err != nil {
		return nil, err
	}
	out := make([]counterpartRow, 0, len(rows))
	for i, rec := range rows {
		if rec[0] == "" || rec[1] == "" {
			return nil, fmt.Errorf("línea %d: id y nombre son obligatorios", lines[i])
		}
		row := counterpartRow{ID: rec[0], Name: rec[1]}
		if len(rec) > 2 {
			row.TaxID = rec[2]
		}
		out = append(out, row)
	}
	return out, nil
}

// parseNumber acepta coma decimal; vacío es cero.
func parseNumber(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(strings.ReplaceAll(s, ",", "."))
}

func writeProductsSQL(w io.Writer, products []entity.Product) {
	fmt.Fprintln(w, "-- Productos y factores de conversión")
	fmt.Fprintln(w, "-- Generado por seed_catalog")
	fmt.Fprintln(w)
	for _, p := range products {
		fmt.Fprintln(w, "INSERT INTO products (id, name, tare, discount, gold_factor)")
		fmt.Fprintf(w, "VALUES ('%s', '%s', %s, %s, %s)\n",
			escapeSQL(p.ID), escapeSQL(p.Name), p.Tare.String(), p.Discount.String(), p.GoldFactor.String())
		fmt.Fprintln(w, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, tare = EXCLUDED.tare,")
		fmt.Fprintln(w, "  discount = EXCLUDED.discount, gold_factor = EXCLUDED.gold_factor, updated_at = now();")
	}
}

// writeCounterpartsSQL table es clients o buyers.
func writeCounterpartsSQL(w io.Writer, table string, rows []counterpartRow) {
	fmt.Fprintf(w, "-- Catálogo %s\n", table)
	fmt.Fprintln(w, "-- Generado por seed_catalog")
	fmt.Fprintln(w)
	if len(rows) == 0 {
		return
	}
	fmt.Fprintf(w, "INSERT INTO %s (id, name, tax_id) VALUES\n", table)
	for i, r := range rows {
		sep := ","
		if i == len(rows)-1 {
			sep = ""
		}
		fmt.Fprintf(w, "  ('%s', '%s', '%s')%s\n", escapeSQL(r.ID), escapeSQL(r.Name), escapeSQL(r.TaxID), sep)
	}
	fmt.Fprintln(w, "ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, tax_id = EXCLUDED.tax_id;")
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
