package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeLegacy_Windows1252(t *testing.T) {
	// "Café uva" con é en Windows-1252 (0xE9)
	raw := []byte("id;nombre\ncafe-uva;Caf\xe9 uva\n")
	out, err := io.ReadAll(decodeLegacy(raw))
	require.NoError(t, err)
	assert.Contains(t, string(out), "Café uva")
}

func TestDecodeLegacy_UTF8ConBOM(t *testing.T) {
	raw := append([]byte("\xef\xbb\xbf"), []byte("id;nombre\nx;Ñame\n")...)
	out, err := io.ReadAll(decodeLegacy(raw))
	require.NoError(t, err)
	assert.Equal(t, "id;nombre\nx;Ñame\n", string(out))
}

func TestParseProducts(t *testing.T) {
	in := "id;nombre;tara;descuento;factor\n" +
		"cafe-pergamino;Café pergamino;1;0;1,15\n" +
		"\n" +
		"cafe-uva; Café uva ;0,5;0,02;5\n"

	products, err := parseProducts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, products, 2)

	assert.Equal(t, "cafe-pergamino", products[0].ID)
	assert.Equal(t, "1.15", products[0].GoldFactor.String())
	assert.Equal(t, "Café uva", products[1].Name)
	assert.Equal(t, "0.5", products[1].Tare.String())
	assert.Equal(t, "0.02", products[1].Discount.String())
}

func TestParseProducts_Rechazos(t *testing.T) {
	header := "id;nombre;tara;descuento;factor\n"
	tests := []struct {
		name string
		row  string
		msg  string
	}{
		{"factor cero", "p;P;1;0;0", "factor inválido"},
		{"tara negativa", "p;P;-1;0;1", "tara inválida"},
		{"descuento completo", "p;P;1;1;1", "descuento inválido"},
		{"sin nombre", "p;;1;0;1", "obligatorios"},
		{"columnas faltantes", "p;P;1", "se esperaban 5 columnas"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProducts(strings.NewReader(header + tt.row + "\n"))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.msg)
			assert.Contains(t, err.Error(), "línea 2")
		})
	}
}

func TestParseCounterparts(t *testing.T) {
	in := "id;nombre;nit\ncli-1;Finca O'Neill;900123\ncli-2;La Esperanza\n"
	rows, err := parseCounterparts(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "900123", rows[0].TaxID)
	assert.Empty(t, rows[1].TaxID)
}

func TestWriteSQL(t *testing.T) {
	products, err := parseProducts(strings.NewReader("id;nombre;tara;descuento;factor\np1;Café;1;0;1,15\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	writeProductsSQL(&buf, products)
	assert.Contains(t, buf.String(), "VALUES ('p1', 'Café', 1, 0, 1.15)")
	assert.Contains(t, buf.String(), "ON CONFLICT (id) DO UPDATE")

	buf.Reset()
	writeCounterpartsSQL(&buf, kindClients, []counterpartRow{
		{ID: "cli-1", Name: "Finca O'Neill"},
		{ID: "cli-2", Name: "La Esperanza", TaxID: "800"},
	})
	sql := buf.String()
	assert.Contains(t, sql, "INSERT INTO clients (id, name, tax_id) VALUES")
	assert.Contains(t, sql, "('cli-1', 'Finca O''Neill', ''),")
	assert.Contains(t, sql, "('cli-2', 'La Esperanza', '800')\nON CONFLICT")
}
