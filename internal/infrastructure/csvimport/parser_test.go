package csvimport

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = `Name,Quantity,Price,Category,Description
Laptop,10,999.99,Electronics,Portátil de 15 pulgadas
Mouse,50,19.5,Electronics,
Silla,abc,120,Muebles,Ergonómica

Escritorio,5,,Muebles,
`

func TestParse_UTF8(t *testing.T) {
	res, err := Parse(strings.NewReader(sample), EncodingAuto)
	require.NoError(t, err)

	require.Len(t, res.Items, 3)
	assert.Equal(t, []int{1, 2, 4}, res.Lines)

	laptop := res.Items[0]
	assert.Equal(t, "Laptop", laptop.Name)
	assert.EqualValues(t, 10, laptop.Quantity)
	assert.Equal(t, "999.99", laptop.Price.StringFixed(2))
	assert.Equal(t, "Electronics", laptop.Category)
	assert.Equal(t, "Portátil de 15 pulgadas", laptop.Description)

	assert.True(t, res.Items[2].Price.IsZero())

	require.Len(t, res.Errors, 1)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Equal(t, "Silla", res.Errors[0].Name)
	assert.Contains(t, res.Errors[0].Message, "Quantity")
}

func TestParse_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String("Name,Quantity,Price,Category\nCañería,3,4.50,Fontanería\n")
	require.NoError(t, err)

	res, err := Parse(strings.NewReader(encoded), EncodingAuto)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Cañería", res.Items[0].Name)
	assert.Equal(t, "Fontanería", res.Items[0].Category)

	forced, err := Parse(strings.NewReader(encoded), EncodingLatin1)
	require.NoError(t, err)
	assert.Equal(t, res.Items, forced.Items)
}

func TestParse_HeaderCaseAndBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("description, NAME ,quantity\nAzul,Lápiz,7\n")...)
	res, err := Parse(bytes.NewReader(in), EncodingUTF8)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Lápiz", res.Items[0].Name)
	assert.Equal(t, "Azul", res.Items[0].Description)
	assert.EqualValues(t, 7, res.Items[0].Quantity)
}

func TestParse_HeaderErrors(t *testing.T) {
	_, err := Parse(strings.NewReader(""), EncodingAuto)
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = Parse(strings.NewReader("Quantity,Price\n1,2\n"), EncodingAuto)
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestParseEncoding(t *testing.T) {
	for in, want := range map[string]Encoding{"": EncodingAuto, "UTF8": EncodingUTF8, "iso-8859-1": EncodingLatin1, "latin1": EncodingLatin1} {
		got, err := ParseEncoding(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseEncoding("ebcdic")
	assert.Error(t, err)
}
