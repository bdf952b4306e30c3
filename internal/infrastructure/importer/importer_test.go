package importer_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Obrix-api/internal/infrastructure/importer"
)

func TestNewUTF8Reader_UTF8SinCambios(t *testing.T) {
	r, enc, err := importer.NewUTF8Reader(bytes.NewReader([]byte("sku,name\nA-1,Baldosa cerámica\n")))
	require.NoError(t, err)
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, importer.EncodingUTF8, enc)
	assert.Equal(t, "sku,name\nA-1,Baldosa cerámica\n", string(out))
}

func TestNewUTF8Reader_DescartaBOM(t *testing.T) {
	in := append([]byte{0xEF, 0xBB, 0xBF}, []byte("sku,name\n")...)
	r, enc, err := importer.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)
	out, _ := io.ReadAll(r)
	assert.Equal(t, importer.EncodingUTF8, enc)
	assert.Equal(t, "sku,name\n", string(out))
}

func TestNewUTF8Reader_Latin1SeConvierte(t *testing.T) {
	// "Cerámica" en Windows-1252: á = 0xE1
	in := []byte("sku,name\nT-1,Cer\xe1mica\n")
	r, _, err := importer.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)
	out, _ := io.ReadAll(r)
	assert.Contains(t, string(out), "Cerámica")
}

func TestNewUTF8Reader_UTF16LE(t *testing.T) {
	in := []byte{0xFF, 0xFE, 's', 0, 'k', 0, 'u', 0}
	r, enc, err := importer.NewUTF8Reader(bytes.NewReader(in))
	require.NoError(t, err)
	out, _ := io.ReadAll(r)
	assert.Equal(t, importer.EncodingUTF16LE, enc)
	assert.Equal(t, "sku", string(out))
}

func TestParseMaterials_FilasValidasYErrores(t *testing.T) {
	csv := "SKU,Name,Unit,Quantity,Unit Cost,Reorder Level\n" +
		"T-1,Tile 12x12,sq ft,120,$2.50,20\n" +
		"\n" +
		",Sin sku,pcs,1,1,0\n" +
		"P-9,Paint,gal,abc,30,2\n" +
		"L-2,Lumber,pcs,-4,3,1\n" +
		"D-1,Drywall,sheet,\"1,200\",12.75,\n"

	res, err := importer.ParseMaterials(bytes.NewReader([]byte(csv)))
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "T-1", res.Rows[0].Item.SKU)
	assert.Equal(t, 2, res.Rows[0].Line)
	assert.Equal(t, "2.5", res.Rows[0].Item.UnitCost.String())
	assert.Equal(t, "1200", res.Rows[1].Item.Quantity.String())
	assert.True(t, res.Rows[1].Item.ReorderLevel.IsZero())

	require.Len(t, res.Errors, 3)
	assert.Equal(t, 4, res.Errors[0].Line)
	assert.Equal(t, 5, res.Errors[1].Line)
	assert.Contains(t, res.Errors[1].Error(), "quantity")
	assert.Equal(t, 6, res.Errors[2].Line)
}

func TestParseMaterials_PuntoYComa(t *testing.T) {
	res, err := importer.ParseMaterials(bytes.NewReader([]byte("sku;name;quantity\nV-1;Vinyl;10\n")))
	require.NoError(t, err)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "Vinyl", res.Rows[0].Item.Name)
	assert.Equal(t, "10", res.Rows[0].Item.Quantity.String())
}

func TestParseMaterials_SinColumnasObligatorias(t *testing.T) {
	_, err := importer.ParseMaterials(bytes.NewReader([]byte("code,description\nx,y\n")))
	assert.ErrorIs(t, err, importer.ErrMissingColumns)

	_, err = importer.ParseMaterials(bytes.NewReader(nil))
	assert.ErrorIs(t, err, importer.ErrMissingColumns)
}
