package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
)

func sample() []dto.CategoryResponse {
	at := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
	return []dto.CategoryResponse{
		{ID: "a1", Name: "Metal", Enabled: true, ParentID: "r1", ParentName: "Rock", CreatedAt: at, UpdatedAt: at},
		{ID: "r1", Name: "Rock, Pop & Soul", Image: "rock.png", Enabled: false, CreatedAt: at, UpdatedAt: at},
	}
}

func TestCSVWriter(t *testing.T) {
	data, err := CSVWriter{}.Write(context.Background(), sample())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, columns, records[0])
	assert.Equal(t, []string{"a1", "Metal", "", "true", "r1", "Rock", "2024-05-01T12:30:00Z", "2024-05-01T12:30:00Z"}, records[1])
	assert.Equal(t, "Rock, Pop & Soul", records[2][1], "las comas deben quedar escapadas")
}

func TestXMLWriter(t *testing.T) {
	data, err := XMLWriter{}.Write(context.Background(), sample())
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(data))
	root := doc.SelectElement("categories")
	require.NotNil(t, root)
	assert.Equal(t, "2", root.SelectAttrValue("count", ""))

	items := root.SelectElements("category")
	require.Len(t, items, 2)
	assert.Equal(t, "a1", items[0].SelectAttrValue("id", ""))
	assert.Equal(t, "Rock", items[0].SelectElement("parent_name").Text())
	assert.Nil(t, items[0].SelectElement("image"), "campos vacíos se omiten")
	assert.Equal(t, "Rock, Pop & Soul", items[1].SelectElement("name").Text())
	assert.Equal(t, "false", items[1].SelectElement("enabled").Text())
}

func TestJSONWriter(t *testing.T) {
	data, err := JSONWriter{}.Write(context.Background(), nil)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))

	data, err = JSONWriter{}.Write(context.Background(), sample())
	require.NoError(t, err)
	var out []dto.CategoryResponse
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Rock", out[0].ParentName)
}

func TestWriters_Formatos(t *testing.T) {
	var formats []string
	for _, w := range Writers() {
		formats = append(formats, w.Format())
		assert.NotEmpty(t, w.ContentType())
	}
	assert.Equal(t, []string{"json", "csv", "xml"}, formats)
}
