package export

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/bluevelvet-api/internal/application/dto"
)

// XMLWriter exporta <categories count="n"><category id=".."><name>..</name>...</category></categories>.
type XMLWriter struct{}

func (XMLWriter) Format() string      { return "xml" }
func (XMLWriter) ContentType() string { return "application/xml" }

func (XMLWriter) Write(_ context.Context, categories []dto.CategoryResponse) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("categories")
	root.CreateAttr("count", strconv.Itoa(len(categories)))

	for _, c := range categories {
		el := root.CreateElement("category")
		vals := values(c)
		el.CreateAttr(columns[0], vals[0])
		for i := 1; i < len(columns); i++ {
			if vals[i] == "" {
				continue
			}
			el.CreateElement(columns[i]).SetText(vals[i])
		}
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("xml: %w", err)
	}
	return out.Bytes(), nil
}
