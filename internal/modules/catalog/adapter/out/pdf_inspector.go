package out

import (
	"bytes"
	"fmt"

	catalogout "studydesk/internal/modules/catalog/port/out"
	"rsc.io/pdf"
)

type PDFInspector struct{}

func NewPDFInspector() catalogout.DocumentInspector {
	return &PDFInspector{}
}

func (i *PDFInspector) PageCount(data []byte) (int, error) {
	doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	return doc.NumPage(), nil
}
