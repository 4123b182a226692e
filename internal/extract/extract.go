package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// Extractor converts a binary document payload into plain text.
// An empty result is a valid extraction (image-only/scanned PDFs);
// callers decide what to do with it.
type Extractor interface {
	Text(ctx context.Context, data []byte) (string, error)
}

// PDFExtractor extracts text using github.com/ledongthuc/pdf.
type PDFExtractor struct{}

func (PDFExtractor) Text(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}

	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}
