// PDF parser backed by docconv, exposed through the eino parser interface so
// the ingestion pipeline can treat scanned exhibits like any other document
// source.

package pdf

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/cloudwego/eino/components/document/parser"
	"github.com/cloudwego/eino/schema"

	"code.sajari.com/docconv/v2"
)

type Config struct {
	// MinTextLen rejects extractions below this length; scanned PDFs with no
	// OCR layer typically come back near empty.
	MinTextLen int
}

type DocconvPDFParser struct {
	minTextLen int
}

func NewDocconvPDFParser(ctx context.Context, config *Config) (*DocconvPDFParser, error) {
	if config == nil {
		config = &Config{}
	}
	return &DocconvPDFParser{minTextLen: config.MinTextLen}, nil
}

func (pp *DocconvPDFParser) Parse(ctx context.Context, reader io.Reader, opts ...parser.Option) ([]*schema.Document, error) {
	commonOpts := parser.GetCommonOptions(nil, opts...)

	res, meta, err := docconv.ConvertPDF(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pdf: %w", err)
	}
	if len(res) == 0 {
		return nil, fmt.Errorf("pdf produced no text, likely a scan without an OCR layer")
	}
	if pp.minTextLen > 0 && len(res) < pp.minTextLen {
		log.Printf("[Parser] short pdf extraction (%d chars), meta: %v", len(res), meta)
	}

	return []*schema.Document{{
		Content:  res,
		MetaData: commonOpts.ExtraMeta,
	}}, nil
}
