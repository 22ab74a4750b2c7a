package computo

import (
	"log/slog"
	"time"

	"github.com/klippa-app/go-pdfium"
	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// Processor drives a whole document through extraction and segmentation
// using a pdfium instance. One Processor handles one document at a time;
// use separate instances for parallel documents.
type Processor struct {
	instance  pdfium.Pdfium
	cfg       Config
	segmenter *Segmenter
	log       *slog.Logger
}

// NewProcessor creates a Processor with the given configuration. The
// configuration is validated here so threshold mistakes surface at startup.
func NewProcessor(instance pdfium.Pdfium, cfg Config) (*Processor, error) {
	segmenter, err := NewSegmenter(cfg)
	if err != nil {
		return nil, err
	}
	return &Processor{
		instance:  instance,
		cfg:       cfg,
		segmenter: segmenter,
		log:       cfg.logger(),
	}, nil
}

// ExtractDocument opens a PDF file and extracts the text-and-geometry view of
// every page. A page that fails to load or extract is logged and skipped; one
// damaged page must not void an otherwise good document.
func (p *Processor) ExtractDocument(filePath string) (*Document, error) {
	doc, err := p.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer p.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return p.extractAllPages(doc.Document)
}

// ExtractDocumentBytes is ExtractDocument for an in-memory PDF.
func (p *Processor) ExtractDocumentBytes(pdfBytes []byte) (*Document, error) {
	doc, err := p.instance.OpenDocument(&requests.OpenDocument{
		File: &pdfBytes,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer p.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	return p.extractAllPages(doc.Document)
}

// SegmentFile extracts, cleans and segments a PDF file in one pass.
func (p *Processor) SegmentFile(filePath string) (SegmentationResult, error) {
	doc, err := p.ExtractDocument(filePath)
	if err != nil {
		return SegmentationResult{}, err
	}
	return p.segmenter.Segment(CleanDocument(doc)), nil
}

// SegmentBytes is SegmentFile for an in-memory PDF.
func (p *Processor) SegmentBytes(pdfBytes []byte) (SegmentationResult, error) {
	doc, err := p.ExtractDocumentBytes(pdfBytes)
	if err != nil {
		return SegmentationResult{}, err
	}
	return p.segmenter.Segment(CleanDocument(doc)), nil
}

func (p *Processor) extractAllPages(docRef references.FPDF_DOCUMENT) (*Document, error) {
	pageCount, err := p.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: docRef,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	start := time.Now()
	document := &Document{
		Pages: make([]Page, 0, pageCount.PageCount),
	}

	for i := 0; i < pageCount.PageCount; i++ {
		page, err := p.extractPage(docRef, i)
		if err != nil {
			p.log.Warn("skipping unreadable page", "page", i+1, "error", err)
			continue
		}
		document.Pages = append(document.Pages, *page)
	}

	p.log.Debug("document extracted",
		"pages", len(document.Pages),
		"skipped", pageCount.PageCount-len(document.Pages),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return document, nil
}

func (p *Processor) extractPage(docRef references.FPDF_DOCUMENT, pageIndex int) (*Page, error) {
	pageResp, err := p.instance.FPDF_LoadPage(&requests.FPDF_LoadPage{
		Document: docRef,
		Index:    pageIndex,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to load page")
	}
	defer p.instance.FPDF_ClosePage(&requests.FPDF_ClosePage{
		Page: pageResp.Page,
	})

	page, err := ExtractPage(p.instance, pageResp.Page, pageIndex+1)
	if err != nil {
		return nil, errors.Wrap(err, "failed to extract page content")
	}
	return page, nil
}
