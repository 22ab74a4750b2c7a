package computo

import (
	"bytes"
	"image"
	"image/draw"
	"image/png"
	"math"

	"github.com/klippa-app/go-pdfium/references"
	"github.com/klippa-app/go-pdfium/requests"
	"github.com/pkg/errors"
)

// croppedRow is one rendered row image with its source rectangle.
type croppedRow struct {
	box   Rect
	image []byte
}

// pageCrops holds one surviving page's rendered rows, pre-numbering.
type pageCrops struct {
	page int
	rows []croppedRow
}

// SplitRows partitions a document's page imagery into one crop per delimiter
// keyword occurrence. Hit detection and row planning are pure (see
// FindKeywordHits and PlanRows); this method only adds rasterization. Crops
// are numbered document-wide in page-then-row order starting at 1.
//
// Pages that fail to load, extract, or render are logged and skipped; the
// global ordinal sequence stays contiguous across skips.
func (p *Processor) SplitRows(filePath string) ([]RowCrop, error) {
	doc, err := p.instance.OpenDocument(&requests.OpenDocument{
		FilePath: &filePath,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to open PDF document")
	}
	defer p.instance.FPDF_CloseDocument(&requests.FPDF_CloseDocument{
		Document: doc.Document,
	})

	pageCount, err := p.instance.FPDF_GetPageCount(&requests.FPDF_GetPageCount{
		Document: doc.Document,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get page count")
	}

	var pages []pageCrops
	for i := 0; i < pageCount.PageCount; i++ {
		page, err := p.extractPage(doc.Document, i)
		if err != nil {
			p.log.Warn("skipping unreadable page", "page", i+1, "error", err)
			continue
		}

		hits := FindKeywordHits(*page, p.cfg.Keyword)
		if len(hits) == 0 {
			continue
		}
		rows := PlanRows(*page, hits, p.cfg)
		if len(rows) == 0 {
			continue
		}

		rendered, err := p.rasterizeRows(doc.Document, i, rows)
		if err != nil {
			p.log.Warn("skipping unrenderable page", "page", i+1, "error", err)
			continue
		}
		if len(rendered) == 0 {
			continue
		}
		pages = append(pages, pageCrops{page: page.Number, rows: rendered})
	}

	return numberRowCrops(pages), nil
}

// numberRowCrops assigns row indexes and document-wide ordinals in
// page-then-row order. The input holds only surviving pages, so the ordinal
// sequence stays contiguous from 1 no matter which pages were skipped.
func numberRowCrops(pages []pageCrops) []RowCrop {
	var crops []RowCrop
	ordinal := 0
	for _, p := range pages {
		for i, row := range p.rows {
			ordinal++
			crops = append(crops, RowCrop{
				Page:          p.page,
				RowIndex:      i + 1,
				GlobalOrdinal: ordinal,
				Box:           row.box,
				ImageBytes:    row.image,
			})
		}
	}
	return crops
}

// rasterizeRows renders one page at the configured DPI and encodes each row
// rectangle as a PNG. The rendered buffer is pooled by pdfium, so every crop
// is copied out before Cleanup returns it. A row that fails to encode is
// logged and dropped; the rest of the page's rows survive.
func (p *Processor) rasterizeRows(docRef references.FPDF_DOCUMENT, pageIndex int, rows []Rect) ([]croppedRow, error) {
	render, err := p.instance.RenderPageInDPI(&requests.RenderPageInDPI{
		DPI: p.cfg.DPI,
		Page: requests.Page{
			ByIndex: &requests.PageByIndex{
				Document: docRef,
				Index:    pageIndex,
			},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to render page")
	}
	defer render.Cleanup()

	ratio := render.Result.PointToPixelRatio
	if ratio <= 0 {
		ratio = float64(p.cfg.DPI) / 72.0
	}

	crops := make([]croppedRow, 0, len(rows))
	for i, row := range rows {
		img, err := encodeCrop(render.Result.Image, row, ratio)
		if err != nil {
			p.log.Warn("skipping unencodable row crop",
				"page", pageIndex+1, "row", i+1, "error", err)
			continue
		}
		crops = append(crops, croppedRow{box: row, image: img})
	}
	return crops, nil
}

// encodeCrop copies one row rectangle (in PDF points) out of the rendered
// page and PNG-encodes it.
func encodeCrop(rendered *image.RGBA, row Rect, ratio float64) ([]byte, error) {
	pixelRect := image.Rect(
		int(math.Floor(row.X0*ratio)),
		int(math.Floor(row.Y0*ratio)),
		int(math.Ceil(row.X1*ratio)),
		int(math.Ceil(row.Y1*ratio)),
	).Intersect(rendered.Bounds())
	if pixelRect.Empty() {
		return nil, errors.Errorf("crop %v maps to an empty pixel region", row)
	}

	out := image.NewRGBA(image.Rect(0, 0, pixelRect.Dx(), pixelRect.Dy()))
	draw.Draw(out, out.Bounds(), rendered, pixelRect.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
