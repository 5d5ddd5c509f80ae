package render

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/akeil/bmpscale/internal/logging"
)

// Entry is one page of a report: an image before and after resizing.
type Entry struct {
	Name   string
	Source image.Image
	Result image.Image
	// Note is printed below the images, e.g. the resize settings.
	Note string
}

const (
	tsFormat = "2006-01-02 15:04:05"
	margin   = 36.0 // half an inch
	gutter   = 18.0
	caption  = 14.0
)

// Report renders a PDF with one A4 page per entry, showing the source and
// result images side by side.
//
// The resulting PDF document is written to the given writer.
func Report(entries []Entry, w io.Writer) error {
	if len(entries) == 0 {
		return fmt.Errorf("no entries to render")
	}

	pdf := setupPDF("A4", time.Now())
	for _, e := range entries {
		err := renderEntry(pdf, e)
		if err != nil {
			return err
		}
	}

	return pdf.Output(w)
}

func setupPDF(pageSize string, created time.Time) *gofpdf.Fpdf {
	orientation := "P" // [P]ortrait or [L]andscape
	sizeUnit := "pt"
	fontDir := ""
	pdf := gofpdf.New(orientation, sizeUnit, pageSize, fontDir)

	pdf.SetMargins(margin, margin, margin) // left, top, right
	pdf.AliasNbPages("{totalPages}")
	pdf.SetFont("helvetica", "", 9)
	pdf.SetTextColor(64, 64, 64)
	pdf.SetProducer("bmpscale", true)
	pdf.SetTitle("bmpscale report", true)
	pdf.SetCreationDate(created.UTC())

	pdf.SetFooterFunc(func() {
		pdf.SetY(-24)
		pdf.SetX(margin)
		pdf.Cellf(0, 10, "%d / {totalPages}  |  %v",
			pdf.PageNo(),
			created.Local().Format(tsFormat))
	})

	return pdf
}

func renderEntry(pdf *gofpdf.Fpdf, e Entry) error {
	logging.Debug("Render report page for %q", e.Name)
	pdf.AddPage()

	pdf.SetFont("helvetica", "B", 12)
	pdf.CellFormat(0, 16, e.Name, "", 1, "L", false, 0, "")
	pdf.SetFont("helvetica", "", 9)

	wPage, hPage := pdf.GetPageSize()
	boxW := (wPage - 2*margin - gutter) / 2
	boxH := hPage - 2*margin - 3*caption - 40
	top := pdf.GetY() + caption

	err := placeImage(pdf, e.Source, margin, top, boxW, boxH, "source")
	if err != nil {
		return err
	}
	err = placeImage(pdf, e.Result, margin+boxW+gutter, top, boxW, boxH, "result")
	if err != nil {
		return err
	}

	if e.Note != "" {
		pdf.SetXY(margin, top+boxH+caption)
		pdf.MultiCell(0, 12, e.Note, "", "L", false)
	}

	return pdf.Error()
}

// placeImage draws img into the given box, keeping its aspect ratio,
// with a caption above it.
func placeImage(pdf *gofpdf.Fpdf, img image.Image, x, y, boxW, boxH float64, label string) error {
	b := img.Bounds()
	pdf.Text(x, y-4, fmt.Sprintf("%v: %d x %d px", label, b.Dx(), b.Dy()))

	var buf bytes.Buffer
	err := PNG(img, &buf)
	if err != nil {
		return err
	}

	name := uuid.New().String()
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(name, opts, &buf)

	w, h := fit(float64(b.Dx()), float64(b.Dy()), boxW, boxH)
	flow := false
	link := 0
	linkStr := ""
	pdf.ImageOptions(name, x, y, w, h, flow, opts, link, linkStr)

	return pdf.Error()
}

// fit scales w x h to the largest size that fits into boxW x boxH.
func fit(w, h, boxW, boxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	s := boxW / w
	if hs := boxH / h; hs < s {
		s = hs
	}
	return w * s, h * s
}
