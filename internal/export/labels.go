package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// LabelInfo holds the data encoded into each game label's QR code.
type LabelInfo struct {
	GameID      string  `json:"id"`
	Name        string  `json:"name"`
	Genre       string  `json:"genre,omitempty"`
	Publisher   string  `json:"publisher,omitempty"`
	Width       float64 `json:"width_mm"`
	Height      float64 `json:"height_mm"`
	Depth       float64 `json:"depth_mm"`
	ShelfIndex  int     `json:"shelf"`
	Orientation string  `json:"orientation"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
// Each label cell is approximately 66.7mm x 25.4mm on US Letter paper.
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // QR code size in mm
	labelPadding    = 2.0  // mm internal padding
)

// ExportLabels generates a PDF of QR-coded labels, one per shelved game,
// laid out on an Avery 5160 sheet (3 columns x 10 rows on US Letter).
func ExportLabels(path string, result model.SortResult) error {
	if len(result.Shelves) == 0 {
		return fmt.Errorf("no shelves to generate labels for")
	}

	labels := CollectLabelInfos(result)
	if len(labels) == 0 {
		return fmt.Errorf("no games placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, i, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.Name, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, seq int, info LabelInfo) error {
	// Cutting guide
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Image names must be unique per document; duplicate games share IDs.
	imgName := fmt.Sprintf("qr_%d_%s", seq, info.GameID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, truncate(pdf, info.Name, textW), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.0f x %.0f x %.0f mm", info.Width, info.Height, info.Depth)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	shelfInfo := fmt.Sprintf("Shelf %d, %s", info.ShelfIndex, info.Orientation)
	pdf.CellFormat(textW, 3, shelfInfo, "", 1, "L", false, 0, "")

	if info.Publisher != "" || info.Genre != "" {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		meta := info.Genre
		if info.Publisher != "" {
			if meta != "" {
				meta += " / "
			}
			meta += info.Publisher
		}
		pdf.CellFormat(textW, 3, truncate(pdf, meta, textW), "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	return nil
}

// CollectLabelInfos extracts one label per shelved game, in shelf order.
func CollectLabelInfos(result model.SortResult) []LabelInfo {
	var labels []LabelInfo
	for shelfIdx, shelf := range result.Shelves {
		for i, g := range shelf.Games {
			labels = append(labels, LabelInfo{
				GameID:      g.ID,
				Name:        g.Name,
				Genre:       string(g.Genre),
				Publisher:   g.Publisher,
				Width:       g.Width,
				Height:      g.Height,
				Depth:       g.Depth,
				ShelfIndex:  shelfIdx + 1,
				Orientation: shelf.Orientation(i, result.Settings.Placement).String(),
			})
		}
	}
	return labels
}
