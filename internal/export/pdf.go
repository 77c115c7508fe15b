// Package export renders sorting results to PDF shelf plans and QR-coded
// game labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/ShelfSort/internal/model"
)

// gameColor represents an RGB color for a placed game.
type gameColor struct {
	R, G, B int
}

var gameColors = []gameColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 25.0
	drawAreaTop  = marginTop + headerHeight + 8.0
)

// ExportPDF writes one page per shelf with a scaled front view of the games
// on it, followed by a summary page.
func ExportPDF(path string, result model.SortResult) error {
	if len(result.Shelves) == 0 {
		return fmt.Errorf("no shelves to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for i, shelf := range result.Shelves {
		pdf.AddPage()
		renderShelfPage(pdf, shelf, result.Settings, i+1)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, result)

	return pdf.OutputFileAndClose(path)
}

// gameRect is a game's outline on the shelf front, in shelf millimetres
// with the origin at the bottom-left corner.
type gameRect struct {
	Game        model.Game
	Orientation model.Placement
	X, Y, W, H  float64
}

// layoutShelf positions every game on the shelf front. Standing games line
// up from the left edge showing their spine; lying games stack up from the
// floor against the right edge.
func layoutShelf(shelf model.Shelf, settings model.SortSettings) []gameRect {
	rects := make([]gameRect, 0, len(shelf.Games))
	var cursorX, cursorY float64
	for i, g := range shelf.Games {
		faceW, faceH := displayFace(g, settings.Rotation, shelf)
		orientation := shelf.Orientation(i, settings.Placement)
		r := gameRect{Game: g, Orientation: orientation}
		if orientation == model.PlacementHorizontal {
			r.W = math.Min(faceW, shelf.Width)
			r.H = g.Depth
			r.X = shelf.Width - r.W
			r.Y = cursorY
			cursorY += g.Depth
		} else {
			r.W = g.Depth
			r.H = math.Min(faceH, shelf.Height)
			r.X = cursorX
			r.Y = 0
			cursorX += g.Depth
		}
		rects = append(rects, r)
	}
	return rects
}

// displayFace picks the face drawn on the plan. Free rotation shows the
// unrotated face when it fits the shelf.
func displayFace(g model.Game, r model.Rotation, shelf model.Shelf) (w, h float64) {
	if r != model.RotationFree {
		return g.Face(r)
	}
	w, h = g.Face(model.RotationNone)
	if w <= shelf.Width && h <= shelf.Height {
		return w, h
	}
	return g.Face(model.RotationRotated)
}

// renderShelfPage draws a single shelf on the current PDF page.
func renderShelfPage(pdf *fpdf.Fpdf, shelf model.Shelf, settings model.SortSettings, shelfNum int) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Shelf %d (%.0f x %.0f mm)", shelfNum, shelf.Width, shelf.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Games: %d | Used depth: %.0f mm | Placement: %s | Rotation: %s",
		len(shelf.Games), shelf.UsedDepth(), settings.Placement, settings.Rotation)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/shelf.Width, drawHeight/shelf.Height)
	canvasW := shelf.Width * scale
	canvasH := shelf.Height * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Shelf interior
	pdf.SetFillColor(222, 196, 160)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, r := range layoutShelf(shelf, settings) {
		col := gameColors[i%len(gameColors)]
		gw := r.W * scale
		gh := r.H * scale
		gx := offsetX + r.X*scale
		gy := offsetY + canvasH - (r.Y+r.H)*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(gx, gy, gw, gh, "FD")

		drawGameName(pdf, r, gx, gy, gw, gh)
	}

	drawDimensionAnnotations(pdf, shelf, offsetX, offsetY, canvasW, canvasH)
	drawGamesLegend(pdf, shelf, settings, offsetY+canvasH+6)
}

// drawGameName writes the game name inside its outline, along the spine
// for standing games.
func drawGameName(pdf *fpdf.Fpdf, r gameRect, x, y, w, h float64) {
	long, short := w, h
	if r.Orientation == model.PlacementVertical {
		long, short = h, w
	}
	if long < 15 || short < 4 {
		return
	}

	pdf.SetFont("Helvetica", "", labelFontSize(long, short))
	pdf.SetTextColor(0, 0, 0)
	name := truncate(pdf, r.Game.Name, long-2)
	nameW := pdf.GetStringWidth(name)

	cx := x + w/2
	cy := y + h/2
	if r.Orientation == model.PlacementVertical {
		pdf.TransformBegin()
		pdf.TransformRotate(90, cx, cy)
	}
	pdf.SetXY(cx-nameW/2, cy-2)
	pdf.CellFormat(nameW, 4, name, "", 0, "C", false, 0, "")
	if r.Orientation == model.PlacementVertical {
		pdf.TransformEnd()
	}
}

// drawDimensionAnnotations adds width and height labels outside the shelf rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, shelf model.Shelf, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", shelf.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", shelf.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawGamesLegend renders a compact legend of the games on the shelf.
func drawGamesLegend(pdf *fpdf.Fpdf, shelf model.Shelf, settings model.SortSettings, startY float64) {
	if shelf.IsEmpty() {
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.SetXY(marginLeft, startY)
		pdf.CellFormat(60, 4, "Empty shelf", "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Games:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, g := range shelf.Games {
		col := gameColors[i%len(gameColors)]
		label := fmt.Sprintf("%s (%.0fx%.0fx%.0f)", g.Name, g.Width, g.Height, g.Depth)
		if shelf.Orientation(i, settings.Placement) == model.PlacementHorizontal {
			label += " H"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.SortResult) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Shelf Sort Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	s := result.Settings
	summaryItems := []struct {
		label string
		value string
	}{
		{"Shelves", fmt.Sprintf("%d", len(result.Shelves))},
		{"Shelves Used", fmt.Sprintf("%d", result.ShelvesUsed())},
		{"Games Placed", fmt.Sprintf("%d", result.GameCount())},
		{"Fill", fmt.Sprintf("%.1f%%", result.FillPercent())},
		{"Shelf Size", fmt.Sprintf("%.0f x %.0f mm", s.ShelfWidth, s.ShelfHeight)},
		{"Placement", s.Placement.String()},
		{"Rotation", s.Rotation.String()},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Shelf Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 50, 30, 30, 30, 107}
	headers := []string{"Shelf", "Dimensions", "Games", "Standing", "Lying", "Used Depth"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, shelf := range result.Shelves {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		standing, lying := countOrientations(shelf, s.Placement)
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.0f x %.0f mm", shelf.Width, shelf.Height),
			fmt.Sprintf("%d", len(shelf.Games)),
			fmt.Sprintf("%d", standing),
			fmt.Sprintf("%d", lying),
			fmt.Sprintf("%.0f mm", shelf.UsedDepth()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		xPos = marginLeft
		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by ShelfSort", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// countOrientations splits a shelf's games into standing and lying.
func countOrientations(shelf model.Shelf, run model.Placement) (standing, lying int) {
	for i := range shelf.Games {
		if shelf.Orientation(i, run) == model.PlacementHorizontal {
			lying++
		} else {
			standing++
		}
	}
	return standing, lying
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(long, short float64) float64 {
	switch {
	case short > 20 && long > 40:
		return 8
	case short > 8:
		return 7
	default:
		return 6
	}
}

// truncate shortens s with an ellipsis until it fits maxW.
func truncate(pdf *fpdf.Fpdf, s string, maxW float64) string {
	if pdf.GetStringWidth(s) <= maxW {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > maxW {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
