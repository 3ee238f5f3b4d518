// Package render draws finished bead patterns: a PNG board view with
// optional grid lines, cell labels, coordinates, and a legend, plus a
// 24-bit ANSI preview for terminals. It consumes grids only and never
// reaches back into the generation pipeline.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	doupinpin "github.com/Yesmaniamaurora/DouPinPinv2"
	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
)

// Options controls how a pattern grid is drawn.
type Options struct {
	// CellSize is the square size of one bead cell in pixels.
	CellSize int

	// GridLines draws a line between cells; GuideEvery > 0 adds a
	// heavier guide line every that many cells, matching the segment
	// size of physical pegboards.
	GridLines  bool
	GuideEvery int

	// Labels writes each cell's bead code inside the cell. Labels that
	// do not fit their cell are skipped.
	Labels bool

	// Coordinates numbers the columns and rows along the top and left
	// edges at every guide step.
	Coordinates bool

	// Legend appends the bead tally under the pattern.
	Legend bool

	// FontPath optionally names a TTF file for text; the built-in
	// bitmap face is used otherwise.
	FontPath string

	// Board is the color behind background cells, margins, and the
	// legend.
	Board imageutil.RGB
}

// DefaultOptions renders 24 px cells with grid lines, a 10-cell guide,
// and a legend on a white board.
func DefaultOptions() Options {
	return Options{
		CellSize:   24,
		GridLines:  true,
		GuideEvery: 10,
		Legend:     true,
		Board:      imageutil.RGB{R: 255, G: 255, B: 255},
	}
}

var (
	lineColor  = imageutil.RGB{R: 210, G: 210, B: 210}
	guideColor = imageutil.RGB{R: 150, G: 150, B: 150}
	inkColor   = imageutil.RGB{R: 40, G: 40, B: 40}
)

const (
	coordPad  = 4
	legendPad = 8
)

// Render draws the grid into a new RGBA image. Background cells show
// the board color; everything else follows Options.
func Render(grid doupinpin.Grid, opts Options) (*image.RGBA, error) {
	rows, cols := grid.Height(), grid.Width()
	if rows == 0 || cols == 0 {
		return nil, fmt.Errorf("empty grid")
	}
	cs := opts.CellSize
	if cs < 1 {
		cs = 1
	}

	face, err := loadFace(opts.FontPath, float64(cs)*0.42)
	if err != nil {
		return nil, err
	}
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineH := (metrics.Ascent + metrics.Descent).Ceil()

	step := opts.GuideEvery
	if step <= 0 {
		step = 10
	}

	gutterX, gutterY := 0, 0
	if opts.Coordinates {
		gutterX = textWidth(face, strconv.Itoa(rows)) + 2*coordPad
		gutterY = lineH + 2*coordPad
	}

	var tally []doupinpin.BeadCount
	legendH := 0
	if opts.Legend {
		tally = grid.Tally()
		legendH = 2*legendPad + len(tally)*(lineH+4)
	}

	outW := gutterX + cols*cs
	outH := gutterY + rows*cs + legendH
	img := image.NewRGBA(image.Rect(0, 0, outW, outH))
	fillRect(img, img.Bounds(), opts.Board.ToColor())

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			cell := grid[r][c]
			if cell.Background {
				continue
			}
			x0 := gutterX + c*cs
			y0 := gutterY + r*cs
			fillRect(img, image.Rect(x0, y0, x0+cs, y0+cs), cell.RGB.ToColor())
		}
	}

	if opts.GridLines {
		for c := 0; c <= cols; c++ {
			x := gutterX + c*cs
			fillRect(img, image.Rect(x, gutterY, x+1, gutterY+rows*cs), lineColor.ToColor())
		}
		for r := 0; r <= rows; r++ {
			y := gutterY + r*cs
			fillRect(img, image.Rect(gutterX, y, gutterX+cols*cs, y+1), lineColor.ToColor())
		}
		if opts.GuideEvery > 0 {
			for c := 0; c <= cols; c += opts.GuideEvery {
				x := gutterX + c*cs
				fillRect(img, image.Rect(x, gutterY, x+2, gutterY+rows*cs), guideColor.ToColor())
			}
			for r := 0; r <= rows; r += opts.GuideEvery {
				y := gutterY + r*cs
				fillRect(img, image.Rect(gutterX, y, gutterX+cols*cs, y+2), guideColor.ToColor())
			}
		}
	}

	if opts.Labels {
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				cell := grid[r][c]
				if cell.Background {
					continue
				}
				tw := textWidth(face, cell.Code)
				if tw > cs-2 || lineH > cs-2 {
					continue
				}
				x := gutterX + c*cs + (cs-tw)/2
				y := gutterY + r*cs + (cs-lineH)/2 + ascent
				drawString(img, face, x, y, textColor(cell.RGB), cell.Code)
			}
		}
	}

	if opts.Coordinates {
		for c := step; c <= cols; c += step {
			s := strconv.Itoa(c)
			x := gutterX + c*cs - textWidth(face, s)/2
			drawString(img, face, x, coordPad+ascent, inkColor.ToColor(), s)
		}
		for r := step; r <= rows; r += step {
			s := strconv.Itoa(r)
			x := gutterX - coordPad - textWidth(face, s)
			y := gutterY + r*cs - lineH/2 + ascent
			drawString(img, face, x, y, inkColor.ToColor(), s)
		}
	}

	if opts.Legend {
		y := gutterY + rows*cs + legendPad
		sw := lineH
		for _, bc := range tally {
			swatch := image.Rect(legendPad, y, legendPad+sw, y+sw)
			fillRect(img, swatch, bc.RGB.ToColor())
			frameRect(img, swatch, guideColor.ToColor())
			label := fmt.Sprintf("%s x%d", bc.Code, bc.Count)
			drawString(img, face, legendPad+sw+6, y+ascent, inkColor.ToColor(), label)
			y += lineH + 4
		}
	}

	return img, nil
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// frameRect draws a 1 px frame just inside r, so light swatches stay
// visible on a light board.
func frameRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}
