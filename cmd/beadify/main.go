// Command beadify converts an image into a fuse bead pattern. It loads
// a picture, quantizes it onto a bead brand palette, and writes the
// result as a printable board image, a 24-bit ANSI terminal preview,
// or a bead shopping list.
//
// Typical use:
//
//	beadify -input cat.png -output pattern.png -width 58 -height 58 \
//	    -palette mard -algorithm dominant_pooling -removebg -stats
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	doupinpin "github.com/Yesmaniamaurora/DouPinPinv2"
	"github.com/Yesmaniamaurora/DouPinPinv2/imageutil"
	"github.com/Yesmaniamaurora/DouPinPinv2/render"
)

func main() {
	inputFile := flag.String("input", "",
		"Path to the input image file (required)")
	outputFile := flag.String("output", "",
		"Path to save the pattern image (.png, .jpg, or .gif)")
	width := flag.Int("width", 50,
		"Pattern width in beads, clamped to 1-120")
	height := flag.Int("height", 50,
		"Pattern height in beads, clamped to 1-120")
	algorithm := flag.String("algorithm", string(doupinpin.AlgorithmAverage),
		"Sampling algorithm: nearest, average, gradient_enhanced,"+
			" or dominant_pooling")
	paletteName := flag.String("palette", doupinpin.DefaultOptions().Palette,
		"Bead brand to match against (see -listpalettes)")
	brightness := flag.Int("brightness", 0,
		"Brightness adjustment in steps of 15 per channel, negative darkens")
	sharpen := flag.Bool("sharpen", false,
		"Sharpen the working image before sampling")
	removeBG := flag.Bool("removebg", false,
		"Treat near-white areas reachable from the corners as empty board")
	bgTolerance := flag.Float64("bgtolerance", 30,
		"Background whiteness tolerance, 0-100")
	mergeThreshold := flag.Float64("merge", 0,
		"Merge adjacent regions closer than this deltaE;"+
			" 0 disables, negative picks a threshold from the pattern")
	adviseCount := flag.Int("advise", 0,
		"Print the N bead colors that best cover the image, then exit")
	cellSize := flag.Int("cellsize", 24,
		"Cell size of the rendered pattern in pixels")
	gridLines := flag.Bool("gridlines", true,
		"Draw grid lines between cells")
	guideEvery := flag.Int("guide", 10,
		"Draw a heavier guide line every N cells, 0 to disable")
	labels := flag.Bool("labels", false,
		"Write the bead code inside each cell")
	legend := flag.Bool("legend", true,
		"Append the bead tally under the rendered pattern")
	coords := flag.Bool("coords", false,
		"Number rows and columns along the pattern edges")
	fontPath := flag.String("font", "",
		"Path to a TTF font for labels (built-in bitmap face otherwise)")
	ansiOut := flag.Bool("ansi", false,
		"Print the pattern to the terminal in 24-bit color")
	stats := flag.Bool("stats", false,
		"Print the bead shopping list")
	maskOut := flag.String("maskout", "",
		"Save the detected background mask to this image file")
	listPalettes := flag.Bool("listpalettes", false,
		"List the embedded bead brands, then exit")
	quiet := flag.Bool("quiet", false,
		"Suppress progress logging")
	flag.Parse()

	if *quiet {
		doupinpin.SetLogger(nil)
	}

	store, err := doupinpin.LoadPalettes()
	if err != nil {
		fatalf("loading palettes: %v", err)
	}

	if *listPalettes {
		for _, brand := range store.Brands() {
			colors, err := store.Palette(brand)
			if err != nil {
				continue
			}
			fmt.Printf("%-10s %d colors\n", brand, len(colors))
		}
		return
	}

	if *inputFile == "" {
		fmt.Println("Please provide the image using the -input flag")
		flag.PrintDefaults()
		os.Exit(1)
	}

	img, err := imageutil.LoadImage(*inputFile)
	if err != nil {
		fatalf("loading %s: %v", *inputFile, err)
	}

	if *adviseCount > 0 {
		advise(img, store, *paletteName, *adviseCount)
		return
	}

	opts := doupinpin.Options{
		Width:               *width,
		Height:              *height,
		Algorithm:           doupinpin.Algorithm(*algorithm),
		Palette:             *paletteName,
		Brightness:          *brightness,
		Sharpen:             *sharpen,
		RemoveBackground:    *removeBG,
		BackgroundTolerance: *bgTolerance,
	}

	gen := doupinpin.NewGenerator(store)
	start := time.Now()
	grid, err := gen.Generate(img, opts)
	if err != nil {
		fatalf("%v", err)
	}

	if *maskOut != "" {
		mask, err := gen.BackgroundPreview(img, opts)
		if err != nil {
			fatalf("mask preview: %v", err)
		}
		if err := imageutil.SaveGrayImage(mask, *maskOut); err != nil {
			fatalf("saving %s: %v", *maskOut, err)
		}
	}

	switch {
	case *mergeThreshold < 0:
		suggested := doupinpin.SuggestMergeThreshold(grid)
		fmt.Printf("auto merge threshold: %.2f\n", suggested)
		grid = doupinpin.AutoMerge(grid, suggested)
	case *mergeThreshold > 0:
		grid = doupinpin.AutoMerge(grid, *mergeThreshold)
	}

	if *ansiOut {
		fmt.Print(render.ANSI(grid))
	}

	if *outputFile != "" {
		ropts := render.DefaultOptions()
		ropts.CellSize = *cellSize
		ropts.GridLines = *gridLines
		ropts.GuideEvery = *guideEvery
		ropts.Labels = *labels
		ropts.Legend = *legend
		ropts.Coordinates = *coords
		ropts.FontPath = *fontPath
		out, err := render.Render(grid, ropts)
		if err != nil {
			fatalf("rendering: %v", err)
		}
		if err := imageutil.SaveImage(out, *outputFile); err != nil {
			fatalf("saving %s: %v", *outputFile, err)
		}
		fmt.Printf("Pattern written to %s\n", *outputFile)
	}

	if *stats {
		printTally(grid)
	}

	fmt.Printf("%dx%d pattern, %d beads in %v\n",
		grid.Width(), grid.Height(), grid.Beads(), time.Since(start))
}

// advise prints the palette colors that best cover the image, plus the
// single dominant bead. Useful before committing to a big board.
func advise(img image.Image, store *doupinpin.PaletteStore, brand string, n int) {
	recs, err := doupinpin.RecommendColors(img, store, brand, n)
	if err != nil {
		fatalf("advising: %v", err)
	}
	if dom, err := doupinpin.DominantBead(img, store, brand); err == nil {
		fmt.Printf("dominant bead: %s %s\n", dom.Code, dom.RGB.Hex())
	}
	fmt.Printf("best %s coverage:\n", brand)
	for _, c := range recs {
		fmt.Printf("  %s %s\n", c.Code, c.RGB.Hex())
	}
}

func printTally(grid doupinpin.Grid) {
	tally := grid.Tally()
	fmt.Printf("%-8s %-8s %6s\n", "code", "hex", "count")
	for _, bc := range tally {
		fmt.Printf("%-8s %-8s %6d\n", bc.Code, bc.RGB.Hex(), bc.Count)
	}
	fmt.Printf("%d colors, %d beads total\n", len(tally), grid.Beads())
}

func fatalf(format string, v ...interface{}) {
	fmt.Fprintf(os.Stderr, "beadify: "+format+"\n", v...)
	os.Exit(1)
}
