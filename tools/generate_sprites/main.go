// Command generate_sprites draws placeholder top-down sprites for every
// catalog model, plus the alien, into an assets directory.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/1siamBot/outpost/engine/catalog"
	xdraw "golang.org/x/image/draw"
)

// supersample is how much larger sprites are drawn before downscaling
const supersample = 4

const alienModel = "alien"

func main() {
	out := flag.String("out", "assets", "output directory")
	size := flag.Int("size", 64, "sprite side in pixels")
	catalogPath := flag.String("catalog", "", "catalog file, built-in when empty")
	flag.Parse()

	cat, err := catalog.Load()
	if *catalogPath != "" {
		cat, err = catalog.LoadFile(*catalogPath)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "load catalog:", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*out, 0755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	done := map[string]bool{}
	for _, t := range cat.All() {
		if done[t.Visual.Model] {
			continue
		}
		done[t.Visual.Model] = true
		img, err := buildingSprite(t, *size)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", t.ID, err)
			continue
		}
		if err := savePNG(filepath.Join(*out, t.Visual.Model+".png"), img); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if err := savePNG(filepath.Join(*out, alienModel+".png"), alienSprite(*size)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("%d sprites written to %s\n", len(done)+1, *out)
}

func buildingSprite(t *catalog.Template, size int) (image.Image, error) {
	base, err := t.Visual.RGBA()
	if err != nil {
		return nil, err
	}
	big := image.NewRGBA(image.Rect(0, 0, size*supersample, size*supersample))
	drawBody(big, base)
	switch {
	case t.Defensive != nil:
		drawTurret(big, base)
	case t.Generator != nil:
		drawDrill(big, base, t.MainBase)
	}
	return downscale(big, size), nil
}

func alienSprite(size int) image.Image {
	big := image.NewRGBA(image.Rect(0, 0, size*supersample, size*supersample))
	drawAlien(big, color.RGBA{120, 220, 90, 255})
	return downscale(big, size)
}

func downscale(src *image.RGBA, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
