package main

import (
	"flag"
	"fmt"
	"image"
	"os"

	"wireframe-renderer/internal/cli"
	"wireframe-renderer/internal/imageio"
	"wireframe-renderer/internal/postprocess"
)

func main() {
	maskPath := flag.String("mask", "", "Write changed pixels to this image (.png, .webp, .tga)")
	tolerance := flag.Float64("tolerance", 0, "Maximum fraction of changed pixels before failing")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: framediff [flags] <expected> <actual>\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	log := cli.SetupLogger(*verbose)

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}

	a, err := imageio.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	b, err := imageio.Load(flag.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var mask *image.NRGBA
	if *maskPath != "" {
		mask = image.NewNRGBA(a.Bounds())
	}
	d, err := postprocess.Diff(a, b, mask)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	bg := a.NRGBAAt(0, 0)
	log.Debug("components", "expected", len(postprocess.Components(a, bg)), "actual", len(postprocess.Components(b, bg)))

	fmt.Printf("Pixels: %d, Changed: %d (%.4f%%), Max delta: %d\n",
		d.Pixels, d.Changed, 100*d.Ratio(), d.MaxDelta)

	if mask != nil {
		if err := imageio.Save(*maskPath, mask); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing mask: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Mask: %s\n", *maskPath)
	}

	if d.Ratio() > *tolerance {
		os.Exit(1)
	}
}
