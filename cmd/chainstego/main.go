// Command chainstego hides and reveals short text messages inside PNG
// images using the pointer-chain steganographic engine. It mirrors the
// hide/reveal subcommand split of the teacher's own CLI, generalised to
// the keyed pointer-chain algorithm.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"chainstego"
	"chainstego/internal/obslog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "hide":
		handleHide(os.Args[2:])
	case "reveal":
		handleReveal(os.Args[2:])
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Expected 'hide' or 'reveal' subcommand")
}

func handleHide(args []string) {
	cmd := flag.NewFlagSet("hide", flag.ExitOnError)
	text := cmd.String("t", "", "text to hide")
	imgPath := cmd.String("i", "", "path to input PNG")
	outPath := cmd.String("o", "output.png", "path to write the stego PNG")
	alias := cmd.Uint("alias", chainstego.DefaultAlias, "alias count t")
	verbose := cmd.Bool("v", false, "verbose logging")
	_ = cmd.Parse(args)

	logger := obslog.New(*verbose)

	if *text == "" || *imgPath == "" {
		logger.Error().Msg("-t and -i are required")
		os.Exit(1)
	}

	cover, err := loadPNG(*imgPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load cover image")
		os.Exit(1)
	}

	result, err := chainstego.Encode(context.Background(), cover, []byte(*text), chainstego.EncodeOptions{
		Alias:  uint16(*alias),
		Logger: logger,
		Progress: func(fraction float64, phase chainstego.Phase) {
			logger.Phase(string(phase), fraction)
		},
	})
	if err != nil {
		logger.Error().Err(err).Msg("encode failed")
		os.Exit(1)
	}

	if err := savePNG(*outPath, result.Image); err != nil {
		logger.Error().Err(err).Msg("failed to save stego image")
		os.Exit(1)
	}

	fmt.Println("Key:", result.Key)
	fmt.Println(result.Stats.String())
	fmt.Println("Wrote", *outPath)
}

func handleReveal(args []string) {
	cmd := flag.NewFlagSet("reveal", flag.ExitOnError)
	imgPath := cmd.String("i", "", "path to stego PNG")
	key := cmd.String("k", "", "serialised key")
	verbose := cmd.Bool("v", false, "verbose logging")
	_ = cmd.Parse(args)

	logger := obslog.New(*verbose)

	if *imgPath == "" || *key == "" {
		logger.Error().Msg("-i and -k are required")
		os.Exit(1)
	}

	stego, err := loadPNG(*imgPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load stego image")
		os.Exit(1)
	}

	plaintext, err := chainstego.Decode(context.Background(), stego, *key, chainstego.DecodeOptions{
		Logger: logger,
		Progress: func(fraction float64, phase chainstego.Phase) {
			logger.Phase(string(phase), fraction)
		},
	})
	if err != nil {
		logger.Error().Err(err).Msg("decode failed")
		os.Exit(1)
	}

	fmt.Println(string(plaintext))
}

func loadPNG(path string) (chainstego.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return chainstego.Image{}, err
	}
	defer f.Close()

	src, err := png.Decode(f)
	if err != nil {
		return chainstego.Image{}, err
	}

	bounds := src.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, src, bounds.Min, draw.Src)

	return chainstego.Image{W: bounds.Dx(), H: bounds.Dy(), Pix: rgba.Pix}, nil
}

func savePNG(path string, img chainstego.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	rgba := &image.RGBA{
		Pix:    img.Pix,
		Stride: img.W * 4,
		Rect:   image.Rect(0, 0, img.W, img.H),
	}
	return png.Encode(f, rgba)
}
