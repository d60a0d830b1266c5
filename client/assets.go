package client

import (
	_ "embed"
	"fmt"

	"example.com/arena/logging"

	"github.com/ebiten/emoji"
	"github.com/hajimehoshi/ebiten/v2"
)

//go:embed assets/version.txt
var Version string

var bannerGlyphs = map[string]string{
	"win":          "🏆",
	"lose":         "💀",
	"disconnected": "🔌",
	"left":         "👋",
	"waiting":      "⏳",
}

type Assets struct {
	images map[string]*ebiten.Image
}

func (a *Assets) Image(name string) *ebiten.Image {
	image := a.images[name]
	if image == nil {
		logging.Fatal("invalid image name", "name", name)
	}
	return image
}

// LoadAssets rasterizes the banner glyphs.
func LoadAssets() (*Assets, error) {
	a := &Assets{
		images: make(map[string]*ebiten.Image),
	}
	for name, glyph := range bannerGlyphs {
		image := emoji.Image(glyph)
		if image == nil {
			return nil, fmt.Errorf("no emoji image for %s (%q)", name, glyph)
		}
		a.images[name] = image
	}
	return a, nil
}
