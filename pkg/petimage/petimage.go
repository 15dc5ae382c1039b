// Package petimage resolves the pet artwork variant chosen by the widget to
// an asset on disk and draws it for the terminal. Drawing never fails: when
// no artwork can be shown a built-in text sprite takes its place.
package petimage

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blacktop/go-termimg"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/fetchpet/fetchpet-widget/pkg/terminal"
	"github.com/fetchpet/fetchpet-widget/pkg/widget"
)

// assetExts are tried in order when locating a variant's file.
var assetExts = []string{".png", ".webp", ".jpg", ".jpeg", ".gif"}

// AssetStem returns the file name stem for a variant, e.g. "pet_default".
func AssetStem(v widget.PetImage) string {
	if v == "" {
		v = widget.PetDefault
	}
	return "pet_" + string(v)
}

// Config configures a Renderer.
type Config struct {
	// AssetsDir holds pet_<variant>.<ext> files. Empty disables artwork.
	AssetsDir string
	Protocol  terminal.GraphicsProtocol
	// CellW and CellH are pixels per terminal cell; zero uses 8x16.
	CellW, CellH int
}

type cacheKey struct {
	variant widget.PetImage
	w, h    int
	inline  bool
}

// Renderer draws pet artwork, caching results per variant and size.
type Renderer struct {
	cfg Config

	mu    sync.Mutex
	cache map[cacheKey]string
}

// NewRenderer creates a Renderer.
func NewRenderer(cfg Config) *Renderer {
	if cfg.CellW <= 0 {
		cfg.CellW = 8
	}
	if cfg.CellH <= 0 {
		cfg.CellH = 16
	}
	return &Renderer{cfg: cfg, cache: make(map[cacheKey]string)}
}

// Protocol returns the configured graphics protocol.
func (r *Renderer) Protocol() terminal.GraphicsProtocol {
	return r.cfg.Protocol
}

// Cells draws v into exactly height lines of width cells using half blocks,
// safe to embed in a text layout. Without artwork it returns the sprite.
func (r *Renderer) Cells(v widget.PetImage, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	key := cacheKey{variant: v, w: width, h: height}
	if s, ok := r.cached(key); ok {
		return s
	}

	out := Sprite(v, width, height)
	if r.cfg.Protocol != terminal.ProtocolNone {
		if img, err := r.load(v); err == nil {
			fitted := imaging.Fit(img, width, height*2, imaging.Lanczos)
			out = halfblocks(fitted, width, height)
		}
	}

	r.store(key, out)
	return out
}

// Inline renders v with the configured image protocol for printing on its
// own, outside any text layout. It reports ok=false when the protocol is
// not an image protocol or no artwork is available.
func (r *Renderer) Inline(v widget.PetImage, width, height int) (string, bool) {
	var proto termimg.Protocol
	switch r.cfg.Protocol {
	case terminal.ProtocolKitty:
		proto = termimg.Kitty
	case terminal.ProtocolITerm2:
		proto = termimg.ITerm2
	case terminal.ProtocolSixel:
		proto = termimg.Sixel
	default:
		return "", false
	}

	key := cacheKey{variant: v, w: width, h: height, inline: true}
	if s, ok := r.cached(key); ok {
		return s, s != ""
	}

	img, err := r.load(v)
	if err != nil {
		r.store(key, "")
		return "", false
	}
	fitted := imaging.Fit(img, width*r.cfg.CellW, height*r.cfg.CellH, imaging.Lanczos)

	ti := termimg.New(fitted)
	if ti == nil {
		r.store(key, "")
		return "", false
	}
	out, err := ti.Protocol(proto).Size(width, height).Scale(termimg.ScaleFit).Render()
	if err != nil {
		r.store(key, "")
		return "", false
	}
	r.store(key, out)
	return out, true
}

func (r *Renderer) cached(k cacheKey) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.cache[k]
	return s, ok
}

func (r *Renderer) store(k cacheKey, s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache[k] = s
}

// load decodes the first existing asset for v.
func (r *Renderer) load(v widget.PetImage) (image.Image, error) {
	if r.cfg.AssetsDir == "" {
		return nil, fmt.Errorf("petimage: no assets directory")
	}
	stem := filepath.Join(r.cfg.AssetsDir, AssetStem(v))
	for _, ext := range assetExts {
		path := stem + ext
		if _, err := os.Stat(path); err != nil {
			continue
		}
		img, err := imaging.Open(path, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("petimage: decode %s: %w", path, err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("petimage: no asset for %q in %s", v, r.cfg.AssetsDir)
}

// halfblocks draws img with upper half blocks: each cell shows the top
// pixel as foreground and the bottom pixel as background. The result is
// centered in width x height cells.
func halfblocks(img image.Image, width, height int) string {
	nrgba := imaging.Clone(img)
	b := nrgba.Bounds()
	cols := b.Dx()
	rows := (b.Dy() + 1) / 2

	left := (width - cols) / 2
	top := (height - rows) / 2
	blank := strings.Repeat(" ", width)

	lines := make([]string, 0, height)
	for i := 0; i < top; i++ {
		lines = append(lines, blank)
	}
	for row := 0; row < rows && len(lines) < height; row++ {
		var sb strings.Builder
		sb.WriteString(strings.Repeat(" ", left))
		for x := 0; x < cols; x++ {
			t := nrgba.NRGBAAt(b.Min.X+x, b.Min.Y+row*2)
			var bot color.NRGBA
			if row*2+1 < b.Dy() {
				bot = nrgba.NRGBAAt(b.Min.X+x, b.Min.Y+row*2+1)
			}
			switch {
			case t.A == 0 && bot.A == 0:
				sb.WriteString("\x1b[0m ")
			case t.A == 0:
				fmt.Fprintf(&sb, "\x1b[0m\x1b[38;2;%d;%d;%dm▄", bot.R, bot.G, bot.B)
			case bot.A == 0:
				fmt.Fprintf(&sb, "\x1b[0m\x1b[38;2;%d;%d;%dm▀", t.R, t.G, t.B)
			default:
				fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀", t.R, t.G, t.B, bot.R, bot.G, bot.B)
			}
		}
		sb.WriteString("\x1b[0m")
		sb.WriteString(strings.Repeat(" ", width-left-cols))
		lines = append(lines, sb.String())
	}
	for len(lines) < height {
		lines = append(lines, blank)
	}
	return strings.Join(lines, "\n")
}
