package window

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/topdown/shooter/internal/component"
)

// placeholderSize is the edge of generated images. They are scaled to the
// sprite extent when drawn.
const placeholderSize = 32

// Assets is the image registry. Images come from fsys when present and
// fall back to generated shapes otherwise.
type Assets struct {
	fsys   fs.FS
	images map[component.Image]*ebiten.Image
	white  *ebiten.Image
	log    *zap.Logger
}

// NewAssets builds the registry. fsys may be nil.
func NewAssets(fsys fs.FS, log *zap.Logger) *Assets {
	white := ebiten.NewImage(3, 3)
	white.Fill(color.White)
	return &Assets{
		fsys:   fsys,
		images: make(map[component.Image]*ebiten.Image),
		white:  white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image),
		log:    log,
	}
}

// Load returns the handle for path, loading it on first use.
func (a *Assets) Load(path component.Image) *ebiten.Image {
	if img, ok := a.images[path]; ok {
		return img
	}
	img := a.decode(path)
	if img == nil {
		img = a.placeholder(path)
	}
	a.images[path] = img
	return img
}

func (a *Assets) decode(path component.Image) *ebiten.Image {
	if a.fsys == nil {
		return nil
	}
	data, err := fs.ReadFile(a.fsys, string(path))
	if err != nil {
		a.log.Debug("asset missing, using placeholder", zap.String("path", string(path)))
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		a.log.Warn("asset decode failed", zap.String("path", string(path)), zap.Error(err))
		return nil
	}
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	a.log.Debug("asset loaded", zap.String("path", string(path)), zap.Int("w", w), zap.Int("h", h))
	return ebiten.NewImageFromImage(img)
}

var (
	colorPlayer = color.RGBA{R: 90, G: 220, B: 120, A: 255}
	colorBullet = color.RGBA{R: 255, G: 230, B: 90, A: 255}
	colorEnemy  = color.RGBA{R: 230, G: 70, B: 70, A: 255}
)

// placeholder draws the shape each kind had before real art existed:
// a triangle for the ship, an ellipse for bullets, a circle for enemies.
func (a *Assets) placeholder(path component.Image) *ebiten.Image {
	img := ebiten.NewImage(placeholderSize, placeholderSize)
	const s = float32(placeholderSize)
	switch path {
	case component.ImagePlayer:
		a.fillTriangle(img, colorPlayer, s/2, 0, s, s, 0, s)
	case component.ImageBullet:
		vector.DrawFilledCircle(img, s/2, s/2, s/2, colorBullet, true)
	case component.ImageEnemy:
		vector.DrawFilledCircle(img, s/2, s/2, s/2, colorEnemy, true)
	default:
		vector.DrawFilledRect(img, 0, 0, s, s, color.RGBA{R: 255, B: 255, A: 255}, false)
	}
	return img
}

func (a *Assets) fillTriangle(dst *ebiten.Image, c color.RGBA, x0, y0, x1, y1, x2, y2 float32) {
	var p vector.Path
	p.MoveTo(x0, y0)
	p.LineTo(x1, y1)
	p.LineTo(x2, y2)
	p.Close()
	vs, is := p.AppendVerticesAndIndicesForFilling(nil, nil)
	r, g, b, al := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range vs {
		vs[i].SrcX, vs[i].SrcY = 1, 1
		vs[i].ColorR, vs[i].ColorG, vs[i].ColorB, vs[i].ColorA = r, g, b, al
	}
	op := &ebiten.DrawTrianglesOptions{}
	op.AntiAlias = true
	dst.DrawTriangles(vs, is, a.white, op)
}
