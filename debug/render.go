package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/image/draw"
	"golang.org/x/xerrors"
)

var (
	Green = color.RGBA{G: 0xff, A: 0xff}
	Red   = color.RGBA{R: 0xff, A: 0xff}
)

// Overlay is a set of pixel points drawn in one color.
type Overlay struct {
	Points []Point2
	Color  color.Color
}

type Renderer interface {
	Render(im image.Image, overlays []Overlay, title string, show bool) error
}

// HStack places b to the right of a. The result is as tall as the taller one.
func HStack(a, b image.Image) *image.RGBA {
	ab, bb := a.Bounds(), b.Bounds()
	h := ab.Dy()
	if bb.Dy() > h {
		h = bb.Dy()
	}
	dst := image.NewRGBA(image.Rect(0, 0, ab.Dx()+bb.Dx(), h))
	draw.Copy(dst, image.Point{}, a, ab, draw.Src, nil)
	draw.Copy(dst, image.Pt(ab.Dx(), 0), b, bb, draw.Src, nil)
	return dst
}

// PNGRenderer draws overlays as filled squares and writes <Dir>/<title>.png.
type PNGRenderer struct {
	Dir        string
	MarkerSize int
	Logger     *zap.SugaredLogger
}

func (r *PNGRenderer) Render(im image.Image, overlays []Overlay, title string, show bool) error {
	canvas := image.NewRGBA(image.Rect(0, 0, im.Bounds().Dx(), im.Bounds().Dy()))
	draw.Copy(canvas, image.Point{}, im, im.Bounds(), draw.Src, nil)

	size := r.MarkerSize
	if size <= 0 {
		size = 3
	}
	for _, o := range overlays {
		src := image.NewUniform(o.Color)
		for _, p := range o.Points {
			x, y := int(p.X+0.5), int(p.Y+0.5)
			rect := image.Rect(x-size/2, y-size/2, x-size/2+size, y-size/2+size).Intersect(canvas.Bounds())
			if rect.Empty() {
				continue
			}
			draw.Draw(canvas, rect, src, image.Point{}, draw.Src)
		}
	}

	name := path.Join(r.Dir, FileName(title))
	if err := writePNG(name, canvas); err != nil {
		return xerrors.Errorf("render %q: %w", title, err)
	}
	if show && r.Logger != nil {
		r.Logger.Infof("Rendered %q to %s", title, name)
	}
	return nil
}

var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", "<->", "--", ":", "_")

// FileName turns a title into a png file name.
func FileName(title string) string {
	if title == "" {
		title = "overlay"
	}
	return fileNameReplacer.Replace(title) + ".png"
}

func writePNG(name string, im image.Image) error {
	dir, _ := path.Split(name)
	if dir != "" {
		if err := os.MkdirAll(dir, 0777); err != nil {
			return xerrors.Errorf("mkdir %s: %w", dir, err)
		}
	}
	f, err := os.Create(name)
	if err != nil {
		return xerrors.Errorf("create %s: %w", name, err)
	}
	if err := png.Encode(f, im); err != nil {
		f.Close()
		return xerrors.Errorf("encode %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return xerrors.Errorf("close %s: %w", name, err)
	}
	return nil
}
