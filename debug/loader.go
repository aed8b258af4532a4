package debug

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path"
	"strconv"
	"sync"
	"time"

	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"
	"golang.org/x/xerrors"
)

var ErrInvalidImage = xerrors.New("invalid image")

type ImageLoader interface {
	Load(frame string) (image.Image, error)
}

// FrameInfo is what EXIF tells about a frame. Fields are zero when the
// image carries no EXIF block.
type FrameInfo struct {
	Camera    string
	Timestamp time.Time
}

// DirLoader loads frames from files named by frame id under Root.
type DirLoader struct {
	Root string
}

func (l DirLoader) Load(frame string) (image.Image, error) {
	f, err := os.Open(path.Join(l.Root, frame))
	if err != nil {
		return nil, xerrors.Errorf("open %s: %w", frame, err)
	}
	defer f.Close()
	im, _, err := image.Decode(f)
	if err != nil {
		return nil, xerrors.Errorf("decode %s: %v: %w", frame, err, ErrInvalidImage)
	}
	return im, nil
}

var registerParsers sync.Once

func (l DirLoader) Info(frame string) (FrameInfo, error) {
	f, err := os.Open(path.Join(l.Root, frame))
	if err != nil {
		return FrameInfo{}, xerrors.Errorf("open %s: %w", frame, err)
	}
	defer f.Close()

	registerParsers.Do(func() { exif.RegisterParsers(mknote.All...) })

	x, err := exif.Decode(f)
	if err != nil {
		// no exif
		return FrameInfo{}, nil
	}

	var info FrameInfo
	info.Camera = tagString(x, exif.Make)
	if model := tagString(x, exif.Model); model != "" {
		if info.Camera != "" {
			info.Camera += " "
		}
		info.Camera += model
	}
	if tm, err := x.DateTime(); err == nil {
		info.Timestamp = tm
	}
	return info, nil
}

func tagString(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s := tag.String()
	if q, e := strconv.Unquote(s); e == nil {
		s = q
	}
	return s
}
