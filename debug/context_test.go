package debug

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

type fakeLoader struct {
	images map[string]image.Image
	loads  []string
}

func (l *fakeLoader) Load(frame string) (image.Image, error) {
	l.loads = append(l.loads, frame)
	im, ok := l.images[frame]
	if !ok {
		return nil, xerrors.Errorf("%s: %w", frame, ErrInvalidImage)
	}
	return im, nil
}

type rendered struct {
	bounds   image.Rectangle
	overlays []Overlay
	title    string
	show     bool
}

type recordingRenderer struct {
	calls []rendered
}

func (r *recordingRenderer) Render(im image.Image, overlays []Overlay, title string, show bool) error {
	r.calls = append(r.calls, rendered{bounds: im.Bounds(), overlays: overlays, title: title, show: show})
	return nil
}

func testGraph() *Graph {
	g := NewGraph()
	g.AddObservation("a", "lm1", Point2{0, 0})
	g.AddObservation("a", "lm2", Point2{0.1, 0.1})
	g.AddObservation("b", "lm1", Point2{0, 0})
	g.AddObservation("c", "lm3", Point2{0, 0})
	return g
}

func testContext(cfg Config) (*Context, *fakeLoader, *recordingRenderer) {
	l := &fakeLoader{images: map[string]image.Image{
		"a": image.NewRGBA(image.Rect(0, 0, 100, 50)),
		"b": image.NewRGBA(image.Rect(0, 0, 100, 50)),
	}}
	r := &recordingRenderer{}
	return NewContext(cfg, l, r, nil), l, r
}

func TestVisualizeGraph(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Show = true
	ctx, l, r := testContext(cfg)

	require.NoError(t, ctx.VisualizeGraph(testGraph(), "a", "b"))
	assert.Equal(t, []string{"a", "b"}, l.loads)
	require.Len(t, r.calls, 1)

	call := r.calls[0]
	assert.Equal(t, "a<->b", call.title)
	assert.True(t, call.show)
	assert.Equal(t, image.Rect(0, 0, 200, 50), call.bounds)
	require.Len(t, call.overlays, 2)
	assert.Equal(t, []Point2{{49.5, 24.5}}, call.overlays[0].Points)
	assert.Equal(t, []Point2{{149.5, 24.5}}, call.overlays[1].Points)
	assert.Equal(t, Green, call.overlays[1].Color)
}

func TestVisualizeGraphNoSharedLandmarks(t *testing.T) {
	ctx, l, r := testContext(DefaultConfig())

	require.NoError(t, ctx.VisualizeGraph(testGraph(), "a", "c"))
	assert.Empty(t, l.loads)
	assert.Empty(t, r.calls)
}

func TestVisualizeGraphLoadError(t *testing.T) {
	ctx, _, r := testContext(DefaultConfig())
	g := testGraph()
	g.AddObservation("missing", "lm1", Point2{0, 0})

	err := ctx.VisualizeGraph(g, "a", "missing")
	require.Error(t, err)
	assert.True(t, xerrors.Is(err, ErrInvalidImage))
	assert.Empty(t, r.calls)
}

func TestReprojectLandmarks(t *testing.T) {
	ctx, _, r := testContext(DefaultConfig())
	im := image.NewRGBA(image.Rect(0, 0, 100, 50))
	pose, ok := PoseFromMatrix([][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 1}})
	require.True(t, ok)

	err := ctx.ReprojectLandmarks(
		[]Vec3{{0, 0, 1}, {1, 0, 1}},
		[]Point2{{0, 0}},
		pose, im, PerspectiveCamera{Focal: 1}, "frame", true)
	require.NoError(t, err)
	require.Len(t, r.calls, 1)

	call := r.calls[0]
	assert.Equal(t, "frame", call.title)
	require.Len(t, call.overlays, 2)
	assert.Equal(t, Red, call.overlays[0].Color)
	// translated to z=2, so the second point lands at x = 0.5
	assert.Equal(t, []Point2{{49.5, 24.5}, {99.5, 24.5}}, call.overlays[0].Points)
	assert.Equal(t, []Point2{{49.5, 24.5}}, call.overlays[1].Points)
}

func TestReprojectLandmarksPixelObservations(t *testing.T) {
	ctx, _, r := testContext(DefaultConfig())
	im := image.NewRGBA(image.Rect(0, 0, 100, 50))
	pose, _ := PoseFromMatrix([][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}})

	require.NoError(t, ctx.ReprojectLandmarks([]Vec3{{0, 0, 1}}, []Point2{{3, 4}}, pose, im, PerspectiveCamera{Focal: 1}, "", false))
	require.Len(t, r.calls, 1)
	assert.Equal(t, []Point2{{3, 4}}, r.calls[0].overlays[1].Points)

	require.NoError(t, ctx.ReprojectLandmarks([]Vec3{{0, 0, 1}}, nil, pose, im, PerspectiveCamera{Focal: 1}, "", false))
	require.Len(t, r.calls, 2)
	assert.Len(t, r.calls[1].overlays, 1)
}

func TestReprojectLandmarksEmpty(t *testing.T) {
	ctx, _, r := testContext(DefaultConfig())
	im := image.NewRGBA(image.Rect(0, 0, 10, 10))

	require.NoError(t, ctx.ReprojectLandmarks(nil, nil, Pose{}, im, PerspectiveCamera{}, "", true))
	require.NoError(t, ctx.ReprojectLandmarks([]Vec3{}, []Point2{{1, 1}}, Pose{}, im, PerspectiveCamera{}, "", true))
	assert.Empty(t, r.calls)
}

func TestDisabledContext(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Enabled = false
	ctx, l, r := testContext(cfg)
	im := image.NewRGBA(image.Rect(0, 0, 10, 10))

	assert.False(t, ctx.Enabled())
	require.NoError(t, ctx.VisualizeGraph(testGraph(), "a", "b"))
	require.NoError(t, ctx.ReprojectLandmarks([]Vec3{{0, 0, 1}}, nil, Pose{}, im, PerspectiveCamera{}, "", true))
	assert.Empty(t, l.loads)
	assert.Empty(t, r.calls)

	var none *Context
	assert.False(t, none.Enabled())
	assert.NoError(t, none.VisualizeGraph(testGraph(), "a", "b"))
}
