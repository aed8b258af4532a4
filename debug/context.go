// Package debug draws landmark observations and reprojections onto frames for
// visual inspection of a reconstruction. All work is gated by Config.Enabled.
package debug

import (
	"image"

	"go.uber.org/zap"
	"golang.org/x/xerrors"
)

// Context carries what debug routines need. A nil *Context is disabled.
type Context struct {
	cfg      Config
	loader   ImageLoader
	renderer Renderer
	log      *zap.SugaredLogger
}

func NewContext(cfg Config, loader ImageLoader, renderer Renderer, log *zap.SugaredLogger) *Context {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Context{cfg: cfg, loader: loader, renderer: renderer, log: log}
}

func (c *Context) Enabled() bool {
	return c != nil && c.cfg.Enabled
}

func (c *Context) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// VisualizeGraph draws the features of landmarks seen by both frames side by
// side. It does nothing when the frames share no landmark.
func (c *Context) VisualizeGraph(g *Graph, frame1, frame2 string) error {
	if !c.Enabled() {
		return nil
	}
	c.log.Debugf("visualize_graph: %s %s", frame1, frame2)

	var pts1, pts2 []Point2
	for _, lm := range g.Landmarks(frame1) {
		obs2, ok := g.Observation(frame2, lm)
		if !ok {
			continue
		}
		obs1, _ := g.Observation(frame1, lm)
		pts1 = append(pts1, obs1)
		pts2 = append(pts2, obs2)
	}
	if len(pts1) == 0 {
		return nil
	}

	im1, err := c.loader.Load(frame1)
	if err != nil {
		return xerrors.Errorf("load %s: %w", frame1, err)
	}
	im2, err := c.loader.Load(frame2)
	if err != nil {
		return xerrors.Errorf("load %s: %w", frame2, err)
	}
	w1, h1 := im1.Bounds().Dx(), im1.Bounds().Dy()

	// both sets are denormalized with frame1's size
	obs1 := Denormalize(pts1, w1, h1)
	obs2 := Denormalize(pts2, w1, h1)
	for i := range obs2 {
		obs2[i].X += float64(w1)
	}
	c.log.Debugf("shared observations: %d", len(obs1))

	overlays := []Overlay{
		{Points: obs1, Color: Green},
		{Points: obs2, Color: Green},
	}
	if err := c.renderer.Render(HStack(im1, im2), overlays, frame1+"<->"+frame2, c.cfg.Show); err != nil {
		return xerrors.Errorf("render: %w", err)
	}
	return nil
}

// ReprojectLandmarks projects points3D into im through pose and cam and draws
// them in red, with observations in green. Observations are denormalized
// first when normalized is set.
func (c *Context) ReprojectLandmarks(points3D []Vec3, observations []Point2, pose Pose,
	im image.Image, cam Camera, title string, normalized bool) error {
	if !c.Enabled() {
		return nil
	}
	if len(points3D) == 0 {
		return nil
	}
	c.log.Debugf("reproject_landmarks: pose %+v", pose)

	w, h := im.Bounds().Dx(), im.Bounds().Dy()
	projected := Denormalize(ProjectMany(cam, pose.TransformMany(points3D)), w, h)
	overlays := []Overlay{{Points: projected, Color: Red}}
	if observations != nil {
		obs := observations
		if normalized {
			obs = Denormalize(observations, w, h)
		}
		overlays = append(overlays, Overlay{Points: obs, Color: Green})
	}
	if err := c.renderer.Render(im, overlays, title, c.cfg.Show); err != nil {
		return xerrors.Errorf("render: %w", err)
	}
	return nil
}
