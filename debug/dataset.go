package debug

import (
	"io"
	"os"
	"sort"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"
)

const (
	TracksFile         = "tracks.yaml"
	ReconstructionFile = "reconstruction.yaml"
)

// Tracks maps frame -> landmark -> normalized feature coordinate.
type Tracks map[string]map[string][2]float64

func (t Tracks) Graph() *Graph {
	g := NewGraph()
	for frame, obs := range t {
		for lm, f := range obs {
			g.AddObservation(frame, lm, Point2{X: f[0], Y: f[1]})
		}
	}
	return g
}

type Reconstruction struct {
	Camera PerspectiveCamera     `yaml:"camera"`
	Points map[string][3]float64 `yaml:"points"`
	// Shots holds world-to-camera transforms as 3x4 row-major matrices.
	Shots map[string][][]float64 `yaml:"shots"`
}

// Pose returns the world-to-camera pose of frame.
func (r *Reconstruction) Pose(frame string) (Pose, bool) {
	m, ok := r.Shots[frame]
	if !ok {
		return Pose{}, false
	}
	return PoseFromMatrix(m)
}

// FramePoints returns the 3D points of the landmarks frame observes in g
// alongside their observations, ordered by landmark id.
func (r *Reconstruction) FramePoints(g *Graph, frame string) ([]Vec3, []Point2) {
	var pts []Vec3
	var obs []Point2
	for _, lm := range g.Landmarks(frame) {
		p, ok := r.Points[lm]
		if !ok {
			continue
		}
		o, _ := g.Observation(frame, lm)
		pts = append(pts, Vec3(p))
		obs = append(obs, o)
	}
	return pts, obs
}

// Frames lists every frame with a pose, sorted.
func (r *Reconstruction) Frames() []string {
	res := make([]string, 0, len(r.Shots))
	for f := range r.Shots {
		res = append(res, f)
	}
	sort.Strings(res)
	return res
}

func ReadTracks(filename string) (Tracks, error) {
	t := Tracks{}
	if err := readYAML(filename, &t); err != nil {
		return nil, xerrors.Errorf("tracks: %w", err)
	}
	return t, nil
}

func ReadReconstruction(filename string) (*Reconstruction, error) {
	r := &Reconstruction{}
	if err := readYAML(filename, r); err != nil {
		return nil, xerrors.Errorf("reconstruction: %w", err)
	}
	return r, nil
}

// readYAML leaves v untouched when filename does not exist.
func readYAML(filename string, v interface{}) error {
	f, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return xerrors.Errorf("open: %w", err)
	}
	defer f.Close()
	contents, err := io.ReadAll(f)
	if err != nil {
		return xerrors.Errorf("read: %w", err)
	}
	if err := yaml.Unmarshal(contents, v); err != nil {
		return xerrors.Errorf("unmarshal: %w", err)
	}
	return nil
}
