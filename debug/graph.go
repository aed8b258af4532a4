package debug

import "sort"

// Graph is the bipartite frame/landmark observation graph. Each edge carries
// the normalized feature coordinate of the landmark in the frame.
type Graph struct {
	frames    map[string]map[string]Point2
	landmarks map[string]map[string]struct{}
}

func NewGraph() *Graph {
	return &Graph{
		frames:    map[string]map[string]Point2{},
		landmarks: map[string]map[string]struct{}{},
	}
}

func (g *Graph) AddObservation(frame, landmark string, feature Point2) {
	obs, ok := g.frames[frame]
	if !ok {
		obs = map[string]Point2{}
		g.frames[frame] = obs
	}
	obs[landmark] = feature

	seen, ok := g.landmarks[landmark]
	if !ok {
		seen = map[string]struct{}{}
		g.landmarks[landmark] = seen
	}
	seen[frame] = struct{}{}
}

// Landmarks returns the ids of landmarks observed in frame, sorted.
func (g *Graph) Landmarks(frame string) []string {
	res := make([]string, 0, len(g.frames[frame]))
	for lm := range g.frames[frame] {
		res = append(res, lm)
	}
	sort.Strings(res)
	return res
}

// Frames returns the ids of frames observing landmark, sorted.
func (g *Graph) Frames(landmark string) []string {
	res := make([]string, 0, len(g.landmarks[landmark]))
	for f := range g.landmarks[landmark] {
		res = append(res, f)
	}
	sort.Strings(res)
	return res
}

func (g *Graph) Observation(frame, landmark string) (Point2, bool) {
	p, ok := g.frames[frame][landmark]
	return p, ok
}
