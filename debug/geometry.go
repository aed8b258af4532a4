package debug

import "math"

// Point2 is an image-plane point, normalized or in pixels depending on context.
type Point2 struct {
	X, Y float64
}

type Vec3 [3]float64

// Pose is a rigid world-to-camera transform.
type Pose struct {
	Rotation    [3][3]float64
	Translation Vec3
}

// PoseFromMatrix takes the rotation from the upper-left 3x3 block and the
// translation from the last column of a 3x4 (or 4x4) transform.
func PoseFromMatrix(m [][]float64) (Pose, bool) {
	var p Pose
	if len(m) < 3 {
		return p, false
	}
	for i := 0; i < 3; i++ {
		if len(m[i]) < 4 {
			return p, false
		}
		copy(p.Rotation[i][:], m[i][:3])
		p.Translation[i] = m[i][3]
	}
	return p, true
}

func (p Pose) Transform(v Vec3) Vec3 {
	var res Vec3
	for i := 0; i < 3; i++ {
		r := p.Rotation[i]
		res[i] = r[0]*v[0] + r[1]*v[1] + r[2]*v[2] + p.Translation[i]
	}
	return res
}

func (p Pose) TransformMany(vs []Vec3) []Vec3 {
	res := make([]Vec3, len(vs))
	for i, v := range vs {
		res[i] = p.Transform(v)
	}
	return res
}

// Camera maps camera-frame points to normalized image coordinates.
type Camera interface {
	Project(v Vec3) Point2
}

// PerspectiveCamera is a pinhole with two radial distortion terms, focal
// length in units of the larger image side.
type PerspectiveCamera struct {
	Focal float64 `yaml:"focal"`
	K1    float64 `yaml:"k1"`
	K2    float64 `yaml:"k2"`
}

func (c PerspectiveCamera) Project(v Vec3) Point2 {
	x, y := v[0]/v[2], v[1]/v[2]
	r2 := x*x + y*y
	d := 1 + r2*(c.K1+c.K2*r2)
	return Point2{X: c.Focal * d * x, Y: c.Focal * d * y}
}

func ProjectMany(c Camera, vs []Vec3) []Point2 {
	res := make([]Point2, len(vs))
	for i, v := range vs {
		res[i] = c.Project(v)
	}
	return res
}

// Denormalize converts normalized coordinates to pixel coordinates of a
// width x height image.
func Denormalize(pts []Point2, width, height int) []Point2 {
	size := math.Max(float64(width), float64(height))
	res := make([]Point2, len(pts))
	for i, p := range pts {
		res[i] = Point2{
			X: p.X*size - 0.5 + float64(width)/2,
			Y: p.Y*size - 0.5 + float64(height)/2,
		}
	}
	return res
}
