package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tracksYAML = `
f1.png:
  lm1: [0.1, 0.2]
  lm2: [0.3, 0.4]
f2.png:
  lm1: [0.5, 0.6]
`

const reconstructionYAML = `
camera:
  focal: 1.0
  k1: 0.0
  k2: 0.0
points:
  lm1: [0, 0, 2]
  lm3: [1, 1, 1]
shots:
  f1.png:
    - [1, 0, 0, 0]
    - [0, 1, 0, 0]
    - [0, 0, 1, 0]
  f2.png:
    - [1, 0, 0, 1]
`

func TestReadDataset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TracksFile), []byte(tracksYAML), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ReconstructionFile), []byte(reconstructionYAML), 0o600))

	tracks, err := ReadTracks(filepath.Join(dir, TracksFile))
	require.NoError(t, err)
	g := tracks.Graph()
	assert.Equal(t, []string{"lm1", "lm2"}, g.Landmarks("f1.png"))

	rec, err := ReadReconstruction(filepath.Join(dir, ReconstructionFile))
	require.NoError(t, err)
	assert.Equal(t, 1.0, rec.Camera.Focal)
	assert.Equal(t, []string{"f1.png", "f2.png"}, rec.Frames())

	pose, ok := rec.Pose("f1.png")
	require.True(t, ok)
	assert.Equal(t, Vec3{1, 2, 3}, pose.Transform(Vec3{1, 2, 3}))

	// malformed matrix
	_, ok = rec.Pose("f2.png")
	assert.False(t, ok)
	_, ok = rec.Pose("f3.png")
	assert.False(t, ok)

	pts, obs := rec.FramePoints(g, "f1.png")
	assert.Equal(t, []Vec3{{0, 0, 2}}, pts)
	assert.Equal(t, []Point2{{0.1, 0.2}}, obs)
}

func TestReadDatasetMissing(t *testing.T) {
	dir := t.TempDir()
	tracks, err := ReadTracks(filepath.Join(dir, TracksFile))
	require.NoError(t, err)
	assert.Empty(t, tracks)

	rec, err := ReadReconstruction(filepath.Join(dir, ReconstructionFile))
	require.NoError(t, err)
	assert.Empty(t, rec.Frames())
}
