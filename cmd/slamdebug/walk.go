package main

import (
	"context"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"golang.org/x/xerrors"
)

var imageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// Walk lists image files under root/dir, sorted, as paths relative to it.
// It stops early without error when ctx is cancelled.
func Walk(ctx context.Context, root, dir string) (frames []string, errs map[string]error) {
	errs = map[string]error{}
	prefix := path.Join(root, dir)
	fs.WalkDir(os.DirFS(prefix), ".", func(f string, d fs.DirEntry, errInp error) error {
		select {
		case <-ctx.Done():
			return fs.SkipAll
		default:
		}
		if errInp != nil {
			errs[f] = xerrors.Errorf("input: %w", errInp)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := imageExts[strings.ToLower(path.Ext(f))]; !ok {
			return nil
		}
		frames = append(frames, f)
		return nil
	})
	sort.Strings(frames)
	return frames, errs
}
