// Package source allocates playable source references for local video
// files. A reference stages the file into a per-session directory under a
// unique name, so playback handles load a stable path that lives exactly as
// long as the reference. References must be released exactly once; the
// allocator's Sweep covers whatever is still outstanding at session end.
package source

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Allocator owns the staging directory and tracks outstanding refs.
type Allocator struct {
	dir  string
	refs map[string]*Ref
}

// NewAllocator creates the staging directory and returns an allocator.
func NewAllocator(dir string) (*Allocator, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, errors.Wrap(err, "failed to make staging directory")
	}

	return &Allocator{
		dir:  dir,
		refs: map[string]*Ref{},
	}, nil
}

// Alloc stages the file at path and returns a reference to it. The file must
// exist and be a regular file.
func (a *Allocator) Alloc(path string) (*Ref, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve path")
	}

	s, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to stat file")
	}
	if s.IsDir() {
		return nil, errors.New("path is a directory")
	}

	id := uuid.NewString()
	staged := filepath.Join(a.dir, id+filepath.Ext(abs))

	if err := os.Symlink(abs, staged); err != nil {
		return nil, errors.Wrap(err, "failed to stage file")
	}

	ref := &Ref{
		alloc:  a,
		id:     id,
		path:   abs,
		staged: staged,
	}
	a.refs[id] = ref

	return ref, nil
}

// Outstanding returns the number of refs not yet released.
func (a *Allocator) Outstanding() int {
	return len(a.refs)
}

// Sweep releases every outstanding ref. It is the session teardown; refs
// already released on removal paths are not touched again.
func (a *Allocator) Sweep() {
	for _, ref := range a.refs {
		ref.release()
	}
	a.refs = map[string]*Ref{}
}

// Ref is a playable source reference. It is owned by exactly one media entry
// and released exactly once, either on entry removal or by Sweep.
type Ref struct {
	alloc  *Allocator
	id     string
	path   string
	staged string

	released bool
}

// Path returns the original file path.
func (r *Ref) Path() string { return r.path }

// URI returns the file URI of the staged link for playback handles to load.
func (r *Ref) URI() string {
	u := url.URL{Scheme: "file", Path: r.staged}
	return u.String()
}

// Released reports whether the ref has been released.
func (r *Ref) Released() bool { return r.released }

// Release releases the ref. Calling it again is a no-op.
func (r *Ref) Release() error {
	if r.released {
		return nil
	}

	delete(r.alloc.refs, r.id)
	return r.release()
}

func (r *Ref) release() error {
	if r.released {
		return nil
	}
	r.released = true

	if err := os.Remove(r.staged); err != nil {
		return errors.Wrap(err, "failed to remove staged link")
	}

	return nil
}
