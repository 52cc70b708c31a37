package fontface

import (
	"log"
	"sync"
)

// Registry holds the active font face of each family. At most one face
// is registered per family, so reloading a font never leaves a stale
// face behind.
type Registry struct {
	sync.Mutex
	faces map[string]*Face
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{faces: make(map[string]*Face)}
}

// Replace evicts the face currently registered for f.Family, if any, and
// registers f in its place. It returns the evicted face.
func (r *Registry) Replace(f *Face) *Face {
	if f == nil {
		log.Printf("fontface.Registry: refusing to register nil face")
		return nil
	}
	r.Lock()
	defer r.Unlock()
	prev := r.faces[f.Family]
	if prev != nil {
		log.Printf("fontface.Registry: evicting %s from family %q", prev.FileName, f.Family)
	}
	r.faces[f.Family] = f
	return prev
}

// Evict removes the face registered for family and returns it.
// Evicting an empty family is a no-op.
func (r *Registry) Evict(family string) *Face {
	r.Lock()
	defer r.Unlock()
	prev := r.faces[family]
	delete(r.faces, family)
	return prev
}

// Lookup returns the face registered for family.
func (r *Registry) Lookup(family string) (*Face, bool) {
	r.Lock()
	defer r.Unlock()
	f, ok := r.faces[family]
	return f, ok
}

// Len returns the number of registered faces.
func (r *Registry) Len() int {
	r.Lock()
	defer r.Unlock()
	return len(r.faces)
}
