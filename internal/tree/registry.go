package tree

// Registry maps views to the leaves that own them. There is no global
// lookup table; each workspace owns one registry and guards it with its
// own lock, so the registry itself is not synchronized.
type Registry struct {
	leaves map[View]*Leaf
}

func NewRegistry() *Registry {
	return &Registry{leaves: make(map[View]*Leaf)}
}

// Leaf returns the leaf owning the view, or nil when the view is not
// managed by this registry's tree.
func (r *Registry) Leaf(v View) *Leaf {
	return r.leaves[v]
}

// Len returns the number of managed views.
func (r *Registry) Len() int { return len(r.leaves) }

// Views returns the managed views in unspecified order.
func (r *Registry) Views() []View {
	out := make([]View, 0, len(r.leaves))
	for v := range r.leaves {
		out = append(out, v)
	}
	return out
}

func (r *Registry) put(v View, l *Leaf) { r.leaves[v] = l }
func (r *Registry) drop(v View)         { delete(r.leaves, v) }
