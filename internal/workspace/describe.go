package workspace

import (
	"github.com/panetile/panetile/internal/geometry"
	"github.com/panetile/panetile/internal/tree"
)

// RectInfo is a JSON-friendly rectangle.
type RectInfo struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

func rectInfo(r geometry.Rect) RectInfo {
	return RectInfo{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// NodeInfo is a serializable snapshot of one tree node. Geometry is
// reported both in screen coordinates and workspace-local ones.
type NodeInfo struct {
	Kind      string     `json:"kind"`
	Direction string     `json:"direction,omitempty"`
	Screen    RectInfo   `json:"screen"`
	Local     RectInfo   `json:"local"`
	View      string     `json:"view,omitempty"`
	Children  []NodeInfo `json:"children,omitempty"`
}

// Labeler lets a view contribute a human-readable label to tree dumps.
type Labeler interface {
	Label() string
}

// Describe snapshots the whole tree for status surfaces.
func (w *Workspace) Describe() NodeInfo {
	w.mu.Lock()
	defer w.mu.Unlock()
	origin := geometry.Point{X: w.area.X, Y: w.area.Y}
	return describeNode(w.root, origin)
}

func describeNode(n tree.Node, origin geometry.Point) NodeInfo {
	geo := n.Geometry()
	info := NodeInfo{
		Screen: rectInfo(geo),
		Local:  rectInfo(tree.ToLocal(origin, geo)),
	}
	if leaf := n.AsLeaf(); leaf != nil {
		info.Kind = "leaf"
		if lv, ok := leaf.View().(Labeler); ok {
			info.View = lv.Label()
		}
		return info
	}
	split := n.AsSplit()
	info.Kind = "split"
	info.Direction = split.Direction().String()
	for _, c := range split.Children() {
		info.Children = append(info.Children, describeNode(c, origin))
	}
	return info
}
