// Package scene is the server-side scene graph mirrored by the browser
// renderer: groups and meshes with positions, plus the stage they live on.
package scene

import (
	"github.com/google/uuid"
	"github.com/playmatatu/pitchviz/internal/pitch"
)

type Kind string

const (
	KindGroup Kind = "group"
	KindMesh  Kind = "mesh"
)

type GeometryType string

const (
	GeometrySphere GeometryType = "sphere"
	GeometryBox    GeometryType = "box"
)

// Geometry describes a primitive shape. Unused dimensions are zero.
type Geometry struct {
	Type           GeometryType `json:"type"`
	Radius         float64      `json:"radius,omitempty"`
	WidthSegments  int          `json:"width_segments,omitempty"`
	HeightSegments int          `json:"height_segments,omitempty"`
	Width          float64      `json:"width,omitempty"`
	Height         float64      `json:"height,omitempty"`
	Depth          float64      `json:"depth,omitempty"`
}

func Sphere(radius float64, widthSegments, heightSegments int) *Geometry {
	return &Geometry{Type: GeometrySphere, Radius: radius, WidthSegments: widthSegments, HeightSegments: heightSegments}
}

func Box(width, height, depth float64) *Geometry {
	return &Geometry{Type: GeometryBox, Width: width, Height: height, Depth: depth}
}

type MaterialType string

const (
	MaterialBasic    MaterialType = "basic"
	MaterialStandard MaterialType = "standard"
)

type Material struct {
	Type      MaterialType `json:"type"`
	Color     uint32       `json:"color"`
	Wireframe bool         `json:"wireframe,omitempty"`
}

// Node is a group or mesh in the scene graph.
type Node struct {
	ID       string     `json:"id"`
	Name     string     `json:"name,omitempty"`
	Kind     Kind       `json:"kind"`
	Geometry *Geometry  `json:"geometry,omitempty"`
	Material *Material  `json:"material,omitempty"`
	Position pitch.Vec3 `json:"position"`
	Rotation pitch.Vec3 `json:"rotation"`
	Scale    pitch.Vec3 `json:"scale"`
	Children []*Node    `json:"children,omitempty"`

	parent *Node
}

func NewGroup(name string) *Node {
	return &Node{ID: uuid.NewString(), Name: name, Kind: KindGroup, Scale: pitch.NewVec3(1, 1, 1)}
}

func NewMesh(name string, g *Geometry, m *Material) *Node {
	return &Node{ID: uuid.NewString(), Name: name, Kind: KindMesh, Geometry: g, Material: m, Scale: pitch.NewVec3(1, 1, 1)}
}

// Add attaches children, detaching them from any previous parent.
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		if c.parent != nil {
			c.parent.Remove(c)
		}
		c.parent = n
		n.Children = append(n.Children, c)
	}
}

// Remove detaches c if it is a direct child. It reports whether it was.
func (n *Node) Remove(c *Node) bool {
	for i, child := range n.Children {
		if child == c {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			c.parent = nil
			return true
		}
	}
	return false
}

// Clear detaches every child.
func (n *Node) Clear() {
	for _, c := range n.Children {
		c.parent = nil
	}
	n.Children = nil
}

func (n *Node) SetPosition(p pitch.Vec3) {
	n.Position = p
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Find returns the first node named name in the subtree rooted at n.
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, c := range n.Children {
		if f := c.Find(name); f != nil {
			return f
		}
	}
	return nil
}

// Count returns the number of nodes in the subtree, n included.
func (n *Node) Count() int {
	total := 1
	for _, c := range n.Children {
		total += c.Count()
	}
	return total
}

// clone deep-copies the subtree without parent links.
func (n *Node) clone() *Node {
	cp := *n
	cp.parent = nil
	if n.Geometry != nil {
		g := *n.Geometry
		cp.Geometry = &g
	}
	if n.Material != nil {
		m := *n.Material
		cp.Material = &m
	}
	cp.Children = nil
	for _, c := range n.Children {
		cp.Children = append(cp.Children, c.clone())
	}
	return &cp
}
