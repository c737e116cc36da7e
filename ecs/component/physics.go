package component

import "github.com/jakecoffman/cp"

// PhysicsBody describes a static obstacle. Shape is set once the body has
// been registered with the physics world.
type PhysicsBody struct {
	Shape        *cp.Shape
	Width        float64
	Height       float64
	OffsetX      float64
	OffsetY      float64
	Static       bool
	AlignTopLeft bool
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
