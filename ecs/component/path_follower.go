package component

// PathFollower moves an entity along its Pathfinding waypoints, from the
// tail of Path toward its head.
type PathFollower struct {
	Speed        float64
	ArriveRadius float64

	// Cursor indexes the waypoint currently being approached. It is reset
	// whenever the Pathfinding revision changes.
	Cursor   int
	Revision int
	Arrived  bool
}

var PathFollowerComponent = NewComponent[PathFollower]()
