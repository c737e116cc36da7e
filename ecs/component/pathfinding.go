package component

// PathNode represents a world-space point along a path.
type PathNode struct {
	X float64
	Y float64
}

// Pathfinding stores grid-based pathfinding settings and results.
//
// Raw and Path are ordered from the target back to the agent, the order the
// path is reconstructed in.
type Pathfinding struct {
	GridSize          float64
	RepathFrames      int
	FrameCounter      int
	MaxSearchNodes    int
	StepBudget        int
	LineOfSightBudget int
	AgentRadius       float64
	ScriptPath        string

	LastStartX  int
	LastStartY  int
	LastTargetX int
	LastTargetY int

	// Revision increases every time Raw and Path are replaced. It never goes
	// back, so followers can detect a new path by comparing it.
	Revision int
	// Dirty forces a repath on the next update regardless of throttling.
	Dirty bool

	Raw           []PathNode
	Path          []PathNode
	Visited       []PathNode
	LastError     error
	DebugNodeSize float64
}

var PathfindingComponent = NewComponent[Pathfinding]()
