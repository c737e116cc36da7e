package component

// NavTargetTag marks the entity every pathfinding agent heads for.
type NavTargetTag struct{}

var NavTargetTagComponent = NewComponent[NavTargetTag]()
