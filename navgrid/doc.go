// Package navgrid turns the result of a finished grid search into a short
// list of waypoints.
//
// A ClosedList holds the parent pointers left by the search. PathIterator
// walks them from the goal back to the start, CleanedPathIterator collapses
// mutually visible runs of that walk, and CollectWithOptimizedNodePositions
// smooths the remaining waypoints. Obstacles are only known through the
// LineOfSight predicate supplied by the caller.
//
// Every path is produced end first. Callers that want start-to-end order
// reverse the result themselves.
package navgrid
