package render

// Priority determines layer order, lower values render first
type Priority int

const (
	PriorityBackground Priority = iota
	PriorityWall
	PriorityEntities
	PriorityParticle
	PriorityPlayer
	PriorityUI
	PriorityOverlay
	PriorityDebug
)
