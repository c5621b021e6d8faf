package render

// Priority determines pass order. Lower values render first
type Priority int

const (
	PriorityScene Priority = iota
	PriorityUI
	PriorityHUD
	PriorityDebug
)
