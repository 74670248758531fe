package models

// CommandSource says who issued a device command. Only manual commands may
// flip the scheduler into semi-manual mode.
type CommandSource string

const (
	SourceManual    CommandSource = "manual"
	SourceScheduler CommandSource = "scheduler"
	SourceExternal  CommandSource = "external"
)
