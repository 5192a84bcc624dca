package domain

import "time"

// BuildInfo is the stamp recorded for a task's primary output after a successful build.
type BuildInfo struct {
	TaskName    string    `json:"task_name,omitzero"`
	CommandHash string    `json:"command_hash,omitzero"`
	Timestamp   time.Time `json:"timestamp,omitzero"`
}
