package models

import "time"

// ProjectInfo summarizes a discovered project and its storage bucket.
type ProjectInfo struct {
	ProjectID   string `json:"project_id"`
	DisplayName string `json:"display_name"`
	StorageName string `json:"storage_name"`
}

// VersionInfo describes one stored declaration snapshot.
type VersionInfo struct {
	Version   string    `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Size      int64     `json:"size"`
}
