package model

import "time"

// Folder is a node in a vault's folder tree. A nil ParentID means the folder sits at the vault root.
// Paths are derived by walking parents, never stored.
type Folder struct {
	ID        string    `json:"id"`
	VaultID   string    `json:"vault_id"`
	Name      string    `json:"name"`
	ParentID  *string   `json:"parent_id"`
	CreatedAt time.Time `json:"created_at"`
}
