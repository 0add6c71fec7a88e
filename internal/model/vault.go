package model

// VaultKind distinguishes personal vaults from organization-owned ones.
type VaultKind string

const (
	VaultPersonal     VaultKind = "personal"
	VaultOrganization VaultKind = "organization"
)

// Vault is the ownership scope for documents and folders.
type Vault struct {
	ID   string    `json:"id"`
	Kind VaultKind `json:"kind"`
	Name string    `json:"name"`
}

// IsPersonal reports whether the vault belongs to a single user.
func (v Vault) IsPersonal() bool {
	return v.Kind == VaultPersonal
}
