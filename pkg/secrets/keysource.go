package secrets

import (
	"context"
)

// KeySource resolves a single named secret through a Manager on demand.
//
// It adapts the manager to the credential interface the upstream client
// expects: the secret is fetched once per call, so rotated credentials
// are picked up without restarting the process.
type KeySource struct {
	manager *Manager
	name    string
}

// NewKeySource creates a credential source bound to one secret name.
func NewKeySource(manager *Manager, name string) *KeySource {
	return &KeySource{
		manager: manager,
		name:    name,
	}
}

// Credential returns the current value of the bound secret.
func (k *KeySource) Credential(ctx context.Context) (string, error) {
	return k.manager.GetSecret(ctx, k.name)
}
