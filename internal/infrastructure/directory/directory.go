// Package directory is the in-process participant directory backing the
// authorization oracle: it knows which principals are registered and can
// verify the administrator's shared secret for the admin API surface.
package directory

import (
	"errors"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/grievance-hub/grievance-hub/internal/domain/complaint"
)

// Directory implements oracle.Authorizer over an in-memory principal set.
type Directory struct {
	mu              sync.RWMutex
	registered      map[complaint.Principal]struct{}
	adminSecretHash []byte
}

// New creates a directory with the given pre-registered principals.
func New(principals ...complaint.Principal) *Directory {
	d := &Directory{registered: map[complaint.Principal]struct{}{}}
	for _, p := range principals {
		d.registered[p] = struct{}{}
	}
	return d
}

// Register adds a principal. Registering an existing principal is a no-op.
func (d *Directory) Register(p complaint.Principal) error {
	if strings.TrimSpace(string(p)) == "" {
		return errors.New("principal is required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.registered[p] = struct{}{}
	return nil
}

// IsRegistered reports whether p is a known participant.
func (d *Directory) IsRegistered(p complaint.Principal) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.registered[p]
	return ok
}

// SetAdminSecret stores a bcrypt hash of the administrator secret used by
// the admin HTTP surface.
func (d *Directory) SetAdminSecret(secret string) error {
	if secret == "" {
		return errors.New("admin secret is required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.adminSecretHash = hash
	return nil
}

// VerifyAdminSecret checks a presented secret against the stored hash.
// Returns false when no secret was ever configured.
func (d *Directory) VerifyAdminSecret(secret string) bool {
	d.mu.RLock()
	hash := d.adminSecretHash
	d.mu.RUnlock()
	if len(hash) == 0 || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(hash, []byte(secret)) == nil
}
