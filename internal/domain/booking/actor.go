package booking

import (
	"github.com/google/uuid"

	"wedding-booking/internal/pkg/errs"
)

var ErrInvalidActorRole = errs.New("invalid actor role")

type ActorRole string

const (
	RoleCouple ActorRole = "couple"
	RoleVendor ActorRole = "vendor"
	// RoleSystem drives edges owned by the ledger and the completion tracker.
	RoleSystem ActorRole = "system"
)

func (r ActorRole) String() string {
	return string(r)
}

func (r ActorRole) IsValid() bool {
	switch r {
	case RoleCouple, RoleVendor, RoleSystem:
		return true
	default:
		return false
	}
}

// IsParty reports whether the role belongs to one of the two booking parties.
func (r ActorRole) IsParty() bool {
	return r == RoleCouple || r == RoleVendor
}

func ParseActorRole(s string) (ActorRole, error) {
	r := ActorRole(s)
	if !r.IsParty() {
		return "", errs.Wrap(ErrInvalidActorRole, s)
	}
	return r, nil
}

type Actor struct {
	Role ActorRole
	ID   uuid.UUID
}

func Couple(id uuid.UUID) Actor { return Actor{Role: RoleCouple, ID: id} }
func Vendor(id uuid.UUID) Actor { return Actor{Role: RoleVendor, ID: id} }

// System is the internal actor used when a component requests a transition on its own behalf.
func System() Actor { return Actor{Role: RoleSystem} }
