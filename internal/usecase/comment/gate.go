package comment

import "github.com/Guyuepp/layers-blog/domain"

// Action is what the caller wants to do with a comment or reply.
type Action int8

const (
	ActionCreate Action = iota
	ActionEdit
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionCreate:
		return "CREATE"
	case ActionEdit:
		return "EDIT"
	case ActionDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Decision is the outcome of Authorize. Reason is set when the action is denied.
type Decision struct {
	Allowed bool
	Reason  error
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason error) Decision {
	return Decision{Reason: reason}
}

// Err returns nil when allowed, otherwise the deny reason.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return d.Reason
}

// Authorize decides whether caller may perform action on the item written by
// owner. owner is nil for creates, which only need a resolved identity.
//
//  1. no identity: ErrAuthenticationRequired
//  2. admin: always allowed
//  3. reader: allowed iff the reader's email is the owner's email, else ErrNotOwner
func Authorize(action Action, owner *domain.Author, caller domain.Caller) Decision {
	if !caller.IsAuthenticated() {
		return deny(domain.ErrAuthenticationRequired)
	}
	if caller.IsAdmin() || action == ActionCreate {
		return allow()
	}
	email := domain.NormalizeEmail(caller.Email)
	if owner == nil || email == "" || domain.NormalizeEmail(owner.Email) != email {
		return deny(domain.ErrNotOwner)
	}
	return allow()
}
