// Package policy holds the access-control rules for blog entries and
// comments as pure functions. One rule applies everywhere: owners and staff
// can always mutate, everyone else is read-only subject to the status gate,
// and unauthenticated actors get read-only access to PUBLIC content.
package policy

import (
	"github.com/google/uuid"

	"github.com/inkwell-labs/blog-platform-backend/models"
)

// Role is the actor's capability level, derived once from the user flags.
type Role int

const (
	RoleAnonymous Role = iota
	RoleMember
	RoleStaff
)

// Action is what the actor is trying to do to an entry or comment.
type Action int

const (
	ActionRead Action = iota
	ActionMutate
)

// Decision is the outcome of a policy check. DecisionHidden means the
// resource must look like it does not exist (404), so existence of PRIVATE
// entries never leaks. DecisionDeny (403) is reserved for mutation attempts
// on resources the actor is allowed to read.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionDeny
	DecisionHidden
)

// RoleOf maps a user record to a role. A nil user is anonymous; staff and
// superuser flags both grant the staff role.
func RoleOf(u *models.User) Role {
	if u == nil {
		return RoleAnonymous
	}
	if u.IsStaff || u.IsSuperuser {
		return RoleStaff
	}
	return RoleMember
}

// DecideEntry evaluates an action against a blog entry.
func DecideEntry(role Role, actorID uuid.UUID, action Action, entry *models.BlogEntry) Decision {
	if role == RoleStaff {
		return DecisionAllow
	}
	if role != RoleAnonymous && actorID == entry.AuthorID {
		return DecisionAllow
	}
	if entry.Status == models.StatusPrivate {
		return DecisionHidden
	}
	if action == ActionRead {
		return DecisionAllow
	}
	return DecisionDeny
}

// DecideComment evaluates an action against a comment. Read eligibility is
// inherited from the parent entry; mutation additionally requires comment
// ownership or staff.
func DecideComment(role Role, actorID uuid.UUID, action Action, comment *models.Comment, parent *models.BlogEntry) Decision {
	if parentRead := DecideEntry(role, actorID, ActionRead, parent); parentRead != DecisionAllow {
		return parentRead
	}
	if action == ActionRead {
		return DecisionAllow
	}
	if role == RoleStaff {
		return DecisionAllow
	}
	if role != RoleAnonymous && actorID == comment.AuthorID {
		return DecisionAllow
	}
	return DecisionDeny
}

// CanCreateEntry reports whether the actor may create blog entries.
func CanCreateEntry(role Role) bool {
	return role != RoleAnonymous
}

// CanCreateComment reports whether the actor may comment on the given entry:
// authenticated and able to read it.
func CanCreateComment(role Role, actorID uuid.UUID, entry *models.BlogEntry) bool {
	if role == RoleAnonymous {
		return false
	}
	return DecideEntry(role, actorID, ActionRead, entry) == DecisionAllow
}

// ShouldRecordView reports whether reading the entry warrants a VIEWED audit
// record: any non-owner read of a PUBLIC or UNLISTED entry, anonymous
// included. The owner's own reads are never recorded.
func ShouldRecordView(role Role, actorID uuid.UUID, entry *models.BlogEntry) bool {
	if role != RoleAnonymous && actorID == entry.AuthorID {
		return false
	}
	return entry.Status == models.StatusPublic || entry.Status == models.StatusUnlisted
}
