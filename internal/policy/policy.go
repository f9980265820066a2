// internal/policy/policy.go

// Package policy is the single authorization gate in front of the deal
// workflow. Role and ownership checks live here and nowhere else, so the
// handlers, services and CLI cannot drift apart on who may do what.
package policy

import "github.com/bradyhq/dealdesk/internal/model"

// partnerEditableStatuses are the only statuses in which the owning
// partner's users may still write to a deal.
var partnerEditableStatuses = map[model.DealStatus]bool{
	model.StatusDraft:     true,
	model.StatusSubmitted: true,
}

// CanRead reports whether the actor may see the deal at all. A nil actor is
// unauthenticated and denied everything.
func CanRead(actor *model.User, deal *model.Deal) bool {
	if actor == nil || deal == nil {
		return false
	}
	if actor.IsReviewer() {
		return true
	}
	return ownsDeal(actor, deal)
}

// CanWrite reports whether the actor may mutate the deal's fields. Status
// transitions have their own actor gates in the workflow engine; this
// predicate covers general edits.
func CanWrite(actor *model.User, deal *model.Deal) bool {
	if actor == nil || deal == nil {
		return false
	}
	if actor.IsReviewer() {
		return true
	}
	return ownsDeal(actor, deal) && partnerEditableStatuses[deal.Status]
}

// ownsDeal reports whether a partner actor belongs to the deal's
// organisation.
func ownsDeal(actor *model.User, deal *model.Deal) bool {
	return actor.IsPartner() &&
		actor.PartnerOrganisationID != nil &&
		*actor.PartnerOrganisationID == deal.PartnerID
}
