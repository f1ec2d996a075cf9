package dto

import (
	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
)

// ToActorSummary converts a normalized actor into its public projection.
func ToActorSummary(actor *domain.Actor) ActorSummary {
	summary := ActorSummary{
		ID:              actor.ID,
		Kind:            string(actor.Kind),
		Role:            string(actor.Role),
		Email:           actor.Email,
		IsEmailVerified: actor.IsEmailVerified,
		LastLogin:       actor.LastLogin,
	}
	switch actor.Kind {
	case domain.ActorKindCompany:
		summary.CompanyName = actor.Name
		approved := actor.Approved
		summary.IsApproved = &approved
	default:
		summary.Name = actor.Name
	}
	return summary
}

// ToUserSummary converts a user into its public projection.
func ToUserSummary(user *domain.User) ActorSummary {
	return ToActorSummary(user.AsActor())
}

// ToCompanySummary converts a company into its public projection.
func ToCompanySummary(company *domain.Company) ActorSummary {
	return ToActorSummary(company.AsActor())
}
