// Package service composes the backend fetches, the join and the filter into
// the membership search operations.
package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kubex/rubix-membersearch/rubix"
)

// Backend supplies the raw collections. Errors it returns are handed back to
// the caller untouched.
type Backend interface {
	FetchMemberships(ctx context.Context) (rubix.MembershipList, error)
	FetchUsers(ctx context.Context) (rubix.UserList, error)
}

// MembershipService holds no per-request state and is safe for concurrent use.
type MembershipService struct {
	backend Backend
	log     zerolog.Logger
}

func NewMembershipService(backend Backend, log zerolog.Logger) *MembershipService {
	return &MembershipService{
		backend: backend,
		log:     log.With().Str("component", "membership_service").Logger(),
	}
}

// FetchAllMembershipsWithUsers returns every membership enriched with its user.
// Users are only fetched when at least one membership exists.
func (s *MembershipService) FetchAllMembershipsWithUsers(ctx context.Context) (rubix.UserMembershipList, error) {
	return s.fetchAll(ctx, s.runLogger())
}

// FetchMembershipsWithUsers returns the enriched memberships whose user name
// contains name or whose user email contains email, ignoring case.
func (s *MembershipService) FetchMembershipsWithUsers(ctx context.Context, name, email string) (rubix.UserMembershipList, error) {
	log := s.runLogger()
	all, err := s.fetchAll(ctx, log)
	if err != nil {
		return rubix.UserMembershipList{}, err
	}

	filtered := rubix.FilterList(all, name, email, rubix.WithMatchObserver(comparisonLogger(log)))
	log.Debug().Int("matched", filtered.Len()).Int("candidates", all.Len()).Msg("filtered memberships")
	return filtered, nil
}

func (s *MembershipService) fetchAll(ctx context.Context, log zerolog.Logger) (rubix.UserMembershipList, error) {
	memberships, err := s.backend.FetchMemberships(ctx)
	if err != nil {
		return rubix.UserMembershipList{}, err
	}
	if memberships.IsEmpty() {
		log.Info().Msg("no memberships found")
		return rubix.UserMembershipList{}, nil
	}

	users, err := s.backend.FetchUsers(ctx)
	if err != nil {
		return rubix.UserMembershipList{}, err
	}
	if users.IsEmpty() {
		log.Warn().Int("memberships", memberships.Len()).Msg("no users returned")
		return rubix.UserMembershipList{}, nil
	}

	joined := rubix.JoinLists(memberships, users)
	log.Debug().
		Int("memberships", memberships.Len()).
		Int("users", users.Len()).
		Int("joined", joined.Len()).
		Msg("joined memberships with users")
	return joined, nil
}

func (s *MembershipService) runLogger() zerolog.Logger {
	return s.log.With().Str("run_id", uuid.NewString()).Logger()
}

func comparisonLogger(log zerolog.Logger) rubix.MatchObserver {
	return func(field rubix.MatchField, query, value string, matched bool) {
		log.Debug().
			Str("field", string(field)).
			Str("query", query).
			Str("value", value).
			Bool("matched", matched).
			Msg("compare")
	}
}
