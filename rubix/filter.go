package rubix

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type MatchField string

const (
	MatchFieldName  MatchField = "name"
	MatchFieldEmail MatchField = "email"
)

// MatchObserver is told about every comparison Filter makes.
type MatchObserver func(field MatchField, query, value string, matched bool)

type FilterOption func(*filterPayload)

type filterPayload struct {
	observers []MatchObserver
}

func WithMatchObserver(observer MatchObserver) FilterOption {
	return func(p *filterPayload) {
		if observer != nil {
			p.observers = append(p.observers, observer)
		}
	}
}

// Filter keeps the records whose user name contains name OR whose user email
// contains email, ignoring case. Both sides are lower-cased, so "SSE" does not
// match "Straße". A blank query never matches, so blank name and blank email
// together yield an empty result.
func Filter(list []UserMembership, name, email string, options ...FilterOption) []UserMembership {
	payload := &filterPayload{}
	for _, opt := range options {
		opt(payload)
	}

	m := newMatcher()
	result := []UserMembership{}
	for _, um := range list {
		nameMatch := m.contains(um.User.Name, name)
		payload.observe(MatchFieldName, name, um.User.Name, nameMatch)

		emailMatch := m.contains(um.User.Email, email)
		payload.observe(MatchFieldEmail, email, um.User.Email, emailMatch)

		if nameMatch || emailMatch {
			result = append(result, um)
		}
	}
	return result
}

// FilterList is Filter over the list wrapper.
func FilterList(list UserMembershipList, name, email string, options ...FilterOption) UserMembershipList {
	return UserMembershipList{memberships: Filter(list.memberships, name, email, options...)}
}

// MatchName reports whether the member's name contains query, ignoring case.
func MatchName(um UserMembership, query string) bool {
	return newMatcher().contains(um.User.Name, query)
}

// MatchEmail reports whether the member's email contains query, ignoring case.
func MatchEmail(um UserMembership, query string) bool {
	return newMatcher().contains(um.User.Email, query)
}

func (p *filterPayload) observe(field MatchField, query, value string, matched bool) {
	for _, o := range p.observers {
		o(field, query, value, matched)
	}
}

// matcher holds a lower-casing Caser, which is stateful and must stay on one goroutine.
type matcher struct {
	lower cases.Caser
}

func newMatcher() *matcher {
	return &matcher{lower: cases.Lower(language.Und)}
}

func (m *matcher) contains(value, query string) bool {
	if isBlank(value) || isBlank(query) {
		return false
	}
	return strings.Contains(m.lower.String(value), m.lower.String(query))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
