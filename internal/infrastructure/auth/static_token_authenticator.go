package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
)

type tokenEntry struct {
	token []byte
	user  entities.User
}

// StaticTokenAuthenticator resolves bearer tokens configured in ADMIN_TOKENS.
type StaticTokenAuthenticator struct {
	entries []tokenEntry
}

var _ interfaces.IAuthenticator = (*StaticTokenAuthenticator)(nil)

// ParseTokens reads "token:role:email" entries separated by commas.
func ParseTokens(raw string) (*StaticTokenAuthenticator, error) {
	a := &StaticTokenAuthenticator{}
	for i, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		fields := strings.SplitN(part, ":", 3)
		if len(fields) != 3 {
			return nil, fmt.Errorf("admin token entry %d: expected token:role:email", i+1)
		}
		token, role, email := strings.TrimSpace(fields[0]), entities.Role(strings.TrimSpace(fields[1])), strings.ToLower(strings.TrimSpace(fields[2]))
		if token == "" || email == "" {
			return nil, fmt.Errorf("admin token entry %d: token and email are required", i+1)
		}
		switch role {
		case entities.RoleCustomer, entities.RoleStaff, entities.RoleAdmin:
		default:
			return nil, fmt.Errorf("admin token entry %d: unknown role %q", i+1, role)
		}
		a.entries = append(a.entries, tokenEntry{
			token: []byte(token),
			user:  entities.User{ID: email, Email: email, Role: role},
		})
	}
	if len(a.entries) == 0 {
		log.Printf("[admin][auth] no admin tokens configured, admin routes will reject every request")
	}
	return a, nil
}

func (a *StaticTokenAuthenticator) Authenticate(_ context.Context, token string) (entities.User, error) {
	if token == "" {
		return entities.User{}, interfaces.ErrUnauthenticated
	}
	candidate := []byte(token)
	for _, e := range a.entries {
		if subtle.ConstantTimeCompare(e.token, candidate) == 1 {
			return e.user, nil
		}
	}
	return entities.User{}, interfaces.ErrUnauthenticated
}
