package auth

import "github.com/dmitrijs2005/seabattle/internal/common"

// Identity is the verified caller identity produced by the gate.
type Identity struct {
	Name  string
	Admin bool
}

// Gate is the single policy chokepoint for protected operations. It
// delegates signature and expiry checks to the Authority and enforces the
// role requirement on top.
type Gate struct {
	authority *Authority
}

func NewGate(authority *Authority) *Gate {
	return &Gate{authority: authority}
}

// CheckAccess validates the presented token and, if adminRequired is set,
// rejects non-admin claims with common.ErrNotAdmin.
func (g *Gate) CheckAccess(token string, adminRequired bool) (Identity, error) {
	claims, err := g.authority.ValidateToken(token)
	if err != nil {
		return Identity{}, err
	}

	if adminRequired && !claims.Admin {
		return Identity{}, common.ErrNotAdmin
	}

	return Identity{Name: claims.Subject, Admin: claims.Admin}, nil
}
