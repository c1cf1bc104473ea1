package auth

import (
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/sokomart/backend/pkg/models"
)

// Principal is the authenticated identity passed explicitly into every
// service operation. Nothing downstream reads ambient request state.
type Principal struct {
	ID       bson.ObjectID
	UserName string
	Role     string
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

func (p *Principal) IsAgent() bool {
	return p != nil && p.Role == models.RoleAgent
}

// Anonymous reports whether there is no authenticated identity. A nil
// Principal always means an anonymous caller.
func (p *Principal) Anonymous() bool {
	return p == nil
}
