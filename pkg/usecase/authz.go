package usecase

import (
	"github.com/casbin/casbin/v2"
	casbinmodel "github.com/casbin/casbin/v2/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/vidly-dev/vidly/pkg/domain/apperr"
	"github.com/vidly-dev/vidly/pkg/domain/model/auth"
)

const authzModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch2(r.obj, p.obj) && (p.act == "*" || r.act == p.act)
`

// DefaultPolicies grant administrators every operation on the API.
var DefaultPolicies = [][]string{
	{string(auth.RoleAdmin), "/api/*", "*"},
}

// Authorizer decides whether a role may perform an admin-only operation.
type Authorizer struct {
	enforcer *casbin.Enforcer
}

// NewAuthorizer builds an enforcer with policies, or DefaultPolicies when
// none are given.
func NewAuthorizer(policies ...[]string) (*Authorizer, error) {
	m, err := casbinmodel.NewModelFromString(authzModel)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load authorization model")
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create enforcer")
	}

	if len(policies) == 0 {
		policies = DefaultPolicies
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p); err != nil {
			return nil, goerr.Wrap(err, "failed to add policy", goerr.V("policy", p))
		}
	}
	return &Authorizer{enforcer: e}, nil
}

// Authorize returns a Forbidden error unless token's role may perform
// method on path.
func (a *Authorizer) Authorize(token *auth.Token, path, method string) error {
	if token == nil {
		return apperr.Unauthorized(MsgNoToken)
	}
	ok, err := a.enforcer.Enforce(string(token.Role()), path, method)
	if err != nil {
		return goerr.Wrap(err, "failed to evaluate policy", goerr.V("path", path), goerr.V("method", method))
	}
	if !ok {
		return apperr.Forbidden(MsgAccessDenied)
	}
	return nil
}
