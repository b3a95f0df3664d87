package authz

import "github.com/gin-gonic/gin"

const ctxPrincipal = "principal"

// SetPrincipal stores the resolved principal in the Gin context. Called by
// the principal-loading middleware after the JWT has been validated.
func SetPrincipal(c *gin.Context, p Principal) {
	c.Set(ctxPrincipal, p)
}

// PrincipalFrom returns the principal stored in the Gin context, or the zero
// Principal when none was set. The zero value carries no privileges.
func PrincipalFrom(c *gin.Context) Principal {
	if v, ok := c.Get(ctxPrincipal); ok {
		if p, ok := v.(Principal); ok {
			return p
		}
	}
	return Principal{}
}
