package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"donation_platform/internal/domain/entities"
	"donation_platform/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// Claims is the bearer token payload issued by the identity service.
type Claims struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthRequired validates an HS256 bearer token and stores the caller as an entities.Actor.
func AuthRequired(secret string) gin.HandlerFunc {
	key := []byte(secret)
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}), jwt.WithExpirationRequired())

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			abort(c, pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing bearer token", http.StatusUnauthorized))
			return
		}

		claims := &Claims{}
		_, err := parser.ParseWithClaims(strings.TrimSpace(tokenStr), claims, func(*jwt.Token) (any, error) {
			return key, nil
		})
		if err != nil {
			log.Printf("[http][auth] invalid token err=%v", err)
			abort(c, pkg.NewDomainError("UNAUTHORIZED", "Invalid token", err, http.StatusUnauthorized))
			return
		}
		if claims.Subject == "" {
			abort(c, pkg.NewDomainError("UNAUTHORIZED", "Invalid token", errors.New("missing sub"), http.StatusUnauthorized))
			return
		}

		c.Set(actorKey, entities.Actor{
			ID:    claims.Subject,
			Role:  entities.Role(claims.Role),
			Name:  claims.Name,
			Email: claims.Email,
		})
		c.Next()
	}
}

// RoleRequired must run after AuthRequired.
func RoleRequired(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFromContext(c)
		if !ok {
			abort(c, pkg.NewDomainErrorSimple("FORBIDDEN", "Forbidden", http.StatusForbidden))
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		abort(c, pkg.NewDomainErrorSimple("FORBIDDEN", "Forbidden", http.StatusForbidden))
	}
}

func ActorFromContext(c *gin.Context) (entities.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.Actor{}, false
	}
	actor, ok := v.(entities.Actor)
	return actor, ok && actor.ID != ""
}

// SetActor is used by tests and internal callers that authenticate differently.
func SetActor(c *gin.Context, actor entities.Actor) {
	c.Set(actorKey, actor)
}

func abort(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
