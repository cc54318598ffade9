package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"sharespace/internal/model"
	"sharespace/internal/pkg/jwtutil"
	"sharespace/internal/transport/http/response"
)

const ContextUserIDKey = "user_id"

// AuthJWT accepts only "Authorization: Bearer <token>" and stores the token's
// user id in the context. It does not load the user.
func AuthJWT(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		scheme, token, _ := strings.Cut(c.GetHeader("Authorization"), " ")
		token = strings.TrimSpace(token)
		if scheme != "Bearer" || token == "" {
			response.Unauthorized(c)
			return
		}

		claims, err := jwtutil.ParseToken(secret, token)
		if err != nil {
			if errors.Is(err, jwtutil.ErrMissingSecret) {
				response.Internal(c, err)
				return
			}
			response.Unauthorized(c)
			return
		}

		userID, err := model.ParseUserID(claims.ID)
		if err != nil {
			response.Unauthorized(c)
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

func UserID(c *gin.Context) (bson.ObjectID, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return bson.ObjectID{}, false
	}
	id, ok := v.(bson.ObjectID)
	return id, ok
}
