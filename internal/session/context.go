package session

import "github.com/gin-gonic/gin"

const contextKey = "session"

func Set(c *gin.Context, s Session) {
	c.Set(contextKey, s)
}

// FromGin returns the session stored by the auth middleware, if any.
func FromGin(c *gin.Context) (Session, bool) {
	v, ok := c.Get(contextKey)
	if !ok {
		return Session{}, false
	}
	s, ok := v.(Session)
	return s, ok && !s.IsZero()
}
