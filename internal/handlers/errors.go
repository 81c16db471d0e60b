package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/middleware"
	"github.com/gin-gonic/gin"
)

// respondError writes err as {"message", "code"}. Unclassified errors are
// logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	e := apperr.From(err)

	if e.Kind == apperr.KindInternal {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
	}

	body := gin.H{"message": e.Message, "code": e.Code}
	if e.Limit != nil {
		body["limit"] = e.Limit.Limit
		body["max"] = e.Limit.Max
		body["attempted"] = e.Limit.Attempted
	}
	c.JSON(apperr.HTTPStatus(e.Kind), body)
}

// bindJSON binds the request body, answering 400 on failure.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, apperr.Validation(err.Error()))
		return false
	}
	return true
}

// paramID parses a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, apperr.Validation("Invalid "+name))
		return 0, false
	}
	return id, true
}

// principal returns the caller; routes using it sit behind AuthMiddleware.
func principal(c *gin.Context) (auth.Principal, bool) {
	p, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Authentication required", "code": "UNAUTHORIZED"})
	}
	return p, ok
}
