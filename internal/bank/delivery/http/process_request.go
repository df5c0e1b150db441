package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "bankbot/pkg/errors"
)

// processCreateAccountReq binds and validates the create account body.
func (h *handler) processCreateAccountReq(c *gin.Context) (createAccountReq, error) {
	var req createAccountReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}

// processListChatsReq binds the chat log query parameters.
func (h *handler) processListChatsReq(c *gin.Context) (listChatsReq, error) {
	var req listChatsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req, nil
}
