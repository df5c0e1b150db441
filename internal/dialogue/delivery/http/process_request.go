package http

import (
	"github.com/gin-gonic/gin"

	pkgErrors "bankbot/pkg/errors"
)

// processSendMessageReq binds the chat message body.
func (h *handler) processSendMessageReq(c *gin.Context) (sendMessageReq, error) {
	var req sendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, pkgErrors.NewHTTPError(400, err.Error())
	}
	return req, nil
}

// processSessionID reads the session id path parameter.
func (h *handler) processSessionID(c *gin.Context) (string, error) {
	id := c.Param("id")
	if id == "" {
		return "", pkgErrors.NewHTTPError(400, "session id is required")
	}
	return id, nil
}
