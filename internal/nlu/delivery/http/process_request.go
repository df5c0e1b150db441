package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	pkgErrors "bankbot/pkg/errors"
)

func badRequest(err error) error {
	return pkgErrors.NewHTTPError(http.StatusBadRequest, err.Error())
}

func (h *handler) processParseReq(c *gin.Context) (parseReq, error) {
	var req parseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, badRequest(err)
	}
	return req, nil
}

func (h *handler) processEntitiesReq(c *gin.Context) (entitiesReq, error) {
	var req entitiesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, badRequest(err)
	}
	return req, nil
}

func (h *handler) processIntentsReq(c *gin.Context) (intentsReq, error) {
	var req intentsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, badRequest(err)
	}
	return req, nil
}

// processRetrainReq accepts an empty body.
func (h *handler) processRetrainReq(c *gin.Context) (retrainReq, error) {
	var req retrainReq
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, badRequest(err)
	}
	return req, nil
}
