package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bankbot/internal/bank"
	"bankbot/pkg/response"
)

// CreateAccount godoc
// @Summary     Create an account
// @Description Creates a customer account. The password is stored as a bcrypt hash.
// @Tags        Admin
// @Accept      json
// @Produce     json
// @Security    AdminToken
// @Param       body body createAccountReq true "Account data"
// @Success     200  {object} accountResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     409  {object} response.Resp "Conflict - account number already exists"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/admin/accounts [POST]
func (h *handler) CreateAccount(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processCreateAccountReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	a, err := h.uc.CreateAccount(ctx, req.toInput())
	if err != nil {
		if !errors.Is(err, bank.ErrDuplicateAccount) {
			h.l.Errorf(ctx, "uc.CreateAccount: %v", err)
		}
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newAccountResp(a))
}

// GetAccount godoc
// @Summary     Get an account
// @Description Returns an account without its password hash.
// @Tags        Admin
// @Produce     json
// @Security    AdminToken
// @Param       number path string true "Account number"
// @Success     200 {object} accountResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/admin/accounts/{number} [GET]
func (h *handler) GetAccount(c *gin.Context) {
	ctx := c.Request.Context()

	a, err := h.uc.GetAccount(ctx, c.Param("number"))
	if err != nil {
		if !errors.Is(err, bank.ErrAccountNotFound) {
			h.l.Errorf(ctx, "uc.GetAccount: %v", err)
		}
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, newAccountResp(a))
}

// ListChats godoc
// @Summary     List the chat log
// @Description Returns chat turns, newest first, optionally for one username.
// @Tags        Admin
// @Produce     json
// @Security    AdminToken
// @Param       username query string false "Filter by username"
// @Param       limit    query int    false "Page size (default: 20, max: 100)"
// @Param       offset   query int    false "Page offset (default: 0)"
// @Success     200 {object} listChatsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     401 {object} response.Resp "Unauthorized"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/admin/chats [GET]
func (h *handler) ListChats(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processListChatsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	out, err := h.uc.ListChats(ctx, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListChats: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListChatsResp(out))
}
