package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"bankbot/internal/dialogue"
	"bankbot/pkg/response"
)

// SendMessage godoc
// @Summary     Send a chat message
// @Description Runs one user turn through the dialogue handler and returns the bot reply.
// @Description Omit session_id to start a new conversation; reuse the returned one to continue it.
// @Tags        Chat
// @Accept      json
// @Produce     json
// @Param       body body sendMessageReq true "Chat message"
// @Success     200  {object} sendMessageResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     429  {object} response.Resp "Too Many Requests"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/messages [POST]
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processSendMessageReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.HandleMessage(ctx, req.toInput())
	if errors.Is(err, dialogue.ErrLLMUnavailable) {
		h.l.Warnf(ctx, "uc.HandleMessage: %v", err)
		output.Reply = fallbackReply
		response.OK(c, h.newSendMessageResp(output))
		return
	}
	if err != nil {
		h.l.Errorf(ctx, "uc.HandleMessage: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSendMessageResp(output))
}

// GetSession godoc
// @Summary     Get a chat session
// @Description Returns the dialogue state and collected slots of a session.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} sessionResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/sessions/{id} [GET]
func (h *handler) GetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	s, err := h.uc.GetSession(ctx, id)
	if err != nil {
		if !errors.Is(err, dialogue.ErrSessionNotFound) {
			h.l.Errorf(ctx, "uc.GetSession: %v", err)
		}
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSessionResp(s))
}

// ResetSession godoc
// @Summary     Reset a chat session
// @Description Abandons the active flow of a session. The username is kept.
// @Tags        Chat
// @Produce     json
// @Param       id path string true "Session ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/chat/sessions/{id} [DELETE]
func (h *handler) ResetSession(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := h.processSessionID(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.Reset(ctx, id); err != nil {
		h.l.Errorf(ctx, "uc.Reset: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}
