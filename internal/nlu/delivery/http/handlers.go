package http

import (
	"github.com/gin-gonic/gin"

	"bankbot/pkg/response"
)

// Parse godoc
// @Summary     Parse an utterance
// @Description Returns the top intent, the ranked intent distribution and the extracted entities.
// @Description Set multi to also score each clause of a compound question.
// @Tags        NLU
// @Accept      json
// @Produce     json
// @Param       body body parseReq true "Utterance"
// @Success     200  {object} parseResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/nlu/parse [POST]
func (h *handler) Parse(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processParseReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	resp := parseResp{Result: h.router.Process(ctx, req.Text)}
	if req.Multi {
		scores, err := h.classifier.PredictMulti(ctx, req.Text)
		if err != nil {
			h.l.Warnf(ctx, "classifier.PredictMulti: %v", err)
			response.Error(c, h.mapError(err), nil)
			return
		}
		resp.MultiIntents = scores
	}

	response.OK(c, resp)
}

// Entities godoc
// @Summary     Extract entities
// @Description Runs the entity extractor. With an intent, intent-specific fields are added.
// @Tags        NLU
// @Accept      json
// @Produce     json
// @Param       body body entitiesReq true "Utterance"
// @Success     200  {object} entitiesResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Router      /api/v1/nlu/entities [POST]
func (h *handler) Entities(c *gin.Context) {
	req, err := h.processEntitiesReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if req.Intent == "" {
		response.OK(c, newEntitiesResp(h.extractor.Extract(req.Text)))
		return
	}
	response.OK(c, newEntitiesResp(h.extractor.ExtractWithIntent(req.Text, req.Intent)))
}

// GetIntents godoc
// @Summary     Get training data
// @Description Returns the stored intents and their examples. A missing document yields an empty list.
// @Tags        NLU
// @Produce     json
// @Security    AdminToken
// @Success     200 {object} intentsResp
// @Failure     401 {object} response.Resp "Unauthorized"
// @Router      /api/v1/nlu/intents [GET]
func (h *handler) GetIntents(c *gin.Context) {
	ctx := c.Request.Context()
	response.OK(c, intentsResp{
		Intents: h.classifier.LoadIntents(ctx),
		Version: h.classifier.Version(),
	})
}

// PutIntents godoc
// @Summary     Replace training data
// @Description Validates and stores the intents document without retraining.
// @Tags        NLU
// @Accept      json
// @Produce     json
// @Security    AdminToken
// @Param       body body intentsReq true "Intents"
// @Success     200  {object} intentsResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Router      /api/v1/nlu/intents [PUT]
func (h *handler) PutIntents(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processIntentsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.classifier.SaveIntents(ctx, req.Intents); err != nil {
		h.l.Warnf(ctx, "classifier.SaveIntents: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, intentsResp{Intents: h.classifier.LoadIntents(ctx), Version: h.classifier.Version()})
}

// Retrain godoc
// @Summary     Retrain the intent classifier
// @Description With intents in the body, replaces the training data and trains on it.
// @Description With an empty body, trains on the stored training data.
// @Description Classification keeps using the previous model until the new one is published.
// @Tags        NLU
// @Accept      json
// @Produce     json
// @Security    AdminToken
// @Param       body body retrainReq false "Intents"
// @Success     200  {object} retrainResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/nlu/retrain [POST]
func (h *handler) Retrain(c *gin.Context) {
	ctx := c.Request.Context()

	req, err := h.processRetrainReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	train := func() (retrainResp, error) {
		if req.Intents == nil {
			out, err := h.classifier.Train(ctx)
			return newRetrainResp(out), err
		}
		out, err := h.classifier.Retrain(ctx, req.Intents)
		return newRetrainResp(out), err
	}

	resp, err := train()
	if err != nil {
		h.l.Errorf(ctx, "classifier retrain: %v", err)
		response.Error(c, h.mapError(err), map[string]interface{}{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	h.l.Infof(ctx, "classifier retrained: version=%s intents=%d examples=%d", resp.Version, resp.Intents, resp.Examples)
	response.OK(c, resp)
}
