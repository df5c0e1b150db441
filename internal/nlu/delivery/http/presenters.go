package http

import (
	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
	"bankbot/internal/router"
)

// --- Request DTOs ---

type parseReq struct {
	Text  string `json:"text"  binding:"required,max=2000"`
	Multi bool   `json:"multi"`
}

type entitiesReq struct {
	Text   string `json:"text"   binding:"required,max=2000"`
	Intent string `json:"intent" binding:"omitempty,max=64"`
}

type intentsReq struct {
	Intents []intent.Intent `json:"intents" binding:"required"`
}

// retrainReq is optional. Without intents the stored training data is used.
type retrainReq struct {
	Intents []intent.Intent `json:"intents"`
}

// --- Response DTOs ---

type parseResp struct {
	router.Result
	MultiIntents []intent.Score `json:"multi_intents,omitempty"`
}

type entitiesResp struct {
	Entities []entity.Entity          `json:"entities"`
	Grouped  map[entity.Type][]string `json:"grouped"`
}

func newEntitiesResp(entities []entity.Entity) entitiesResp {
	if entities == nil {
		entities = []entity.Entity{}
	}
	return entitiesResp{Entities: entities, Grouped: entity.Group(entities)}
}

type intentsResp struct {
	Intents []intent.Intent `json:"intents"`
	Version string          `json:"model_version,omitempty"`
}

type retrainResp struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Intents  int    `json:"intents"`
	Examples int    `json:"examples"`
	Features int    `json:"features"`
	Version  string `json:"version"`
}

func newRetrainResp(out intent.TrainOutput) retrainResp {
	return retrainResp{
		Success:  true,
		Intents:  out.Intents,
		Examples: out.Examples,
		Features: out.Features,
		Version:  out.Version,
	}
}
