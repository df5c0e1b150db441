package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	bankHTTP "bankbot/internal/bank/delivery/http"
	chatHTTP "bankbot/internal/dialogue/delivery/http"
	nluHTTP "bankbot/internal/nlu/delivery/http"
)

// Adding a domain:
//  1. Build its UseCase in main and pass it through Config.
//  2. Create the HTTP handler:  h := mydomainHTTP.New(srv.l, uc)
//  3. Register the routes:      mydomainHTTP.RegisterRoutes(api, h, srv.mw)

// setupChatDomain registers /api/v1/chat.
func (srv HTTPServer) setupChatDomain(ctx context.Context, api *gin.RouterGroup) {
	h := chatHTTP.New(srv.l, srv.dialogueUC)
	chatHTTP.RegisterRoutes(api, h, srv.mw)
	srv.l.Infof(ctx, "Chat domain registered")
}

// setupNLUDomain registers /api/v1/nlu.
func (srv HTTPServer) setupNLUDomain(ctx context.Context, api *gin.RouterGroup) {
	h := nluHTTP.New(srv.l, srv.router, srv.classifier, srv.extractor)
	nluHTTP.RegisterRoutes(api, h, srv.mw)
	srv.l.Infof(ctx, "NLU domain registered")
}

// setupBankDomain registers /api/v1/admin.
func (srv HTTPServer) setupBankDomain(ctx context.Context, api *gin.RouterGroup) {
	h := bankHTTP.New(srv.l, srv.bankUC)
	bankHTTP.RegisterRoutes(api, h, srv.mw)
	srv.l.Infof(ctx, "Bank admin domain registered")
}
