// Package handler holds the gin HTTP handlers: REST routes plus the
// websocket upgrade endpoint.
package handler

import (
	"go.uber.org/zap"

	"matchpoint/backend/internal/chathub"
	"matchpoint/backend/internal/config"
	"matchpoint/backend/internal/sms"
	"matchpoint/backend/internal/storage"
	"matchpoint/backend/internal/upload"
)

// Handler bundles the dependencies shared by every route.
type Handler struct {
	Store    storage.Store
	Hub      *chathub.Hub
	Router   *chathub.Router
	Uploader upload.Uploader
	SMS      sms.Sender
	Cfg      *config.Config
	Log      *zap.Logger
}

func NewHandler(store storage.Store, hub *chathub.Hub, router *chathub.Router,
	uploader upload.Uploader, smsSender sms.Sender, cfg *config.Config, log *zap.Logger) *Handler {
	return &Handler{
		Store:    store,
		Hub:      hub,
		Router:   router,
		Uploader: uploader,
		SMS:      smsSender,
		Cfg:      cfg,
		Log:      log,
	}
}
