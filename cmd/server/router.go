package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/popeskul/sms-messaging/internal/api"
	"github.com/popeskul/sms-messaging/internal/handler"
	"github.com/popeskul/sms-messaging/internal/middleware"
)

func setupRouter(si api.ServerInterface, auth *middleware.Authenticator) http.Handler {
	r := chi.NewRouter()

	r.Get("/api/openapi.yaml", func(w http.ResponseWriter, req *http.Request) {
		http.ServeFile(w, req, "api/openapi.yaml")
	})

	api.HandlerWithOptions(si, api.ChiServerOptions{
		BaseRouter:       r,
		Middlewares:      []api.MiddlewareFunc{auth.Middleware},
		ErrorHandlerFunc: handler.InvalidParamHandler,
	})

	return r
}
