package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopfront/api/responses"
	"github.com/angelmondragon/shopfront/pkg/config"
	pkgerrors "github.com/angelmondragon/shopfront/pkg/errors"
	"github.com/angelmondragon/shopfront/pkg/logger"
)

const envHeader = "X-Shopfront-Env"

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready once the catalog has loaded.
func HealthReady(cfg *config.Config, logg *logger.Logger, svc Storefront) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		state := svc.Snapshot().Catalog
		if !state.IsSuccess() {
			err := pkgerrors.New(pkgerrors.CodeDependency, "catalog not loaded").
				WithDetails(map[string]any{"catalog": state.Status.String(), "reason": state.Reason})
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
