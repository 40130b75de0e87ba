package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kitboxworks/kitbox-backend/api/responses"
	"github.com/kitboxworks/kitbox-backend/api/validators"
	"github.com/kitboxworks/kitbox-backend/internal/configurator"
	pkgerrors "github.com/kitboxworks/kitbox-backend/pkg/errors"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
)

// CreateConfiguration persists a new cabinet configuration.
func CreateConfiguration(svc configurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configuration service unavailable"))
			return
		}

		var payload ConfigurationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		created, err := svc.Create(r.Context(), payload.toModel())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithConfigurationID(ctx, created.ID.String())
			logg.Info(ctx, "configuration.created")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, created)
	}
}

// GetConfiguration loads a configuration with its compartments.
func GetConfiguration(svc configurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configuration service unavailable"))
			return
		}

		id, err := configurationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, cfg)
	}
}

// UpdateConfiguration replaces a stored configuration and its compartments.
func UpdateConfiguration(svc configurator.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "configuration service unavailable"))
			return
		}

		id, err := configurationID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload ConfigurationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cfg := payload.toModel()
		cfg.ID = id
		updated, err := svc.Update(r.Context(), cfg)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, updated)
	}
}

func configurationID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "configuration id must be a uuid")
	}
	return id, nil
}
