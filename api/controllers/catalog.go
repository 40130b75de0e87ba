package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kitboxworks/kitbox-backend/api/responses"
	"github.com/kitboxworks/kitbox-backend/api/validators"
	"github.com/kitboxworks/kitbox-backend/internal/catalog"
	pkgerrors "github.com/kitboxworks/kitbox-backend/pkg/errors"
	"github.com/kitboxworks/kitbox-backend/pkg/logger"
)

const (
	defaultPartsPageSize = 100
	maxPartsPageSize     = 500
)

// ListParts returns a page of the catalog, ordered by code.
func ListParts(source catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", defaultPartsPageSize, 1, maxPartsPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<31-1)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		parts, err := source.GetAllParts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog"))
			return
		}

		total := len(parts)
		if offset > total {
			offset = total
		}
		end := offset + limit
		if end > total {
			end = total
		}

		responses.WriteSuccess(w, map[string]any{
			"parts":  parts[offset:end],
			"total":  total,
			"limit":  limit,
			"offset": offset,
		})
	}
}

// GetPart returns a single catalog entry by code.
func GetPart(source catalog.Source, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		part, err := source.GetPartByCode(r.Context(), code)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load part"))
			return
		}
		if part == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "part not found"))
			return
		}
		responses.WriteSuccess(w, part)
	}
}
