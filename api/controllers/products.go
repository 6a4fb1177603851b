package controllers

import (
	"net/http"

	"github.com/aurelia-jewels/storefront-gateway/api/responses"
	"github.com/aurelia-jewels/storefront-gateway/api/validators"
	"github.com/aurelia-jewels/storefront-gateway/internal/catalog"
	pkgerrors "github.com/aurelia-jewels/storefront-gateway/pkg/errors"
	"github.com/aurelia-jewels/storefront-gateway/pkg/logger"
	"github.com/aurelia-jewels/storefront-gateway/pkg/upstream"
)

const maxUploadBytes = 32 << 20

// ProductsList returns the catalog, cost fields included for admins.
func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		products, err := svc.List(ctx, session.Token)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"products": products})
	}
}

// ProductsGet returns a single product.
func ProductsGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		productID, ok := productIDParam(w, r, logg)
		if !ok {
			return
		}

		product, err := svc.Get(ctx, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsCreate forwards a new product, derived pricing recomputed.
func ProductsCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		var input catalog.ProductInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Create(ctx, session.Token, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductsUpdate forwards an edit, derived pricing recomputed.
func ProductsUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		productID, ok := productIDParam(w, r, logg)
		if !ok {
			return
		}

		var input catalog.ProductInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		product, err := svc.Update(ctx, session.Token, productID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsDelete forwards a delete. Repeats are idempotent upstream and the
// upstream's answer is relayed as-is.
func ProductsDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		productID, ok := productIDParam(w, r, logg)
		if !ok {
			return
		}

		message, err := svc.Delete(ctx, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}

// ProductsDeactivate hides a product from the storefront without deleting it.
func ProductsDeactivate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		productID, ok := productIDParam(w, r, logg)
		if !ok {
			return
		}

		message, err := svc.Deactivate(ctx, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": message})
	}
}

// ProductsReactivate restores a deactivated product.
func ProductsReactivate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}
		productID, ok := productIDParam(w, r, logg)
		if !ok {
			return
		}

		product, err := svc.Reactivate(ctx, session.Token, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

// ProductsUploadTemp forwards multipart images to the upstream's staging
// upload and returns the stored descriptors.
func ProductsUploadTemp(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		session := requireSession(w, r, logg)
		if session == nil {
			return
		}

		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse multipart form"))
			return
		}
		if r.MultipartForm == nil || len(r.MultipartForm.File["images"]) == 0 {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "at least one image is required"))
			return
		}

		var files []upstream.UploadedFile
		for _, header := range r.MultipartForm.File["images"] {
			part, err := header.Open()
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "open uploaded file"))
				return
			}

			uploaded, err := svc.UploadTemp(ctx, session.Token, header.Filename, part)
			part.Close()
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			files = append(files, uploaded...)
		}
		responses.WriteSuccess(w, map[string]any{"files": files})
	}
}
