// Package handlers holds the plumbing shared by the resource handlers: request scoped
// loggers, body decoding and answering with the service result.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/fashion-admin/internal/http/response"
	"github.com/magabrotheeeer/fashion-admin/internal/lib/sl"
)

// RequestLogger scopes log to op and the request id.
func RequestLogger(log *slog.Logger, r *http.Request, op string) *slog.Logger {
	return log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// Decode reads the JSON body into req and validates it. On failure it answers the
// request itself and returns false.
func Decode(w http.ResponseWriter, r *http.Request, log *slog.Logger, validate *validator.Validate, req any) bool {
	if err := render.DecodeJSON(r.Body, req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return false
	}

	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			log.Error("failed to validate request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid request"))
			return false
		}
		log.Info("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(verrs))
		return false
	}
	return true
}

// Fail logs err at a level matching its status and answers with it.
func Fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, msg string, err error) {
	if response.StatusCode(err) >= http.StatusInternalServerError {
		log.Error(msg, sl.Err(err))
	} else {
		log.Info(msg, sl.Err(err))
	}
	response.Fail(w, r, err)
}

// Respond answers with data, or with err when it is not nil.
func Respond(w http.ResponseWriter, r *http.Request, log *slog.Logger, data any, err error) {
	if err != nil {
		Fail(w, r, log, "request failed", err)
		return
	}
	response.OK(w, r, data)
}
