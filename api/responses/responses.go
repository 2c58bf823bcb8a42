package responses

import (
	"context"
	"encoding/json"
	"net/http"

	pkgerrors "github.com/rentalhq/rental-backend/pkg/errors"
	"github.com/rentalhq/rental-backend/pkg/logger"
	"github.com/rentalhq/rental-backend/pkg/types"
)

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(types.SuccessEnvelope{Data: data})
}

// WriteError maps a coded error onto the HTTP response. Details are
// only exposed when the code's metadata allows it; everything else gets
// the public message and a log record with the full chain.
func WriteError(ctx context.Context, w http.ResponseWriter, logg *logger.Logger, err error) {
	typed := pkgerrors.As(err)
	code := pkgerrors.CodeInternal
	if typed != nil {
		code = typed.Code()
	}
	meta := pkgerrors.MetadataFor(code)

	if meta.HTTPStatus >= http.StatusInternalServerError {
		ctx = logg.WithField(ctx, "error_dump", pkgerrors.Dump(err))
		logg.Error(ctx, "request failed", err)
	} else {
		logg.Warn(logg.WithField(ctx, "error_code", string(code)), err.Error())
	}

	apiErr := types.APIError{
		Code:    string(code),
		Message: meta.PublicMessage,
	}
	if typed != nil && typed.Message() != "" && meta.HTTPStatus < http.StatusInternalServerError {
		apiErr.Message = typed.Message()
	}
	if typed != nil && meta.DetailsAllowed {
		apiErr.Details = typed.Details()
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(meta.HTTPStatus)
	_ = json.NewEncoder(w).Encode(types.ErrorEnvelope{Error: apiErr})
}
