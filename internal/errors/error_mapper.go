package errors

import (
	"context"
	stderrors "errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MapError converts a technical error into a user-friendly AppError.
func MapError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}

	technicalMessage := err.Error()

	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      "Resource not found",
			Code:             ErrCodeNotFound,
			HTTPStatus:       http.StatusNotFound,
			OriginalError:    err,
		}
	case stderrors.Is(err, primitive.ErrInvalidHex):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInvalidID,
			Code:             ErrCodeInvalidID,
			HTTPStatus:       http.StatusBadRequest,
			OriginalError:    err,
		}
	case mongo.IsDuplicateKeyError(err):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      "Duplicate value for a unique field",
			Code:             ErrCodeDuplicate,
			HTTPStatus:       http.StatusBadRequest,
			OriginalError:    err,
		}
	case stderrors.Is(err, context.DeadlineExceeded), mongo.IsTimeout(err), mongo.IsNetworkError(err):
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgServiceUnavailable,
			Code:             ErrCodeServiceUnavailable,
			HTTPStatus:       http.StatusServiceUnavailable,
			OriginalError:    err,
		}
	default:
		return &AppError{
			TechnicalMessage: technicalMessage,
			UserMessage:      MsgInternalError,
			Code:             ErrCodeInternal,
			HTTPStatus:       http.StatusInternalServerError,
			OriginalError:    err,
		}
	}
}
