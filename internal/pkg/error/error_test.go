package error

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"arwikicats/internal/core"
)

func TestFromCore(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		httpCode int
		code     int
	}{
		{"invalid param", fmt.Errorf("%w: order_by", core.ErrInvalidQueryParam), http.StatusBadRequest, BAD_REQUEST_PARAMS},
		{"busy", fmt.Errorf("%w: locked", core.ErrStorageBusy), http.StatusServiceUnavailable, SERVICE_UNAVAILABLE},
		{"write", fmt.Errorf("%w: disk full", core.ErrStorageWrite), http.StatusInternalServerError, DATABASE_ERROR},
		{"init", core.ErrStorageInit, http.StatusInternalServerError, DATABASE_ERROR},
		{"resolver", fmt.Errorf("%w: 500", core.ErrResolver), http.StatusBadGateway, EXTERNAL_REQUEST_ERROR},
		{"resolver timeout", fmt.Errorf("%w: %w", core.ErrResolver, context.DeadlineExceeded), http.StatusGatewayTimeout, GATEWAY_TIMEOUT},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, INTERNAL_ERROR},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			appErr := FromCore(tc.err)
			if appErr.HttpCode() != tc.httpCode || appErr.ErrorCode() != tc.code {
				t.Errorf("Expected %d/%d, got %d/%d", tc.httpCode, tc.code, appErr.HttpCode(), appErr.ErrorCode())
			}
			if appErr.ErrorDesc() != tc.err.Error() {
				t.Errorf("Expected description %q, got %q", tc.err.Error(), appErr.ErrorDesc())
			}
		})
	}
	if FromCore(nil) != nil {
		t.Error("nil should map to nil")
	}
}

func TestFrom_KeepsAppError(t *testing.T) {
	appErr := RateLimitExceeded("slow down")
	wrapped := fmt.Errorf("middleware: %w", appErr)
	if From(wrapped) != appErr {
		t.Error("From should unwrap an existing *Error")
	}
}
