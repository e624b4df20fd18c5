package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "trekmate/internal/domain/errors"
	"trekmate/internal/domain/service"
	"trekmate/internal/infra/auth"
	servicemocks "trekmate/internal/mocks/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAuthMiddleware(t *testing.T) {
	alice := &service.Claims{UserID: "alice", DisplayName: "Alice"}

	tests := []struct {
		name       string
		optional   bool
		path       string
		target     string
		header     string
		verify     bool
		verifyErr  error
		wantErr    error
		wantCaller string
	}{
		{name: "required without header", wantErr: domainerrors.ErrUnauthenticated},
		{name: "required with basic auth", header: "Basic abc", wantErr: domainerrors.ErrUnauthenticated},
		{name: "required with valid token", header: "Bearer good", verify: true, wantCaller: "alice"},
		{name: "required with bad token", header: "Bearer bad", verify: true, verifyErr: errors.New("expired"), wantErr: domainerrors.ErrInvalidToken},
		{name: "optional without header", optional: true},
		{name: "optional with valid token", optional: true, header: "Bearer good", verify: true, wantCaller: "alice"},
		{name: "optional with bad token", optional: true, header: "Bearer bad", verify: true, verifyErr: errors.New("expired"), wantErr: domainerrors.ErrInvalidToken},
		{name: "stream reads access_token", path: "/trips/mine/stream", target: "/trips/mine/stream?access_token=good", verify: true, wantCaller: "alice"},
		{name: "non-stream ignores access_token", path: "/trips/mine", target: "/trips/mine?access_token=good", wantErr: domainerrors.ErrUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verifier := servicemocks.NewMockTokenVerifier(t)
			if tt.verify {
				verifier.EXPECT().VerifyToken(mock.Anything, mock.Anything).Return(alice, tt.verifyErr).Once()
			}
			m := NewAuthMiddleware(verifier, discardLogger())

			target := tt.target
			if target == "" {
				target = "/trips"
			}
			req := httptest.NewRequest(http.MethodGet, target, nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			c := echo.New().NewContext(req, httptest.NewRecorder())
			if tt.path != "" {
				c.SetPath(tt.path)
			}

			called := false
			var caller string
			next := func(c echo.Context) error {
				called = true
				if claims, ok := auth.ClaimsFromContext(c.Request().Context()); ok {
					caller = claims.UserID
				}

				return nil
			}

			mw := m.Authenticate
			if tt.optional {
				mw = m.Optional
			}
			err := mw(next)(c)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, called)

				return
			}
			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, tt.wantCaller, caller)
		})
	}
}

func TestErrorMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantDetails string
	}{
		{
			name:        "app error keeps details",
			err:         domainerrors.ErrValidationFailed.WithDetails("name is required"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantDetails: "name is required",
		},
		{
			name:       "wrapped app error",
			err:        domainerrors.ErrUnauthenticated.WrapMessage("plan trek"),
			wantStatus: http.StatusUnauthorized,
			wantCode:   "UNAUTHENTICATED",
		},
		{
			name: "partial write hides details",
			err: errors.Wrap(&domainerrors.PartialWriteError{
				Collection: "destinations",
				DocumentID: "d1",
				Cause:      errors.New("deadline exceeded"),
			}, "plan trek"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "PARTIAL_WRITE",
		},
		{
			name:       "echo error",
			err:        echo.ErrMethodNotAllowed,
			wantStatus: http.StatusMethodNotAllowed,
			wantCode:   "HTTP_ERROR",
		},
		{
			name:       "unknown error",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   "INTERNAL_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/trips", nil), rec)

			NewErrorMiddleware(discardLogger()).HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body domainerrors.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantStatus, body.Code)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantDetails, body.Error.Details)
		})
	}
}

func TestErrorMiddleware_SkipsCommittedResponses(t *testing.T) {
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/destinations/stream", nil), rec)
	c.Response().WriteHeader(http.StatusOK)

	NewErrorMiddleware(discardLogger()).HandleHTTPError(errors.New("late"), c)

	assert.Empty(t, rec.Body.String())
}
