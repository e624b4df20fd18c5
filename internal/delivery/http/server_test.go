package http

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	nethttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"trekmate/config"
	deliverycontext "trekmate/internal/delivery/context"
	apimiddleware "trekmate/internal/delivery/http/middleware"
	"trekmate/internal/delivery/http/router"
	"trekmate/internal/delivery/http/router/handler"
	"trekmate/internal/domain/entity"
	"trekmate/internal/infra/auth"
	"trekmate/internal/infra/notification"
	"trekmate/internal/infra/persistence/memory"
	"trekmate/internal/infra/pubsub"
	"trekmate/internal/infra/qrcode"
	"trekmate/internal/usecase"
	"trekmate/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

type testAPI struct {
	e        *echo.Echo
	jwt      *auth.JWTService
	streamer *handler.Streamer
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	cfg := &config.Config{
		Auth: &config.AuthConfig{Provider: config.AuthProviderJWT, JWTSecret: "test-secret", TokenTTL: time.Hour},
	}
	cfg.HTTP.MaxRequestBodySize = "100KB"
	cfg.HTTP.StreamHeartbeat = time.Hour

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	jwtSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	push, err := notification.NewNotificationService(notification.Params{Ctx: context.Background(), Logger: logger})
	require.NoError(t, err)

	identity := auth.NewContextIdentity()
	store := memory.NewDocumentStore()
	counters := impl.NewUnreadCounters()

	destinations := impl.NewDestinationStore(store, identity, pubsub.NewNoopPublisher(logger), impl.NewTrekLibrary(), logger)
	t.Cleanup(destinations.Close)

	streamer := handler.NewStreamer(handler.StreamerParams{Config: cfg, Logger: logger})

	e := NewEcho(ServerParams{
		Cfg:      cfg,
		Logger:   logger,
		Identity: identity,
		RouterParams: router.RouterParams{
			DestinationHandler: handler.NewDestinationHandler(handler.DestinationHandlerParams{
				DestinationUC: destinations,
				QRCodeSvc:     qrcode.NewQRCodeService(256, "M", "https://trekmate.app/share"),
				Streamer:      streamer,
				Logger:        logger,
			}),
			ChatHandler: handler.NewChatHandler(handler.ChatHandlerParams{
				ChatUC:   impl.NewChatService(store, identity, counters, push, logger),
				Streamer: streamer,
				Logger:   logger,
			}),
			NotificationHandler: handler.NewNotificationHandler(handler.NotificationHandlerParams{
				UnreadUC: impl.NewUnreadService(counters, identity),
				Streamer: streamer,
				Logger:   logger,
			}),
			DeviceHandler: handler.NewDeviceHandler(handler.DeviceHandlerParams{
				DeviceUC: impl.NewDeviceService(store, identity),
				Logger:   logger,
			}),
			AuthMiddleware: apimiddleware.NewAuthMiddleware(jwtSvc, logger),
			Streamer:       streamer,
		},
	})

	return &testAPI{e: e, jwt: jwtSvc, streamer: streamer}
}

func (a *testAPI) token(t *testing.T, uid string) string {
	t.Helper()

	token, _, err := a.jwt.IssueToken(uid, strings.ToUpper(uid[:1])+uid[1:])
	require.NoError(t, err)

	return token
}

func (a *testAPI) do(t *testing.T, method, path, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}

	return rec, env
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()

	var out T
	if len(env.Data) == 0 {
		return out
	}
	require.NoError(t, json.Unmarshal(env.Data, &out))

	return out
}

func names(items []entity.Destination) []string {
	out := make([]string, 0, len(items))
	for _, d := range items {
		out = append(out, d.Name)
	}

	return out
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, nethttp.MethodGet, "/health", "", "")

	assert.Equal(t, nethttp.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
}

func TestAnonymousReadModels(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		path string
		want []string
	}{
		{path: "/destinations", want: []string{"TILICHO LAKE", "ANNAPURNA CIRCUIT", "EVEREST BASE CAMP"}},
		{path: "/trips/planned", want: []string{"Langtang", "Annapurna Base camp", "Manaslu Circuit", "Upper Mustang"}},
		{path: "/trips/mine", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec, env := api.do(t, nethttp.MethodGet, tt.path, "", "")

			require.Equal(t, nethttp.StatusOK, rec.Code)
			assert.Equal(t, tt.want, names(decodeData[[]entity.Destination](t, env)))
		})
	}
}

func TestPlanTrek(t *testing.T) {
	api := newTestAPI(t)
	alice := api.token(t, "alice")

	rec, env := api.do(t, nethttp.MethodPost, "/trips", alice, `{"name":"Annapurna Base Camp","start_date":"2026-11-01"}`)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())

	planned := decodeData[usecase.PlannedTrek](t, env)
	assert.NotEmpty(t, planned.DestinationID)
	assert.NotEmpty(t, planned.TripID)
	assert.Equal(t, "ANNAPURNA BASE CAMP", planned.Trip.Name)
	assert.Equal(t, "4,130 m", planned.Trip.Elevation)
	assert.Equal(t, "alice", planned.Trip.CreatedBy)

	_, env = api.do(t, nethttp.MethodGet, "/trips/mine", alice, "")
	assert.Equal(t, []string{"ANNAPURNA BASE CAMP"}, names(decodeData[[]entity.Destination](t, env)))

	_, env = api.do(t, nethttp.MethodGet, "/trips/planned", alice, "")
	assert.Equal(t, []string{"ANNAPURNA BASE CAMP", "Langtang", "Annapurna Base camp", "Manaslu Circuit", "Upper Mustang"},
		names(decodeData[[]entity.Destination](t, env)))

	_, env = api.do(t, nethttp.MethodGet, "/destinations", "", "")
	assert.Equal(t, []string{"ANNAPURNA BASE CAMP", "TILICHO LAKE", "ANNAPURNA CIRCUIT", "EVEREST BASE CAMP"},
		names(decodeData[[]entity.Destination](t, env)))

	bob := api.token(t, "bob")
	_, env = api.do(t, nethttp.MethodGet, "/trips/mine", bob, "")
	assert.Empty(t, decodeData[[]entity.Destination](t, env))
}

func TestPlanTrek_Errors(t *testing.T) {
	api := newTestAPI(t)

	tests := []struct {
		name     string
		token    string
		body     string
		wantCode int
		wantErr  string
	}{
		{name: "anonymous", body: `{"name":"Langtang"}`, wantCode: nethttp.StatusUnauthorized, wantErr: "UNAUTHENTICATED"},
		{name: "bad token", token: "not-a-jwt", body: `{"name":"Langtang"}`, wantCode: nethttp.StatusUnauthorized, wantErr: "INVALID_TOKEN"},
		{name: "missing name", token: api.token(t, "alice"), body: `{}`, wantCode: nethttp.StatusBadRequest, wantErr: "VALIDATION_FAILED"},
		{name: "malformed body", token: api.token(t, "alice"), body: `{"name":`, wantCode: nethttp.StatusBadRequest, wantErr: "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := api.do(t, nethttp.MethodPost, "/trips", tt.token, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantErr, env.Error.Code)
		})
	}
}

func TestChatAndUnread(t *testing.T) {
	api := newTestAPI(t)
	alice := api.token(t, "alice")
	bob := api.token(t, "bob")

	rec, env := api.do(t, nethttp.MethodPost, "/chats/bob/messages", alice, `{"text":"  Namaste!  "}`)
	require.Equal(t, nethttp.StatusCreated, rec.Code, rec.Body.String())
	sent := decodeData[entity.Message](t, env)
	assert.Equal(t, "alice_bob", sent.ChatID)
	assert.Equal(t, "Namaste!", sent.Text)

	_, env = api.do(t, nethttp.MethodGet, "/chats/alice/messages", bob, "")
	messages := decodeData[[]entity.Message](t, env)
	require.Len(t, messages, 1)
	assert.Equal(t, "alice", messages[0].SenderID)

	_, env = api.do(t, nethttp.MethodGet, "/notifications/unread", bob, "")
	assert.Equal(t, 1, decodeData[handler.UnreadCount](t, env).Count)

	rec, _ = api.do(t, nethttp.MethodPut, "/notifications/unread", bob, `{"count":0}`)
	assert.Equal(t, nethttp.StatusOK, rec.Code)

	_, env = api.do(t, nethttp.MethodGet, "/notifications/unread", bob, "")
	assert.Equal(t, 0, decodeData[handler.UnreadCount](t, env).Count)

	rec, env = api.do(t, nethttp.MethodPut, "/notifications/unread", bob, `{}`)
	assert.Equal(t, nethttp.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)

	rec, _ = api.do(t, nethttp.MethodGet, "/chats/bob/messages", "", "")
	assert.Equal(t, nethttp.StatusUnauthorized, rec.Code)
}

func TestRegisterDevice(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, nethttp.MethodPut, "/me/device", api.token(t, "alice"), `{"fcm_token":"tok-1","platform":"android"}`)

	require.Equal(t, nethttp.StatusOK, rec.Code, rec.Body.String())
	profile := decodeData[entity.UserProfile](t, env)
	assert.Equal(t, "alice", profile.UserID)
	assert.Equal(t, "tok-1", profile.FCMToken)
}

func TestDestinationQRCode(t *testing.T) {
	api := newTestAPI(t)

	rec, _ := api.do(t, nethttp.MethodGet, "/destinations/seed-tilicho-lake/qrcode", "", "")
	require.Equal(t, nethttp.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))

	rec, env := api.do(t, nethttp.MethodGet, "/destinations/nope/qrcode", "", "")
	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DESTINATION_NOT_FOUND", env.Error.Code)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec, env := api.do(t, nethttp.MethodGet, "/nowhere", "", "")

	assert.Equal(t, nethttp.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
}

// sseEvent is one parsed server-sent event.
type sseEvent struct {
	name string
	data string
}

func readEvent(t *testing.T, r *bufio.Reader) sseEvent {
	t.Helper()

	var ev sseEvent
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)

		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name != "" {
				return ev
			}
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			ev.data = strings.TrimPrefix(line, "data: ")
		}
	}
}

func TestStreamDestinations(t *testing.T) {
	api := newTestAPI(t)
	srv := httptest.NewServer(api.e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet, srv.URL+"/destinations/stream", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get(echo.HeaderContentType))

	body := bufio.NewReader(resp.Body)

	first := readEvent(t, body)
	assert.Equal(t, "destinations", first.name)
	var initial []entity.Destination
	require.NoError(t, json.Unmarshal([]byte(first.data), &initial))
	assert.Len(t, initial, 3)

	rec, _ := api.do(t, nethttp.MethodPost, "/trips", api.token(t, "alice"), `{"name":"Gokyo Lakes"}`)
	require.Equal(t, nethttp.StatusCreated, rec.Code)

	next := readEvent(t, body)
	var updated []entity.Destination
	require.NoError(t, json.Unmarshal([]byte(next.data), &updated))
	require.Len(t, updated, 4)
	assert.Equal(t, "GOKYO LAKES", updated[0].Name)
}

func TestStreamEndsOnShutdown(t *testing.T) {
	api := newTestAPI(t)
	srv := httptest.NewServer(api.e)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodGet,
		srv.URL+"/notifications/unread/stream?access_token="+api.token(t, "bob"), nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body := bufio.NewReader(resp.Body)

	first := readEvent(t, body)
	assert.Equal(t, "unread", first.name)
	assert.JSONEq(t, `{"count":0}`, first.data)

	api.streamer.Close()

	_, err = io.ReadAll(body)
	assert.NoError(t, err)
}
