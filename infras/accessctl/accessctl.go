package accessctl

//go:generate go run go.uber.org/mock/mockgen -source=./accessctl.go -destination=./mocks/accessctl_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"atrium/config"
	"atrium/infras/otel"
	"atrium/shared/constant"

	"github.com/rs/zerolog/log"
)

const (
	sessionsPath = "/api/sessions"

	otelAttrSpaceID   = "space_id"
	otelAttrSessionID = "session_id"
)

// SessionRequest asks the physical-access gateway to mint a door-unlock
// session for a space.
type SessionRequest struct {
	SpaceID         string    `json:"room_id"`
	DurationMinutes int       `json:"duration_minutes"`
	StartTime       time.Time `json:"startTime"`
}

// Session is the gateway's response: the handle to revoke on cancellation and
// the moment the unlock stops working.
type Session struct {
	ID         string    `json:"session_id"`
	ValidUntil time.Time `json:"valid_until"`
}

// Gateway talks to the external access-control service that operates door
// locks. Errors from it are reported to callers but must never abort a
// reservation transition, the gateway is best effort.
type Gateway interface {
	CreateSession(ctx context.Context, request SessionRequest) (*Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
}

type gatewayImpl struct {
	config *config.Config
	client *http.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Gateway {
	timeout := time.Duration(cfg.External.AccessControl.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &gatewayImpl{
		config: cfg,
		client: &http.Client{Timeout: timeout},
		otel:   otl,
	}
}

// CreateSession mints an unlock session covering the reservation window.
func (g *gatewayImpl) CreateSession(ctx context.Context, request SessionRequest) (session *Session, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".accessctl.CreateSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrSpaceID, request.SpaceID)

	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session request: %w", err)
	}

	url := g.config.External.AccessControl.BaseURL + sessionsPath

	body, err := g.do(ctx, http.MethodPost, url, payload)
	if err != nil {
		return nil, err
	}

	session = &Session{}
	if err = json.Unmarshal(body, session); err != nil {
		return nil, fmt.Errorf("failed to decode session response: %w", err)
	}

	log.Info().
		Str("space_id", request.SpaceID).
		Str("session_id", session.ID).
		Msg("Access session created")

	scope.SetAttribute(otelAttrSessionID, session.ID)

	return session, nil
}

// RevokeSession tears down a previously minted unlock session.
func (g *gatewayImpl) RevokeSession(ctx context.Context, sessionID string) (err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".accessctl.RevokeSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelAttrSessionID, sessionID)

	url := fmt.Sprintf("%s%s/%s", g.config.External.AccessControl.BaseURL, sessionsPath, sessionID)

	_, err = g.do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		return err
	}

	log.Info().Str("session_id", sessionID).Msg("Access session revoked")

	return nil
}

func (g *gatewayImpl) do(ctx context.Context, method, url string, payload []byte) (body []byte, err error) {
	maxRetry := g.config.External.AccessControl.MaxRetry
	if maxRetry <= 0 {
		maxRetry = 1
	}

	waitTime := time.Duration(g.config.External.AccessControl.RetryWaitMs) * time.Millisecond

	for attempt := range maxRetry {
		body, err = g.doOnce(ctx, method, url, payload)
		if err == nil {
			return body, nil
		}

		log.Warn().
			Err(err).
			Str("method", method).
			Str("url", url).
			Int("attempt", attempt+1).
			Msg("Access-control gateway request failed")

		if attempt < maxRetry-1 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("access-control request cancelled: %w", ctx.Err())
			case <-time.After(waitTime):
			}
		}
	}

	return nil, err
}

func (g *gatewayImpl) doOnce(ctx context.Context, method, url string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build access-control request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderPrivateKey, g.config.External.AccessControl.PrivateKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("access-control request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read access-control response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("access-control gateway returned status %d", resp.StatusCode)
	}

	return body, nil
}
