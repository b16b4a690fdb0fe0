package unit

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/fridaygt/backend/internal/adapters/nats"
)

type stubParser struct {
	responses map[string]parseResult
}

type parseResult struct {
	token  *jwt.Token
	claims jwt.MapClaims
	err    error
}

func (s stubParser) Parse(token string) (*jwt.Token, jwt.MapClaims, error) {
	if res, ok := s.responses[token]; ok {
		return res.token, res.claims, res.err
	}
	return nil, nil, errors.New("unexpected token")
}

type stubResolver struct {
	role     string
	gamertag string
	email    string
}

func (r *stubResolver) ResolveRole(_ context.Context, email string) (string, string) {
	r.email = email
	return r.role, r.gamertag
}

func TestVerifyHandlerHandleSuccess(t *testing.T) {
	exp := float64(time.Now().Add(time.Minute).Unix())
	parser := stubParser{responses: map[string]parseResult{
		"good": {
			token:  &jwt.Token{Valid: true},
			claims: jwt.MapClaims{"sub": "identity-1", "email": "driver@example.com", "sid": "session-1", "exp": exp},
		},
	}}
	resolver := &stubResolver{role: "USER", gamertag: "Apex_Hunter"}
	handler := natsadapter.NewVerifyHandler(parser, resolver)
	var captured natsadapter.VerifyResponse
	handler.SetResponder(func(_ *nats.Msg, resp natsadapter.VerifyResponse) { captured = resp })

	payload, _ := json.Marshal(map[string]string{"token": "good"})
	handler.Handle(&nats.Msg{Data: payload})

	if !captured.OK || captured.Email != "driver@example.com" {
		t.Fatalf("unexpected response: %+v", captured)
	}
	if captured.Role != "USER" || captured.Gamertag != "Apex_Hunter" {
		t.Fatalf("role not propagated: %+v", captured)
	}
	if resolver.email != "driver@example.com" {
		t.Fatalf("resolver called with %s", resolver.email)
	}
}

func TestVerifyHandlerInvalidToken(t *testing.T) {
	parser := stubParser{responses: map[string]parseResult{
		"bad": {err: errors.New("bad token")},
	}}
	handler := natsadapter.NewVerifyHandler(parser, &stubResolver{})
	var captured natsadapter.VerifyResponse
	handler.SetResponder(func(_ *nats.Msg, resp natsadapter.VerifyResponse) { captured = resp })

	payload, _ := json.Marshal(map[string]string{"token": "bad"})
	handler.Handle(&nats.Msg{Data: payload})

	if captured.OK || captured.Error != "invalid_token" {
		t.Fatalf("expected invalid_token, got %+v", captured)
	}
}

func TestVerifyHandlerSubjectMissing(t *testing.T) {
	exp := float64(time.Now().Add(time.Minute).Unix())
	parser := stubParser{responses: map[string]parseResult{
		"nosub": {
			token:  &jwt.Token{Valid: true},
			claims: jwt.MapClaims{"email": "driver@example.com", "sid": "session-1", "exp": exp},
		},
	}}
	handler := natsadapter.NewVerifyHandler(parser, &stubResolver{})
	var captured natsadapter.VerifyResponse
	handler.SetResponder(func(_ *nats.Msg, resp natsadapter.VerifyResponse) { captured = resp })

	payload, _ := json.Marshal(map[string]string{"token": "nosub"})
	handler.Handle(&nats.Msg{Data: payload})

	if captured.OK || captured.Error != "subject_missing" {
		t.Fatalf("expected subject_missing, got %+v", captured)
	}
}

func TestVerifyHandlerExpiredToken(t *testing.T) {
	exp := float64(time.Now().Add(-time.Minute).Unix())
	parser := stubParser{responses: map[string]parseResult{
		"expired": {
			token:  &jwt.Token{Valid: true},
			claims: jwt.MapClaims{"sub": "identity-1", "email": "driver@example.com", "sid": "session-1", "exp": exp},
		},
	}}
	handler := natsadapter.NewVerifyHandler(parser, &stubResolver{})
	var captured natsadapter.VerifyResponse
	handler.SetResponder(func(_ *nats.Msg, resp natsadapter.VerifyResponse) { captured = resp })

	payload, _ := json.Marshal(map[string]string{"token": "expired"})
	handler.Handle(&nats.Msg{Data: payload})

	if captured.OK || captured.Error != "expired" {
		t.Fatalf("expected expired, got %+v", captured)
	}
}
