package natsadapter

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	nats "github.com/nats-io/nats.go"

	"github.com/fridaygt/backend/internal/tokenverify"
)

// Resolver matches usecase.SessionResolver without importing it.
type Resolver interface {
	ResolveRole(ctx context.Context, email string) (role string, gamertag string)
}

// VerifyHandler answers session-verification requests over NATS so that
// companion services (the Discord bot, mostly) can check whether a token
// belongs to an approved member.
type VerifyHandler struct {
	parser    tokenverify.Parser
	resolver  Resolver
	respondFn func(msg *nats.Msg, resp VerifyResponse)
}

type verifyRequest struct {
	Token string `json:"token"`
}

type VerifyResponse struct {
	OK       bool   `json:"ok"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	Gamertag string `json:"gamertag,omitempty"`
	Error    string `json:"error,omitempty"`
}

func NewVerifyHandler(parser tokenverify.Parser, resolver Resolver) *VerifyHandler {
	return &VerifyHandler{parser: parser, resolver: resolver, respondFn: respond}
}

// SetResponder overrides how responses are written back. Used in tests.
func (h *VerifyHandler) SetResponder(fn func(msg *nats.Msg, resp VerifyResponse)) {
	h.respondFn = fn
}

func (h *VerifyHandler) Subscribe(conn *nats.Conn, subject, queue string) error {
	if conn == nil {
		return errors.New("nats connection is nil")
	}
	_, err := conn.QueueSubscribe(subject, queue, h.Handle)
	return err
}

func (h *VerifyHandler) Handle(msg *nats.Msg) {
	var req verifyRequest
	if err := json.Unmarshal(msg.Data, &req); err != nil {
		h.respondFn(msg, VerifyResponse{OK: false, Error: "invalid_payload"})
		return
	}
	result, err := tokenverify.Verify(h.parser, req.Token, time.Now)
	if err != nil {
		switch {
		case errors.Is(err, tokenverify.ErrTokenExpired):
			h.respondFn(msg, VerifyResponse{OK: false, Error: "expired"})
		case errors.Is(err, tokenverify.ErrSubjectMissing):
			h.respondFn(msg, VerifyResponse{OK: false, Error: "subject_missing"})
		default:
			h.respondFn(msg, VerifyResponse{OK: false, Error: "invalid_token"})
		}
		return
	}
	role, gamertag := h.resolver.ResolveRole(context.Background(), result.Email)
	h.respondFn(msg, VerifyResponse{OK: true, Email: result.Email, Role: role, Gamertag: gamertag})
}

func respond(msg *nats.Msg, resp VerifyResponse) {
	data, _ := json.Marshal(resp)
	_ = msg.Respond(data)
}
