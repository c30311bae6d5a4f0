package tokens

import (
	"encoding/json"
	"errors"

	"github.com/nkiryanov/sat/internal/token"
)

type Config struct {
	// Secret key to sign every token issued by the service
	// Required to be set
	SecretKey string
}

// Token service that signs everything with one server side secret
// Clients of the service never see the secret
type Service struct {
	manager *token.Manager
	secret  string
}

func NewService(cfg Config, manager *token.Manager) (*Service, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}
	if manager == nil {
		return nil, errors.New("token manager must not be nil")
	}

	return &Service{manager: manager, secret: cfg.SecretKey}, nil
}

func (s *Service) Issue(payload json.RawMessage, w token.Windows) (string, error) {
	return s.manager.Encode(payload, s.secret, w)
}

func (s *Service) Decode(tok string) (json.RawMessage, error) {
	return s.manager.Decode(tok, s.secret)
}

func (s *Service) Verify(tok string) bool {
	return s.manager.Verify(tok, s.secret)
}

func (s *Service) Validate(tok string) bool {
	return s.manager.Validate(tok)
}

func (s *Service) Refresh(tok string, w token.Windows) (string, error) {
	return s.manager.Refresh(tok, s.secret, w)
}

func (s *Service) Inspect(tok string) (token.Status, error) {
	return s.manager.Inspect(tok, s.secret)
}
