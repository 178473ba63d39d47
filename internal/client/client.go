// Package client implementa o RecordStore sobre a API REST de usuários.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rafabene/usermanager/internal/dashboard"
	"github.com/rafabene/usermanager/internal/domain/entities"
	domainerrors "github.com/rafabene/usermanager/internal/domain/errors"
	"github.com/rafabene/usermanager/internal/domain/ports"
	"github.com/rafabene/usermanager/internal/handlers/dto"
	"github.com/rafabene/usermanager/internal/infrastructure/logging"
)

const usersPath = "/api/v1/users"

// Client fala com o backend de usuários
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
	logger     ports.Logger
}

// Config contém a configuração do cliente
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Language string // enviado como Accept-Language
	Logger   ports.Logger
}

var _ dashboard.RecordStore = (*Client)(nil)

// New cria um novo cliente. Timeout zero vira 10s.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		language: cfg.Language,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// ListAll devolve todos os usuários vivos em ordem de criação
func (c *Client) ListAll(ctx context.Context) ([]*entities.User, error) {
	var payload []dto.UserResponse
	if err := c.do(ctx, http.MethodGet, usersPath, nil, &payload); err != nil {
		return nil, err
	}

	users := make([]*entities.User, 0, len(payload))
	for _, p := range payload {
		u, err := p.ToEntity()
		if err != nil {
			return nil, domainerrors.NewTransportError("invalid user in response", err)
		}
		users = append(users, u)
	}
	return users, nil
}

// Get busca um usuário por id
func (c *Client) Get(ctx context.Context, id string) (*entities.User, error) {
	return c.user(ctx, http.MethodGet, userPath(id), nil)
}

// Create cria um usuário a partir do rascunho
func (c *Client) Create(ctx context.Context, draft entities.UserDraft) (*entities.User, error) {
	return c.user(ctx, http.MethodPost, usersPath, dto.NewCreateUserRequest(draft))
}

// Update envia apenas os campos presentes no patch (PATCH)
func (c *Client) Update(ctx context.Context, id string, patch entities.UserPatch) (*entities.User, error) {
	return c.user(ctx, http.MethodPatch, userPath(id), dto.NewUpdateUserRequest(patch))
}

// Delete remove um usuário
func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
}

func (c *Client) user(ctx context.Context, method, path string, body any) (*entities.User, error) {
	var payload dto.UserResponse
	if err := c.do(ctx, method, path, body, &payload); err != nil {
		return nil, err
	}
	u, err := payload.ToEntity()
	if err != nil {
		return nil, domainerrors.NewTransportError("invalid user in response", err)
	}
	return u, nil
}

func userPath(id string) string {
	return usersPath + "/" + url.PathEscape(id)
}

// do executa a requisição e decodifica a resposta em out (quando não nil).
// Respostas não-2xx são convertidas para a taxonomia de erros do domínio.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return domainerrors.NewTransportError("create request", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return domainerrors.NewTransportError("send request", err)
	}
	defer resp.Body.Close()

	c.logger.Debug("request completed",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.NewTransportError("read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp.StatusCode, respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return domainerrors.NewTransportError("decode response", err)
	}
	return nil
}

// problemDocument é o subconjunto do RFC 7807 lido pelo cliente
type problemDocument struct {
	Title  string                `json:"title"`
	Detail string                `json:"detail"`
	Errors []dto.ValidationError `json:"errors"`
}

// errorFromResponse mapeia 404 para NotFound, 400/409/422 para
// ValidationError e o restante para TransportFailure
func errorFromResponse(status int, body []byte) error {
	var problem problemDocument
	_ = json.Unmarshal(body, &problem)

	message := problem.Detail
	if message == "" {
		message = problem.Title
	}
	if message == "" {
		message = http.StatusText(status)
	}

	fields := make([]domainerrors.FieldError, 0, len(problem.Errors))
	for _, e := range problem.Errors {
		fields = append(fields, domainerrors.FieldError{Field: e.Field, Message: e.Message})
	}

	switch status {
	case http.StatusNotFound:
		return &domainerrors.DomainError{
			Type:    domainerrors.ProblemTypeNotFound,
			Title:   problem.Title,
			Message: message,
			Err:     domainerrors.ErrUserNotFound,
		}
	case http.StatusConflict:
		return &domainerrors.DomainError{
			Type:    domainerrors.ProblemTypeConflict,
			Title:   problem.Title,
			Message: message,
			Fields:  fields,
			Err:     domainerrors.ErrEmailAlreadyExists,
		}
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domainerrors.NewValidationError(message, fields...)
	default:
		return domainerrors.NewTransportError(
			"unexpected response",
			fmt.Errorf("status %d: %s", status, message),
		)
	}
}
