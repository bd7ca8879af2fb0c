// Package handler provides the Lambda handler for the translate proxy.
package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/satisfiyworld/translate-proxy/internal/config"
	"github.com/satisfiyworld/translate-proxy/internal/domain"
	"github.com/satisfiyworld/translate-proxy/internal/upstream"
)

// corsHeaders are attached to every response, including errors and the
// OPTIONS short-circuit.
var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Methods": "GET,POST,OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
}

// Handler processes API Gateway proxy requests for the translate proxy.
type Handler struct {
	cfg      *config.Config
	client   *upstream.Client
	validate *validator.Validate
	logger   *slog.Logger
}

// New creates a Handler with its upstream client.
func New(cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		cfg:      cfg,
		client:   upstream.New(cfg, logger),
		validate: validator.New(),
		logger:   logger,
	}
}

// Handle processes one inbound request. Every outcome becomes an HTTP
// response; nothing escapes as an unhandled fault.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("recovered from panic", "panic", r)
			resp = h.respond(http.StatusInternalServerError, domain.ErrorResponse{
				Error:   "Server error",
				Details: fmt.Sprint(r),
			})
			err = nil
		}
	}()

	if strings.EqualFold(req.HTTPMethod, http.MethodOptions) {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusNoContent,
			Headers:    corsHeaders,
		}, nil
	}

	params := h.extractParams(req)
	if failure := h.validateParams(params); failure != nil {
		return h.respond(http.StatusBadRequest, *failure), nil
	}

	if h.client == nil {
		return h.respond(http.StatusInternalServerError, domain.ErrorResponse{
			Error: "translation client is not configured",
		}), nil
	}

	result, err := h.client.Translate(ctx, params)
	if err != nil {
		return h.respondError(err), nil
	}

	return h.respond(http.StatusOK, domain.SuccessResponse{
		Success:        true,
		OriginalText:   params.Text,
		TranslatedText: result.TranslatedText,
		TargetLanguage: params.TargetLanguage,
		API:            domain.APIName,
		Raw:            result.Raw,
	}), nil
}

// extractParams normalizes the inbound request into translation params.
// GET reads query parameters; everything else is treated as POST and read
// from the JSON body, with "q" as the fallback field for the text.
func (h *Handler) extractParams(req events.APIGatewayProxyRequest) domain.Params {
	var text, target string

	if strings.EqualFold(req.HTTPMethod, http.MethodGet) {
		text = req.QueryStringParameters["text"]
		target = req.QueryStringParameters["to"]
	} else {
		body := parseBody(req)
		text = stringField(body, "text")
		if text == "" {
			text = stringField(body, "q")
		}
		target = stringField(body, "to")
	}

	if target == "" {
		target = h.cfg.TargetLanguage
	}

	return domain.Params{Text: text, TargetLanguage: target}
}

// parseBody decodes the request body as JSON. A malformed body never
// fails the request; it degrades to an empty parameter set and surfaces
// later as a missing-text validation error.
func parseBody(req events.APIGatewayProxyRequest) map[string]any {
	raw := req.Body
	if req.IsBase64Encoded {
		if decoded, err := base64.StdEncoding.DecodeString(raw); err == nil {
			raw = string(decoded)
		}
	}

	var body map[string]any
	if err := json.Unmarshal([]byte(raw), &body); err != nil || body == nil {
		return map[string]any{}
	}
	return body
}

func stringField(body map[string]any, key string) string {
	s, _ := body[key].(string)
	return s
}

// validateParams checks the text parameter, returning the 400 body to
// emit when it fails.
func (h *Handler) validateParams(params domain.Params) *domain.ErrorResponse {
	if err := h.validate.Var(params.Text, "required"); err != nil {
		return &domain.ErrorResponse{Error: "missing required parameter: text"}
	}

	if err := h.validate.Var(params.Text, fmt.Sprintf("max=%d", h.cfg.MaxTextLength)); err != nil {
		return &domain.ErrorResponse{
			Error: fmt.Sprintf("text exceeds the maximum length of %d characters", h.cfg.MaxTextLength),
		}
	}

	return nil
}

// respondError maps a terminal upstream failure to its HTTP response:
// 502 for upstream statuses (4xx, or 5xx past the retry budget), 504 when
// every attempt died on the wire.
func (h *Handler) respondError(err error) events.APIGatewayProxyResponse {
	var upErr *upstream.Error
	if errors.As(err, &upErr) {
		if upErr.Kind == upstream.KindNetwork {
			details := ""
			if upErr.Err != nil {
				details = upErr.Err.Error()
			}
			return h.respond(http.StatusGatewayTimeout, domain.ErrorResponse{
				Error:   "translation service unreachable",
				Details: details,
			})
		}

		return h.respond(http.StatusBadGateway, domain.ErrorResponse{
			Error:  "translation service error",
			Status: upErr.Status,
			Body:   upErr.Body,
		})
	}

	return h.respond(http.StatusInternalServerError, domain.ErrorResponse{
		Error:   "Server error",
		Details: err.Error(),
	})
}

func (h *Handler) respond(status int, body any) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(corsHeaders)+1)
	for k, v := range corsHeaders {
		headers[k] = v
	}
	headers["Content-Type"] = "application/json"

	encoded, err := json.Marshal(body)
	if err != nil {
		h.logger.Error("failed to encode response", "error", err)
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusInternalServerError,
			Headers:    headers,
			Body:       `{"success":false,"error":"Server error"}`,
		}
	}

	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       string(encoded),
	}
}
