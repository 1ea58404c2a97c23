package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultAPIVersion is used when no version is configured.
const DefaultAPIVersion = "2024-10"

const maxResponseBytes = 4 << 20

var tracer = otel.Tracer("github.com/aussiebroadwan/ageverif/pkg/shopify")

// Client talks to one store's Admin GraphQL endpoint.
type Client struct {
	Domain     string
	Token      string
	Version    string
	HTTPClient *http.Client
}

// NewClient creates a client. The domain may be given with or without scheme.
func NewClient(domain, token, version string) *Client {
	if version == "" {
		version = DefaultAPIVersion
	}
	return &Client{
		Domain:  normaliseDomain(domain),
		Token:   token,
		Version: version,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func normaliseDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimSuffix(domain, "/")
}

// Configured reports whether both the domain and the admin token are set.
// A nil client is not configured.
func (c *Client) Configured() bool {
	return c != nil && c.Domain != "" && c.Token != ""
}

// Endpoint returns the GraphQL URL for this store.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("https://%s/admin/api/%s/graphql.json", c.Domain, c.Version)
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message    string `json:"message"`
		Extensions struct {
			Code string `json:"code"`
		} `json:"extensions"`
	} `json:"errors"`
}

// do runs one GraphQL operation and decodes "data" into out.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) (err error) {
	if !c.Configured() {
		return ErrNotConfigured
	}

	ctx, span := tracer.Start(ctx, "shopify."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("graphql.operation.name", op),
			attribute.String("shopify.api_version", c.Version),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("shopify: encode %s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("shopify: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.Token)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: send %s: %w", op, err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("shopify: read %s response: %w", op, err)
	}

	if resp.StatusCode != http.StatusOK {
		return &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 256)}
	}

	var gr graphQLResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return fmt.Errorf("shopify: decode %s response: %w", op, err)
	}

	if len(gr.Errors) > 0 {
		gqlErr := &GraphQLError{Operation: op}
		for _, e := range gr.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
			if e.Extensions.Code != "" {
				gqlErr.Codes = append(gqlErr.Codes, e.Extensions.Code)
			}
		}
		return gqlErr
	}

	if out == nil || len(gr.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gr.Data, out); err != nil {
		return fmt.Errorf("shopify: decode %s data: %w", op, err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// SearchTerm builds a "field:value" search clause, quoting the value when it
// contains characters with meaning in Shopify's search syntax.
func SearchTerm(field, value string) string {
	if value != "" && strings.IndexFunc(value, needsQuote) < 0 {
		return field + ":" + value
	}
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(value)
	return field + `:"` + escaped + `"`
}

func needsQuote(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case strings.ContainsRune("#@._+-", r):
		return false
	default:
		return true
	}
}
