package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	apperrors "gudlft/pkg/errors"
	"gudlft/pkg/model"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	clubHeader           = "X-Club"
)

// PortalClient calls the booking portal API.
type PortalClient struct {
	httpClient *HttpClient
}

func NewPortalClient(baseURL string) *PortalClient {
	return &PortalClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// NewPortalClientWith reuses an existing HttpClient, e.g. one pointed at an
// httptest server.
func NewPortalClientWith(httpClient *HttpClient) *PortalClient {
	return &PortalClient{httpClient: httpClient}
}

func (c *PortalClient) HTTP() *HttpClient {
	return c.httpClient
}

func (c *PortalClient) Summary(ctx context.Context, email string) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/summary", model.SummaryRequest{Email: email})
}

func (c *PortalClient) Competitions(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/competitions")
}

func (c *PortalClient) OpenBooking(ctx context.Context, competition, club string) (*Response, error) {
	path := "/api/v1/book/" + url.PathEscape(competition) + "/" + url.PathEscape(club)
	return c.httpClient.GET(ctx, path)
}

// Purchase sends the request with the club in the rate limit header. An
// empty idempotencyKey sends no key.
func (c *PortalClient) Purchase(ctx context.Context, req model.PurchaseRequest, idempotencyKey string) (*Response, error) {
	headers := map[string]string{clubHeader: req.Club}
	if idempotencyKey != "" {
		headers[idempotencyKeyHeader] = idempotencyKey
	}
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/purchases", req, headers)
}

func (c *PortalClient) PurchaseRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, "/api/v1/purchases", rawBody)
}

func (c *PortalClient) Board(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/board")
}

func (c *PortalClient) ClubBoard(ctx context.Context, club string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/board/"+url.PathEscape(club))
}

func (c *PortalClient) Ready(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/ready")
}

// DecodeData unwraps the {"data": ...} envelope of a success response.
func DecodeData[T any](resp *Response) (T, error) {
	var wrapper struct {
		Data T `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return wrapper.Data, fmt.Errorf("could not decode response data:\n%s\n%w", resp, err)
	}
	return wrapper.Data, nil
}

// DecodeList unwraps a {"data": [...], "total_count": n} response.
func DecodeList[T any](resp *Response) ([]T, int, error) {
	var wrapper struct {
		Data       []T `json:"data"`
		TotalCount int `json:"total_count"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, 0, fmt.Errorf("could not decode list response:\n%s\n%w", resp, err)
	}
	return wrapper.Data, wrapper.TotalCount, nil
}

func DecodeError(resp *Response) (*apperrors.ErrorResponse, error) {
	var errResp apperrors.ErrorResponse
	if err := json.Unmarshal(resp.Body, &errResp); err != nil {
		return nil, fmt.Errorf("could not decode error response:\n%s\n%w", resp, err)
	}
	return &errResp, nil
}
