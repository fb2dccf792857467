package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mlbv/internal/models"
	"github.com/desertthunder/mlbv/internal/shared"
	"github.com/tidwall/gjson"
)

// MediaGatewayURL is the production GraphQL endpoint.
const MediaGatewayURL = "https://media-gateway.mlb.com/graphql"

var gatewayHeaders = map[string]string{
	"x-bamsdk-version":  "3.4",
	"x-bamsdk-platform": "macintosh",
	"Origin":            "https://www.mlb.com",
	"Content-Type":      "application/json",
	"Accept":            "application/json",
}

// MediaGatewayClient implements [MediaGateway].
//
// The HTTP client must add the bearer token, e.g. one returned by auth.Authorization.Client.
type MediaGatewayClient struct {
	endpoint   string
	httpClient *http.Client
	logger     *log.Logger
}

// NewMediaGatewayClient creates a gateway client. An empty endpoint uses [MediaGatewayURL].
func NewMediaGatewayClient(endpoint string, client *http.Client, logger *log.Logger) *MediaGatewayClient {
	if endpoint == "" {
		endpoint = MediaGatewayURL
	}
	if client == nil {
		client = shared.NewHTTPClient(0)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &MediaGatewayClient{endpoint: endpoint, httpClient: client, logger: logger}
}

type graphQLRequest struct {
	OperationName string `json:"operationName"`
	Query         string `json:"query"`
	Variables     any    `json:"variables"`
}

// doRequest posts one operation and returns the value at data.<operation>.
func (c *MediaGatewayClient) doRequest(ctx context.Context, operation, query string, variables any) (gjson.Result, error) {
	payload, err := json.Marshal(graphQLRequest{OperationName: operation, Query: query, Variables: variables})
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %s: failed to encode request: %v", shared.ErrGraphQLRequest, operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %s: %v", shared.ErrGraphQLRequest, operation, err)
	}
	for k, v := range gatewayHeaders {
		req.Header.Set(k, v)
	}

	c.logger.Debug("graphql request", "operation", operation)
	body, err := shared.Do(c.httpClient, req)
	if err != nil {
		return gjson.Result{}, fmt.Errorf("%w: %s: %w", shared.ErrGraphQLRequest, operation, err)
	}

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, fmt.Errorf("%w: %s: response is not JSON", shared.ErrGraphQLParse, operation)
	}

	if errs := gjson.GetBytes(body, "errors"); errs.IsArray() && len(errs.Array()) > 0 {
		var messages []string
		for _, m := range errs.Get("#.message").Array() {
			messages = append(messages, m.String())
		}
		return gjson.Result{}, fmt.Errorf("%w: %s: %s", shared.ErrGraphQLParse, operation, strings.Join(messages, "; "))
	}

	data := gjson.GetBytes(body, "data."+operation)
	if !data.Exists() || data.Type == gjson.Null {
		return gjson.Result{}, fmt.Errorf("%w: %s: response has no data.%s", shared.ErrGraphQLParse, operation, operation)
	}
	return data, nil
}

func decodeResult(r gjson.Result, operation string, v any) error {
	if err := json.Unmarshal([]byte(r.Raw), v); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrGraphQLParse, operation, err)
	}
	return nil
}

// ContentSearch lists the streams recorded for a game.
func (c *MediaGatewayClient) ContentSearch(ctx context.Context, gamePk int64) ([]models.StreamCandidate, error) {
	variables := map[string]any{
		"limit": contentSearchLimit,
		"query": fmt.Sprintf(contentSearchFilter, gamePk),
	}

	data, err := c.doRequest(ctx, "contentSearch", contentSearchQuery, variables)
	if err != nil {
		return nil, err
	}

	content := data.Get("content")
	if !content.IsArray() {
		return nil, fmt.Errorf("%w: contentSearch: content is not a list", shared.ErrGraphQLParse)
	}

	var candidates []models.StreamCandidate
	if err := decodeResult(content, "contentSearch", &candidates); err != nil {
		return nil, err
	}
	c.logger.Debug("content search", "game_pk", gamePk, "streams", len(candidates))
	return candidates, nil
}

// InitSession registers a web device and returns its session and device ids.
func (c *MediaGatewayClient) InitSession(ctx context.Context) (string, string, error) {
	variables := map[string]any{
		"device":     map[string]any{},
		"clientType": "WEB",
	}

	data, err := c.doRequest(ctx, "initSession", initSessionQuery, variables)
	if err != nil {
		return "", "", err
	}

	sessionID, deviceID := data.Get("sessionId").String(), data.Get("deviceId").String()
	if sessionID == "" || deviceID == "" {
		return "", "", fmt.Errorf("%w: initSession: missing sessionId or deviceId", shared.ErrGraphQLParse)
	}
	return sessionID, deviceID, nil
}

// InitPlaybackSession opens a new session and requests the playback grant for mediaID.
func (c *MediaGatewayClient) InitPlaybackSession(ctx context.Context, mediaID string) (*models.PlaybackGrant, error) {
	sessionID, deviceID, err := c.InitSession(ctx)
	if err != nil {
		return nil, err
	}

	variables := map[string]any{
		"adCapabilities": []string{"GOOGLE_STANDALONE_AD_PODS"},
		"deviceId":       deviceID,
		"mediaId":        mediaID,
		"quality":        "PLACEHOLDER",
		"sessionId":      sessionID,
	}

	data, err := c.doRequest(ctx, "initPlaybackSession", initPlaybackSessionQuery, variables)
	if err != nil {
		return nil, err
	}

	var grant models.PlaybackGrant
	if err := decodeResult(data.Get("playback"), "initPlaybackSession", &grant); err != nil {
		return nil, err
	}
	if grant.URL == "" {
		return nil, fmt.Errorf("%w: initPlaybackSession: playback has no url", shared.ErrGraphQLParse)
	}
	return &grant, nil
}
