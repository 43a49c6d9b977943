// Package carrier talks to the SMS carrier REST API (Twilio compatible).
package carrier

//go:generate mockgen -source=client.go -destination=mocks/mock_client.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/popeskul/sms-messaging/internal/config"
)

// Gateway sends messages and reads their delivery status.
type Gateway interface {
	Send(ctx context.Context, req SendRequest) (*SendResult, error)
	Fetch(ctx context.Context, sid string) (*SendResult, error)
	BreakerState() (state State, requests uint32, failures uint32)
}

type SendRequest struct {
	To   string
	Body string
}

// SendResult is the carrier view of one message.
type SendResult struct {
	SID          string
	Status       string
	ErrorCode    string
	ErrorMessage string
}

type messageResponse struct {
	SID          string  `json:"sid"`
	Status       string  `json:"status"`
	ErrorCode    *int    `json:"error_code"`
	ErrorMessage *string `json:"error_message"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type Client struct {
	cfg            *config.CarrierConfig
	httpClient     *http.Client
	circuitBreaker *CircuitBreaker
	logger         *zap.Logger
}

func NewClient(cfg *config.CarrierConfig, logger *zap.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Second,
		},
		circuitBreaker: NewCircuitBreaker(&cfg.CircuitBreaker, logger),
		logger:         logger,
	}
}

// Send submits one outbound SMS.
func (c *Client) Send(ctx context.Context, req SendRequest) (*SendResult, error) {
	form := url.Values{}
	form.Set("To", req.To)
	form.Set("Body", req.Body)
	if c.cfg.MessagingServiceSID != "" {
		form.Set("MessagingServiceSid", c.cfg.MessagingServiceSID)
	} else {
		form.Set("From", c.cfg.FromNumber)
	}
	if c.cfg.StatusCallbackURL != "" {
		form.Set("StatusCallback", c.cfg.StatusCallbackURL)
	}

	var result *SendResult
	err := c.circuitBreaker.Execute(ctx, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.messagesURL()+".json", strings.NewReader(form.Encode()))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		result, err = c.do(httpReq)
		return err
	})
	if err != nil {
		state, requests, failures := c.BreakerState()
		c.logger.Warn("Carrier send failed",
			zap.Error(err),
			zap.String("circuitBreakerState", string(state)),
			zap.Uint32("totalRequests", requests),
			zap.Uint32("totalFailures", failures))
		return nil, err
	}

	c.logger.Debug("Carrier accepted message",
		zap.String("sid", result.SID),
		zap.String("status", result.Status))

	return result, nil
}

// Fetch reads the current state of a previously sent message.
func (c *Client) Fetch(ctx context.Context, sid string) (*SendResult, error) {
	var result *SendResult
	err := c.circuitBreaker.Execute(ctx, func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.messagesURL()+"/"+url.PathEscape(sid)+".json", nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		result, err = c.do(httpReq)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) BreakerState() (state State, requests uint32, failures uint32) {
	state = c.circuitBreaker.GetState()
	requests, failures = c.circuitBreaker.GetCounts()
	return
}

func (c *Client) messagesURL() string {
	return fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages",
		strings.TrimRight(c.cfg.BaseURL, "/"), url.PathEscape(c.cfg.AccountSID))
}

func (c *Client) do(req *http.Request) (*SendResult, error) {
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("Failed to close response body", zap.Error(err))
		}
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		if err := json.Unmarshal(body, &errResp); err != nil || errResp.Message == "" {
			return nil, &Error{HTTPStatus: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return nil, &Error{Code: errResp.Code, Message: errResp.Message, HTTPStatus: resp.StatusCode}
	}

	var msgResp messageResponse
	if err := json.Unmarshal(body, &msgResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	result := &SendResult{SID: msgResp.SID, Status: msgResp.Status}
	if msgResp.ErrorCode != nil {
		result.ErrorCode = strconv.Itoa(*msgResp.ErrorCode)
	}
	if msgResp.ErrorMessage != nil {
		result.ErrorMessage = *msgResp.ErrorMessage
	}

	return result, nil
}
