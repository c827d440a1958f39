package component

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"

	"github.com/imamik/slsfw/internal/util/retry"
)

// Component names known to the runtime.
const (
	ComponentFunction = "tencent-scf-multi-region"
	ComponentGateway  = "tencent-apigateway-multi-region"
	ComponentDNS      = "tencent-cns"
)

// Actions.
const (
	ActionDeploy = "deploy"
	ActionRemove = "remove"
)

// Options configure NewClient.
type Options struct {
	Endpoint string
	Token    string
	// Instance names the deployment, e.g. express-dev.
	Instance string
	Timeout  time.Duration
	Retries  int
	// RetryDelay is the first backoff delay. Defaults to 500ms.
	RetryDelay time.Duration
	Logger     logr.Logger
	// HTTPClient replaces the default transport.
	HTTPClient *http.Client
}

// Client talks to the component runtime.
type Client struct {
	http       *resty.Client
	instance   string
	retries    int
	retryDelay time.Duration
	log        logr.Logger
}

type request struct {
	Inputs any `json:"inputs"`
}

type envelope struct {
	Outputs map[string]any `json:"outputs"`
}

// NewClient creates a component runtime client.
func NewClient(opts Options) (*Client, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("component endpoint is required")
	}
	if opts.Instance == "" {
		return nil, errors.New("component instance is required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	rc := resty.NewWithClient(hc).
		SetBaseURL(opts.Endpoint).
		SetHeader("User-Agent", "slsfw").
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		rc.SetTimeout(opts.Timeout)
	}
	if opts.Token != "" {
		rc.SetAuthScheme("Bearer").SetAuthToken(opts.Token)
	}

	delay := opts.RetryDelay
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}

	return &Client{
		http:       rc,
		instance:   opts.Instance,
		retries:    opts.Retries,
		retryDelay: delay,
		log:        opts.Logger.WithName("component"),
	}, nil
}

// call runs one component action and returns its outputs.
func (c *Client) call(ctx context.Context, component, instance, action string, inputs any) (map[string]any, error) {
	log := c.log.WithValues("component", component, "instance", instance, "action", action)

	var outputs map[string]any
	err := retry.Do(ctx, func(ctx context.Context) error {
		var result envelope
		start := time.Now()
		resp, err := c.http.R().
			SetContext(ctx).
			SetPathParams(map[string]string{
				"component": component,
				"instance":  instance,
				"action":    action,
			}).
			SetBody(request{Inputs: inputs}).
			SetResult(&result).
			SetError(&ErrorResponse{}).
			Post("/components/{component}/{instance}/{action}")
		if err != nil {
			log.V(1).Info("request failed", "error", err.Error())
			return err
		}

		log.V(1).Info("request done", "status", resp.StatusCode(), "duration", time.Since(start).String())
		if resp.IsError() {
			apiErr := handleError(resp)
			if !apiErr.Temporary() {
				return retry.Fatal(apiErr)
			}
			return apiErr
		}

		outputs = result.Outputs
		return nil
	},
		retry.WithMaxRetries(c.retries),
		retry.WithInitialDelay(c.retryDelay),
		retry.WithNotify(func(attempt int, err error, wait time.Duration) {
			log.Info("retrying", "attempt", attempt, "wait", wait.String(), "error", err.Error())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", action, component, err)
	}
	if outputs == nil {
		outputs = map[string]any{}
	}
	return outputs, nil
}
