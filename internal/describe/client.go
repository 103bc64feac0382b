package describe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/backmassage/picname/internal/config"
)

// Prompt is the fixed instruction sent with every image.
const Prompt = "Describe this image in 2 to 5 English words for use as a filename. " +
	"Use only letters a-z and digits 0-9, separated by single spaces. " +
	"No punctuation, no file extension. Reply with the words only."

// DefaultTimeout bounds a single description request.
const DefaultTimeout = 10 * time.Second

// Describer produces a candidate name for an encoded image.
type Describer interface {
	Describe(ctx context.Context, img EncodedImage) (string, error)
}

// Options configures a Client.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string // Empty means the public OpenAI endpoint.

	Timeout           time.Duration // Zero means DefaultTimeout.
	RequestsPerSecond float64       // Zero disables pacing.

	Log *zerolog.Logger // Optional per-request trace sink.
}

// OptionsFromConfig maps the remote-service settings of cfg to Options.
func OptionsFromConfig(cfg *config.Config, log *zerolog.Logger) Options {
	return Options{
		APIKey:            cfg.APIKey,
		Model:             cfg.Model,
		BaseURL:           cfg.BaseURL,
		Timeout:           cfg.RequestTimeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
		Log:               log,
	}
}

// Client describes images through the chat completions API. It is safe
// for concurrent use.
type Client struct {
	api     openai.Client
	model   string
	timeout time.Duration
	limiter *rate.Limiter
}

// NewClient builds a Client. The SDK's own retries are disabled: a failed
// request fails the file.
func NewClient(opts Options) *Client {
	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(0),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Log != nil {
		reqOpts = append(reqOpts, option.WithMiddleware(traceMiddleware(*opts.Log)))
	}

	c := &Client{
		api:     openai.NewClient(reqOpts...),
		model:   opts.Model,
		timeout: opts.Timeout,
	}
	if c.model == "" {
		c.model = config.DefaultModel
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c
}

// Model returns the model name sent with each request.
func (c *Client) Model() string { return c.model }

// Describe sends img with the fixed prompt and returns the first choice's
// text, trimmed. A response with no choices, or a refusal without text,
// is a *DescribeError of KindEmpty; blank text is returned as "" so the
// caller can skip the file. Pacing waits happen before the timeout starts.
func (c *Client) Describe(ctx context.Context, img EncodedImage) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", classify(err)
		}
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.Chat.Completions.New(reqCtx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{imageMessage(img)},
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &DescribeError{Kind: KindEmpty, Err: ErrEmptyResponse}
	}
	msg := resp.Choices[0].Message
	text := strings.TrimSpace(msg.Content)
	if text == "" && msg.Refusal != "" {
		return "", &DescribeError{Kind: KindEmpty, Err: errors.New("refused: " + msg.Refusal)}
	}
	return text, nil
}

// CheckModel verifies that the service accepts the key and knows the
// configured model.
func (c *Client) CheckModel(ctx context.Context) error {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	if _, err := c.api.Models.Get(reqCtx, c.model); err != nil {
		return classify(err)
	}
	return nil
}

func imageMessage(img EncodedImage) openai.ChatCompletionMessageParamUnion {
	return openai.ChatCompletionMessageParamUnion{
		OfUser: &openai.ChatCompletionUserMessageParam{
			Content: openai.ChatCompletionUserMessageParamContentUnion{
				OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
					{OfText: &openai.ChatCompletionContentPartTextParam{Text: Prompt}},
					{OfImageURL: &openai.ChatCompletionContentPartImageParam{
						ImageURL: openai.ChatCompletionContentPartImageImageURLParam{
							URL:    img.DataURL(),
							Detail: "auto",
						},
					}},
				},
			},
		},
	}
}

func traceMiddleware(log zerolog.Logger) option.Middleware {
	return func(req *http.Request, next option.MiddlewareNext) (*http.Response, error) {
		start := time.Now()
		resp, err := next(req)
		ev := log.Debug().
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("elapsed", time.Since(start))
		if resp != nil {
			ev = ev.Int("status", resp.StatusCode)
		}
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("describe request")
		return resp, err
	}
}
