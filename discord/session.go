package discord

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/WelcomerTeam/Sandwich-Events/pkg/bucketstore"
	"github.com/WelcomerTeam/Sandwich-Events/sandwichjson"
	"github.com/valyala/fasthttp"
)

const (
	APIVersion      = "v10"
	EndpointDiscord = "https://discord.com/api"
	UserAgent       = "Sandwich-Events (github.com/WelcomerTeam/Sandwich-Events)"

	// Limits used until discord tells us the real limit of a bucket.
	defaultBucketLimit    = 5
	defaultBucketDuration = 5 * time.Second
	defaultTimeout        = 20 * time.Second

	// Every request also waits on the global ratelimit of the bot.
	globalBucket         = "global"
	globalBucketLimit    = 50
	globalBucketDuration = time.Second

	// Used when a 429 does not say how long to wait.
	defaultRetryAfter = time.Second
)

type RESTInterface interface {
	// Fetch constructs a request. It will return a response body along with any errors.
	// Errors can include ErrUnauthorized and *RestError.
	Fetch(s *Session, method, endpoint, contentType string, body []byte, headers http.Header) ([]byte, error)
	FetchBJ(s *Session, method, endpoint, contentType string, body []byte, headers http.Header, response interface{}) error
	FetchJJ(s *Session, method, endpoint string, payload interface{}, headers http.Header, response interface{}) error

	SetDebug(value bool)
}

// Session contains the context for the discord rest interface.
type Session struct {
	Context   context.Context
	Interface RESTInterface
	Token     string
}

// NewSession creates a session. The token is sent as-is so bot tokens should
// be prefixed with "Bot ".
func NewSession(context context.Context, token string, httpInterface RESTInterface) *Session {
	return &Session{
		Context:   context,
		Token:     token,
		Interface: httpInterface,
	}
}

// BaseInterface is the default HTTP Interface and routes requests to discord,
// waiting on per route buckets using the ratelimit headers discord returns.
type BaseInterface struct {
	HTTP       *fasthttp.Client
	Buckets    *bucketstore.BucketStore
	APIVersion string
	URLHost    string
	URLScheme  string
	UserAgent  string
	Timeout    time.Duration

	Debug bool
}

func NewBaseInterface() RESTInterface {
	return NewInterface(&fasthttp.Client{
		Name:                     UserAgent,
		NoDefaultUserAgentHeader: true,
	}, EndpointDiscord, APIVersion, UserAgent)
}

func NewInterface(httpClient *fasthttp.Client, endpoint string, version string, useragent string) RESTInterface {
	url, _ := url.Parse(endpoint)

	return &BaseInterface{
		HTTP:       httpClient,
		Buckets:    bucketstore.NewBucketStore(),
		APIVersion: version,
		URLHost:    url.Host,
		URLScheme:  url.Scheme,
		UserAgent:  useragent,
		Timeout:    defaultTimeout,
	}
}

// Fetch sends the request once the route and global buckets allow it. A 429
// is retried once after the ratelimit discord returns has reset.
func (bi *BaseInterface) Fetch(session *Session, method, endpoint, contentType string, body []byte, headers http.Header) ([]byte, error) {
	path, query, _ := strings.Cut(endpoint, "?")
	bucket := method + ":" + routeBucket(path)

	var (
		response   []byte
		statusCode int
		uri        string
	)

	for attempt := 0; attempt < 2; attempt++ {
		err := bi.Buckets.CreateWaitForBucket(session.Context, globalBucket, globalBucketLimit, globalBucketDuration)
		if err != nil {
			return nil, fmt.Errorf("failed to wait for global bucket: %w", err)
		}

		err = bi.Buckets.CreateWaitForBucket(session.Context, bucket, defaultBucketLimit, defaultBucketDuration)
		if err != nil {
			return nil, fmt.Errorf("failed to wait for bucket: %w", err)
		}

		response, statusCode, uri, err = bi.do(session, bucket, method, path, query, contentType, body, headers)
		if err != nil {
			return nil, err
		}

		if statusCode != fasthttp.StatusTooManyRequests {
			break
		}
	}

	switch statusCode {
	case fasthttp.StatusOK:
	case fasthttp.StatusCreated:
	case fasthttp.StatusNoContent:
	case fasthttp.StatusUnauthorized:
		return response, ErrUnauthorized
	default:
		return response, NewRestError(method, uri, statusCode, response)
	}

	return response, nil
}

// do sends a single request and applies the ratelimit headers of the response.
func (bi *BaseInterface) do(
	session *Session,
	bucket, method, path, query, contentType string,
	body []byte,
	headers http.Header,
) (response []byte, statusCode int, uri string, err error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	requestURI := req.URI()
	requestURI.SetScheme(bi.URLScheme)
	requestURI.SetHost(bi.URLHost)

	if bi.APIVersion != "" && !strings.HasPrefix(path, "/api") {
		requestURI.SetPath("/api/" + bi.APIVersion + path)
	} else {
		requestURI.SetPath(path)
	}

	requestURI.SetQueryString(query)

	req.Header.SetMethod(method)

	for name, values := range headers {
		for _, value := range values {
			req.Header.Add(name, value)
		}
	}

	if body != nil {
		req.SetBody(body)

		if len(req.Header.ContentType()) == 0 {
			req.Header.SetContentType(contentType)
		}
	}

	if session.Token != "" {
		req.Header.Set("Authorization", session.Token)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.SetUserAgent(bi.UserAgent)

	deadline := time.Now().Add(bi.Timeout)
	if ctxDeadline, ok := session.Context.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	err = bi.HTTP.DoDeadline(req, resp, deadline)
	if err != nil {
		return nil, 0, "", fmt.Errorf("failed to do request: %w", err)
	}

	if remaining, resetAfter, ok := parseRateLimit(&resp.Header); ok {
		bi.Buckets.UpdateBucket(bucket, remaining, resetAfter)
	}

	statusCode = resp.StatusCode()

	if statusCode == fasthttp.StatusTooManyRequests {
		retryAfter := parseRetryAfter(&resp.Header)

		if string(resp.Header.Peek("X-RateLimit-Global")) == "true" {
			bi.Buckets.UpdateBucket(globalBucket, 0, retryAfter)
		} else {
			bi.Buckets.UpdateBucket(bucket, 0, retryAfter)
		}
	}

	// The response is released on return, so the body must be copied.
	response = append([]byte(nil), resp.Body()...)
	uri = requestURI.String()

	if bi.Debug {
		println(method, uri, statusCode, contentType, string(body), string(response))
	}

	return response, statusCode, uri, nil
}

func (bi *BaseInterface) FetchBJ(session *Session, method, endpoint, contentType string, body []byte, headers http.Header, response interface{}) error {
	resp, err := bi.Fetch(session, method, endpoint, contentType, body, headers)
	if err != nil {
		return err
	}

	if response != nil {
		err = sandwichjson.Unmarshal(resp, response)
		if err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}

	return nil
}

func (bi *BaseInterface) FetchJJ(session *Session, method, endpoint string, payload interface{}, headers http.Header, response interface{}) error {
	var body []byte
	var err error

	if payload != nil {
		body, err = sandwichjson.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
	}

	return bi.FetchBJ(session, method, endpoint, "application/json", body, headers, response)
}

func (bi *BaseInterface) SetDebug(value bool) {
	bi.Debug = value
}

// routeBucket converts a path into the ratelimit bucket it belongs to. Major
// parameters are kept, other ids and interaction tokens are replaced.
func routeBucket(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")

	for i, segment := range segments {
		if i == 0 {
			continue
		}

		switch segments[i-1] {
		case "guilds", "channels", "webhooks":
			continue
		}

		if i >= 2 && (segments[i-2] == "interactions" || segments[i-2] == "webhooks") {
			segments[i] = ":token"

			continue
		}

		if _, err := strconv.ParseUint(segment, 10, 64); err == nil {
			segments[i] = ":id"
		}
	}

	return "/" + strings.Join(segments, "/")
}

func parseRateLimit(header *fasthttp.ResponseHeader) (remaining int32, resetAfter time.Duration, ok bool) {
	remainingHeader := header.Peek("X-RateLimit-Remaining")
	resetAfterHeader := header.Peek("X-RateLimit-Reset-After")

	if len(remainingHeader) == 0 || len(resetAfterHeader) == 0 {
		return 0, 0, false
	}

	remainingValue, err := strconv.ParseInt(string(remainingHeader), 10, 32)
	if err != nil {
		return 0, 0, false
	}

	resetAfterSeconds, err := strconv.ParseFloat(string(resetAfterHeader), 64)
	if err != nil {
		return 0, 0, false
	}

	return int32(remainingValue), time.Duration(resetAfterSeconds * float64(time.Second)), true
}

// parseRetryAfter returns how long to wait after a 429.
func parseRetryAfter(header *fasthttp.ResponseHeader) time.Duration {
	for _, name := range []string{"X-RateLimit-Reset-After", "Retry-After"} {
		value := header.Peek(name)
		if len(value) == 0 {
			continue
		}

		seconds, err := strconv.ParseFloat(string(value), 64)
		if err == nil && seconds >= 0 {
			return time.Duration(seconds * float64(time.Second))
		}
	}

	return defaultRetryAfter
}
