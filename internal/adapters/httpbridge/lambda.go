package httpbridge

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/aws/aws-lambda-go/events"
)

// LambdaHandler serves API Gateway HTTP API (v2) events through h, so the
// serverless relay shares routes and validation with the long-running bot.
func LambdaHandler(h http.Handler) func(context.Context, events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	return func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		body := req.Body
		if req.IsBase64Encoded {
			dec, err := base64.StdEncoding.DecodeString(req.Body)
			if err != nil {
				return jsonResponse(http.StatusBadRequest, `{"error":"Invalid payload format","details":"body: invalid base64"}`), nil
			}
			body = string(dec)
		}

		r, err := toHTTPRequest(ctx, req, body)
		if err != nil {
			return jsonResponse(http.StatusBadRequest, `{"error":"Invalid payload format","details":"request: malformed"}`), nil
		}

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, r)

		headers := make(map[string]string, len(rec.Header()))
		for k, v := range rec.Header() {
			headers[k] = strings.Join(v, ",")
		}
		return events.APIGatewayV2HTTPResponse{
			StatusCode: rec.Code,
			Headers:    headers,
			Body:       rec.Body.String(),
		}, nil
	}
}

func toHTTPRequest(ctx context.Context, req events.APIGatewayV2HTTPRequest, body string) (*http.Request, error) {
	method := req.RequestContext.HTTP.Method
	if method == "" {
		method = http.MethodPost
	}
	path := req.RawPath
	if path == "" {
		path = req.RequestContext.HTTP.Path
	}
	if path == "" {
		path = "/"
	}
	target := path
	if req.RawQueryString != "" {
		target += "?" + req.RawQueryString
	}

	r, err := http.NewRequestWithContext(ctx, method, target, strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, v := range req.Headers {
		r.Header.Set(k, v)
	}
	if ip := req.RequestContext.HTTP.SourceIP; ip != "" {
		r.RemoteAddr = ip
	}
	return r, nil
}

func jsonResponse(status int, body string) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       body,
	}
}
