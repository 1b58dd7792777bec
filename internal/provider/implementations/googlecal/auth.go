package googlecal

import (
	"context"
	jsonEncoding "encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/holycityautospa/booking-hub/internal/provider/implementations/googlecal/json"
	"github.com/holycityautospa/booking-hub/internal/schema"
	"github.com/holycityautospa/booking-hub/internal/tools/caching"
	"github.com/holycityautospa/booking-hub/internal/tools/requesting"
	"github.com/rs/zerolog"
)

// authRequest exchanges a signed service-account assertion for an access
// token, mirroring the JWT flow the calendar console issues for service
// accounts. The token is cached for its lifetime minus a safety margin.
type authRequest struct {
	configuration Configuration
	logger        *zerolog.Logger
	cache         *caching.Cacher
}

type AuthResponse struct {
	ProviderRequests *schema.ProviderRequests
	Token            *string
}

func (a *authRequest) Execute(httpTransport *http.Transport) (AuthResponse, error) {
	authResponse := AuthResponse{}

	requestsBucket := schema.NewProviderRequestsBucket()
	authResponse.ProviderRequests = requestsBucket.ProviderRequests()

	ctx := context.WithValue(context.Background(), schema.RequestingTypeKey, schema.Auth)

	var cachedAccessToken string
	ok := a.cache.Fetch(ctx, a.getCacheKey(), &cachedAccessToken)
	if ok {
		authResponse.Token = &cachedAccessToken

		return authResponse, nil
	}

	assertion, err := a.signedAssertion()
	if err != nil {
		return authResponse, schema.NewError(schema.ProviderAuthError, "failed to sign service account assertion", err)
	}

	client := &http.Client{
		Timeout: time.Duration(a.configuration.TimeoutMs) * time.Millisecond,
		Transport: &requesting.InterceptorTransport{
			Transport: httpTransport,
			Middlewares: []requesting.TransportMiddleware{
				requesting.NewLoggingTransportMiddleware(a.logger),
				requesting.NewBucketTransportMiddleware(&requestsBucket),
			},
		},
	}

	rawResponse, rawErr := a.makeRequest(ctx, client, assertion)
	response, e := requesting.RequestErrors(schema.ProviderAuthError, rawResponse, rawErr)
	if e != nil {
		return authResponse, e
	}

	bodyBytes, _ := io.ReadAll(response.Body)
	response.Body.Close()

	var tokenResponse json.TokenRS
	jsonErr := jsonEncoding.Unmarshal(bodyBytes, &tokenResponse)
	if jsonErr != nil {
		return authResponse, schema.NewError(schema.ProviderAuthError, "failed to decode token response", jsonErr)
	}

	if tokenResponse.AccessToken == "" {
		return authResponse, schema.NewError(schema.ProviderAuthError, "token response carried no access token", nil)
	}

	authResponse.Token = &tokenResponse.AccessToken

	ttl := time.Duration(tokenResponse.ExpiresIn-60) * time.Second
	if ttl > 0 {
		err := a.cache.Store(ctx, a.getCacheKey(), tokenResponse.AccessToken, ttl)
		if err != nil {
			return authResponse, err
		}
	}

	return authResponse, nil
}

func (a *authRequest) signedAssertion() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(a.configuration.PrivateKey))
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss":   a.configuration.ServiceAccountEmail,
		"scope": calendarScope,
		"aud":   a.configuration.TokenURL,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
}

func (a *authRequest) makeRequest(ctx context.Context, client *http.Client, assertion string) (*http.Response, error) {
	body := strings.NewReader(a.requestBody(assertion))

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, a.configuration.TokenURL, body)
	if err != nil {
		return nil, err
	}

	httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	return client.Do(httpRequest)
}

func (a *authRequest) requestBody(assertion string) string {
	data := url.Values{}
	data.Set("grant_type", "urn:ietf:params:oauth:grant-type:jwt-bearer")
	data.Set("assertion", assertion)

	return data.Encode()
}

func (a *authRequest) getCacheKey() string {
	return fmt.Sprintf("googlecal-access-token:%s-%s", a.configuration.TokenURL, a.configuration.ServiceAccountEmail)
}
