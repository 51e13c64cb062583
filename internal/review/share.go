package review

import (
	"context"
	"net/url"

	"github.com/izus-fokus/easyReview/internal/model"
	"github.com/izus-fokus/easyReview/internal/token"
)

// Query parameter names understood by the review entry point.
const (
	ParamToken      = "token"
	ParamSiteURL    = "siteUrl"
	ParamDatasetPID = "datasetPid"
	ParamAPIToken   = "apiToken"
)

// ShareLinks builds and resolves the compact review links a reviewer passes
// around. A link either carries an obfuscated review id in the token
// parameter or the raw resolution triple (site URL, dataset PID, API token).
type ShareLinks struct {
	codec   *token.Codec
	gateway Gateway
}

func NewShareLinks(codec *token.Codec, gw Gateway) *ShareLinks {
	return &ShareLinks{codec: codec, gateway: gw}
}

// BuildURL returns baseURL with the encoded review id attached as the token
// parameter.
func (s *ShareLinks) BuildURL(baseURL, reviewID string) (string, error) {
	tok, err := s.codec.Encode(reviewID)
	if err != nil {
		return "", err
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	query := parsed.Query()
	query.Set(ParamToken, tok)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// Resolve turns the entry-point query values into a dataset. A token
// parameter wins; without one the dataset is resolved (and created if
// needed) from siteUrl, datasetPid and apiToken.
func (s *ShareLinks) Resolve(ctx context.Context, query url.Values) (model.Dataset, error) {
	if tok := query.Get(ParamToken); tok != "" {
		reviewID, err := s.codec.Decode(tok)
		if err != nil {
			return model.Dataset{}, err
		}
		dataset, err := s.gateway.GetReview(ctx, reviewID)
		if err != nil {
			return model.Dataset{}, &DatasetFetchFailed{Identifier: reviewID, StatusText: statusText(err)}
		}
		return dataset, nil
	}

	siteURL := query.Get(ParamSiteURL)
	doi := query.Get(ParamDatasetPID)
	dataset, err := s.gateway.FetchReview(ctx, siteURL, doi, query.Get(ParamAPIToken))
	if err != nil {
		return model.Dataset{}, &DatasetFetchFailed{Identifier: doi, StatusText: statusText(err)}
	}
	return dataset, nil
}
