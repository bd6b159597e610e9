package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"time"

	"currency-converter-service/internal/domain/model"
	"currency-converter-service/pkg/logger"
	"currency-converter-service/pkg/utils"
)

// OpenERAPI talks to the open.er-api.com v6 endpoints. Latest rates live
// at /latest/{BASE}, historical rates at /{YYYY-MM-DD}/{BASE}. The
// response carries its own result field which is authoritative even when
// the transport status is 200.
type OpenERAPI struct {
	baseURL    string
	httpClient *http.Client
	log        *logger.Logger
}

type openERAPIResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

func NewOpenERAPI(baseURL string, timeout time.Duration, log *logger.Logger) *OpenERAPI {
	return &OpenERAPI{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

func (c *OpenERAPI) FetchLatest(ctx context.Context, base model.Currency) (*model.RateSnapshot, error) {
	if !base.IsValid() {
		return nil, fmt.Errorf("invalid base currency code %q", base)
	}

	url := fmt.Sprintf("%s/latest/%s", c.baseURL, base)
	return c.fetch(ctx, url, base)
}

func (c *OpenERAPI) FetchHistorical(ctx context.Context, base model.Currency, date time.Time) (*model.RateSnapshot, error) {
	if !base.IsValid() {
		return nil, fmt.Errorf("invalid base currency code %q", base)
	}
	if date.After(utils.Today()) {
		return nil, fmt.Errorf("historical date %s is in the future", utils.FormatDate(date))
	}

	url := fmt.Sprintf("%s/%s/%s", c.baseURL, utils.FormatDate(date), base)
	return c.fetch(ctx, url, base)
}

// fetch performs exactly one request and either returns a fully
// normalized snapshot or an error from the fetch taxonomy, never a
// partially parsed result.
func (c *OpenERAPI) fetch(ctx context.Context, url string, base model.Currency) (*model.RateSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", model.ErrUnreachable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", model.ErrUnreachable, resp.StatusCode)
	}

	var apiResp openERAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}

	if apiResp.Result != "success" {
		return nil, fmt.Errorf("%w: result %q", model.ErrUpstreamRejected, apiResp.Result)
	}

	if len(apiResp.Rates) == 0 {
		return nil, fmt.Errorf("%w: empty rates mapping", model.ErrMalformedResponse)
	}

	return c.normalize(base, apiResp.Rates), nil
}

// normalize converts raw quotes into a snapshot, dropping non-positive
// and non-finite entries so the rates-above-zero invariant holds.
func (c *OpenERAPI) normalize(base model.Currency, raw map[string]float64) *model.RateSnapshot {
	rates := make(map[model.Currency]float64, len(raw))
	for code, rate := range raw {
		if rate <= 0 || math.IsInf(rate, 0) || math.IsNaN(rate) {
			c.log.Debug("Dropping unusable rate", "base", base, "target", code, "rate", rate)
			continue
		}
		rates[model.Currency(code)] = rate
	}

	return &model.RateSnapshot{
		Base:  base,
		Rates: rates,
	}
}
