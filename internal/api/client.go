// Package api is the HTTP client for the 30-60-90 inventory intelligence
// gateway. Every call is scoped to one dealership via the X-Dealership-Id
// header; responses are decoded as-is with no client-side validation beyond
// what JSON decoding enforces.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Client struct {
	baseURL      string
	dealershipID int
	httpClient   *http.Client
}

func NewClient(baseURL string, dealershipID int) *Client {
	return &Client{
		baseURL:      baseURL,
		dealershipID: dealershipID,
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// StatusError is returned for any non-2xx gateway response.
type StatusError struct {
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("API returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("API returned %d", e.StatusCode)
}

// IsNotFound reports whether err is a gateway 404. The orchestrator uses it
// to tell "no data exists yet" apart from transport failures.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}

// Internal helpers

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body io.Reader, contentType string, target any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	req.Header.Set("X-Dealership-Id", strconv.Itoa(c.dealershipID))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&apiErr)
		return &StatusError{StatusCode: resp.StatusCode, Detail: apiErr.Detail}
	}
	if target == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(target)
}

func (c *Client) get(ctx context.Context, path string, params url.Values, target any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, "", target)
}

func (c *Client) post(ctx context.Context, path string, params url.Values, payload, target any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(buf)
		contentType = "application/json"
	}
	return c.do(ctx, http.MethodPost, path, params, body, contentType, target)
}

func (c *Client) put(ctx context.Context, path string, payload, target any) error {
	buf, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, nil, bytes.NewReader(buf), "application/json", target)
}

// Vehicles

func (c *Client) ListVehicles(ctx context.Context, status string) ([]Vehicle, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	var out []Vehicle
	return out, c.get(ctx, "/api/vehicles", params, &out)
}

func (c *Client) GetVehicle(ctx context.Context, vehicleID int) (Vehicle, error) {
	var out Vehicle
	return out, c.get(ctx, fmt.Sprintf("/api/vehicles/%d", vehicleID), nil, &out)
}

func (c *Client) UpdateVehicle(ctx context.Context, vehicleID int, update VehicleUpdate) (Vehicle, error) {
	var out Vehicle
	return out, c.put(ctx, fmt.Sprintf("/api/vehicles/%d", vehicleID), update, &out)
}

func (c *Client) CreateVehicleFromVIN(ctx context.Context, req VINAddRequest) (Vehicle, error) {
	var out Vehicle
	return out, c.post(ctx, "/api/vehicles/from-vin", nil, req, &out)
}

func (c *Client) ListInsights(ctx context.Context, status string) ([]VehicleInsight, error) {
	params := url.Values{"status": {status}}
	var out []VehicleInsight
	return out, c.get(ctx, "/api/vehicles/insights", params, &out)
}

// Analysis

func (c *Client) AnalyzeVehicle(ctx context.Context, vehicleID int) (AnalysisReport, error) {
	var out AnalysisReport
	return out, c.post(ctx, fmt.Sprintf("/api/vehicles/%d/analyze", vehicleID), nil, nil, &out)
}

func (c *Client) GetCurve(ctx context.Context, vehicleID, days int) (CurveResponse, error) {
	params := url.Values{"days": {strconv.Itoa(days)}}
	var out CurveResponse
	return out, c.get(ctx, fmt.Sprintf("/api/vehicles/%d/curve", vehicleID), params, &out)
}

func (c *Client) AnalyzeAll(ctx context.Context) (MessageResponse, error) {
	var out MessageResponse
	return out, c.post(ctx, "/api/vehicles/analyze-all", nil, nil, &out)
}

// Comps

func (c *Client) RefreshComps(ctx context.Context, vehicleID int) (MessageResponse, error) {
	var out MessageResponse
	return out, c.post(ctx, fmt.Sprintf("/api/vehicles/%d/comps/refresh", vehicleID), nil, nil, &out)
}

func (c *Client) RefreshAllComps(ctx context.Context) (MessageResponse, error) {
	var out MessageResponse
	return out, c.post(ctx, "/api/vehicles/refresh-all-comps", nil, nil, &out)
}

func (c *Client) ListComps(ctx context.Context, vehicleID int, source string) ([]Comp, error) {
	params := url.Values{}
	if source != "" {
		params.Set("source", source)
	}
	var out []Comp
	return out, c.get(ctx, fmt.Sprintf("/api/vehicles/%d/comps", vehicleID), params, &out)
}

func (c *Client) GetCompSummary(ctx context.Context, vehicleID int) (CompSummary, error) {
	var out CompSummary
	return out, c.get(ctx, fmt.Sprintf("/api/vehicles/%d/comps/summary", vehicleID), nil, &out)
}

func (c *Client) AddManualComp(ctx context.Context, vehicleID int, comp CompManualAdd) (Comp, error) {
	var out Comp
	return out, c.post(ctx, fmt.Sprintf("/api/vehicles/%d/comps/manual", vehicleID), nil, comp, &out)
}

// UploadCompsCSV sends a CSV of manual comps as a multipart form, matching
// the gateway's upload endpoint.
func (c *Client) UploadCompsCSV(ctx context.Context, vehicleID int, filename string, csv io.Reader) (MessageResponse, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return MessageResponse{}, err
	}
	if _, err := io.Copy(part, csv); err != nil {
		return MessageResponse{}, err
	}
	if err := mw.Close(); err != nil {
		return MessageResponse{}, err
	}

	var out MessageResponse
	err = c.do(ctx, http.MethodPost, fmt.Sprintf("/api/vehicles/%d/comps/upload", vehicleID), nil, &buf, mw.FormDataContentType(), &out)
	return out, err
}

// Signals

func (c *Client) GetSignals(ctx context.Context, vehicleID int) (Signals, error) {
	var out Signals
	return out, c.get(ctx, fmt.Sprintf("/api/vehicles/%d/signals", vehicleID), nil, &out)
}

func (c *Client) UpdateSignals(ctx context.Context, vehicleID int, update SignalsUpdate) (Signals, error) {
	var out Signals
	return out, c.put(ctx, fmt.Sprintf("/api/vehicles/%d/signals", vehicleID), update, &out)
}

// Pricing waterfall

func (c *Client) GetWaterfallPlan(ctx context.Context, vehicleID int) (WaterfallPlan, error) {
	var out WaterfallPlan
	return out, c.post(ctx, fmt.Sprintf("/api/vehicles/%d/pricing-waterfall/plan", vehicleID), nil, nil, &out)
}

func (c *Client) ApplyWaterfallStep(ctx context.Context, vehicleID, step int) (Vehicle, error) {
	params := url.Values{"step": {strconv.Itoa(step)}}
	var out Vehicle
	return out, c.post(ctx, fmt.Sprintf("/api/vehicles/%d/pricing-waterfall/apply", vehicleID), params, nil, &out)
}

// Price events

func (c *Client) GetPriceEvents(ctx context.Context, vehicleID int) ([]PriceEvent, error) {
	var out []PriceEvent
	return out, c.get(ctx, fmt.Sprintf("/api/vehicles/%d/price-events", vehicleID), nil, &out)
}

func (c *Client) GetAllPriceEvents(ctx context.Context, limit int) ([]PriceEvent, error) {
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	var out []PriceEvent
	return out, c.get(ctx, "/api/price-events", params, &out)
}

// Alarms

func (c *Client) RunAlarm(ctx context.Context) (Alarm, error) {
	var out Alarm
	return out, c.post(ctx, "/api/alarms/run", nil, nil, &out)
}

func (c *Client) GetLatestAlarm(ctx context.Context) (Alarm, error) {
	var out Alarm
	return out, c.get(ctx, "/api/alarms/latest", nil, &out)
}

func (c *Client) GetAlarmHistory(ctx context.Context, limit int) ([]Alarm, error) {
	params := url.Values{"limit": {strconv.Itoa(limit)}}
	var out []Alarm
	return out, c.get(ctx, "/api/alarms/history", params, &out)
}
