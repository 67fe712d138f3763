// Package erp pulls employee office assignments and holiday calendars from
// the ERP's HTTP API into the local store. Syncs are gated on a content hash
// so unchanged payloads are not re-applied.
package erp

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"worktime-control/internal/errors"
)

// Employee is one ERP employee row with their office assignment.
type Employee struct {
	UserID        int64  `json:"user_id"`
	Login         string `json:"login"`
	OfficeID      int64  `json:"office_id"`
	CorporationID int64  `json:"corporation_id"`
	TimeZone      string `json:"time_zone"`
}

// HolidayEntry is one ERP holiday calendar row.
type HolidayEntry struct {
	OfficeID int64  `json:"office_id"`
	Date     string `json:"date"` // YYYY-MM-DD
	DayType  string `json:"day_type"`
}

// employeesResponse is the envelope of the employees endpoint.
type employeesResponse struct {
	Employees []Employee `json:"employees"`
}

// holidaysResponse is the envelope of the holidays endpoint.
type holidaysResponse struct {
	Holidays []HolidayEntry `json:"holidays"`
}

// Client calls the ERP HTTP API.
type Client struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewClient creates an ERP API client authenticated by a bearer token.
func NewClient(baseURL, apiToken string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiToken)

	return &Client{
		httpClient: client,
		logger:     logger,
	}
}

// FetchEmployees retrieves every employee with an office assignment.
func (c *Client) FetchEmployees(ctx context.Context) ([]Employee, error) {
	var response employeesResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&response).
		Get("/api/v1/employees")

	if err != nil {
		return nil, errors.NewExternalError("erp", "fetch employees", err)
	}
	if resp.IsError() {
		c.logger.Error("ERP employees request rejected",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, errors.NewExternalError("erp", "fetch employees",
			fmt.Errorf("unexpected response status %s", resp.Status()))
	}

	c.logger.Info("Fetched employees from ERP",
		zap.Int("employee_count", len(response.Employees)),
	)

	return response.Employees, nil
}

// FetchHolidays retrieves the holiday calendar for the given year.
func (c *Client) FetchHolidays(ctx context.Context, year int) ([]HolidayEntry, error) {
	var response holidaysResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&response).
		SetQueryParam("year", strconv.Itoa(year)).
		Get("/api/v1/holidays")

	if err != nil {
		return nil, errors.NewExternalError("erp", "fetch holidays", err)
	}
	if resp.IsError() {
		c.logger.Error("ERP holidays request rejected",
			zap.Int("status_code", resp.StatusCode()),
		)
		return nil, errors.NewExternalError("erp", "fetch holidays",
			fmt.Errorf("unexpected response status %s", resp.Status()))
	}

	c.logger.Info("Fetched holidays from ERP",
		zap.Int("year", year),
		zap.Int("holiday_count", len(response.Holidays)),
	)

	return response.Holidays, nil
}
