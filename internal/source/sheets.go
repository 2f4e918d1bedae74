package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"sales-dashboard/internal/models"
)

const (
	tokenEndpoint  = "https://oauth2.googleapis.com/token"
	sheetsEndpoint = "https://sheets.googleapis.com/v4/spreadsheets"

	// Refresh slightly before the advertised expiry to avoid racing it.
	tokenExpirySlack = 30 * time.Second
)

// SheetsConfig holds the OAuth and spreadsheet coordinates for the
// Google Sheets API.
type SheetsConfig struct {
	ClientID      string
	ClientSecret  string
	RefreshToken  string
	SpreadsheetID string
	SheetName     string
}

// SheetsSource fetches the sales sheet through the Google Sheets values
// API, refreshing its access token from the configured refresh token as
// needed. The token cache is in-process only.
type SheetsSource struct {
	cfg        SheetsConfig
	httpClient *http.Client
	logger     *slog.Logger

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time
}

func NewSheetsSource(cfg SheetsConfig, logger *slog.Logger) *SheetsSource {
	return &SheetsSource{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (s *SheetsSource) Fetch(ctx context.Context) ([]models.SalesRecord, error) {
	token, err := s.token(ctx)
	if err != nil {
		return nil, fmt.Errorf("access token: %w", err)
	}

	rangeRef := url.PathEscape(fmt.Sprintf("%s!A:Z", s.cfg.SheetName))
	endpoint := fmt.Sprintf("%s/%s/values/%s", sheetsEndpoint, s.cfg.SpreadsheetID, rangeRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch values: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("sheets API returned status %d", resp.StatusCode)
	}

	var payload struct {
		Values [][]string `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode values: %w", err)
	}
	if len(payload.Values) <= 1 {
		return nil, nil
	}

	index := headerIndex(payload.Values[0])
	records := make([]models.SalesRecord, 0, len(payload.Values)-1)
	for _, row := range payload.Values[1:] {
		if emptyRow(row) {
			continue
		}
		record := recordFromRow(row, index)
		enrichRecord(&record)
		records = append(records, record)
	}

	s.logger.Info("sheet fetch complete",
		"spreadsheet_id", s.cfg.SpreadsheetID,
		"records", len(records),
	)
	return records, nil
}

func (s *SheetsSource) token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accessToken != "" && time.Now().Before(s.expiresAt.Add(-tokenExpirySlack)) {
		return s.accessToken, nil
	}

	form := url.Values{}
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)
	form.Set("refresh_token", s.cfg.RefreshToken)
	form.Set("grant_type", "refresh_token")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("refresh token: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token endpoint returned status %d", resp.StatusCode)
	}

	var tokenData struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenData); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if tokenData.AccessToken == "" {
		return "", fmt.Errorf("token endpoint returned no access token")
	}

	s.accessToken = tokenData.AccessToken
	s.expiresAt = time.Now().Add(time.Duration(tokenData.ExpiresIn) * time.Second)
	s.logger.Debug("access token refreshed", "expires_at", s.expiresAt)

	return s.accessToken, nil
}
