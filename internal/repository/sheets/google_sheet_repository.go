package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"gestock/internal/config"
)

// Mirror defines the cloud-mirror operations supported by the Google Sheets adapter.
type Mirror interface {
	ReplaceSheet(ctx context.Context, sheetName string, rows [][]interface{}) error
	ReadSheet(ctx context.Context, sheetName string) ([][]interface{}, error)
}

// GoogleSheetMirror implements Mirror using the official Google Sheets API.
type GoogleSheetMirror struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetMirror builds a Google Sheets backed mirror instance.
func NewGoogleSheetMirror(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (Mirror, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetMirror{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// ReplaceSheet clears the named worksheet (creating it when missing) and
// rewrites it with the provided rows, header included.
func (m *GoogleSheetMirror) ReplaceSheet(ctx context.Context, sheetName string, rows [][]interface{}) error {
	if sheetName == "" {
		return fmt.Errorf("sheetName must not be empty")
	}

	if err := m.ensureSheet(ctx, sheetName); err != nil {
		return err
	}

	clearCall := m.service.Spreadsheets.Values.Clear(m.spreadsheetID, sheetName, &sheetsapi.ClearValuesRequest{}).Context(ctx)
	if _, err := clearCall.Do(); err != nil {
		return fmt.Errorf("clear sheet %s: %w", sheetName, err)
	}

	payload := &sheetsapi.ValueRange{Values: rows}
	updateCall := m.service.Spreadsheets.Values.Update(m.spreadsheetID, sheetName+"!A1", payload).
		ValueInputOption("USER_ENTERED").
		Context(ctx)

	if _, err := updateCall.Do(); err != nil {
		return fmt.Errorf("update sheet %s: %w", sheetName, err)
	}

	m.logger.Debug("sheet replaced", zap.String("sheet", sheetName), zap.Int("rows", len(rows)))
	return nil
}

// ReadSheet fetches every populated row of the named worksheet.
func (m *GoogleSheetMirror) ReadSheet(ctx context.Context, sheetName string) ([][]interface{}, error) {
	if sheetName == "" {
		return nil, fmt.Errorf("sheetName must not be empty")
	}

	resp, err := m.service.Spreadsheets.Values.Get(m.spreadsheetID, sheetName).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}

	return resp.Values, nil
}

func (m *GoogleSheetMirror) ensureSheet(ctx context.Context, sheetName string) error {
	spreadsheet, err := m.service.Spreadsheets.Get(m.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("get spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == sheetName {
			return nil
		}
	}

	req := &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: sheetName},
			},
		}},
	}
	if _, err := m.service.Spreadsheets.BatchUpdate(m.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheetName, err)
	}

	m.logger.Info("worksheet created", zap.String("sheet", sheetName))
	return nil
}
