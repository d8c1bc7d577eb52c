package sheets

import "errors"

// Retrieval failures. Callers match them with errors.Is.
var (
	ErrMissingCredentials = errors.New("sheets: api key and spreadsheet id are required")
	ErrAccessDenied       = errors.New("sheets: access denied; check the api key, that the Sheets API is enabled, and that the spreadsheet is shared for viewing")
	ErrSheetNotFound      = errors.New("sheets: spreadsheet or tab not found")
	ErrBadRange           = errors.New("sheets: bad request; check the tab name and range")
	ErrEmptySheet         = errors.New("sheets: no data rows in range")
	ErrFetch              = errors.New("sheets: fetch failed")
)
