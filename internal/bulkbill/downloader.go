// Package bulkbill orchestrates bulk brokerage-bill downloads: one validated,
// single-slot call per archive, with the outcome always returned as a Result
// value rather than an error.
package bulkbill

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"brokerage-dashboard-service/internal/brokerage"

	"go.uber.org/zap"
)

const (
	FormatHTML  = "html"
	FormatExcel = "excel"

	ContentType = "application/zip"

	MsgNoUsersSelected    = "Please select at least one user"
	MsgDownloadInProgress = "A bulk bill download is already in progress"
	MsgGenericFailure     = "Failed to download bills. Please try again."
)

// Archive is one downloaded bill bundle, consumed exactly once.
type Archive struct {
	Filename string
	Data     []byte
}

// Result is what callers get back in every case; Download never returns an
// error value, so calling code needs no recovery path of its own.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Downloader allows a single bulk download in flight at a time. Loading and
// error state are observable the same way the dashboard consumes them.
type Downloader struct {
	api brokerage.API
	log *zap.Logger

	mu       sync.Mutex
	inFlight bool
	lastErr  string
}

func NewDownloader(api brokerage.API, log *zap.Logger) *Downloader {
	return &Downloader{api: api, log: log}
}

// NormalizeFormat collapses any unrecognized format string to excel; html is
// the only other supported path.
func NormalizeFormat(format string) string {
	if strings.EqualFold(strings.TrimSpace(format), FormatHTML) {
		return FormatHTML
	}
	return FormatExcel
}

// Filename follows the dashboard's download naming:
// bulk-bills-{format}-FY{financialYearId}.zip
func Filename(format string, financialYearID int64) string {
	return fmt.Sprintf("bulk-bills-%s-FY%d.zip", NormalizeFormat(format), financialYearID)
}

// Download runs strictly in sequence: validate, mark in flight, fetch the
// blob, name it, build the result, clear the in-flight flag. An empty
// selection fails before any network call; a concurrent call is rejected
// while one is running.
func (d *Downloader) Download(ctx context.Context, userIDs []int64, financialYearID int64, format string) (*Archive, Result) {
	if len(userIDs) == 0 {
		d.setError(MsgNoUsersSelected)
		return nil, Result{Success: false, Error: MsgNoUsersSelected}
	}

	if !d.acquire() {
		return nil, Result{Success: false, Error: MsgDownloadInProgress}
	}
	defer d.release()

	format = NormalizeFormat(format)

	var blob []byte
	var err error
	if format == FormatHTML {
		blob, err = d.api.DownloadHTMLBills(ctx, userIDs, financialYearID)
	} else {
		blob, err = d.api.DownloadExcelBills(ctx, userIDs, financialYearID)
	}
	if err != nil {
		message := strings.TrimSpace(err.Error())
		if message == "" {
			message = MsgGenericFailure
		}
		d.log.Warn("bulk bill download failed",
			zap.Int64("financialYearId", financialYearID),
			zap.String("format", format),
			zap.Int("users", len(userIDs)),
			zap.Error(err))
		d.setError(message)
		return nil, Result{Success: false, Error: message}
	}

	archive := &Archive{
		Filename: Filename(format, financialYearID),
		Data:     blob,
	}
	d.log.Info("bulk bills downloaded",
		zap.Int64("financialYearId", financialYearID),
		zap.String("format", format),
		zap.Int("users", len(userIDs)),
		zap.Int("bytes", len(blob)))

	return archive, Result{
		Success: true,
		Message: fmt.Sprintf("Successfully downloaded %d %s bills!", len(userIDs), strings.ToUpper(format)),
	}
}

// Status reports the loading flag and the last stored error message.
func (d *Downloader) Status() (inFlight bool, lastErr string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inFlight, d.lastErr
}

// ClearError resets the error state; the in-flight flag is untouched.
func (d *Downloader) ClearError() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastErr = ""
}

func (d *Downloader) acquire() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inFlight {
		return false
	}
	d.inFlight = true
	d.lastErr = ""
	return true
}

func (d *Downloader) release() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inFlight = false
}

func (d *Downloader) setError(message string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.lastErr = message
}
