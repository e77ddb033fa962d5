package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"brokerage-dashboard-service/internal/availability"
	"brokerage-dashboard-service/internal/brokerage"
	"brokerage-dashboard-service/internal/bulkbill"
	"brokerage-dashboard-service/internal/bulkops"
	"brokerage-dashboard-service/internal/config"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type Handler struct {
	Logger       *zap.Logger
	Config       config.Config
	Brokerage    brokerage.API
	Sessions     bulkops.Store
	Downloader   *bulkbill.Downloader
	Availability *availability.Checker
}

var errMissingParam = errors.New("missing param")

func readPathString(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func readPathInt64(r *http.Request, key string) (int64, error) {
	value := readPathString(r, key)
	if value == "" {
		return 0, errMissingParam
	}
	var out int64
	_, err := fmt.Sscan(value, &out)
	return out, err
}

func zapError(err error) zap.Field {
	return zap.Error(err)
}
