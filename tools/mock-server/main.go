// Package main implements a mock listing provider and remote valuation
// service for local development. Listings are served from a JSON fixture so
// the valuator can run its market path without a real provider.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"
)

type listing map[string]any

type searchResponse struct {
	Listings []listing `json:"listings"`
	Total    int       `json:"total"`
}

type remoteRequest struct {
	Vehicle struct {
		Year  int    `json:"year"`
		Make  string `json:"make"`
		Model string `json:"model"`
	} `json:"vehicle"`
	Mileage *int `json:"mileage"`
}

type priceRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type remoteResponse struct {
	EstimatedValue float64    `json:"estimated_value"`
	Confidence     int        `json:"confidence"`
	PriceRange     priceRange `json:"price_range"`
	Explanation    string     `json:"explanation"`
	ListingCount   int        `json:"listing_count"`
}

const yearWindow = 2

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/listings.json", "path to listings fixture")
	remoteFail := flag.Bool("remote-fail", false, "make the remote valuation endpoint return 503")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "listings", len(fixture))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /listings/search", searchHandler(logger, fixture))
	mux.HandleFunc("POST /remote/valuations", remoteHandler(logger, fixture, *remoteFail))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock provider", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) ([]listing, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var out []listing
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return out, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// match returns fixture listings for make and model within yearWindow of
// year. A zero year matches every year.
func match(fixture []listing, mk, model string, year int) []listing {
	out := []listing{}
	for _, l := range fixture {
		if !strings.EqualFold(str(l["make"]), mk) || !strings.EqualFold(str(l["model"]), model) {
			continue
		}
		if year != 0 {
			y, _ := l["year"].(float64)
			if math.Abs(y-float64(year)) > yearWindow {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}

func searchHandler(logger *slog.Logger, fixture []listing) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		year, _ := strconv.Atoi(q.Get("year"))
		matched := match(fixture, q.Get("make"), q.Get("model"), year)

		writeJSON(w, http.StatusOK, searchResponse{Listings: matched, Total: len(matched)})
		logger.Info("search",
			"make", q.Get("make"),
			"model", q.Get("model"),
			"year", year,
			"matched", len(matched),
		)
	}
}

func remoteHandler(logger *slog.Logger, fixture []listing, fail bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fail {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "remote unavailable"})
			logger.Warn("remote valuation failed on purpose")
			return
		}

		var req remoteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		matched := match(fixture, req.Vehicle.Make, req.Vehicle.Model, req.Vehicle.Year)
		if len(matched) == 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no comparable listings"})
			return
		}

		prices := make([]float64, 0, len(matched))
		for _, l := range matched {
			if p, ok := l["price"].(float64); ok {
				prices = append(prices, p)
			}
		}
		slices.Sort(prices)
		median := prices[len(prices)/2]

		writeJSON(w, http.StatusOK, remoteResponse{
			EstimatedValue: median,
			Confidence:     min(40+5*len(prices), 95),
			PriceRange:     priceRange{Low: prices[0], High: prices[len(prices)-1]},
			Explanation:    fmt.Sprintf("Median of %d mock listings.", len(prices)),
			ListingCount:   len(prices),
		})
		logger.Info("remote valuation",
			"correlation_id", r.Header.Get("X-Correlation-ID"),
			"make", req.Vehicle.Make,
			"model", req.Vehicle.Model,
			"value", median,
		)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
