// SPDX-License-Identifier: MIT

package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/tsdist"
	"github.com/katalvlaran/tsdist/cache"
	"github.com/katalvlaran/tsdist/distances"
	"github.com/katalvlaran/tsdist/features"
	"github.com/katalvlaran/tsdist/ffi"
	"github.com/katalvlaran/tsdist/matrix"
)

var (
	errNotFound    = errors.New("not found")
	errRateLimited = errors.New("rate limit exceeded")
	errBadBody     = fmt.Errorf("%w: malformed request body", tsdist.ErrInvalidParameter)
)

// DistanceRequest is the body of POST /v1/distances/{metric}. Missing params
// fields keep their catalog defaults; Parallel and Device default to the
// server configuration.
type DistanceRequest struct {
	X1        [][]float64      `json:"x1"`
	X2        [][]float64      `json:"x2,omitempty"`
	Params    distances.Params `json:"params"`
	Device    string           `json:"device,omitempty"`
	Parallel  *bool            `json:"parallel,omitempty"`
	Extractor string           `json:"extractor,omitempty"`
}

// Matrix is a JSON-safe distance matrix; non-finite values are null.
type Matrix struct {
	Rows int          `json:"rows"`
	Cols int          `json:"cols"`
	Data [][]*float64 `json:"data"`
}

// DistanceResponse is the reply of POST /v1/distances/{metric}.
type DistanceResponse struct {
	Metric    string `json:"metric"`
	RequestID string `json:"request_id"`
	Cached    bool   `json:"cached"`
	Matrix
}

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Error     string   `json:"error"`
	Code      ffi.Code `json:"code"`
	RequestID string   `json:"request_id,omitempty"`
}

func (s *Server) handleDistances(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["metric"]
	status, err := s.serveDistances(w, r, name)
	if err != nil {
		writeError(w, r, status, err)
		if status >= http.StatusInternalServerError {
			s.logger.Error().Err(err).Str("request_id", RequestID(r.Context())).Str("metric", name).Msg("distance request failed")
		}
	}
	if s.metrics != nil {
		label := "unknown"
		if info, err := distances.Lookup(name); err == nil {
			label = string(info.Name)
		}
		s.metrics.Request(label, status)
	}
}

// serveDistances writes a successful reply itself and returns the status
// plus the error to report otherwise.
func (s *Server) serveDistances(w http.ResponseWriter, r *http.Request, name string) (int, error) {
	info, err := distances.Lookup(name)
	if err != nil {
		return http.StatusNotFound, err
	}

	req := DistanceRequest{Params: distances.DefaultParams(), Device: s.cfg.Compute.Device}
	body := http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return http.StatusRequestEntityTooLarge, fmt.Errorf("%w: %v", errBadBody, err)
		}

		return http.StatusBadRequest, fmt.Errorf("%w: %v", errBadBody, err)
	}

	opts, err := s.options(r, req)
	if err != nil {
		return statusOf(err), err
	}

	key := ""
	if s.cache != nil {
		key = requestKey(string(info.Name), req)
		if m, ok := s.cached(r, key); ok {
			writeJSON(w, http.StatusOK, DistanceResponse{Metric: string(info.Name), RequestID: RequestID(r.Context()), Cached: true, Matrix: m})

			return http.StatusOK, nil
		}
	}

	d, err := distances.Run(string(info.Name), req.X1, req.X2, req.Params, opts...)
	if err != nil {
		return statusOf(err), err
	}
	m := toMatrix(d)
	if s.cache != nil {
		s.store(r, key, m)
	}
	writeJSON(w, http.StatusOK, DistanceResponse{Metric: string(info.Name), RequestID: RequestID(r.Context()), Matrix: m})

	return http.StatusOK, nil
}

func (s *Server) options(r *http.Request, req DistanceRequest) ([]distances.Option, error) {
	parallel := s.cfg.Compute.Parallel
	if req.Parallel != nil {
		parallel = *req.Parallel
	}
	opts := []distances.Option{
		distances.WithContext(r.Context()),
		distances.WithParallel(parallel),
		distances.WithWorkers(s.cfg.Compute.Workers),
		distances.WithDevice(req.Device),
		distances.WithLogger(s.logger),
	}
	if s.metrics != nil {
		opts = append(opts, distances.WithObserver(s.metrics))
	}
	if s.dispatcher != nil {
		opts = append(opts, distances.WithDispatcher(s.dispatcher))
	}
	if req.Extractor != "" {
		ex, err := features.Lookup(req.Extractor)
		if err != nil {
			return nil, err
		}
		opts = append(opts, distances.WithExtractor(ex))
	}

	return opts, nil
}

// requestKey digests everything that influences the result.
func requestKey(metric string, req DistanceRequest) string {
	meta, _ := json.Marshal(struct {
		Params    distances.Params `json:"params"`
		Device    string           `json:"device"`
		Extractor string           `json:"extractor"`
	}{req.Params, req.Device, req.Extractor})

	return cache.Key(metric, meta, req.X1, req.X2)
}

func (s *Server) cached(r *http.Request, key string) (Matrix, bool) {
	raw, ok, err := s.cache.Get(r.Context(), key)
	if err != nil {
		s.logger.Warn().Err(err).Msg("result cache read failed")
	}
	var m Matrix
	if ok && err == nil {
		if err = json.Unmarshal(raw, &m); err == nil {
			if s.metrics != nil {
				s.metrics.CacheHit()
			}

			return m, true
		}
	}
	if s.metrics != nil {
		s.metrics.CacheMiss()
	}

	return Matrix{}, false
}

func (s *Server) store(r *http.Request, key string, m Matrix) {
	raw, err := json.Marshal(m)
	if err == nil {
		err = s.cache.Set(r.Context(), key, raw, s.cfg.Cache.TTL)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("result cache write failed")
	}
}

func (s *Server) handleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, struct {
		Metrics  []distances.Info `json:"metrics"`
		Defaults distances.Params `json:"defaults"`
	}{distances.Metrics(), distances.DefaultParams()})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// toMatrix converts d into its JSON form.
func toMatrix(d *matrix.Dense) Matrix {
	rows := d.ToRows()
	data := make([][]*float64, len(rows))
	for i, row := range rows {
		data[i] = make([]*float64, len(row))
		for j := range row {
			if v := row[j]; !math.IsNaN(v) && !math.IsInf(v, 0) {
				data[i][j] = &v
			}
		}
	}

	return Matrix{Rows: d.Rows(), Cols: d.Cols(), Data: data}
}

// statusOf maps the tsdist error kinds to HTTP statuses.
func statusOf(err error) int {
	switch ffi.CodeOf(err) {
	case ffi.CodeUnknownMetric:
		return http.StatusNotFound
	case ffi.CodeInvalidParameter:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	writeJSON(w, status, ErrorResponse{Error: err.Error(), Code: ffi.CodeOf(err), RequestID: RequestID(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
