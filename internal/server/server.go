// Package server exposes the design pipeline over HTTP. Request bodies are
// YAML or JSON and responses are JSON.
package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/converter-design/internal/batch"
	"github.com/iwvelando/converter-design/pkg/constants"
	"github.com/iwvelando/converter-design/pkg/converter"
	"github.com/iwvelando/converter-design/pkg/output"
	"github.com/iwvelando/converter-design/pkg/validation"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// Saver persists a design result and returns where it went.
type Saver interface {
	Append(res converter.Result) (string, error)
}

type handler struct {
	logger        *zap.Logger
	maxUploadSize int64
	version       string
	saver         Saver
}

// NewHandler constructs the HTTP handler for the design API. A nil saver
// disables ?save=true.
func NewHandler(logger *zap.Logger, maxUploadSize int64, version string, saver Saver) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxUploadSize <= 0 {
		maxUploadSize = constants.DefaultMaxUploadSizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxUploadSize: maxUploadSize, version: trimmedVersion, saver: saver}

	mux := http.NewServeMux()

	// One design per request
	mux.HandleFunc("/api/design", h.handleDesign)

	// A batch document with a designs list
	mux.HandleFunc("/api/batch", h.handleBatch)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

type designResponse struct {
	Name       string             `json:"name,omitempty"`
	Topology   string             `json:"topology"`
	DutyCycle  float64            `json:"dutyCycle"`
	RLoad      float64            `json:"rLoad"`
	IOut       float64            `json:"iOut"`
	Components map[string]float64 `json:"components"`
	ILPeak     float64            `json:"ilPeak"`
	ILB        float64            `json:"ilb"`
	Mode       string             `json:"mode"`
	Advisories []advisory         `json:"advisories,omitempty"`
	LogLine    string             `json:"logLine"`
	SavedTo    string             `json:"savedTo,omitempty"`
	SaveError  string             `json:"saveError,omitempty"`
}

type advisory struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

type rejection struct {
	Name     string   `json:"name,omitempty"`
	Problems []string `json:"problems"`
}

type batchResponse struct {
	Results  []designResponse `json:"results"`
	Rejected []rejection      `json:"rejected,omitempty"`
	CSV      string           `json:"csv"`
	Duration string           `json:"duration"`
}

func buildDesignResponse(name string, res converter.Result) designResponse {
	resp := designResponse{
		Name:      name,
		Topology:  res.Requirement.Topology.String(),
		DutyCycle: res.DutyCycle,
		RLoad:     res.RLoad,
		IOut:      res.IOut,
		ILPeak:    res.ILPeak,
		ILB:       res.ILB,
		Mode:      res.Mode(),
		LogLine:   strings.TrimSuffix(output.LogLine(res), "\n"),
	}
	if res.Requirement.Topology == converter.Cuk {
		resp.Components = map[string]float64{"L1": res.L1, "L2": res.L2, "Co": res.Co, "Cn": res.Cn}
	} else {
		resp.Components = map[string]float64{"L": res.L, "C": res.C}
	}
	for _, a := range res.Advisories {
		resp.Advisories = append(resp.Advisories, advisory{Kind: string(a.Kind), Message: a.Message})
	}
	return resp
}

// readBody reads the request body within the upload limit.
func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("request exceeds limit of %d bytes", h.maxUploadSize)
		}
		return nil, http.StatusBadRequest, fmt.Errorf("failed to read request: %v", err)
	}
	return buf.Bytes(), http.StatusOK, nil
}

// wantSave reads the save query parameter. Anything cast cannot read as a
// boolean means no.
func wantSave(r *http.Request) bool {
	save, err := cast.ToBoolE(r.URL.Query().Get("save"))
	return err == nil && save
}

func (h *handler) save(resp *designResponse, res converter.Result, op string) {
	path, err := h.saver.Append(res)
	if err != nil {
		resp.SaveError = err.Error()
		h.logger.Error("failed to save result",
			zap.String("op", op),
			zap.Error(err),
		)
		return
	}
	resp.SavedTo = path
}

func (h *handler) handleDesign(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleDesign"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	save := wantSave(r)
	if save && h.saver == nil {
		h.respondError(w, http.StatusBadRequest, "saving is not enabled", op)
		return
	}

	data, status, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}

	entry, err := batch.ParseEntry(data)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	res, err := converter.Design(entry.Requirement)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			h.logger.Info("design rejected",
				zap.String("op", op),
				zap.Strings("problems", verr.Problems),
			)
			h.writeJSON(w, http.StatusUnprocessableEntity, rejection{Name: entry.Name, Problems: verr.Problems})
			return
		}
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	resp := buildDesignResponse(entry.Name, res)
	if save {
		h.save(&resp, res, op)
	}

	h.logger.Info("design computed",
		zap.String("op", op),
		zap.String("topology", resp.Topology),
		zap.String("mode", resp.Mode),
	)
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBatch"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	save := wantSave(r)
	if save && h.saver == nil {
		h.respondError(w, http.StatusBadRequest, "saving is not enabled", op)
		return
	}

	data, status, err := h.readBody(w, r)
	if err != nil {
		h.respondError(w, status, err.Error(), op)
		return
	}

	f, err := batch.Parse(data)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	results, rejected := batch.Evaluate(f)

	var csvBuf bytes.Buffer
	if err := output.CsvFormat(&csvBuf, results); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	response := batchResponse{
		Results:  make([]designResponse, 0, len(results)),
		CSV:      csvBuf.String(),
		Duration: time.Since(start).String(),
	}
	for _, nr := range results {
		resp := buildDesignResponse(nr.Name, nr.Result)
		if save {
			h.save(&resp, nr.Result, op)
		}
		response.Results = append(response.Results, resp)
	}
	for _, rj := range rejected {
		response.Rejected = append(response.Rejected, rejection{Name: rj.Name, Problems: rj.Problems})
	}

	h.logger.Info("batch computed",
		zap.String("op", op),
		zap.Int("designed", len(response.Results)),
		zap.Int("rejected", len(response.Rejected)),
	)
	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("design request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before touching the response. A payload that
// cannot be encoded is answered with a 500 and an error body.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response",
			zap.Int("status", status),
			zap.Error(err),
		)
		buf.Reset()
		// A map of strings always encodes.
		_ = json.NewEncoder(&buf).Encode(map[string]string{
			"error": fmt.Sprintf("failed to encode response: %v", err),
		})
		status = http.StatusInternalServerError
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
