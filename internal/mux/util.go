package mux

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"
)

const maxRows = 100
const maxRequestBytes = 1 << 20

// pageOptions is a window over a sorted listing
type pageOptions struct {
	Start int
	Rows  int
}

// window returns the slice bounds of the page for a listing of n items
func (p pageOptions) window(n int) (int, int) {
	if p.Start >= n {
		return n, n
	}

	end := p.Start + p.Rows
	if end > n {
		end = n
	}

	return p.Start, end
}

func parsePageOptions(r *http.Request) (pageOptions, error) {
	page := pageOptions{Rows: maxRows}

	if startStr := r.FormValue("start"); startStr != "" {
		val, err := strconv.Atoi(startStr)
		if err != nil {
			return pageOptions{}, fmt.Errorf("start must be a number")
		}

		if val < 0 {
			return pageOptions{}, errors.New("start cannot be less than zero")
		}

		page.Start = val
	}

	if rowsStr := r.FormValue("rows"); rowsStr != "" {
		val, err := strconv.Atoi(rowsStr)
		if err != nil {
			return pageOptions{}, fmt.Errorf("rows must be a number")
		}

		if val <= 0 {
			return pageOptions{}, errors.New("rows must be greater than zero")
		}

		if val > maxRows {
			return pageOptions{}, fmt.Errorf("rows cannot be greater than %d", maxRows)
		}

		page.Rows = val
	}

	return page, nil
}

// remoteAddr is the client host, used to rate limit registrations
func remoteAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}

// decodeRequest reads a JSON body into payload
// It writes the error response and returns false if the body cannot be used
func decodeRequest(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" && mediaType != "text/json" {
		writeJSONError(w, http.StatusUnsupportedMediaType, nil)
		return false
	}

	body := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := json.NewDecoder(body).Decode(payload); err != nil {
		writeJSONError(w, http.StatusBadRequest, errors.New("invalid JSON body"))
		return false
	}

	return true
}

func writeJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("could not write JSON response")
	}
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// writeJSONError writes the error for client errors
// Server errors are logged and replaced with the status text
func writeJSONError(w http.ResponseWriter, statusCode int, err error) {
	msg := http.StatusText(statusCode)

	if statusCode >= 500 {
		logrus.WithError(err).WithField("statusCode", statusCode).Error("request failed")
	} else if err != nil {
		msg = err.Error()
	}

	writeJSON(w, statusCode, errorResponse{
		Message:    msg,
		StatusCode: statusCode,
	})
}
