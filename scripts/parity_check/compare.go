package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// endpoint pairs a route of this API with its path on the legacy admin backend.
type endpoint struct {
	Method     string `json:"method"`
	Path       string `json:"path"`
	LegacyPath string `json:"legacy_path"`
	Critical   bool   `json:"critical"`
}

type targetFile struct {
	// Volatile keys are dropped from both bodies before comparing.
	Volatile  []string   `json:"volatile"`
	Endpoints []endpoint `json:"endpoints"`
}

type side struct {
	Base  string
	Token string
}

type result struct {
	Endpoint       endpoint
	Status         int
	LegacyStatus   int
	StatusMatch    bool
	BodyMatch      bool
	Err            error
	Duration       time.Duration
	LegacyDuration time.Duration
}

func (r result) diverged() bool {
	return r.Err != nil || !r.StatusMatch || !r.BodyMatch
}

type comparer struct {
	client   *http.Client
	current  side
	legacy   side
	volatile map[string]struct{}
}

func newComparer(client *http.Client, current, legacy side, volatile []string) *comparer {
	keys := make(map[string]struct{}, len(volatile))
	for _, k := range volatile {
		keys[k] = struct{}{}
	}
	return &comparer{client: client, current: current, legacy: legacy, volatile: keys}
}

func (c *comparer) compare(ep endpoint) result {
	res := result{Endpoint: ep}
	legacyPath := ep.LegacyPath
	if legacyPath == "" {
		legacyPath = ep.Path
	}

	body, status, dur, err := c.fetch(c.current, ep.Method, ep.Path)
	if err != nil {
		res.Err = fmt.Errorf("request failed: %w", err)
		return res
	}
	legacyBody, legacyStatus, legacyDur, err := c.fetch(c.legacy, ep.Method, legacyPath)
	if err != nil {
		res.Err = fmt.Errorf("legacy request failed: %w", err)
		return res
	}

	res.Status, res.LegacyStatus = status, legacyStatus
	res.Duration, res.LegacyDuration = dur, legacyDur
	res.StatusMatch = status == legacyStatus
	res.BodyMatch = c.equivalent(unwrapData(body), legacyBody)
	return res
}

func (c *comparer) fetch(s side, method, path string) ([]byte, int, time.Duration, error) {
	if c.client == nil {
		return nil, 0, 0, errors.New("nil client")
	}
	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req, err := http.NewRequest(method, strings.TrimRight(s.Base, "/")+path, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	if s.Token != "" {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, 0, fmt.Errorf("read body: %w", err)
	}
	return data, resp.StatusCode, time.Since(start), nil
}

// unwrapData strips the {"data": ...} envelope so payloads line up with the
// legacy backend, which returns bare resources.
func unwrapData(body []byte) []byte {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Data) == 0 {
		return body
	}
	return envelope.Data
}

func (c *comparer) equivalent(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}
	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	aj = c.normalize(aj)
	bj = c.normalize(bj)
	return reflect.DeepEqual(aj, bj)
}

func (c *comparer) normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if _, skip := c.volatile[k]; skip {
				delete(val, k)
				continue
			}
			val[k] = c.normalize(inner)
		}
		return val
	case []interface{}:
		for i, inner := range val {
			val[i] = c.normalize(inner)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
		return val
	case string:
		// the legacy backend serialises decimals as strings
		if f, err := strconv.ParseFloat(val, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return c.normalize(f)
		}
		return val
	default:
		return val
	}
}
