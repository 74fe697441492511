package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() (*logrus.Logger, *logtest.Hook) {
	logger := SetupLogging()
	logger.Out = io.Discard
	hook := logtest.NewLocal(logger)
	return logger, hook
}

func TestSetupLogging_JSONWithHooks(t *testing.T) {
	logger := SetupLogging()
	var out bytes.Buffer
	logger.Out = &out

	hook := logtest.NewLocal(logger)
	logger.WithField("transactionID", "abc").Warn("Setup.check")

	require.Len(t, hook.AllEntries(), 1)
	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "warning", line["loglevel"])
	assert.Equal(t, "Setup.check", line["msg"])
	assert.Equal(t, "abc", line["transactionID"])
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestLogData_AddDataAndTiming(t *testing.T) {
	logger, _ := newTestLogger()
	logData := NewLogData(logger)

	logData.AddData("transactionID", "abc")
	stop := logData.AddTiming("lookupMs")
	stop()

	entry := logData.Log()
	assert.Equal(t, "abc", entry.Data["transactionID"])
	assert.Contains(t, entry.Data, "lookupMs")
}

func TestLogData_AddToExistingTiming(t *testing.T) {
	logger, _ := newTestLogger()
	logData := NewLogData(logger)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stop := logData.AddToExistingTiming("totalMs")
			stop()
		}()
	}
	wg.Wait()

	assert.Contains(t, logData.Log().Data, "totalMs")
}

func TestGetLogData(t *testing.T) {
	logger, _ := newTestLogger()
	logData := NewLogData(logger)

	assert.Nil(t, GetLogData(context.Background()))
	assert.Same(t, logData, GetLogData(WithLogData(context.Background(), logData)))
}

func TestSetLevel(t *testing.T) {
	logger, _ := newTestLogger()

	require.NoError(t, SetLevel(logger, "debug"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.Error(t, SetLevel(logger, "loud"))
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
}

func TestLoggingWrapper_Complete(t *testing.T) {
	logger, hook := newTestLogger()

	handler := LoggingWrapper("Test", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		assert.Same(t, logData, GetLogData(req.Context()))
		logData.AddData("answer", 42)
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Handler.Test.Complete", last.Message)
	assert.Equal(t, 42, last.Data["answer"])
}

func TestLoggingWrapper_Error(t *testing.T) {
	logger, hook := newTestLogger()

	handler := LoggingWrapper("Test", logger, func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("boom")
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.ErrorLevel, last.Level)
	assert.Equal(t, "Handler.Test.Error", last.Message)
}

type recordedRequest struct {
	operationID string
	status      int
}

type fakeObserver struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (f *fakeObserver) ObserveRequest(operationID string, status int, _ time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, recordedRequest{operationID: operationID, status: status})
}

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"hasLogData"`
	}
}

func TestHumaMiddleware(t *testing.T) {
	logger, hook := newTestLogger()
	observer := &fakeObserver{}

	_, api := humatest.New(t)
	api.UseMiddleware(HumaMiddleware(logger, observer))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.HasLogData = GetLogData(ctx) != nil
		return out, nil
	})
	huma.Register(api, huma.Operation{
		OperationID: "explode",
		Method:      http.MethodGet,
		Path:        "/explode",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		return nil, huma.Error500InternalServerError("exploded")
	})

	resp := api.Get("/ping")
	assert.Equal(t, http.StatusOK, resp.Code)
	var body struct {
		HasLogData bool `json:"hasLogData"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, body.HasLogData)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Handler.ping.Complete", last.Message)
	assert.Equal(t, http.StatusOK, last.Data["status"])

	resp = api.Get("/explode")
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	last = hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, "Handler.explode.Error", last.Message)

	assert.Equal(t, []recordedRequest{
		{operationID: "ping", status: http.StatusOK},
		{operationID: "explode", status: http.StatusInternalServerError},
	}, observer.requests)
}
