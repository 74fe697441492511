package logging

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// RequestObserver receives the outcome of every API request.
type RequestObserver interface {
	ObserveRequest(operationID string, status int, duration time.Duration)
}

// HumaMiddleware attaches a fresh LogData to each request and logs the
// request outcome once the handler has returned. It must be installed before
// operations are registered.
func HumaMiddleware(log *logrus.Logger, observer RequestObserver) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		operationID := "Unknown"
		if op := ctx.Operation(); op != nil && op.OperationID != "" {
			operationID = op.OperationID
		}

		logData := NewLogData(log)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)
		log.Debugf("Handler.%v.Start", operationID)

		startTime := time.Now()
		endTimer := logData.AddTiming("duration")
		next(huma.WithValue(ctx, logDataKey{}, logData))
		endTimer()

		status := ctx.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logData.AddData("status", status)

		if observer != nil {
			observer.ObserveRequest(operationID, status, time.Since(startTime))
		}

		if status >= http.StatusInternalServerError {
			logData.Log().Errorf("Handler.%v.Error", operationID)
			return
		}
		logData.Log().Infof("Handler.%v.Complete", operationID)
	}
}
