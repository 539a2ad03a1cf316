package logging

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// LoggingWrapper is the gin middleware that gives every request its own
// LogData and writes one summary line when the handler chain returns.
func LoggingWrapper(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		logData := NewLogData(log)

		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			if id, err := uuid.NewV4(); err == nil {
				requestID = id.String()
			}
		}
		c.Header(requestIDHeader, requestID)

		loggingName := c.FullPath()
		if loggingName == "" {
			loggingName = c.Request.URL.Path
		}
		logData.AddData("requestID", requestID)
		logData.AddData("method", c.Request.Method)
		logData.AddData("path", c.Request.URL.Path)

		c.Request = c.Request.WithContext(WithLogData(c.Request.Context(), logData))

		log.Debugf("Handler.%v.Start", loggingName)
		endTimer := logData.AddTiming("durationMs")
		c.Next()
		endTimer()

		status := c.Writer.Status()
		logData.AddData("status", status)

		if status >= http.StatusInternalServerError || len(c.Errors) > 0 {
			entry := logData.Log()
			if err := c.Errors.Last(); err != nil {
				entry = entry.WithError(err)
			}
			entry.Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}
