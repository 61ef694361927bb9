package utils

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// LogEvent writes a standardized line tagged with module/action/request_id.
// Keep message summarized; never log passenger payloads verbatim.
func LogEvent(requestID, module, action, message string) {
	logrus.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).Info(message)
}

// LogFailure is LogEvent for errors.
func LogFailure(requestID, module, action string, err error) {
	logrus.WithFields(logrus.Fields{
		"module":     strings.ToUpper(module),
		"action":     action,
		"request_id": strings.TrimSpace(requestID),
	}).WithError(err).Error("request failed")
}
