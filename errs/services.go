package errs

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// Configuration & Environment Errors
var (
	ErrConfigMissing       = errors.New("configuration missing")
	ErrEnvironmentVariable = errors.New("environment variable error")
)

// Third-Party Service Errors
var (
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrUploadFailed       = errors.New("upload failed")
	ErrNotificationFailed = errors.New("notification failed")
)

// NewConfigError reports that a required setting is absent. Callers return it
// before any network call is made.
func NewConfigError(configName string, missing ...string) *ApiErr {
	details := fmt.Sprintf("Configuration error for %s", configName)
	if len(missing) > 0 {
		details = fmt.Sprintf("%s is not configured: set %s", configName, strings.Join(missing, ", "))
	}
	return &ApiErr{
		StatusCode: http.StatusServiceUnavailable,
		err:        ErrConfigMissing,
		Details:    details,
		Field:      configName,
	}
}

func NewEnvironmentVariableError(varName string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        ErrEnvironmentVariable,
		Details:    fmt.Sprintf("Environment variable %s is not set or invalid", varName),
		Field:      varName,
	}
}

func NewRateLimitError(service string, retryAfter time.Duration) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusTooManyRequests,
		err:        ErrRateLimitExceeded,
		Details:    fmt.Sprintf("Too many requests to %s, retry after %v", service, retryAfter),
	}
}

func NewUploadError(fileName string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrUploadFailed,
		Details:    fmt.Sprintf("Upload of %s failed", fileName),
		Field:      fileName,
		Cause:      cause,
	}
}

func NewNotificationError(channel string, cause error) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusBadGateway,
		err:        ErrNotificationFailed,
		Details:    fmt.Sprintf("%s notification failed", channel),
		Field:      channel,
		Cause:      cause,
	}
}

func IsConfigError(err error) bool {
	return errors.Is(err, ErrConfigMissing)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
