package request

import (
	"errors"
	"fmt"
	"net/http"
)

// Messages is the table of user-facing notification texts
type Messages struct {
	Fallback     string
	BadRequest   string
	Unauthorized string
	Forbidden    string
	NotFound     string
	ServerError  string
	Network      string
	StatusFormat string // formatted with the status code
}

var EnglishMessages = Messages{
	Fallback:     "Request failed",
	BadRequest:   "Invalid request parameters",
	Unauthorized: "Session expired, please log in again",
	Forbidden:    "Access denied",
	NotFound:     "The requested resource does not exist",
	ServerError:  "Internal server error",
	Network:      "Network error, please check your connection",
	StatusFormat: "Request error: %d",
}

var ChineseMessages = Messages{
	Fallback:     "请求失败",
	BadRequest:   "请求参数错误",
	Unauthorized: "登录已过期，请重新登录",
	Forbidden:    "没有权限访问",
	NotFound:     "请求的资源不存在",
	ServerError:  "服务器内部错误",
	Network:      "网络错误，请检查网络连接",
	StatusFormat: "请求错误: %d",
}

// MessagesFor returns the table for a locale, defaulting to English
func MessagesFor(locale string) Messages {
	switch locale {
	case "zh", "zh-CN", "zh_CN":
		return ChineseMessages
	default:
		return EnglishMessages
	}
}

// ForStatus maps an HTTP status code to its message
func (m Messages) ForStatus(code int) string {
	switch code {
	case http.StatusBadRequest:
		return m.BadRequest
	case http.StatusUnauthorized:
		return m.Unauthorized
	case http.StatusForbidden:
		return m.Forbidden
	case http.StatusNotFound:
		return m.NotFound
	case http.StatusInternalServerError:
		return m.ServerError
	default:
		return fmt.Sprintf(m.StatusFormat, code)
	}
}

// Classify resolves the user-facing message for a failure.
// Precedence: server status, then missing response, then local failure.
func (m Messages) Classify(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return m.ForStatus(statusErr.StatusCode)
	}

	var netErr *NetworkError
	if errors.As(err, &netErr) {
		return m.Network
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Message == "" {
			return m.Fallback
		}
		return apiErr.Message
	}

	var localErr *LocalError
	if errors.As(err, &localErr) {
		return localErr.Err.Error()
	}

	if err == nil || err.Error() == "" {
		return m.Fallback
	}
	return err.Error()
}
