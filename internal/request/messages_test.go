package request

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessages_ClassifyPrecedence(t *testing.T) {
	m := EnglishMessages

	assert.Equal(t, "Access denied", m.Classify(&StatusError{StatusCode: 403}))
	assert.Equal(t, m.Network, m.Classify(&NetworkError{Err: errors.New("connection refused")}))
	assert.Equal(t, "boom", m.Classify(&LocalError{Err: errors.New("boom")}))
	assert.Equal(t, "title required", m.Classify(&APIError{Message: "title required"}))
	assert.Equal(t, m.Fallback, m.Classify(&APIError{}))
	assert.Equal(t, "other", m.Classify(errors.New("other")))
}

func TestMessagesFor(t *testing.T) {
	assert.Equal(t, ChineseMessages, MessagesFor("zh-CN"))
	assert.Equal(t, EnglishMessages, MessagesFor("en"))
	assert.Equal(t, EnglishMessages, MessagesFor(""))
	assert.Equal(t, "请求错误: 502", ChineseMessages.ForStatus(502))
}

func TestNotified(t *testing.T) {
	assert.True(t, Notified(&StatusError{StatusCode: 500}))
	assert.True(t, Notified(fmt.Errorf("list: %w", &NetworkError{Err: errors.New("eof")})))
	assert.False(t, Notified(errors.New("flag missing")))
}
