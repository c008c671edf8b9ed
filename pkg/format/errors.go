package format

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrArgument is returned when a helper receives a value it cannot handle.
	ErrArgument = errors.New("함수 인자가 잘못된 값이 입력되었습니다.")
	// ErrEmptyQueryResult is returned when a view needs at least one row.
	ErrEmptyQueryResult = errors.New("쿼리 결과가 없습니다.")
	// ErrEmptyKeyList is returned by ExtractKeys when no key is requested.
	ErrEmptyKeyList = errors.New("키 리스트가 비어있습니다.")
)

// KeyError reports a key missing from a row.
type KeyError struct {
	Key string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("org_key가 존재하지 않습니다.: %s", e.Key)
}

// HTTPError carries a response status from view building to the handler.
type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError returns an HTTPError with a formatted message.
func NewHTTPError(status int, format string, args ...interface{}) *HTTPError {
	return &HTTPError{Status: status, Message: fmt.Sprintf(format, args...)}
}

// StatusOf returns the status carried by err, 500 when it carries none.
func StatusOf(err error) int {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status
	}
	return http.StatusInternalServerError
}
