package usecase

import (
	"errors"
	"fmt"
	"net/http"
)

// Handlerがステータスと{error:1, message, fields?}に変換するエラー
type HTTPError struct {
	Status  int
	Message string
	//フィールド単位の検証エラー詳細（無ければnil）
	Fields map[string]string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{Status: status, Message: message}
}

func NewValidationError(message string, fields map[string]string) error {
	return &HTTPError{Status: http.StatusBadRequest, Message: message, Fields: fields}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// よく使う失敗を関数で揃える
func errEmptyCart() error {
	return NewHTTPError(http.StatusBadRequest, "you're not able to create an order because you have no items in cart")
}

func errUnauthorized() error {
	return NewHTTPError(http.StatusUnauthorized, "unauthorized")
}

func errForbidden() error {
	return NewHTTPError(http.StatusForbidden, "you're not allowed to access this resource")
}

func errNotFound(what string) error {
	return NewHTTPError(http.StatusNotFound, what+" not found")
}

func errInternal() error {
	return NewHTTPError(http.StatusInternalServerError, "internal error")
}
