package ai

import (
	"fmt"
	"net/http"
)

// StatusError ответ провайдера с кодом отличным от 200
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrExplanationUnavailable
}

// Temporary имеет смысл повторить запрос (модель грузится, лимит, сбой сервера)
func (e *StatusError) Temporary() bool {
	return e.Code == http.StatusTooManyRequests || e.Code >= http.StatusInternalServerError
}
