package search

import (
	"errors"
	"net/url"
)

// SafeTransportMessage убирает URL из ошибки транспорта: в query лежит api_key.
func SafeTransportMessage(err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		if urlErr.Timeout() {
			return "timeout"
		}
		return urlErr.Err.Error()
	}
	return err.Error()
}
