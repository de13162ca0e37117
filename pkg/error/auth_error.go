package error

import "net/http"

// AuthError signals a request that failed gateway signature verification.
type AuthError string

func (err AuthError) Error() string {
	return string(err)
}

func (err AuthError) ErrCode() string {
	return "AUTHENTICATION_FAILURE"
}

func (err AuthError) StatusCode() int {
	return http.StatusForbidden
}
