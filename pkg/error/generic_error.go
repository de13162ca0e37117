package error

// GenericError is implemented by every typed API error so the recovery
// middleware can map panics to a proper status code and error code.
type GenericError interface {
	Error() string
	ErrCode() string
	StatusCode() int
}
