package serverutils

// ApiError carries an HTTP status code alongside the message so services
// can signal the right status without importing fiber.
type ApiError struct {
	Code    int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(code int, message string) *ApiError {
	return &ApiError{Code: code, Message: message}
}
