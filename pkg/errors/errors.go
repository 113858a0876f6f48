package errors

import "fmt"

// ErrUpstreamAPI is returned when the Shopify Admin API responds with a
// non-success status. The raw body is kept to preserve debuggability.
type ErrUpstreamAPI struct {
	Status int
	Body   string
}

func (e *ErrUpstreamAPI) Error() string {
	return fmt.Sprintf("shopify API error: status %d, body: %s", e.Status, e.Body)
}

// ErrUpstreamParse is returned when a Shopify response body cannot be parsed.
type ErrUpstreamParse struct {
	Err  error
	Body string
}

func (e *ErrUpstreamParse) Error() string {
	return fmt.Sprintf("failed to parse shopify response: %v, body: %s", e.Err, e.Body)
}

func (e *ErrUpstreamParse) Unwrap() error {
	return e.Err
}

// ErrValidation is returned when a required input field is missing or invalid.
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUnauthorized is returned when a webhook signature or admin key mismatches.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrProcessing is returned when a webhook body cannot be processed.
type ErrProcessing struct {
	Message string
}

func (e *ErrProcessing) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "processing failed"
}

// ErrProductCreation is returned when the upstream response lacks a product object.
type ErrProductCreation struct {
	Message string
}

func (e *ErrProductCreation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "product creation failed"
}

// ErrFileUpload is returned when no usable image reference could be built
// from the request (missing image, or undecodable base64).
type ErrFileUpload struct {
	Message string
}

func (e *ErrFileUpload) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "file upload failed"
}
