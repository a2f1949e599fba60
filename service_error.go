package main

import "fmt"

// ServiceError is the unified error type for service-level failures.
type ServiceError struct {
	Service   string // service name
	Operation string // operation name
	Err       error  // original error
}

// Error formats the error as: [Service.Operation] error message
func (e *ServiceError) Error() string {
	return fmt.Sprintf("[%s.%s] %v", e.Service, e.Operation, e.Err)
}

// Unwrap returns the original error, supporting errors.Is/errors.As chains.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// WrapError creates an error carrying service context. Returns nil when err is nil.
func WrapError(service, operation string, err error) error {
	if err == nil {
		return nil
	}
	return &ServiceError{Service: service, Operation: operation, Err: err}
}
