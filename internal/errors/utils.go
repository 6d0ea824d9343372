package errors

import (
	"errors"
)

// Wrap wraps an error with additional context, creating a CompilerError if the input is not already one
func Wrap(err error, errType ErrorType, code, message string) *CompilerError {
	if err == nil {
		return nil
	}

	var ce *CompilerError
	if errors.As(err, &ce) {
		return &CompilerError{
			Type:        errType,
			Code:        code,
			Message:     message,
			Cause:       ce,
			Context:     ce.Context,
			FilePath:    ce.FilePath,
			Line:        ce.Line,
			Column:      ce.Column,
			Recoverable: ce.Recoverable,
		}
	}

	return &CompilerError{
		Type:        errType,
		Code:        code,
		Message:     message,
		Cause:       err,
		Recoverable: errType == ErrorTypeValidation || errType == ErrorTypeFixture,
	}
}

// WrapIO wraps an error as an I/O error
func WrapIO(err error, code, message string) *CompilerError {
	ce := Wrap(err, ErrorTypeIO, code, message)
	if ce != nil {
		ce.Recoverable = false
	}
	return ce
}

// WrapConfig wraps an error as a configuration error
func WrapConfig(err error, message string) *CompilerError {
	return Wrap(err, ErrorTypeConfig, ErrCodeConfigInvalid, message)
}
