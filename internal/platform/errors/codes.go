// Package errors provides structured domain errors for the document manager.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Document naming errors
	CodeEmptyName            Code = "EMPTY_NAME"
	CodeInvalidName          Code = "INVALID_NAME"
	CodeUnsupportedExtension Code = "UNSUPPORTED_EXTENSION"

	// Storage errors
	CodeAlreadyExists Code = "ALREADY_EXISTS"
	CodeNotFound      Code = "NOT_FOUND"

	// Session errors
	CodeUnauthorized Code = "UNAUTHORIZED"

	// Credential errors
	CodeUsernameEmpty      Code = "USERNAME_EMPTY"
	CodeUsernameTaken      Code = "USERNAME_TAKEN"
	CodeInvalidPassword    Code = "INVALID_PASSWORD"
	CodeInvalidCredentials Code = "INVALID_CREDENTIALS"
)

// GRPCCode maps domain codes to canonical gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeEmptyName,
		CodeInvalidName,
		CodeUnsupportedExtension,
		CodeUsernameEmpty,
		CodeUsernameTaken,
		CodeInvalidPassword,
		CodeInvalidCredentials:
		return codes.InvalidArgument

	// AlreadyExists - unique name constraint
	case CodeAlreadyExists:
		return codes.AlreadyExists

	// NotFound - document doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// Unauthenticated - no signed-in user in the session
	case CodeUnauthorized:
		return codes.Unauthenticated

	default:
		return codes.Internal
	}
}
