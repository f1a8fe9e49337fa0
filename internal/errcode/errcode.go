// Package errcode defines the closed error taxonomy of the purge engine.
//
// Every fallible step returns an error; when the failure is classified it is an
// *Error carrying one of the Code values below. The numeric value of a Code is
// also the process exit status of the CLI.
//
// Ranges:
//   - 0: success
//   - 1-99: benign non-execution (too frequent, skipped by token)
//   - 100-199: invalid configuration or arguments
//   - 200-299: operational failures during execution
package errcode

import (
	"errors"
	"fmt"
)

// Code is a classified purge outcome.
type Code int

const (
	Success Code = 0

	// Execution-related codes (1-99)
	ExecutionTooFrequent Code = 1
	SkipTokenFound       Code = 2

	// Argument-related codes (100-199)
	InvalidArguments                         Code = 100
	EmptyFolderName                          Code = 101
	IllegalCharactersInFolderName            Code = 102
	ReservedNameAsFolderName                 Code = 103
	InvalidFolderNameSuffix                  Code = 104
	PathIsSystemDirectory                    Code = 105
	AdministrativePathConflictsWithStagePath Code = 106
	StageFolderIsSystemDirectory             Code = 107
	StageFolderHasReservedFolderName         Code = 108
	InvalidNumberOfStages                    Code = 109
	InvalidFileLogAmount                     Code = 110
	InvalidLogRotationBytes                  Code = 111
	InvalidLogRotationVersions               Code = 112
	InvalidPurgeMessageLogoFile              Code = 113
	InvalidSkipTokenFile                     Code = 114

	// General error codes (200-299)
	UnknownError                       Code = 200
	CouldNotDeleteLastFolder           Code = 201
	CouldNotRenameStageFolder          Code = 202
	CouldNotCreateNewStageFolder       Code = 203
	CouldNotCreateAdministrativeFolder Code = 204
	CouldNotCreateLastPurgeToken       Code = 205
)

var codeNames = map[Code]string{
	Success:                                  "Success",
	ExecutionTooFrequent:                     "ExecutionTooFrequent",
	SkipTokenFound:                           "SkipTokenFound",
	InvalidArguments:                         "InvalidArguments",
	EmptyFolderName:                          "EmptyFolderName",
	IllegalCharactersInFolderName:            "IllegalCharactersInFolderName",
	ReservedNameAsFolderName:                 "ReservedNameAsFolderName",
	InvalidFolderNameSuffix:                  "InvalidFolderNameSuffix",
	PathIsSystemDirectory:                    "PathIsSystemDirectory",
	AdministrativePathConflictsWithStagePath: "AdministrativePathConflictsWithStagePath",
	StageFolderIsSystemDirectory:             "StageFolderIsSystemDirectory",
	StageFolderHasReservedFolderName:         "StageFolderHasReservedFolderName",
	InvalidNumberOfStages:                    "InvalidNumberOfStages",
	InvalidFileLogAmount:                     "InvalidFileLogAmount",
	InvalidLogRotationBytes:                  "InvalidLogRotationBytes",
	InvalidLogRotationVersions:               "InvalidLogRotationVersions",
	InvalidPurgeMessageLogoFile:              "InvalidPurgeMessageLogoFile",
	InvalidSkipTokenFile:                     "InvalidSkipTokenFile",
	UnknownError:                             "UnknownError",
	CouldNotDeleteLastFolder:                 "CouldNotDeleteLastFolder",
	CouldNotRenameStageFolder:                "CouldNotRenameStageFolder",
	CouldNotCreateNewStageFolder:             "CouldNotCreateNewStageFolder",
	CouldNotCreateAdministrativeFolder:       "CouldNotCreateAdministrativeFolder",
	CouldNotCreateLastPurgeToken:             "CouldNotCreateLastPurgeToken",
}

// String returns the symbolic name of the code.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Code(%d)", int(c))
}

// Known reports whether c belongs to the taxonomy.
func (c Code) Known() bool {
	_, ok := codeNames[c]
	return ok
}

// Category groups codes by range.
type Category string

const (
	CategorySuccess     Category = "success"
	CategorySkipped     Category = "skipped"
	CategoryInvalid     Category = "invalid"
	CategoryOperational Category = "operational"
)

// Category returns the range group of the code. Unknown codes are operational.
func (c Code) Category() Category {
	switch {
	case c == Success:
		return CategorySuccess
	case c >= 1 && c <= 99:
		return CategorySkipped
	case c >= 100 && c <= 199:
		return CategoryInvalid
	default:
		return CategoryOperational
	}
}

// Error is a classified failure.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%d): %s: %v", e.Code, int(e.Code), e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, int(e.Code), e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error with the same code, so errors.Is(err, errcode.New(c, ""))
// works as a code comparison.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return other.Code == e.Code
	}
	return false
}

// New creates a classified error.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap classifies an existing error.
func Wrap(err error, code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Of extracts the code from err: Success for nil, the carried code for
// classified errors, UnknownError for anything else.
func Of(err error) Code {
	if err == nil {
		return Success
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return UnknownError
}

// Recode returns err reclassified with code, keeping its message and cause.
func Recode(err error, code Code) *Error {
	var e *Error
	if errors.As(err, &e) {
		return &Error{Code: code, Message: e.Message, Err: e.Err}
	}
	return &Error{Code: code, Message: "unclassified failure", Err: err}
}
