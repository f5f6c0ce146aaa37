// Package repository contains the data access layer. Every failure a
// repository returns carries one of the kind sentinels below so handlers
// can pick a status code with errors.Is while the message stays specific
// to the operation ("Survey not found", "Answers not deleted", ...).
package repository

import "errors"

// ErrNotFound marks reads that matched zero rows and writes whose target
// row does not exist. Note that listing operations also return this kind
// when the table is empty; callers must treat an empty collection as a
// 404, not as a successful empty response.
var ErrNotFound = errors.New("not found")

// ErrUnauthorized marks operations rejected by the ownership policy.
var ErrUnauthorized = errors.New("unauthorized")

// ErrCreateFailed marks inserts that reported zero affected rows.
var ErrCreateFailed = errors.New("create failed")

// ErrUpdateFailed marks updates that reported zero affected rows.
var ErrUpdateFailed = errors.New("update failed")

// ErrDeleteFailed marks deletes that reported zero affected rows.
var ErrDeleteFailed = errors.New("delete failed")

// ErrEmailExists is returned when a user registration hits the unique
// email constraint. Handlers translate this into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func notFound(msg string) error     { return &kindError{kind: ErrNotFound, msg: msg} }
func unauthorized(msg string) error { return &kindError{kind: ErrUnauthorized, msg: msg} }
func createFailed(msg string) error { return &kindError{kind: ErrCreateFailed, msg: msg} }
func updateFailed(msg string) error { return &kindError{kind: ErrUpdateFailed, msg: msg} }
func deleteFailed(msg string) error { return &kindError{kind: ErrDeleteFailed, msg: msg} }
