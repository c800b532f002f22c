package util

import "errors"

var (
	ErrDecodeFailed      = errors.New("image payload is not valid base64 image data")
	ErrClassifier        = errors.New("face detection failed on decoded frame")
	ErrInvalidStudentRef = errors.New("invalid student reference")
	ErrInvalidExamRef    = errors.New("invalid exam reference")
	ErrExamNotFound      = errors.New("exam code not found")
	ErrIntegrity         = errors.New("write references a nonexistent student or exam")
	ErrInvalidSeverity   = errors.New("severity must be warning or critical")
	ErrSeverityRequired  = errors.New("severity is required for unrecognized violation types")
)
