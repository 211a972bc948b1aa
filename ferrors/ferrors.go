// Package ferrors contains the closed set of error kinds the spartatr
// core can return, plus helpers for creating and testing for them.
//
// Each kind follows the same shape: a string-based error type, a tag
// interface used for type-assertion checks, an "Xf" constructor that
// behaves like fmt.Errorf, and an "IsX" predicate.
package ferrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// --------------------- Image format

// imageFormat is returned for a malformed ATR container: bad magic,
// truncated payload, or an impossible sector size.
type imageFormat string

// ImageFormatI is the tag interface used to mark ImageFormat errors.
type ImageFormatI interface {
	IsImageFormat()
}

var _ ImageFormatI = imageFormat("test")

func (e imageFormat) Error() string { return string(e) }
func (e imageFormat) IsImageFormat() {}

// ImageFormatf is fmt.Errorf for ImageFormat errors.
func ImageFormatf(format string, a ...interface{}) error {
	return imageFormat(fmt.Sprintf(format, a...))
}

// IsImageFormat returns true if err is an ImageFormat error.
func IsImageFormat(err error) bool {
	_, ok := err.(ImageFormatI)
	return ok
}

// --------------------- Unsupported filesystem

// unsupportedFilesystem is returned when an operation that requires
// SpartaDOS is attempted against a boot sector with a different magic.
type unsupportedFilesystem string

// UnsupportedFilesystemI is the tag interface for UnsupportedFilesystem errors.
type UnsupportedFilesystemI interface {
	IsUnsupportedFilesystem()
}

var _ UnsupportedFilesystemI = unsupportedFilesystem("test")

func (e unsupportedFilesystem) Error() string          { return string(e) }
func (e unsupportedFilesystem) IsUnsupportedFilesystem() {}

// UnsupportedFilesystemf is fmt.Errorf for UnsupportedFilesystem errors.
func UnsupportedFilesystemf(format string, a ...interface{}) error {
	return unsupportedFilesystem(fmt.Sprintf(format, a...))
}

// IsUnsupportedFilesystem returns true if err is an UnsupportedFilesystem error.
func IsUnsupportedFilesystem(err error) bool {
	_, ok := err.(UnsupportedFilesystemI)
	return ok
}

// --------------------- Not found

// notFound is returned when path resolution fails to find a terminal entry.
type notFound string

// NotFoundI is the tag interface for NotFound errors.
type NotFoundI interface {
	IsNotFound()
}

var _ NotFoundI = notFound("test")

func (e notFound) Error() string { return string(e) }
func (e notFound) IsNotFound()   {}

// NotFoundf is fmt.Errorf for NotFound errors.
func NotFoundf(format string, a ...interface{}) error {
	return notFound(fmt.Sprintf(format, a...))
}

// IsNotFound returns true if err is a NotFound error.
func IsNotFound(err error) bool {
	_, ok := err.(NotFoundI)
	return ok
}

// --------------------- Corruption

// corruption is returned for map-chain cycles, out-of-range pointers, or a
// directory stream that exceeds its traversal cap.
type corruption string

// CorruptionI is the tag interface for Corruption errors.
type CorruptionI interface {
	IsCorruption()
}

var _ CorruptionI = corruption("test")

func (e corruption) Error() string { return string(e) }
func (e corruption) IsCorruption() {}

// Corruptionf is fmt.Errorf for Corruption errors.
func Corruptionf(format string, a ...interface{}) error {
	return corruption(fmt.Sprintf(format, a...))
}

// IsCorruption returns true if err is a Corruption error.
func IsCorruption(err error) bool {
	_, ok := err.(CorruptionI)
	return ok
}

// --------------------- Out of space

// outOfSpace is returned when the builder cannot fit a file-list in the
// target image.
type outOfSpace string

// OutOfSpaceI is the tag interface for OutOfSpace errors.
type OutOfSpaceI interface {
	IsOutOfSpace()
}

var _ OutOfSpaceI = outOfSpace("test")

func (e outOfSpace) Error() string { return string(e) }
func (e outOfSpace) IsOutOfSpace() {}

// OutOfSpacef is fmt.Errorf for OutOfSpace errors.
func OutOfSpacef(format string, a ...interface{}) error {
	return outOfSpace(fmt.Sprintf(format, a...))
}

// IsOutOfSpace returns true if err is an OutOfSpace error.
func IsOutOfSpace(err error) bool {
	_, ok := err.(OutOfSpaceI)
	return ok
}

// --------------------- Duplicate name

// duplicateName is returned when two sibling directory entries would
// encode to the same 8.3 Atari name.
type duplicateName string

// DuplicateNameI is the tag interface for DuplicateName errors.
type DuplicateNameI interface {
	IsDuplicateName()
}

var _ DuplicateNameI = duplicateName("test")

func (e duplicateName) Error() string    { return string(e) }
func (e duplicateName) IsDuplicateName() {}

// DuplicateNamef is fmt.Errorf for DuplicateName errors.
func DuplicateNamef(format string, a ...interface{}) error {
	return duplicateName(fmt.Sprintf(format, a...))
}

// IsDuplicateName returns true if err is a DuplicateName error.
func IsDuplicateName(err error) bool {
	_, ok := err.(DuplicateNameI)
	return ok
}

// --------------------- I/O error

// IoErrorI is the tag interface for IoError errors.
type IoErrorI interface {
	IsIoError()
}

// ioError wraps a host I/O failure with call-site context, using
// github.com/pkg/errors so the underlying *os.PathError (or similar)
// stays reachable via errors.Cause/errors.Unwrap.
type ioError struct {
	error
}

var _ IoErrorI = ioError{}

func (e ioError) IsIoError() {}
func (e ioError) Unwrap() error { return e.error }
func (e ioError) Cause() error  { return e.error }

// IoErrorf wraps err with a formatted message, tagging it as an IoError.
// Returns nil if err is nil, so it is safe to call directly on a function
// result without an extra nil check at the call site.
func IoErrorf(err error, format string, a ...interface{}) error {
	if err == nil {
		return nil
	}
	return ioError{errors.Wrapf(err, format, a...)}
}

// IsIoError returns true if err is an IoError error.
func IsIoError(err error) bool {
	_, ok := err.(IoErrorI)
	return ok
}

// --------------------- Conversion error

// conversionError is returned for a truncated UTF-8 sequence encountered
// during ATASCII<->UTF-8 transcoding.
type conversionError string

// ConversionErrorI is the tag interface for ConversionError errors.
type ConversionErrorI interface {
	IsConversionError()
}

var _ ConversionErrorI = conversionError("test")

func (e conversionError) Error() string      { return string(e) }
func (e conversionError) IsConversionError() {}

// ConversionErrorf is fmt.Errorf for ConversionError errors.
func ConversionErrorf(format string, a ...interface{}) error {
	return conversionError(fmt.Sprintf(format, a...))
}

// IsConversionError returns true if err is a ConversionError error.
func IsConversionError(err error) bool {
	_, ok := err.(ConversionErrorI)
	return ok
}
