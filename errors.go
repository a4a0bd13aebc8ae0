package pngtileset

import (
	"errors"

	"github.com/bodgit/pngtileset/geometry"
	"github.com/bodgit/pngtileset/image"
)

// Every error returned by Convert matches exactly one of these with
// errors.Is.
var (
	// ErrArgument is a missing or out of range option
	ErrArgument = errors.New("invalid argument")
	// ErrFile is a failure to open, read or write a file
	ErrFile = errors.New("file error")
	// ErrFormat is an input that is not a decodable image
	ErrFormat = image.ErrFormat
	// ErrEncode is a failure to encode the tileset image
	ErrEncode = image.ErrEncode
	// ErrValidation is an image whose dimensions do not suit the options.
	// The underlying *geometry.ValidationError is available with errors.As
	ErrValidation = geometry.ErrInvalid
	// ErrResource is an image too large to convert within Config.MaxBytes
	ErrResource = errors.New("insufficient memory")
)
