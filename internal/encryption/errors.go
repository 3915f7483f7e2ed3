package encryption

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyData is returned when attempting to decrypt empty input data.
	ErrEmptyData = errors.New("empty data")
	// ErrInvalidPadding is returned when PKCS7 padding is malformed.
	ErrInvalidPadding = errors.New("invalid padding")
	// ErrInvalidBlockSize is returned when encrypted data length is not aligned with the block size.
	ErrInvalidBlockSize = errors.New("ciphertext is not a multiple of block size")
	// ErrInputChanged is returned when the input file size differs from what was read.
	ErrInputChanged = errors.New("input file changed while reading")

	errKeySize = errors.New("invalid key size")
)

// Sentinels matched by a TransformError of the corresponding Kind through errors.Is.
var (
	ErrUnsupportedKeySize  = errors.New("unsupported key size")
	ErrCipherConfiguration = errors.New("cipher configuration error")
	ErrCipherData          = errors.New("cipher data error")
	ErrIO                  = errors.New("i/o error")
)

// Kind classifies why a transform failed.
type Kind byte

const (
	// KindUnknown is reported by KindOf for errors that are not a TransformError.
	KindUnknown Kind = iota
	// KindUnsupportedKeySize means the key length is not accepted by the algorithm.
	KindUnsupportedKeySize
	// KindCipherConfiguration means the transformation cannot be instantiated.
	KindCipherConfiguration
	// KindCipherData means the ciphertext is malformed or the key is wrong.
	KindCipherData
	// KindIO means the input could not be read or the output could not be written.
	KindIO
)

func (k Kind) sentinel() error {
	switch k {
	case KindUnsupportedKeySize:
		return ErrUnsupportedKeySize
	case KindCipherConfiguration:
		return ErrCipherConfiguration
	case KindCipherData:
		return ErrCipherData
	case KindIO:
		return ErrIO
	default:
		return nil
	}
}

// String returns the human-readable name of the kind.
func (k Kind) String() string {
	if s := k.sentinel(); s != nil {
		return s.Error()
	}

	return "unknown error"
}

// TransformError is the single error type returned by the file and buffer transforms.
type TransformError struct {
	// Op is the direction that failed.
	Op Mode

	// Kind classifies the failure.
	Kind Kind

	// Path is the file involved, if any.
	Path string

	// Err is the underlying cause.
	Err error
}

// Error implements error.
func (e *TransformError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	}

	return fmt.Sprintf("%s %q: %s: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *TransformError) Unwrap() error {
	return e.Err
}

// Is reports whether target is the sentinel of the error's Kind.
func (e *TransformError) Is(target error) bool {
	s := e.Kind.sentinel()

	return s != nil && target == s
}

// KindOf returns the Kind of the first TransformError in err's chain.
func KindOf(err error) Kind {
	var te *TransformError
	if errors.As(err, &te) {
		return te.Kind
	}

	return KindUnknown
}

func newError(op Mode, kind Kind, path string, err error) *TransformError {
	return &TransformError{Op: op, Kind: kind, Path: path, Err: err}
}
