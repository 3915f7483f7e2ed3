package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/crypto/blowfish"
	"golang.org/x/crypto/twofish"
)

// Algorithm identifies a block cipher.
type Algorithm string

const (
	// AlgorithmAES is AES with 128, 192 or 256 bit keys.
	AlgorithmAES Algorithm = "AES"
	// AlgorithmTwofish is Twofish with 128, 192 or 256 bit keys.
	AlgorithmTwofish Algorithm = "Twofish"
	// AlgorithmBlowfish is Blowfish with 32 to 448 bit keys and a 64 bit block.
	AlgorithmBlowfish Algorithm = "Blowfish"
)

// BlockMode identifies how blocks are chained.
type BlockMode string

// BlockModeECB transforms each block independently without an IV.
const BlockModeECB BlockMode = "ECB"

// Padding identifies the padding scheme applied before encryption.
type Padding string

// PaddingPKCS7 appends 1 to blockSize bytes, each holding the padding length.
const PaddingPKCS7 Padding = "PKCS7"

// Transformation is the algorithm, mode and padding triple of a transform.
type Transformation struct {
	// Algorithm is the block cipher.
	Algorithm Algorithm

	// KeySize restricts the accepted key length in bytes.
	// Zero accepts every length the algorithm supports.
	KeySize int

	// Mode is the block mode. Only ECB is supported.
	Mode BlockMode

	// Padding is the padding scheme. Only PKCS7 is supported.
	Padding Padding
}

// algorithm describes a registered block cipher.
type algorithm struct {
	name      Algorithm
	blockSize int
	keySizes  []int
	newCipher func(key []byte) (cipher.Block, error)
}

// acceptsKeySize reports whether n is a valid key length for the cipher.
func (a algorithm) acceptsKeySize(n int) bool {
	return slices.Contains(a.keySizes, n)
}

//nolint:gochecknoglobals
var algorithms = []algorithm{
	{
		name:      AlgorithmAES,
		blockSize: aes.BlockSize,
		keySizes:  []int{16, 24, 32},
		newCipher: aes.NewCipher,
	},
	{
		name:      AlgorithmTwofish,
		blockSize: twofish.BlockSize,
		keySizes:  []int{16, 24, 32},
		newCipher: func(key []byte) (cipher.Block, error) {
			return twofish.NewCipher(key)
		},
	},
	{
		name:      AlgorithmBlowfish,
		blockSize: blowfish.BlockSize,
		keySizes:  keyRange(4, 56),
		newCipher: func(key []byte) (cipher.Block, error) {
			return blowfish.NewCipher(key)
		},
	},
}

func keyRange(lower, upper int) []int {
	sizes := make([]int, 0, upper-lower+1)
	for n := lower; n <= upper; n++ {
		sizes = append(sizes, n)
	}

	return sizes
}

func lookup(name Algorithm) (algorithm, bool) {
	for _, a := range algorithms {
		if strings.EqualFold(string(a.name), string(name)) {
			return a, true
		}
	}

	return algorithm{}, false
}

// Default returns the AES/ECB/PKCS7 transformation.
func Default() Transformation {
	return Transformation{
		Algorithm: AlgorithmAES,
		Mode:      BlockModeECB,
		Padding:   PaddingPKCS7,
	}
}

// ParseTransformation parses "ALGORITHM[/MODE[/PADDING]]", case-insensitively.
// Omitted parts default to ECB and PKCS7, so "AES" equals Default().
func ParseTransformation(s string) (Transformation, error) {
	const maxParts = 3

	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) > maxParts || parts[0] == "" {
		return Transformation{}, fmt.Errorf("%w: malformed transformation %q", ErrCipherConfiguration, s)
	}

	algo, ok := lookup(Algorithm(parts[0]))
	if !ok {
		return Transformation{}, fmt.Errorf("%w: unknown algorithm %q", ErrCipherConfiguration, parts[0])
	}

	t := Transformation{
		Algorithm: algo.name,
		Mode:      BlockModeECB,
		Padding:   PaddingPKCS7,
	}

	if len(parts) > 1 {
		t.Mode = BlockMode(strings.ToUpper(parts[1]))
	}

	if len(parts) > 2 { //nolint:mnd
		t.Padding = Padding(strings.ToUpper(parts[2]))
	}

	if err := t.Validate(); err != nil {
		return Transformation{}, err
	}

	return t, nil
}

// String returns the transformation as "ALGORITHM/MODE/PADDING".
func (t Transformation) String() string {
	return fmt.Sprintf("%s/%s/%s", t.Algorithm, t.Mode, t.Padding)
}

// Validate reports whether the transformation can be instantiated.
// Returned errors match ErrCipherConfiguration.
func (t Transformation) Validate() error {
	_, err := t.resolve()

	return err
}

// BlockSize returns the cipher block size in bytes, or 0 for an unknown algorithm.
func (t Transformation) BlockSize() int {
	algo, ok := lookup(t.Algorithm)
	if !ok {
		return 0
	}

	return algo.blockSize
}

func (t Transformation) resolve() (algorithm, error) {
	algo, ok := lookup(t.Algorithm)
	if !ok {
		return algorithm{}, fmt.Errorf("%w: unknown algorithm %q", ErrCipherConfiguration, t.Algorithm)
	}

	if t.Mode != BlockModeECB {
		return algorithm{}, fmt.Errorf("%w: unsupported mode %q", ErrCipherConfiguration, t.Mode)
	}

	if t.Padding != PaddingPKCS7 {
		return algorithm{}, fmt.Errorf("%w: unsupported padding %q", ErrCipherConfiguration, t.Padding)
	}

	if t.KeySize != 0 {
		if !algo.acceptsKeySize(t.KeySize) {
			return algorithm{}, fmt.Errorf("%w: %s does not support %d-byte keys",
				ErrCipherConfiguration, algo.name, t.KeySize)
		}

		algo.keySizes = []int{t.KeySize}
	}

	return algo, nil
}

// AlgorithmInfo describes a registered algorithm.
type AlgorithmInfo struct {
	// Name of the algorithm.
	Name Algorithm

	// BlockSize in bytes.
	BlockSize int

	// KeySizes lists the accepted key lengths in bytes.
	KeySizes []int
}

// KeySizesString renders the key sizes compactly, collapsing contiguous runs as "lo-hi".
func (i AlgorithmInfo) KeySizesString() string {
	if len(i.KeySizes) > 2 && i.KeySizes[len(i.KeySizes)-1]-i.KeySizes[0] == len(i.KeySizes)-1 {
		return fmt.Sprintf("%d-%d", i.KeySizes[0], i.KeySizes[len(i.KeySizes)-1])
	}

	sizes := make([]string, len(i.KeySizes))
	for idx, n := range i.KeySizes {
		sizes[idx] = strconv.Itoa(n)
	}

	return strings.Join(sizes, ", ")
}

// Algorithms lists the registered algorithms in registration order.
func Algorithms() []AlgorithmInfo {
	infos := make([]AlgorithmInfo, 0, len(algorithms))
	for _, a := range algorithms {
		infos = append(infos, AlgorithmInfo{
			Name:      a.name,
			BlockSize: a.blockSize,
			KeySizes:  slices.Clone(a.keySizes),
		})
	}

	return infos
}
