package encryption

import (
	"crypto/cipher"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/idelchi/filecrypt/internal/fileutil"
)

const ownerReadWrite = 0o600

// Transform encrypts and decrypts whole files with a fixed Transformation.
// It holds no key and no state between calls, so it is safe for concurrent use.
type Transform struct {
	// transformation is the algorithm/mode/padding triple used for every call
	transformation Transformation
}

// New creates a Transform for t.
// An invalid transformation is reported by each call as KindCipherConfiguration.
func New(t Transformation) *Transform {
	return &Transform{transformation: t}
}

// Transformation returns the transformation used by the Transform.
func (tr *Transform) Transformation() Transformation {
	return tr.transformation
}

// Encrypt encrypts inputPath with key and writes the ciphertext to outputPath
// using the default transformation.
func Encrypt(key, inputPath, outputPath string) error {
	return New(Default()).Encrypt(key, inputPath, outputPath)
}

// Decrypt decrypts inputPath with key and writes the plaintext to outputPath
// using the default transformation.
func Decrypt(key, inputPath, outputPath string) error {
	return New(Default()).Decrypt(key, inputPath, outputPath)
}

// Encrypt encrypts inputPath with key and writes the ciphertext to outputPath.
func (tr *Transform) Encrypt(key, inputPath, outputPath string) error {
	return tr.transformFile(ModeEncrypt, key, inputPath, outputPath)
}

// Decrypt decrypts inputPath with key and writes the plaintext to outputPath.
func (tr *Transform) Decrypt(key, inputPath, outputPath string) error {
	return tr.transformFile(ModeDecrypt, key, inputPath, outputPath)
}

// EncryptBytes returns the padded ciphertext of data.
func (tr *Transform) EncryptBytes(key string, data []byte) ([]byte, error) {
	block, err := tr.newBlock(ModeEncrypt, key)
	if err != nil {
		return nil, err
	}

	return tr.apply(ModeEncrypt, block, data, "")
}

// DecryptBytes returns the plaintext of data with its padding removed.
func (tr *Transform) DecryptBytes(key string, data []byte) ([]byte, error) {
	block, err := tr.newBlock(ModeDecrypt, key)
	if err != nil {
		return nil, err
	}

	return tr.apply(ModeDecrypt, block, data, "")
}

// transformFile runs one read-transform-write cycle.
// The output path is only written after the transform succeeded.
func (tr *Transform) transformFile(mode Mode, key, inputPath, outputPath string) error {
	block, err := tr.newBlock(mode, key)
	if err != nil {
		return err
	}

	input, err := readInput(inputPath)
	if err != nil {
		return newError(mode, KindIO, inputPath, err)
	}

	output, err := tr.apply(mode, block, input, inputPath)
	if err != nil {
		return err
	}

	if err := fileutil.WriteFile(outputPath, output, ownerReadWrite); err != nil {
		return newError(mode, KindIO, outputPath, err)
	}

	return nil
}

// newBlock derives key material from the raw bytes of key and initializes the cipher.
func (tr *Transform) newBlock(mode Mode, key string) (cipher.Block, error) {
	algo, err := tr.transformation.resolve()
	if err != nil {
		return nil, newError(mode, KindCipherConfiguration, "", err)
	}

	material := []byte(key)

	if !algo.acceptsKeySize(len(material)) {
		return nil, newError(mode, KindUnsupportedKeySize, "",
			fmt.Errorf("%w: %s does not accept %d-byte keys", errKeySize, algo.name, len(material)))
	}

	block, err := algo.newCipher(material)
	if err != nil {
		return nil, newError(mode, KindUnsupportedKeySize, "", fmt.Errorf("creating cipher: %w", err))
	}

	return block, nil
}

// apply performs the single-shot transform of data in the given direction.
func (tr *Transform) apply(mode Mode, block cipher.Block, data []byte, path string) ([]byte, error) {
	if mode == ModeEncrypt {
		return encryptECB(block, pkcs7Pad(data, block.BlockSize())), nil
	}

	if len(data) == 0 {
		return nil, newError(mode, KindCipherData, path, ErrEmptyData)
	}

	if len(data)%block.BlockSize() != 0 {
		return nil, newError(mode, KindCipherData, path,
			fmt.Errorf("%w: %d bytes", ErrInvalidBlockSize, len(data)))
	}

	plaintext, err := pkcs7Unpad(decryptECB(block, data), block.BlockSize())
	if err != nil {
		return nil, newError(mode, KindCipherData, path, fmt.Errorf("removing padding: %w", err))
	}

	return plaintext, nil
}

// readInput reads the whole file into a buffer sized to its length at open time.
// A short read or data beyond that length fails with ErrInputChanged.
func readInput(path string) (data []byte, err error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}

	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing input file: %w", cerr)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file info: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("input %q is a directory", path)
	}

	data = make([]byte, info.Size())

	if _, err := io.ReadFull(file, data); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: expected %d bytes", ErrInputChanged, info.Size())
		}

		return nil, fmt.Errorf("reading input file: %w", err)
	}

	var probe [1]byte

	n, err := file.Read(probe[:])
	if n > 0 {
		return nil, fmt.Errorf("%w: grew beyond %d bytes", ErrInputChanged, info.Size())
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading input file: %w", err)
	}

	return data, nil
}
