package encryption

import (
	"crypto/cipher"
)

// encryptECB encrypts every block of data independently.
// len(data) must be a multiple of the block size.
func encryptECB(block cipher.Block, data []byte) []byte {
	ciphertext := make([]byte, len(data))
	size := block.BlockSize()

	for i := 0; i < len(data); i += size {
		block.Encrypt(ciphertext[i:i+size], data[i:i+size])
	}

	return ciphertext
}

// decryptECB decrypts every block of data independently.
// len(data) must be a multiple of the block size.
func decryptECB(block cipher.Block, data []byte) []byte {
	plaintext := make([]byte, len(data))
	size := block.BlockSize()

	for i := 0; i < len(data); i += size {
		block.Decrypt(plaintext[i:i+size], data[i:i+size])
	}

	return plaintext
}
