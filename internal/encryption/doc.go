// Package encryption provides whole-file symmetric encryption using a block
// cipher in ECB mode with PKCS#7 padding.
// The key string is used as raw key material and the output carries no header,
// so the same key and transformation must be supplied to decrypt it again.
// Files are read into memory in full; one call performs one cipher operation.
package encryption
