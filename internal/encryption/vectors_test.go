package encryption_test

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/filecrypt/internal/encryption"
)

// Vector is a single known-answer case from a YAML golden file.
type Vector struct {
	Description string `yaml:"description"`
	Key         string `yaml:"key"`
	Plaintext   string `yaml:"plaintext"`
	Ciphertext  string `yaml:"ciphertext"`
}

// VectorGroup is a named collection of vectors sharing a transformation.
type VectorGroup struct {
	Name           string   `yaml:"name"`
	Description    string   `yaml:"description,omitempty"`
	Transformation string   `yaml:"transformation"`
	Cases          []Vector `yaml:"cases"`
}

func loadVectors(t *testing.T) []VectorGroup {
	t.Helper()

	files, err := filepath.Glob("testdata/*.yml")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata/*.yml files found")
	}

	var all []VectorGroup

	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // test helper reads known testdata files
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		var groups []VectorGroup
		if err := yaml.Unmarshal(data, &groups); err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}

		all = append(all, groups...)
	}

	return all
}

func mustHex(t *testing.T, s string) []byte {
	t.Helper()

	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("decoding %q: %v", s, err)
	}

	return b
}

// TestKnownAnswers checks the first ECB block against published vectors and
// that the trailing block equals the ciphertext of an empty input.
func TestKnownAnswers(t *testing.T) {
	t.Parallel()

	for _, g := range loadVectors(t) {
		t.Run(g.Name, func(t *testing.T) {
			t.Parallel()

			transformation, err := encryption.ParseTransformation(g.Transformation)
			if err != nil {
				t.Fatalf("ParseTransformation(%q): %v", g.Transformation, err)
			}

			tr := encryption.New(transformation)
			blockSize := transformation.BlockSize()

			for _, tc := range g.Cases {
				t.Run(tc.Description, func(t *testing.T) {
					t.Parallel()

					key := string(mustHex(t, tc.Key))
					plaintext := mustHex(t, tc.Plaintext)
					want := mustHex(t, tc.Ciphertext)

					got, err := tr.EncryptBytes(key, plaintext)
					if err != nil {
						t.Fatalf("EncryptBytes: %v", err)
					}

					if len(got) != len(plaintext)+blockSize {
						t.Fatalf("ciphertext length = %d, want %d", len(got), len(plaintext)+blockSize)
					}

					if !bytes.Equal(got[:blockSize], want) {
						t.Errorf("first block = %x, want %x", got[:blockSize], want)
					}

					padBlock, err := tr.EncryptBytes(key, nil)
					if err != nil {
						t.Fatalf("EncryptBytes(empty): %v", err)
					}

					if !bytes.Equal(got[blockSize:], padBlock) {
						t.Errorf("padding block = %x, want %x", got[blockSize:], padBlock)
					}

					back, err := tr.DecryptBytes(key, got)
					if err != nil {
						t.Fatalf("DecryptBytes: %v", err)
					}

					if !bytes.Equal(back, plaintext) {
						t.Errorf("round trip = %x, want %x", back, plaintext)
					}
				})
			}
		})
	}
}
