package encryption

// Mode selects the direction of a transform.
type Mode byte

const (
	// ModeEncrypt pads and encrypts the input.
	ModeEncrypt Mode = iota
	// ModeDecrypt decrypts the input and strips its padding.
	ModeDecrypt
)

// String returns the lower-case name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEncrypt:
		return "encrypt"
	case ModeDecrypt:
		return "decrypt"
	default:
		return "unknown"
	}
}
