package contracts

// VaultService seals and opens sensitive values at rest. Sealed output is a
// printable envelope safe to store in a document field.
type VaultService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(envelope string) (string, error)
}
