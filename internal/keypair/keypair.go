// Package keypair generates RSA key pairs in the formats the metadata API
// consumers expect: a PKCS#8 PEM private key and an OpenSSH
// authorized_keys-style public key.
package keypair

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"golang.org/x/crypto/ssh"
)

const keyBits = 2048

// Generate creates a new 2048-bit RSA key pair. It returns the private key
// PEM-encoded in PKCS#8 form and the public key in OpenSSH wire format
// (the single-line "ssh-rsa AAAA..." representation).
func Generate() (privatePEM string, publicOpenSSH string, err error) {
	key, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return "", "", fmt.Errorf("generating rsa key: %w", err)
	}

	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return "", "", fmt.Errorf("marshalling private key: %w", err)
	}
	block := &pem.Block{Type: "PRIVATE KEY", Bytes: der}

	pub, err := ssh.NewPublicKey(&key.PublicKey)
	if err != nil {
		return "", "", fmt.Errorf("encoding public key: %w", err)
	}

	return string(pem.EncodeToMemory(block)), string(ssh.MarshalAuthorizedKey(pub)), nil
}
