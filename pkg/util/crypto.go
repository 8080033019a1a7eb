package util

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/inkwells/smart-note-service/pkg/fileurl"
)

// DefaultRSAKeyBits key size for generated signing keys
// DefaultRSAKeyBits 生成签名密钥的默认长度
const DefaultRSAKeyBits = 2048

// GenerateRSAKeyFiles creates a PEM encoded RSA key pair at the given paths.
// Existing files are left untouched.
// GenerateRSAKeyFiles 在指定路径生成 PEM 编码的 RSA 密钥对。
// 已存在的文件不会被覆盖。
func GenerateRSAKeyFiles(privateKeyPath, publicKeyPath string, bits int) error {
	if fileurl.IsExist(privateKeyPath) && fileurl.IsExist(publicKeyPath) {
		return nil
	}
	if bits <= 0 {
		bits = DefaultRSAKeyBits
	}

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return err
	}

	privDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return err
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: privDER})

	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		return err
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	if err := fileurl.CreatePath(privateKeyPath, os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(privateKeyPath, privPEM, 0600); err != nil {
		return err
	}
	if err := fileurl.CreatePath(publicKeyPath, os.ModePerm); err != nil {
		return err
	}
	return os.WriteFile(publicKeyPath, pubPEM, 0644)
}
