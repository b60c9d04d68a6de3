package catalog

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"

	"github.com/goliatone/go-errors"
)

// CipherMode selects how prices are encrypted at rest.
type CipherMode string

const (
	// CipherModeGCM is AES-256-GCM with a fresh random nonce per call. The
	// same amount produces different ciphertext on every encryption.
	CipherModeGCM CipherMode = "gcm"
	// CipherModeLegacyCBC is AES-256-CBC with key and IV derived from the
	// secret alone (OpenSSL EVP_BytesToKey, MD5, no salt). Deterministic and
	// byte compatible with records written by the legacy system. Weak; only
	// use it while old ciphertext still needs to be readable.
	CipherModeLegacyCBC CipherMode = "legacy-cbc"
)

const gcmNonceSize = 12

// PriceCipher is the reversible transform applied to a currency amount
// before storage. The amount's shortest decimal string representation is
// what gets encrypted, so Decrypt(Encrypt(x)) == x exactly.
type PriceCipher struct {
	mode   CipherMode
	gcmKey []byte
	cbcKey []byte
	cbcIV  []byte
	logger Logger
}

// NewPriceCipher derives cipher material from the process wide secret. An
// empty secret is a configuration error and fails construction; there is no
// insecure default.
func NewPriceCipher(secret string, mode CipherMode, logger Logger) (*PriceCipher, error) {
	if secret == "" {
		return nil, errors.New("price cipher secret must not be empty", errors.CategoryValidation)
	}
	if logger == nil {
		logger = defLogger{}
	}

	if mode == "" {
		mode = CipherModeGCM
	}

	switch mode {
	case CipherModeGCM, CipherModeLegacyCBC:
	default:
		return nil, errors.New("unknown price cipher mode: "+string(mode), errors.CategoryValidation)
	}

	gcmKey := sha256.Sum256([]byte(secret))
	cbcKey, cbcIV := evpBytesToKey([]byte(secret), 32, aes.BlockSize)

	return &PriceCipher{
		mode:   mode,
		gcmKey: gcmKey[:],
		cbcKey: cbcKey,
		cbcIV:  cbcIV,
		logger: logger,
	}, nil
}

// Mode reports the active cipher mode
func (pc *PriceCipher) Mode() CipherMode {
	return pc.mode
}

// Encrypt transforms a non negative amount into hex ciphertext
func (pc *PriceCipher) Encrypt(amount float64) (string, error) {
	if amount < 0 {
		return "", errors.New("price must not be negative", errors.CategoryValidation)
	}

	plaintext := []byte(strconv.FormatFloat(amount, 'f', -1, 64))

	if pc.mode == CipherModeLegacyCBC {
		return pc.encryptCBC(plaintext)
	}
	return pc.encryptGCM(plaintext)
}

// Decrypt is the inverse transform. Any malformed ciphertext or wrong key
// surfaces as ErrPriceUnreadable, never as a plausible looking wrong amount.
func (pc *PriceCipher) Decrypt(ciphertext string) (float64, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		pc.logger.Debug("price ciphertext is not valid hex", "error", err)
		return 0, ErrPriceUnreadable
	}

	var plaintext []byte
	if pc.mode == CipherModeLegacyCBC {
		plaintext, err = pc.decryptCBC(raw)
	} else {
		plaintext, err = pc.decryptGCM(raw)
	}
	if err != nil {
		pc.logger.Debug("price decryption failed", "mode", pc.mode, "error", err)
		return 0, ErrPriceUnreadable
	}

	amount, err := strconv.ParseFloat(string(plaintext), 64)
	if err != nil {
		pc.logger.Debug("decrypted price is not a number", "error", err)
		return 0, ErrPriceUnreadable
	}

	return amount, nil
}

func (pc *PriceCipher) encryptGCM(plaintext []byte) (string, error) {
	aesgcm, err := pc.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcmNonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to generate nonce")
	}

	sealed := aesgcm.Seal(nil, nonce, plaintext, nil)
	return hex.EncodeToString(append(nonce, sealed...)), nil
}

func (pc *PriceCipher) decryptGCM(raw []byte) ([]byte, error) {
	aesgcm, err := pc.gcm()
	if err != nil {
		return nil, err
	}

	if len(raw) < gcmNonceSize {
		return nil, errors.New("ciphertext shorter than nonce", errors.CategoryOperation)
	}

	return aesgcm.Open(nil, raw[:gcmNonceSize], raw[gcmNonceSize:], nil)
}

func (pc *PriceCipher) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(pc.gcmKey)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to initialize cipher")
	}
	return cipher.NewGCM(block)
}

func (pc *PriceCipher) encryptCBC(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(pc.cbcKey)
	if err != nil {
		return "", errors.Wrap(err, errors.CategoryInternal, "failed to initialize cipher")
	}

	padded := pkcs7Pad(plaintext, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, pc.cbcIV).CryptBlocks(out, padded)

	return hex.EncodeToString(out), nil
}

func (pc *PriceCipher) decryptCBC(raw []byte) ([]byte, error) {
	block, err := aes.NewCipher(pc.cbcKey)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to initialize cipher")
	}

	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, errors.New("ciphertext is not block aligned", errors.CategoryOperation)
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, pc.cbcIV).CryptBlocks(out, raw)

	return pkcs7Unpad(out, aes.BlockSize)
}

// evpBytesToKey replicates OpenSSL's saltless MD5 key derivation so legacy
// mode reads ciphertext produced by crypto.createCipher("aes-256-cbc", key).
func evpBytesToKey(secret []byte, keyLen, ivLen int) (key, iv []byte) {
	var material, digest []byte
	for len(material) < keyLen+ivLen {
		h := md5.New()
		h.Write(digest)
		h.Write(secret)
		digest = h.Sum(nil)
		material = append(material, digest...)
	}
	return material[:keyLen], material[keyLen : keyLen+ivLen]
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data)+n)
	copy(padded, data)
	for i := len(data); i < len(padded); i++ {
		padded[i] = byte(n)
	}
	return padded
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 {
		return nil, errors.New("empty plaintext", errors.CategoryOperation)
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return nil, errors.New("invalid padding", errors.CategoryOperation)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, errors.New("invalid padding", errors.CategoryOperation)
		}
	}
	return data[:len(data)-n], nil
}
