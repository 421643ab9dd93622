package ai

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/habitflow/habitflow/internal/config"
)

// Keystore holds provider API keys encrypted at rest in the data dir,
// so a coaching credential never sits in plaintext next to the habit
// database. The encryption key never touches disk; it is re-derived on
// every open from the hostname and data dir path. That ties the file to
// this machine and keeps casual reads out, though it is obfuscation
// against local attackers rather than real secrecy.
type Keystore struct {
	path string
	key  []byte
}

// keystoreData is the on-disk layout: provider name to encrypted key.
type keystoreData struct {
	Keys map[string]string `json:"keys"`
}

// NewKeystore opens the keystore at its well-known location in the data
// dir, creating nothing until the first Set.
func NewKeystore() (*Keystore, error) {
	paths := config.GetPaths()
	return &Keystore{
		path: filepath.Join(paths.DataDir, "keystore.enc"),
		key:  machineKey(paths.DataDir),
	}, nil
}

// machineKey derives the AES key from machine-local identity.
func machineKey(dataDir string) []byte {
	hostname, _ := os.Hostname()
	sum := sha256.Sum256([]byte(hostname + ":" + dataDir))
	return sum[:]
}

// Set encrypts and stores the API key for a provider.
func (k *Keystore) Set(provider, apiKey string) error {
	data, err := k.load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	encrypted, err := k.encrypt(apiKey)
	if err != nil {
		return err
	}

	if data.Keys == nil {
		data.Keys = make(map[string]string)
	}
	data.Keys[provider] = encrypted

	return k.save(data)
}

// Get returns the decrypted API key for a provider.
func (k *Keystore) Get(provider string) (string, error) {
	data, err := k.load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("no API key configured for %s", provider)
		}
		return "", err
	}

	encrypted, ok := data.Keys[provider]
	if !ok {
		return "", fmt.Errorf("no API key configured for %s", provider)
	}

	return k.decrypt(encrypted)
}

// Delete removes a provider's key. Deleting a key that was never stored
// is not an error.
func (k *Keystore) Delete(provider string) error {
	data, err := k.load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	delete(data.Keys, provider)
	return k.save(data)
}

// List names every provider with a stored key.
func (k *Keystore) List() ([]string, error) {
	data, err := k.load()
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	providers := make([]string, 0, len(data.Keys))
	for p := range data.Keys {
		providers = append(providers, p)
	}
	return providers, nil
}

func (k *Keystore) load() (*keystoreData, error) {
	raw, err := os.ReadFile(k.path)
	if err != nil {
		return &keystoreData{}, err
	}

	var data keystoreData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (k *Keystore) save(data *keystoreData) error {
	if err := os.MkdirAll(filepath.Dir(k.path), 0o700); err != nil {
		return err
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	// Chmod after write: WriteFile's mode is ignored for a pre-existing file.
	if err := os.WriteFile(k.path, raw, 0o600); err != nil {
		return err
	}
	return os.Chmod(k.path, 0o600)
}

// encrypt seals plaintext with AES-GCM, nonce prefixed, base64 encoded.
func (k *Keystore) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(k.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (k *Keystore) decrypt(encoded string) (string, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(k.key)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(sealed) < nonceSize {
		return "", errors.New("ciphertext too short")
	}

	nonce, ciphertext := sealed[:nonceSize], sealed[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}
