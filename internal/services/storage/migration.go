package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// EnableEncryption encrypts all stored blobs with the given password
func (s *Store) EnableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encrypted {
		return fmt.Errorf("encryption is already enabled")
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	recipient, err := age.NewScryptRecipient(password)
	if err != nil {
		return fmt.Errorf("failed to create recipient: %w", err)
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Create verification file first
	verifyPath := filepath.Join(s.baseDir, verifyFile)
	encrypted, err := encryptData([]byte(verifyMagic), recipient)
	if err != nil {
		return fmt.Errorf("failed to encrypt verification file: %w", err)
	}
	if err := os.WriteFile(verifyPath, encrypted, 0644); err != nil {
		return fmt.Errorf("failed to write verification file: %w", err)
	}

	// Encrypt every existing blob in place
	for _, key := range allKeys() {
		path := s.path(key)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if isAgeEncrypted(data) {
			continue
		}

		encrypted, err := encryptData(data, recipient)
		if err != nil {
			return fmt.Errorf("failed to encrypt %s: %w", key, err)
		}
		if err := s.atomicWrite(path, encrypted, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	// Write the marker last so a partial migration stays readable
	markerPath := filepath.Join(s.baseDir, markerFile)
	if err := os.WriteFile(markerPath, []byte{}, 0644); err != nil {
		return fmt.Errorf("failed to write marker file: %w", err)
	}

	s.encrypted = true
	s.identity = identity
	s.recipient = recipient

	return nil
}

// DisableEncryption decrypts all stored blobs back to plaintext
func (s *Store) DisableEncryption(password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return fmt.Errorf("encryption is not enabled")
	}

	identity, err := age.NewScryptIdentity(password)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Verify the password before touching any data
	verifyPath := filepath.Join(s.baseDir, verifyFile)
	verifyData, err := os.ReadFile(verifyPath)
	if err != nil {
		return fmt.Errorf("failed to read verification file: %w", err)
	}
	decrypted, err := decryptData(verifyData, identity)
	if err != nil || string(decrypted) != verifyMagic {
		return fmt.Errorf("incorrect password")
	}

	for _, key := range allKeys() {
		path := s.path(key)
		data, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !isAgeEncrypted(data) {
			continue
		}

		plain, err := decryptData(data, identity)
		if err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", key, err)
		}
		if err := s.atomicWrite(path, plain, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	if err := os.Remove(filepath.Join(s.baseDir, markerFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove marker file: %w", err)
	}
	if err := os.Remove(verifyPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove verification file: %w", err)
	}

	s.encrypted = false
	s.identity = nil
	s.recipient = nil

	return nil
}

func allKeys() []string {
	return []string{
		KeyTransactions,
		KeyDailySpending,
		KeyDreams,
		KeyJourney,
		KeyRetirement,
	}
}
