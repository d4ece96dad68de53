package domain

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeKeeper unwraps by reversing the ciphertext, enough to exercise the
// KMS path without a real keeper.
type fakeKeeper struct {
	plaintext []byte
	err       error
}

func (f *fakeKeeper) Decrypt(_ context.Context, _ []byte) ([]byte, error) {
	return f.plaintext, f.err
}

func TestLoadMasterKeyFromEnv(t *testing.T) {
	validKey := base64.URLEncoding.EncodeToString(make([]byte, MasterKeySize))

	tests := []struct {
		name    string
		envVal  string
		wantErr error
	}{
		{
			name:   "valid key",
			envVal: validKey,
		},
		{
			name:    "missing key",
			envVal:  "",
			wantErr: ErrMasterKeyNotSet,
		},
		{
			name:    "not base64",
			envVal:  "this-is-not-a-base64-key!",
			wantErr: ErrInvalidMasterKey,
		},
		{
			name:    "wrong length",
			envVal:  base64.URLEncoding.EncodeToString([]byte("short")),
			wantErr: ErrInvalidMasterKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MASTER_KEY", tt.envVal)

			mk, err := LoadMasterKeyFromEnv(context.Background(), nil)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, mk)
				return
			}

			require.NoError(t, err)
			assert.Len(t, mk.Key, MasterKeySize)
			mk.Close()
			assert.Nil(t, mk.Key)
		})
	}
}

func TestLoadMasterKeyFromEnv_DoesNotEchoValue(t *testing.T) {
	badValue := "c2VjcmV0LXZhbHVl" // decodes fine but wrong length
	t.Setenv("MASTER_KEY", badValue)

	_, err := LoadMasterKeyFromEnv(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidMasterKey)
	assert.NotContains(t, err.Error(), badValue)
	assert.Contains(t, err.Error(), "32-byte")
}

func TestLoadMasterKeyFromEnv_WithKeeper(t *testing.T) {
	wrapped := base64.URLEncoding.EncodeToString([]byte("wrapped-key-blob"))
	t.Setenv("MASTER_KEY", wrapped)

	t.Run("unwraps through keeper", func(t *testing.T) {
		keeper := &fakeKeeper{plaintext: make([]byte, MasterKeySize)}
		mk, err := LoadMasterKeyFromEnv(context.Background(), keeper)
		require.NoError(t, err)
		assert.Len(t, mk.Key, MasterKeySize)
	})

	t.Run("keeper failure is an invalid key", func(t *testing.T) {
		keeper := &fakeKeeper{err: errors.New("kms unavailable")}
		_, err := LoadMasterKeyFromEnv(context.Background(), keeper)
		assert.ErrorIs(t, err, ErrInvalidMasterKey)
	})

	t.Run("unwrapped key of wrong size is rejected", func(t *testing.T) {
		keeper := &fakeKeeper{plaintext: []byte("too-short")}
		_, err := LoadMasterKeyFromEnv(context.Background(), keeper)
		assert.ErrorIs(t, err, ErrInvalidMasterKey)
	})
}

func TestGenerateMasterKey(t *testing.T) {
	encoded, err := GenerateMasterKey()
	require.NoError(t, err)

	key, err := base64.URLEncoding.DecodeString(encoded)
	require.NoError(t, err)
	assert.Len(t, key, MasterKeySize)

	// A generated key must be accepted by the loader.
	t.Setenv("MASTER_KEY", encoded)
	mk, err := LoadMasterKeyFromEnv(context.Background(), nil)
	require.NoError(t, err)
	mk.Close()

	// Two generated keys must differ.
	other, err := GenerateMasterKey()
	require.NoError(t, err)
	assert.NotEqual(t, encoded, other)
}

func TestZero(t *testing.T) {
	b := []byte{1, 2, 3}
	Zero(b)
	assert.Equal(t, []byte{0, 0, 0}, b)

	Zero(nil) // must not panic
}
