package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/accountvault/internal/crypto/domain"
	cryptoService "github.com/allisson/accountvault/internal/crypto/service"
	otpService "github.com/allisson/accountvault/internal/otp/service"
	userDomain "github.com/allisson/accountvault/internal/user/domain"
	userMocks "github.com/allisson/accountvault/internal/user/http/mocks"
	userUsecase "github.com/allisson/accountvault/internal/user/usecase"
)

const localKeyURI = "base64key://smGbjm71Nxd1Ig5FS0wj9SlbzAIrnolCz9bQQ6uAhl4="

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestCipher(t *testing.T) *cryptoService.SecretCipherService {
	t.Helper()
	key, err := cryptoDomain.DeriveKey("appsecret")
	require.NoError(t, err)
	cipher, err := cryptoService.NewSecretCipher(key, cryptoDomain.AESGCM, cryptoService.NewAEADManager())
	require.NoError(t, err)
	return cipher
}

func TestRunCreateUser(t *testing.T) {
	ctx := context.Background()
	user := &userDomain.User{
		ID:        uuid.Must(uuid.NewV7()),
		Email:     "john@example.com",
		CreatedAt: time.Now().UTC(),
	}

	t.Run("password-flag-text", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, userUsecase.RegisterInput{
			Email:    "john@example.com",
			Password: "correct-horse",
		}).Return(user, nil).Once()

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, discardLogger(), "john@example.com", "correct-horse", "text",
			IOTuple{Writer: &out})

		require.NoError(t, err)
		assert.Contains(t, out.String(), "User created successfully!")
		assert.Contains(t, out.String(), "id: "+user.ID.String())
		assert.NotContains(t, out.String(), "correct-horse")
		mockUseCase.AssertExpectations(t)
	})

	t.Run("prompted-password-json", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, userUsecase.RegisterInput{
			Email:    "john@example.com",
			Password: "correct-horse",
		}).Return(user, nil).Once()

		var out bytes.Buffer
		err := RunCreateUser(ctx, mockUseCase, discardLogger(), "john@example.com", "", "json",
			IOTuple{Reader: strings.NewReader("correct-horse\n"), Writer: &out})
		require.NoError(t, err)

		jsonPart := out.String()[strings.Index(out.String(), "{"):]
		var result map[string]string
		require.NoError(t, json.Unmarshal([]byte(jsonPart), &result))
		assert.Equal(t, user.ID.String(), result["id"])
		assert.Equal(t, "john@example.com", result["email"])
		mockUseCase.AssertExpectations(t)
	})

	t.Run("duplicate-email", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}
		mockUseCase.On("Register", ctx, mock.Anything).Return(nil, userDomain.ErrUserAlreadyExists).Once()

		err := RunCreateUser(ctx, mockUseCase, discardLogger(), "john@example.com", "correct-horse", "text",
			IOTuple{Writer: &bytes.Buffer{}})

		assert.ErrorIs(t, err, userDomain.ErrUserAlreadyExists)
	})

	t.Run("no-input", func(t *testing.T) {
		mockUseCase := &userMocks.MockUserUseCase{}

		err := RunCreateUser(ctx, mockUseCase, discardLogger(), "john@example.com", "", "text",
			IOTuple{Writer: &bytes.Buffer{}})

		assert.ErrorContains(t, err, "failed to read password")
		mockUseCase.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})
}

func TestRunDeriveOTP(t *testing.T) {
	generator, err := otpService.NewTotpService(180 * time.Second)
	require.NoError(t, err)
	at := time.Unix(1700000000, 0)

	t.Run("text", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunDeriveOTP(generator, "JBSWY3DPEHPK3PXP", at, "text", &out))
		assert.Equal(t, "otp: 610861\nleft: 100\n", out.String())
	})

	t.Run("json", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunDeriveOTP(generator, "jbsw y3dp ehpk 3pxp", at, "json", &out))

		var result map[string]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &result))
		assert.Equal(t, map[string]string{"otp": "610861", "left": "100"}, result)
	})

	t.Run("invalid-seed", func(t *testing.T) {
		err := RunDeriveOTP(generator, "not-base32!", at, "text", &bytes.Buffer{})
		assert.ErrorContains(t, err, "not valid base32")
	})

	t.Run("empty-seed", func(t *testing.T) {
		err := RunDeriveOTP(generator, "", at, "text", &bytes.Buffer{})
		assert.ErrorContains(t, err, "seed is required")
	})
}

func TestRunEncryptValue(t *testing.T) {
	cipher := newTestCipher(t)

	t.Run("flag-value", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunEncryptValue(cipher, "hunter2", "text", IOTuple{Writer: &out}))

		token := strings.TrimPrefix(strings.TrimSpace(out.String()), "ciphertext: ")
		plaintext, ok := cipher.Decrypt(token)
		require.True(t, ok)
		assert.Equal(t, "hunter2", plaintext)
	})

	t.Run("prompted-value", func(t *testing.T) {
		var out bytes.Buffer
		err := RunEncryptValue(cipher, "", "json",
			IOTuple{Reader: strings.NewReader("JBSWY3DPEHPK3PXP"), Writer: &out})
		require.NoError(t, err)

		jsonPart := out.String()[strings.Index(out.String(), "{"):]
		var result map[string]string
		require.NoError(t, json.Unmarshal([]byte(jsonPart), &result))
		plaintext, ok := cipher.Decrypt(result["ciphertext"])
		require.True(t, ok)
		assert.Equal(t, "JBSWY3DPEHPK3PXP", plaintext)
	})

	t.Run("empty-value", func(t *testing.T) {
		err := RunEncryptValue(cipher, "", "text",
			IOTuple{Reader: strings.NewReader("\n"), Writer: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "value is required")
	})
}

type failingKMSService struct {
	cryptoService.KMSService
}

func (failingKMSService) WrapSecret(ctx context.Context, keyURI, plaintext string) (string, error) {
	return "", errors.New("kms unavailable")
}

func TestRunWrapSecret(t *testing.T) {
	ctx := context.Background()
	kms := cryptoService.NewKMSService()

	t.Run("wraps-and-unwraps", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, RunWrapSecret(ctx, kms, localKeyURI, "JWT_SECRET", "signing-secret", IOTuple{Writer: &out}))

		assert.Contains(t, out.String(), `KMS_KEY_URI="`+localKeyURI+`"`)

		var wrapped string
		for _, line := range strings.Split(out.String(), "\n") {
			if strings.HasPrefix(line, "JWT_SECRET=") {
				wrapped = strings.Trim(strings.TrimPrefix(line, "JWT_SECRET="), `"`)
			}
		}
		require.NotEmpty(t, wrapped)

		plaintext, err := kms.UnwrapSecret(ctx, localKeyURI, wrapped)
		require.NoError(t, err)
		assert.Equal(t, "signing-secret", plaintext)
	})

	t.Run("invalid-name", func(t *testing.T) {
		err := RunWrapSecret(ctx, kms, localKeyURI, "DB_PASSWORD", "x", IOTuple{Writer: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "invalid secret name")
	})

	t.Run("missing-key-uri", func(t *testing.T) {
		err := RunWrapSecret(ctx, kms, "", "APP_SECRET", "x", IOTuple{Writer: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "--kms-key-uri is required")
	})

	t.Run("kms-failure", func(t *testing.T) {
		err := RunWrapSecret(ctx, failingKMSService{}, localKeyURI, "APP_SECRET", "x", IOTuple{Writer: &bytes.Buffer{}})
		assert.ErrorContains(t, err, "kms unavailable")
	})
}
