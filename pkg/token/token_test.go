package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmSignature_RoundTrip(t *testing.T) {
	GenerateSecretKey()

	payload := ConfirmPayload{GameID: "0198a2b4-0000-7000-8000-000000000001", Guess: 20}
	signature, err := GenerateConfirmSignature(payload)
	require.NoError(t, err)
	require.NotEmpty(t, signature)

	assert.True(t, ValidateConfirmSignature(payload, signature))
}

func TestConfirmSignature_RejectsTampering(t *testing.T) {
	GenerateSecretKey()

	payload := ConfirmPayload{GameID: "0198a2b4-0000-7000-8000-000000000001", Guess: 20}
	signature, err := GenerateConfirmSignature(payload)
	require.NoError(t, err)

	// 改动payload中的任一字段后签名失效
	tamperedGuess := payload
	tamperedGuess.Guess = 21
	assert.False(t, ValidateConfirmSignature(tamperedGuess, signature))

	tamperedGame := payload
	tamperedGame.GameID = "0198a2b4-0000-7000-8000-000000000002"
	assert.False(t, ValidateConfirmSignature(tamperedGame, signature))

	// 非法的Base64和空签名直接验证失败
	assert.False(t, ValidateConfirmSignature(payload, "不是合法的签名"))
	assert.False(t, ValidateConfirmSignature(payload, ""))
}

// 密钥轮换后旧签名全部失效
func TestConfirmSignature_InvalidAfterKeyRotation(t *testing.T) {
	GenerateSecretKey()

	payload := ConfirmPayload{GameID: "0198a2b4-0000-7000-8000-000000000001", Guess: 20}
	signature, err := GenerateConfirmSignature(payload)
	require.NoError(t, err)

	GenerateSecretKey()
	assert.False(t, ValidateConfirmSignature(payload, signature))
}
