package resettokengenerator

import (
	"crypto/rand"
	"encoding/hex"
	"io"
	"pwreset/internal/core/domain/user"
)

const tokenBytes = 20

type Generator struct {
	random io.Reader
}

func NewGenerator() *Generator {
	return &Generator{random: rand.Reader}
}

// GeneratePasswordResetToken returns 20 random bytes as 40 lowercase hex characters.
func (g *Generator) GeneratePasswordResetToken() (user.PasswordResetToken, error) {
	b := make([]byte, tokenBytes)
	if _, err := io.ReadFull(g.random, b); err != nil {
		return user.PasswordResetToken(""), err
	}
	return user.PasswordResetToken(hex.EncodeToString(b)), nil
}
