package tools

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"

	"toolbox/internal/domain/service"
)

const (
	defaultPasswordLength = 16
	minPasswordLength     = 8
	maxPasswordLength     = 128

	lowerChars  = "abcdefghijklmnopqrstuvwxyz"
	upperChars  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars  = "0123456789"
	symbolChars = "!@#$%^&*()-_=+[]{}<>?"
)

type passwordInput struct {
	Length  int   `json:"length"`
	Digits  *bool `json:"digits"`
	Symbols *bool `json:"symbols"`
}

type passwordResult struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
}

// passwordGenerator produces random passwords containing at least one character of every enabled class.
type passwordGenerator struct {
	defaultLength int
}

func newPasswordGenerator(defaultLength int) *passwordGenerator {
	return &passwordGenerator{defaultLength: defaultLength}
}

func (g *passwordGenerator) Execute(_ context.Context, req *service.ToolRequest) *service.ToolResponse {
	in := passwordInput{}
	if resp := decodePayload(req, &in); resp != nil {
		return resp
	}

	length := in.Length
	if length == 0 {
		length = g.defaultLength
	}
	if length < minPasswordLength || length > maxPasswordLength {
		return service.Failure("length must be between 8 and 128")
	}

	classes := []string{lowerChars, upperChars}
	if in.Digits == nil || *in.Digits {
		classes = append(classes, digitChars)
	}
	if in.Symbols != nil && *in.Symbols {
		classes = append(classes, symbolChars)
	}

	password, err := generatePassword(length, classes)
	if err != nil {
		return service.Failure("random source unavailable")
	}

	return service.Success(passwordResult{Password: password, Length: length})
}

func generatePassword(length int, classes []string) (string, error) {
	out := make([]byte, 0, length)
	for _, class := range classes {
		c, err := pick(class)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	all := strings.Join(classes, "")
	for len(out) < length {
		c, err := pick(all)
		if err != nil {
			return "", err
		}
		out = append(out, c)
	}

	// Fisher-Yates so the guaranteed characters are not always in front.
	for i := len(out) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		out[i], out[j.Int64()] = out[j.Int64()], out[i]
	}

	return string(out), nil
}

func pick(chars string) (byte, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
	if err != nil {
		return 0, err
	}

	return chars[n.Int64()], nil
}
