// Package id provides prefixed ULID generation for the gateway.
//
// Message and request identifiers are ULIDs so transcripts sort
// chronologically without comparing timestamps. Prefixes ("msg_*",
// "user_*", "req_*") keep logs readable when ids from different
// surfaces mix.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// MessageID identifies a conversation message.
type MessageID string

// RequestID identifies a proxied API request.
type RequestID string

const (
	messagePrefix     = "msg"
	userMessagePrefix = "user"
	requestPrefix     = "req"
)

// Generator generates ULIDs with optional prefixes.
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance.
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a generator backed by crypto/rand entropy.
func NewGenerator() *Generator {
	return &Generator{entropy: rand.Reader}
}

// NewGeneratorWithEntropy creates a generator with a custom entropy
// source, for deterministic tests.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{entropy: entropy}
}

// Generate creates a new ULID.
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string.
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string.
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewMessageID generates an id for an assistant message.
func NewMessageID() MessageID {
	return MessageID(Default().GenerateWithPrefix(messagePrefix))
}

// NewUserMessageID generates an id for a user message.
func NewUserMessageID() MessageID {
	return MessageID(Default().GenerateWithPrefix(userMessagePrefix))
}

// NewRequestID generates an id for a proxied request.
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(requestPrefix))
}

func (id MessageID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }
