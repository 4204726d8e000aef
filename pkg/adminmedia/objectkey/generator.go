// Package objectkey builds bucket-relative storage paths for media uploads.
//
// Every path follows one convention:
//
//	{folder}/{ownerHint}-{unixMillis}-{token}.{ext}
//
// The folder encodes the resource-type namespace (news vs. promotions) and
// the media kind; ownerHint is the record id when it exists, otherwise a
// resource-type tag. The timestamp plus random token keep replacements from
// ever colliding with the path they supersede.
package objectkey

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator is the strategy for turning an upload into a storage path.
type Generator interface {
	GenerateKey(folder, ownerHint, fileName string) string
}

// TimestampedGenerator is the production strategy. The zero value is ready
// to use; Now and Token exist so tests can pin the non-deterministic parts.
type TimestampedGenerator struct {
	Now   func() time.Time
	Token func() string
}

// New returns a TimestampedGenerator backed by the wall clock and random
// UUID-derived tokens.
func New() *TimestampedGenerator {
	return &TimestampedGenerator{}
}

func (g *TimestampedGenerator) GenerateKey(folder, ownerHint, fileName string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	token := randomToken
	if g.Token != nil {
		token = g.Token
	}

	name := fmt.Sprintf("%s-%d-%s", sanitize(ownerHint), now().UnixMilli(), token())
	if ext := extension(fileName); ext != "" {
		name += "." + ext
	}
	return fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), name)
}

// CustomFuncGenerator adapts a plain function to the Generator interface.
type CustomFuncGenerator struct {
	GenerateFunc func(folder, ownerHint, fileName string) string
}

func (g *CustomFuncGenerator) GenerateKey(folder, ownerHint, fileName string) string {
	return g.GenerateFunc(folder, ownerHint, fileName)
}

func randomToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
}

// extension returns the lowercased file extension without the dot, already
// safe for use in a path.
func extension(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(fileName), ".")
	return sanitize(strings.ToLower(ext))
}

func sanitize(component string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
		" ", "_",
	)
	return replacer.Replace(component)
}
