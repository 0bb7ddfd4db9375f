// Package media stores pet photos and videos named "<purpose>_<petId>_<index>.<ext>".
package media

//go:generate go run go.uber.org/mock/mockgen -source=./media.go -destination=./mocks/media_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"pawstay/shared/constant"
	"path/filepath"
	"regexp"
	"strings"
)

const nameSeparator = "_"

var (
	ErrInvalidName = errors.New("invalid media file name")

	idPattern   = regexp.MustCompile(constant.IDPattern)
	partPattern = regexp.MustCompile(`^[a-z0-9]+$`)
)

type Media interface {
	// Save writes one file and returns its reference (path or public URL).
	Save(ctx context.Context, file File) (ref string, err error)
	// List returns the names of every file stored for petID.
	List(ctx context.Context, petID string) (names []string, err error)
	// DeleteAll removes every file stored for petID.
	DeleteAll(ctx context.Context, petID string) (removed int, err error)
}

type File struct {
	PetID       string
	Purpose     string
	Index       int
	Extension   string
	ContentType string
	Data        []byte
}

// Name builds the deterministic file name for f.
func (f File) Name() string {
	return fmt.Sprintf("%s%s%s%s%d.%s", f.Purpose, nameSeparator, f.PetID, nameSeparator, f.Index, f.Extension)
}

// Validate rejects files whose name could collide with another pet or leave the media directory.
func (f File) Validate() error {
	if !idPattern.MatchString(f.PetID) || !partPattern.MatchString(f.Purpose) ||
		!partPattern.MatchString(f.Extension) || f.Index < 0 {
		return fmt.Errorf("%w: %q", ErrInvalidName, f.Name())
	}

	return nil
}

// ParseName splits a stored name back into its purpose and pet id.
func ParseName(name string) (purpose, petID string, ok bool) {
	if filepath.Base(name) != name {
		return "", "", false
	}

	parts := strings.Split(name, nameSeparator)
	if len(parts) != 3 || !idPattern.MatchString(parts[1]) {
		return "", "", false
	}

	return parts[0], parts[1], true
}

// BelongsTo reports whether the file name was built for exactly petID.
func BelongsTo(name, petID string) bool {
	_, owner, ok := ParseName(name)

	return ok && owner == petID
}

func checkPetID(petID string) error {
	if !idPattern.MatchString(petID) {
		return fmt.Errorf("%w: pet id %q", ErrInvalidName, petID)
	}

	return nil
}
