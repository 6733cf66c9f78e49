// Package saved persists banner configurations under short mnemonic codes.
//
// A saved banner is read-only once stored: recalling it re-runs the whole
// resolve and render pipeline against the stored settings, so the image is
// always current. Nothing rendered is ever stored here.
package saved

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/mcbanners/banners/pkg/backend"
	"github.com/mcbanners/banners/pkg/errors"
)

// Mnemonic alphabet: lowercase letters and digits without look-alikes.
const (
	MnemonicAlphabet = "abcdefghijkmnpqrstuvwxyz23456789"
	MnemonicLength   = 10
)

// maxAttempts bounds mnemonic regeneration after collisions.
const maxAttempts = 5

var (
	// ErrNotFound is returned when no banner has the requested mnemonic.
	ErrNotFound = stderrors.New("saved banner not found")
	// ErrDuplicate is returned by a store when the mnemonic is already taken.
	ErrDuplicate = stderrors.New("mnemonic already taken")
)

// Banner is a stored banner configuration.
type Banner struct {
	ID        string             `json:"id" bson:"_id"`
	Mnemonic  string             `json:"mnemonic" bson:"mnemonic"`
	Type      backend.BannerType `json:"banner_type" bson:"banner_type"`
	Owner     string             `json:"owner,omitempty" bson:"owner,omitempty"`
	Settings  map[string]string  `json:"settings" bson:"settings"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Store persists banners.
type Store interface {
	// Insert stores b. It returns ErrDuplicate if b.Mnemonic is taken.
	Insert(ctx context.Context, b *Banner) error
	// LookupByMnemonic returns the banner stored under code, or ErrNotFound.
	LookupByMnemonic(ctx context.Context, code string) (*Banner, error)
	Close(ctx context.Context) error
}

// Service creates and looks up saved banners.
type Service struct {
	store    Store
	now      func() time.Time
	mnemonic func() (string, error)
}

// NewService creates a service over store.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now, mnemonic: NewMnemonic}
}

// NewMnemonic generates a random mnemonic code.
func NewMnemonic() (string, error) {
	return gonanoid.Generate(MnemonicAlphabet, MnemonicLength)
}

// Save stores a copy of settings for banner type t under a fresh mnemonic.
// Settings are stored as given, identifier keys included, so the banner can
// be resolved again on recall.
func (s *Service) Save(ctx context.Context, t backend.BannerType, owner string, settings map[string]string) (*Banner, error) {
	if !t.Valid() {
		return nil, errors.New(errors.ErrCodeInvalidType, "unknown banner type %q", string(t))
	}

	copied := make(map[string]string, len(settings))
	for k, v := range settings {
		copied[k] = v
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		code, err := s.mnemonic()
		if err != nil {
			return nil, fmt.Errorf("generate mnemonic: %w", err)
		}
		b := &Banner{
			ID:        uuid.NewString(),
			Mnemonic:  code,
			Type:      t,
			Owner:     owner,
			Settings:  copied,
			CreatedAt: s.now().UTC(),
		}
		err = s.store.Insert(ctx, b)
		if err == nil {
			return b, nil
		}
		if !stderrors.Is(err, ErrDuplicate) {
			return nil, fmt.Errorf("save banner: %w", err)
		}
	}
	return nil, fmt.Errorf("save banner: no free mnemonic after %d attempts", maxAttempts)
}

// Lookup returns the banner stored under code. A missing banner is reported
// with errors.ErrCodeNotFound.
func (s *Service) Lookup(ctx context.Context, code string) (*Banner, error) {
	b, err := s.store.LookupByMnemonic(ctx, code)
	if stderrors.Is(err, ErrNotFound) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "no saved banner %q", code)
	}
	if err != nil {
		return nil, fmt.Errorf("lookup banner %q: %w", code, err)
	}
	return b, nil
}

// Close closes the underlying store.
func (s *Service) Close(ctx context.Context) error {
	return s.store.Close(ctx)
}
