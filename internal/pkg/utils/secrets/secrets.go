package secrets

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrEmptyPassword   = errors.New("empty password")
	ErrUnsupportedHash = errors.New("unsupported hash format")
	ErrMalformedHash   = errors.New("malformed phc string")
)

// Params are the argon2id cost settings encoded into every PHC string.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   int
}

var DefaultParams = Params{
	Time:      2,
	MemoryKiB: 19 * 1024,
	Threads:   1,
	KeyLen:    32,
	SaltLen:   16,
}

// HashPassword returns an argon2id PHC string for password+pepper with DefaultParams.
func HashPassword(password, pepper string) (string, error) {
	return HashPasswordWith(DefaultParams, password, pepper)
}

func HashPasswordWith(p Params, password, pepper string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey([]byte(password+pepper), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.MemoryKiB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

type decoded struct {
	params Params
	salt   []byte
	key    []byte
}

func decode(phc string) (*decoded, error) {
	if !strings.HasPrefix(phc, "$argon2id$") {
		return nil, ErrUnsupportedHash
	}
	parts := strings.Split(phc, "$")
	if len(parts) != 6 {
		return nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, ErrUnsupportedHash
	}

	var m, t uint32
	var th uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &th); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrMalformedHash, err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, fmt.Errorf("%w: key: %v", ErrMalformedHash, err)
	}

	return &decoded{
		params: Params{Time: t, MemoryKiB: m, Threads: th, KeyLen: uint32(len(key)), SaltLen: len(salt)},
		salt:   salt,
		key:    key,
	}, nil
}

// VerifyPassword reports whether password+pepper matches phc.
// An error means the stored hash itself is unusable.
func VerifyPassword(password, pepper, phc string) (bool, error) {
	d, err := decode(phc)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(password+pepper), d.salt, d.params.Time, d.params.MemoryKiB, d.params.Threads, d.params.KeyLen)
	return subtle.ConstantTimeCompare(got, d.key) == 1, nil
}

// NeedsRehash reports whether phc was produced with cost settings other than p.
func NeedsRehash(phc string, p Params) bool {
	d, err := decode(phc)
	if err != nil {
		return true
	}
	return d.params.Time != p.Time || d.params.MemoryKiB != p.MemoryKiB ||
		d.params.Threads != p.Threads || d.params.KeyLen != p.KeyLen
}
