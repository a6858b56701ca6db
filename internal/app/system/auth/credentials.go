package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Identity is who a credential pair signs in as.
type Identity struct {
	Role     string
	Name     string
	FarmName string
}

// CredentialPair binds a username/password to the identity it unlocks.
type CredentialPair struct {
	Username string
	Password string
	Identity Identity
}

// AdminIdentity and FarmerIdentity are the identities behind the two accounts.
var (
	AdminIdentity  = Identity{Role: RoleAdmin, Name: "Admin User"}
	FarmerIdentity = Identity{Role: RoleFarmer, Name: "John Smith", FarmName: "Green Valley Farm"}
)

var errDuplicateUsername = errors.New("duplicate username")

type credential struct {
	hash     []byte
	identity Identity
}

// Credentials verifies login attempts against a fixed set of pairs.
// Passwords are held only as bcrypt hashes.
type Credentials struct {
	byUsername map[string]credential
}

// NewCredentials hashes each pair's password. Usernames must be unique and non-empty.
func NewCredentials(pairs ...CredentialPair) (*Credentials, error) {
	c := &Credentials{byUsername: make(map[string]credential, len(pairs))}
	for _, p := range pairs {
		if p.Username == "" || p.Password == "" {
			return nil, fmt.Errorf("credential for role %q: username and password are required", p.Identity.Role)
		}
		if _, dup := c.byUsername[p.Username]; dup {
			return nil, fmt.Errorf("%w: %q", errDuplicateUsername, p.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password for %q: %w", p.Username, err)
		}
		c.byUsername[p.Username] = credential{hash: hash, identity: p.Identity}
	}
	return c, nil
}

// Verify returns the identity for an exact, case-sensitive username and a matching password.
func (c *Credentials) Verify(username, password string) (Identity, bool) {
	cred, ok := c.byUsername[username]
	if !ok {
		return Identity{}, false
	}
	if err := bcrypt.CompareHashAndPassword(cred.hash, []byte(password)); err != nil {
		return Identity{}, false
	}
	return cred.identity, true
}
