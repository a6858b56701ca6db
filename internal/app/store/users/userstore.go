// Package userstore persists the accounts listed on the user management screen.
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/coophub/internal/app/system/normalize"
	"github.com/dalemusser/coophub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding accounts.
const CollectionName = "accounts"

var (
	// ErrDuplicateEmail is returned when another account already uses the email.
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	// ErrNotFound is returned when no account matches the id.
	ErrNotFound   = errors.New("account not found")
	errBadRole    = errors.New(`role must be "admin"|"farmer"|"viewer"`)
	errMissingKey = errors.New("name and email are required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// List returns every account sorted by name.
func (s *Store) List(ctx context.Context) ([]models.Account, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.Account
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID loads an account by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var a models.Account
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new account. Permissions come from the role, the account
// starts active, and LastLogin reads "Never".
func (s *Store) Create(ctx context.Context, a models.Account) (models.Account, error) {
	a.ID = primitive.NewObjectID()
	a.Name = normalize.Name(a.Name)
	a.Email = normalize.Email(a.Email)
	a.Role = normalize.Role(a.Role)
	if a.Name == "" || a.Email == "" {
		return models.Account{}, errMissingKey
	}
	if !models.IsValidAccountRole(a.Role) {
		return models.Account{}, errBadRole
	}
	a.Status = models.AccountActive
	a.LastLogin = models.NeverLoggedIn
	a.Permissions = models.RolePermissions(a.Role)

	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, err
	}
	return a, nil
}

// Insert stores a fully populated account as-is. Used by seeding.
func (s *Store) Insert(ctx context.Context, a models.Account) (models.Account, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	now := time.Now()
	a.CreatedAt, a.UpdatedAt = now, now
	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Account{}, ErrDuplicateEmail
		}
		return models.Account{}, err
	}
	return a, nil
}

// AccountUpdate holds the fields editable from the user management form.
type AccountUpdate struct {
	Name   string
	Email  string
	Role   string
	Status string
}

// Update edits name, email, role and status. A role change resets permissions
// to the role defaults.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, upd AccountUpdate) error {
	cur, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	upd.Name = normalize.Name(upd.Name)
	upd.Email = normalize.Email(upd.Email)
	upd.Role = normalize.Role(upd.Role)
	if upd.Name == "" || upd.Email == "" {
		return errMissingKey
	}
	if !models.IsValidAccountRole(upd.Role) {
		return errBadRole
	}
	if upd.Status != models.AccountActive && upd.Status != models.AccountInactive {
		upd.Status = cur.Status
	}

	set := bson.M{
		"name":       upd.Name,
		"email":      upd.Email,
		"role":       upd.Role,
		"status":     upd.Status,
		"updated_at": time.Now(),
	}
	if upd.Role != cur.Role {
		set["permissions"] = models.RolePermissions(upd.Role)
	}

	if _, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set}); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// ChangeRole sets a new role and resets permissions to its defaults.
func (s *Store) ChangeRole(ctx context.Context, id primitive.ObjectID, role string) error {
	role = normalize.Role(role)
	if !models.IsValidAccountRole(role) {
		return errBadRole
	}
	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"role":        role,
		"permissions": models.RolePermissions(role),
		"updated_at":  time.Now(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleStatus flips an account between active and inactive and returns the new status.
// The write only lands on the status it read; a concurrent change forces a re-read.
func (s *Store) ToggleStatus(ctx context.Context, id primitive.ObjectID) (string, error) {
	for {
		a, err := s.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		next := models.ToggledAccountStatus(a.Status)
		res, err := s.c.UpdateOne(ctx,
			bson.M{"_id": id, "status": a.Status},
			bson.M{"$set": bson.M{
				"status":     next,
				"updated_at": time.Now(),
			}})
		if err != nil {
			return "", err
		}
		if res.MatchedCount == 1 {
			return next, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
	}
}

// Delete removes an account.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByRole returns how many accounts hold each role.
func (s *Store) CountByRole(ctx context.Context) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, r := range models.AccountRoles {
		n, err := s.c.CountDocuments(ctx, bson.M{"role": r.Value})
		if err != nil {
			return nil, err
		}
		out[r.Value] = n
	}
	return out, nil
}
