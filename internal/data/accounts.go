// Package data provides the entity models and the account store used by the auth service.
package data

import (
	"context"
	"errors"
	"time"

	"github.com/PaulBabatuyi/chatsync/internal/normalize"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

var (
	ErrAccountExists   = errors.New("account already exists")
	ErrAccountNotFound = errors.New("account not found")
)

// AccountsStore performs credential account DB operations.
type AccountsStore struct {
	// coll is the "accounts" collection; email carries a unique index
	coll *mongo.Collection
}

// NewAccountsStore returns an AccountsStore using the provided collection.
func NewAccountsStore(coll *mongo.Collection) *AccountsStore {
	return &AccountsStore{coll: coll}
}

// CreateAccount inserts a new account with an already-hashed password.
func (a *AccountsStore) CreateAccount(ctx context.Context, email, passwordHash, displayName string) (*Account, error) {
	now := time.Now().UTC()
	account := &Account{
		ID:           bson.NewObjectID().Hex(),
		Email:        normalize.Email(email),
		PasswordHash: passwordHash,
		DisplayName:  displayName,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := a.coll.InsertOne(ctx, account); err != nil {
		// unique index on email
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrAccountExists
		}
		return nil, err
	}
	return account, nil
}

// GetAccountByEmail finds an account by its normalized email.
func (a *AccountsStore) GetAccountByEmail(ctx context.Context, email string) (*Account, error) {
	return a.findOne(ctx, bson.M{"email": normalize.Email(email)})
}

// GetAccountByID finds an account by id.
func (a *AccountsStore) GetAccountByID(ctx context.Context, id string) (*Account, error) {
	return a.findOne(ctx, bson.M{"_id": id})
}

// UpdateAccountProfile sets the display name and avatar of an account.
func (a *AccountsStore) UpdateAccountProfile(ctx context.Context, id, displayName, avatarURL string) error {
	res, err := a.coll.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"displayName": displayName,
		"avatarUrl":   avatarURL,
		"updatedAt":   time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (a *AccountsStore) findOne(ctx context.Context, filter bson.M) (*Account, error) {
	var account Account
	if err := a.coll.FindOne(ctx, filter).Decode(&account); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
