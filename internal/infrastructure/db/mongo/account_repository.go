package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/gestaoverbas/registro-system/internal/core/domain"
)

const accountCollection = "auth_users"

// AccountRepositoryMongo persists user accounts. Accounts are system-reserved
// (domain.KindAccount), so the router always resolves them to the primary
// store; every user authenticates against the same credential set.
type AccountRepositoryMongo struct {
	router *StoreRouter
}

func NewAccountRepository(router *StoreRouter) *AccountRepositoryMongo {
	return &AccountRepositoryMongo{router: router}
}

// EnsureAccountIndexes creates the unique username index. Accounts only live
// on the primary store, so one index suffices.
func EnsureAccountIndexes(ctx context.Context, stores *Stores) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := stores.Primary.Collection(accountCollection).Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("ensure username index: %w", err)
	}
	return nil
}

type accountDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (r *AccountRepositoryMongo) coll(ctx context.Context) *mongo.Collection {
	return r.router.Database(ctx, domain.KindAccount).Collection(accountCollection)
}

func (r *AccountRepositoryMongo) Create(ctx context.Context, user *domain.Usuario) (*domain.Usuario, error) {
	doc := accountDoc{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt.Unix(),
		UpdatedAt:    user.UpdatedAt.Unix(),
	}

	res, err := r.coll(ctx).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	created := *user
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *AccountRepositoryMongo) FindByUsername(ctx context.Context, username string) (*domain.Usuario, error) {
	var doc accountDoc
	if err := r.coll(ctx).FindOne(ctx, bson.M{"username": username}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return accountFromDoc(&doc), nil
}

func (r *AccountRepositoryMongo) FindByID(ctx context.Context, id string) (*domain.Usuario, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc accountDoc
	if err := r.coll(ctx).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return accountFromDoc(&doc), nil
}

func (r *AccountRepositoryMongo) List(ctx context.Context) ([]*domain.Usuario, error) {
	cur, err := r.coll(ctx).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	users := make([]*domain.Usuario, 0)
	for cur.Next(ctx) {
		var doc accountDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, accountFromDoc(&doc))
	}
	return users, cur.Err()
}

func (r *AccountRepositoryMongo) Update(ctx context.Context, user *domain.Usuario) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	update := bson.M{"$set": bson.M{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"updated_at":    user.UpdatedAt.Unix(),
	}}

	res, err := r.coll(ctx).UpdateByID(ctx, oid, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *AccountRepositoryMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll(ctx).DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func accountFromDoc(doc *accountDoc) *domain.Usuario {
	return &domain.Usuario{
		ID:           doc.ID.Hex(),
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    unixToTime(doc.CreatedAt),
		UpdatedAt:    unixToTime(doc.UpdatedAt),
	}
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
