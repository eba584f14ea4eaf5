package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/escapade-app/escapade/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userStore struct {
	client *mongo.Client
	db     *mongo.Database
	col    *mongo.Collection
}

func UserStore(client *mongo.Client, database, collection string) store.UserStore {
	db := client.Database(database)
	col := db.Collection(collection)

	return &userStore{
		client: client,
		db:     db,
		col:    col,
	}
}

func (u *userStore) User(ctx context.Context, id string) (*store.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, store.ErrUserNotFound
	}

	return u.findOne(ctx, bson.M{"_id": oid})
}

func (u *userStore) UserByEmail(ctx context.Context, email string) (*store.User, error) {
	return u.findOne(ctx, bson.M{"email": email})
}

func (u *userStore) findOne(ctx context.Context, filter bson.M) (*store.User, error) {
	res := u.col.FindOne(ctx, filter)

	user := &store.User{}
	if err := res.Decode(user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, store.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to decode a user: %w", err)
	}

	return user, nil
}

func (u *userStore) UsersByIDs(ctx context.Context, ids []string) ([]*store.User, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}

		oids = append(oids, oid)
	}

	cur, err := u.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("failed to find users: %w", err)
	}

	users := make([]*store.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}

	return users, nil
}

func (u *userStore) CreateUser(ctx context.Context, user *store.User) (*store.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	user.CreatedAt = time.Now()

	if _, err := u.col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrUserExists
		}

		return nil, fmt.Errorf("failed to insert user: %w", err)
	}

	return user, nil
}

func (u *userStore) CountUsers(ctx context.Context) (int64, error) {
	count, err := u.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
