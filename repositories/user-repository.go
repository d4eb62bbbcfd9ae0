package repositories

import (
	"context"
	"fmt"
	"regexp"

	"taskboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// refProjection is the display subset of a user document. The password hash
// never leaves the collection through any method using it.
var refProjection = bson.M{"fullName": 1, "username": 1, "email": 1}

type UserRepo struct {
	users *mongo.Collection
}

func NewUserRepo(db *mongo.Database) *UserRepo {
	return &UserRepo{users: db.Collection("users")}
}

func (ur *UserRepo) Insert(ctx context.Context, user *models.User) error {
	result, err := ur.users.InsertOne(ctx, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (ur *UserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	if err := ur.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin matches the identifier against either username or email.
func (ur *UserRepo) FindByLogin(ctx context.Context, login string) (*models.User, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"username": login},
		bson.M{"email": login},
	}}
	var user models.User
	if err := ur.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Search returns users whose full name, username, or email contains the query
// as a case-insensitive substring.
func (ur *UserRepo) Search(ctx context.Context, query string) ([]models.UserRef, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": bson.A{
		bson.M{"fullName": pattern},
		bson.M{"username": pattern},
		bson.M{"email": pattern},
	}}

	cursor, err := ur.users.Find(ctx, filter, options.Find().SetProjection(refProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []models.UserRef
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("failed to decode users: %w", err)
	}
	return users, nil
}

// FindRefsByIDs resolves a set of user ids to their display subsets.
func (ur *UserRepo) FindRefsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserRef, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	cursor, err := ur.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find().SetProjection(refProjection))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user references: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []models.UserRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode user references: %w", err)
	}
	return refs, nil
}
