package repository

import (
	"context"

	"notesapi/model"
	"notesapi/utils"

	"go.mongodb.org/mongo-driver/bson"
)

func (s *MongoStore) CreateUser(ctx context.Context, user *model.User) error {
	defer utils.TrackDBOperation("insert", usersCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.users.InsertOne(ctx, user)
	return translateMongoError(err)
}

func (s *MongoStore) FindUserByID(ctx context.Context, id string) (*model.User, error) {
	return s.findUser(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *MongoStore) FindUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.findUser(ctx, bson.D{{Key: "username", Value: username}})
}

func (s *MongoStore) findUser(ctx context.Context, filter bson.D) (*model.User, error) {
	defer utils.TrackDBOperation("find", usersCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var user model.User
	if err := s.users.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, translateMongoError(err)
	}
	return &user, nil
}

func (s *MongoStore) UserExists(ctx context.Context, username, email string) (bool, error) {
	defer utils.TrackDBOperation("exists", usersCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{"$or": []bson.M{
		{"username": username},
		{"email": email},
	}}

	count, err := s.users.CountDocuments(ctx, filter)
	if err != nil {
		return false, translateMongoError(err)
	}
	return count > 0, nil
}
