package repository

import (
	"context"
	"regexp"

	"notesapi/model"
	"notesapi/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (s *MongoStore) CreateNote(ctx context.Context, note *model.Note) error {
	defer utils.TrackDBOperation("insert", notesCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.notes.InsertOne(ctx, note)
	return translateMongoError(err)
}

func (s *MongoStore) FindNote(ctx context.Context, id, userID string) (*model.Note, error) {
	defer utils.TrackDBOperation("find", notesCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var note model.Note
	err := s.notes.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&note)
	if err != nil {
		return nil, translateMongoError(err)
	}
	return &note, nil
}

func noteListFilter(filter model.NoteFilter) bson.M {
	query := bson.M{"user_id": filter.UserID}
	if filter.Search != "" {
		pattern := regexp.QuoteMeta(filter.Search)
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"content": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if filter.Priority != "" {
		query["priority"] = filter.Priority
	}
	return query
}

func (s *MongoStore) ListNotes(ctx context.Context, filter model.NoteFilter) ([]*model.Note, int, error) {
	defer utils.TrackDBOperation("list", notesCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	query := noteListFilter(filter)

	total, err := s.notes.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, translateMongoError(err)
	}

	opts := options.Find().SetSort(bson.D{
		{Key: "updated_at", Value: -1},
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})
	if filter.Offset > 0 {
		opts.SetSkip(int64(filter.Offset))
	}
	if filter.Limit > 0 {
		opts.SetLimit(int64(filter.Limit))
	}

	cursor, err := s.notes.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, translateMongoError(err)
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err := cursor.All(ctx, &notes); err != nil {
		return nil, 0, translateMongoError(err)
	}
	return notes, int(total), nil
}

func (s *MongoStore) UpdateNote(ctx context.Context, note *model.Note) error {
	defer utils.TrackDBOperation("update", notesCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	filter := bson.M{"_id": note.ID, "user_id": note.UserID}
	update := bson.M{
		"$set": bson.M{
			"title":      note.Title,
			"content":    note.Content,
			"priority":   note.Priority,
			"updated_at": note.UpdatedAt,
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated model.Note
	if err := s.notes.FindOneAndUpdate(ctx, filter, update, opts).Decode(&updated); err != nil {
		return translateMongoError(err)
	}
	*note = updated
	return nil
}

func (s *MongoStore) DeleteNote(ctx context.Context, id, userID string) error {
	defer utils.TrackDBOperation("delete", notesCollection).ObserveDuration()

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.notes.DeleteOne(ctx, bson.M{"_id": id, "user_id": userID})
	if err != nil {
		return translateMongoError(err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
