package repository

import (
	"context"
	"errors"
	"fmt"

	"coursehub-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	moduleCollection = "modules"
	videoCollection  = "videos"
)

// EnsureContentIndexes creates the unique compound indexes that enforce
// dense per-parent ordering at the store: (course_id, order) for modules
// and (module_id, order) for videos.
func EnsureContentIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(moduleCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "course_id", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create module index: %w", err)
	}
	_, err = db.Collection(videoCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "module_id", Value: 1}, {Key: "order", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create video index: %w", err)
	}
	return nil
}

// ========== MODULE REPOSITORY ==========

type moduleRepo struct {
	db *mongo.Database
}

func NewModuleRepository(db *mongo.Database) domain.ModuleRepository {
	return &moduleRepo{db}
}

func (r *moduleRepo) Create(ctx context.Context, module *domain.Module) error {
	if module.ID == "" {
		module.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.db.Collection(moduleCollection).InsertOne(ctx, module)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *moduleRepo) GetByID(ctx context.Context, id string) (*domain.Module, error) {
	var module domain.Module
	err := r.db.Collection(moduleCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&module)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepo) GetByCourseID(ctx context.Context, courseID uint) ([]domain.Module, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.db.Collection(moduleCollection).Find(ctx, bson.M{"course_id": courseID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var modules []domain.Module
	if err := cursor.All(ctx, &modules); err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepo) Update(ctx context.Context, module *domain.Module) error {
	res, err := r.db.Collection(moduleCollection).ReplaceOne(ctx, bson.M{"_id": module.ID}, module)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *moduleRepo) UpdateOrder(ctx context.Context, id string, order int) error {
	_, err := r.db.Collection(moduleCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"order": order}})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *moduleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.Collection(moduleCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *moduleRepo) DeleteByCourseID(ctx context.Context, courseID uint) error {
	_, err := r.db.Collection(moduleCollection).DeleteMany(ctx, bson.M{"course_id": courseID})
	return err
}

// ========== VIDEO REPOSITORY ==========

type videoRepo struct {
	db *mongo.Database
}

func NewVideoRepository(db *mongo.Database) domain.VideoRepository {
	return &videoRepo{db}
}

func (r *videoRepo) Create(ctx context.Context, video *domain.Video) error {
	if video.ID == "" {
		video.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.db.Collection(videoCollection).InsertOne(ctx, video)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *videoRepo) GetByID(ctx context.Context, id string) (*domain.Video, error) {
	var video domain.Video
	err := r.db.Collection(videoCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&video)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &video, nil
}

func (r *videoRepo) GetByModuleID(ctx context.Context, moduleID string) ([]domain.Video, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cursor, err := r.db.Collection(videoCollection).Find(ctx, bson.M{"module_id": moduleID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepo) GetByModuleIDs(ctx context.Context, moduleIDs []string) ([]domain.Video, error) {
	if len(moduleIDs) == 0 {
		return nil, nil
	}
	cursor, err := r.db.Collection(videoCollection).Find(ctx, bson.M{"module_id": bson.M{"$in": moduleIDs}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var videos []domain.Video
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepo) Update(ctx context.Context, video *domain.Video) error {
	res, err := r.db.Collection(videoCollection).ReplaceOne(ctx, bson.M{"_id": video.ID}, video)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *videoRepo) UpdateOrder(ctx context.Context, id string, order int) error {
	_, err := r.db.Collection(videoCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"order": order}})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *videoRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.Collection(videoCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *videoRepo) DeleteByModuleID(ctx context.Context, moduleID string) error {
	_, err := r.db.Collection(videoCollection).DeleteMany(ctx, bson.M{"module_id": moduleID})
	return err
}
