package repository

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"coursehub-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MaxAssetSize caps uploaded course assets at 50MB.
const MaxAssetSize = 50 * 1024 * 1024

// AssetInfo is the stored metadata of an uploaded course asset.
type AssetInfo struct {
	ID          string        `json:"id" bson:"_id"`
	Filename    string        `json:"filename" bson:"filename"`
	ContentType string        `json:"content_type" bson:"contentType"`
	Size        int64         `json:"size" bson:"length"`
	UploadDate  time.Time     `json:"upload_date" bson:"uploadDate"`
	Metadata    AssetMetadata `json:"metadata" bson:"metadata"`
}

type AssetMetadata struct {
	OriginalName string `json:"original_name" bson:"original_name"`
	UploadedBy   uint   `json:"uploaded_by" bson:"uploaded_by"`
	CourseID     uint   `json:"course_id,omitempty" bson:"course_id,omitempty"`
}

// AssetRepository stores course thumbnails and lecture attachments in
// GridFS so they live next to the course content tree.
type AssetRepository interface {
	Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, metadata AssetMetadata) (*AssetInfo, error)
	Download(ctx context.Context, assetID string) (io.ReadCloser, *AssetInfo, error)
	Delete(ctx context.Context, assetID string) error
	GetInfo(ctx context.Context, assetID string) (*AssetInfo, error)
}

type assetRepo struct {
	db     *mongo.Database
	bucket *gridfs.Bucket
}

func NewAssetRepository(db *mongo.Database) (AssetRepository, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName("assets"))
	if err != nil {
		return nil, fmt.Errorf("create gridfs bucket: %w", err)
	}
	return &assetRepo{db: db, bucket: bucket}, nil
}

func (r *assetRepo) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, metadata AssetMetadata) (*AssetInfo, error) {
	if header.Size > MaxAssetSize {
		return nil, fmt.Errorf("%w: file exceeds %dMB", domain.ErrValidation, MaxAssetSize/(1024*1024))
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = detectContentType(header.Filename)
	}
	if !isAllowedAssetType(contentType, header.Filename) {
		return nil, fmt.Errorf("%w: only images and PDFs are allowed", domain.ErrValidation)
	}

	ext := filepath.Ext(header.Filename)
	uniqueFilename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), primitive.NewObjectID().Hex()[:8], ext)
	metadata.OriginalName = header.Filename

	uploadOpts := options.GridFSUpload().SetMetadata(bson.M{
		"original_name": metadata.OriginalName,
		"uploaded_by":   metadata.UploadedBy,
		"course_id":     metadata.CourseID,
		"content_type":  contentType,
	})

	objectID, err := r.bucket.UploadFromStream(uniqueFilename, file, uploadOpts)
	if err != nil {
		return nil, fmt.Errorf("upload asset: %w", err)
	}

	return &AssetInfo{
		ID:          objectID.Hex(),
		Filename:    uniqueFilename,
		ContentType: contentType,
		Size:        header.Size,
		UploadDate:  time.Now(),
		Metadata:    metadata,
	}, nil
}

func (r *assetRepo) Download(ctx context.Context, assetID string) (io.ReadCloser, *AssetInfo, error) {
	objectID, err := primitive.ObjectIDFromHex(assetID)
	if err != nil {
		return nil, nil, domain.ErrNotFound
	}

	info, err := r.GetInfo(ctx, assetID)
	if err != nil {
		return nil, nil, err
	}

	stream, err := r.bucket.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, domain.ErrNotFound
	}
	return stream, info, nil
}

func (r *assetRepo) Delete(ctx context.Context, assetID string) error {
	objectID, err := primitive.ObjectIDFromHex(assetID)
	if err != nil {
		return domain.ErrNotFound
	}
	if err := r.bucket.Delete(objectID); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}

func (r *assetRepo) GetInfo(ctx context.Context, assetID string) (*AssetInfo, error) {
	objectID, err := primitive.ObjectIDFromHex(assetID)
	if err != nil {
		return nil, domain.ErrNotFound
	}

	var result struct {
		ID         primitive.ObjectID `bson:"_id"`
		Filename   string             `bson:"filename"`
		Length     int64              `bson:"length"`
		UploadDate time.Time          `bson:"uploadDate"`
		Metadata   bson.M             `bson:"metadata"`
	}
	err = r.db.Collection("assets.files").FindOne(ctx, bson.M{"_id": objectID}).Decode(&result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	metadata := AssetMetadata{}
	contentType := ""
	if result.Metadata != nil {
		if v, ok := result.Metadata["original_name"].(string); ok {
			metadata.OriginalName = v
		}
		if v, ok := result.Metadata["uploaded_by"].(int64); ok {
			metadata.UploadedBy = uint(v)
		} else if v, ok := result.Metadata["uploaded_by"].(int32); ok {
			metadata.UploadedBy = uint(v)
		}
		if v, ok := result.Metadata["course_id"].(int64); ok {
			metadata.CourseID = uint(v)
		} else if v, ok := result.Metadata["course_id"].(int32); ok {
			metadata.CourseID = uint(v)
		}
		if v, ok := result.Metadata["content_type"].(string); ok {
			contentType = v
		}
	}
	if contentType == "" {
		contentType = detectContentType(result.Filename)
	}

	return &AssetInfo{
		ID:          result.ID.Hex(),
		Filename:    result.Filename,
		ContentType: contentType,
		Size:        result.Length,
		UploadDate:  result.UploadDate,
		Metadata:    metadata,
	}, nil
}

func detectContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}

func isAllowedAssetType(contentType, filename string) bool {
	allowedTypes := map[string]bool{
		"application/pdf": true,
		"image/jpeg":      true,
		"image/png":       true,
		"image/gif":       true,
		"image/webp":      true,
	}
	if allowedTypes[contentType] {
		return true
	}

	allowedExts := map[string]bool{
		".pdf": true, ".jpg": true, ".jpeg": true,
		".png": true, ".gif": true, ".webp": true,
	}
	return allowedExts[strings.ToLower(filepath.Ext(filename))]
}
