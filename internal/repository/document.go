package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"sgfkit/internal/bootstrap"
	"sgfkit/internal/domain/document"
	sgferrors "sgfkit/internal/errors"
)

const (
	documentsCollection = "documents"
	sgfKeyPrefix        = "sgf:"
	requestTimeout      = 5 * time.Second
)

// DocumentRepository хранит сырые деревья в MongoDB, а готовый текст SGF
// кеширует в Redis.
type DocumentRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewDocumentRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *DocumentRepository {
	return &DocumentRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func sgfKey(id string) string {
	return sgfKeyPrefix + id
}

func (r *DocumentRepository) cacheTTL() time.Duration {
	return time.Duration(r.cfg.CacheTTLSeconds) * time.Second
}

// SaveDocument пишет запись в Mongo и текст в Redis параллельно.
func (r *DocumentRepository) SaveDocument(ctx context.Context, record document.Record, sgfText string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		collection := r.mongo.Collection(documentsCollection)
		opts := options.Replace().SetUpsert(true)
		if _, err := collection.ReplaceOne(groupCtx, bson.M{"_id": record.ID}, record, opts); err != nil {
			return fmt.Errorf("failed to save document %s: %w", record.ID, err)
		}
		return nil
	})
	group.Go(func() error {
		return r.SaveSGFText(groupCtx, record.ID, sgfText)
	})
	if err := group.Wait(); err != nil {
		r.log.Errorw("document save failed", "id", record.ID, "error", err)
		return err
	}

	r.log.Infow("document saved", "id", record.ID)
	return nil
}

func (r *DocumentRepository) LoadDocument(ctx context.Context, id string) (document.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	var record document.Record
	err := r.mongo.Collection(documentsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return record, fmt.Errorf("%w: %s", sgferrors.ErrDocumentNotFound, id)
	} else if err != nil {
		r.log.Errorw("failed to load document", "id", id, "error", err)
		return record, err
	}
	return record, nil
}

func (r *DocumentRepository) DeleteDocument(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := r.mongo.Collection(documentsCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		r.log.Errorw("failed to delete document", "id", id, "error", err)
		return err
	}
	if err = r.redis.Del(ctx, sgfKey(id)).Err(); err != nil {
		r.log.Warnw("failed to drop cached sgf", "id", id, "error", err)
	}
	if res.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", sgferrors.ErrDocumentNotFound, id)
	}
	return nil
}

func (r *DocumentRepository) SaveSGFText(ctx context.Context, id string, sgfText string) error {
	if err := r.redis.Set(ctx, sgfKey(id), sgfText, r.cacheTTL()).Err(); err != nil {
		return fmt.Errorf("failed to cache sgf %s: %w", id, err)
	}
	return nil
}

func (r *DocumentRepository) LoadSGFText(ctx context.Context, id string) (string, error) {
	text, err := r.redis.Get(ctx, sgfKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", sgferrors.ErrCacheMiss
	}
	return text, err
}
