package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"baduk_lab/internal/bootstrap"
	"baduk_lab/internal/domain/game"
	errs "baduk_lab/internal/errors"
)

const archiveCollection = "games"

// GameRepository stores the live SGF snapshot of every game in Redis and
// finished games in the Mongo archive.
type GameRepository struct {
	cfg   bootstrap.Config
	log   *zap.SugaredLogger
	redis *redis.Client
	mongo *mongo.Database
}

func NewGameRepository(cfg bootstrap.Config, log *zap.SugaredLogger, redis *redis.Client, mongo *mongo.Database) *GameRepository {
	return &GameRepository{
		cfg:   cfg,
		log:   log,
		redis: redis,
		mongo: mongo,
	}
}

func (g *GameRepository) SaveSGF(ctx context.Context, gameID, sgfText string) error {
	payload, err := json.Marshal(map[string]string{"sgf": sgfText})
	if err != nil {
		return err
	}
	return g.redis.Set(ctx, gameID, payload, 0).Err()
}

func (g *GameRepository) LoadSGF(ctx context.Context, gameID string) (string, error) {
	val, err := g.redis.Get(ctx, gameID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", errs.ErrGameNotFound
		}
		return "", err
	}

	var data struct {
		SGF string `json:"sgf"`
	}
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return "", err
	}
	return data.SGF, nil
}

func (g *GameRepository) ArchiveGame(ctx context.Context, rec game.Record) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := g.mongo.Collection(archiveCollection).InsertOne(ctx, rec)
	if err != nil {
		g.log.Errorf("failed to insert game to archive: %v", err)
		return err
	}

	g.log.Infof("game %s archived", rec.GameID)
	return nil
}

// GetArchivedGame fetches one finished game from the archive by its id.
func (g *GameRepository) GetArchivedGame(ctx context.Context, gameID string) (game.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var rec game.Record
	err := g.mongo.Collection(archiveCollection).
		FindOne(ctx, bson.M{"game_id": gameID}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return game.Record{}, errs.ErrGameNotFound
	}
	if err != nil {
		return game.Record{}, fmt.Errorf("failed to read archive: %w", err)
	}
	return rec, nil
}
