package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"devops-assistant/internal/domain/entity"
	"devops-assistant/internal/domain/repository"
	"devops-assistant/internal/infrastructure/metrics"
)

type MongoArtifactRepo struct {
	artifactsCol *mongo.Collection
}

func NewMongoArtifactRepo(db *mongo.Database) repository.ArtifactRepository {
	col := db.Collection("artifacts")

	_, _ = col.Indexes().CreateOne(context.Background(), mongo.IndexModel{
		Keys: bson.D{bson.E{Key: "job_id", Value: 1}},
	})

	return &MongoArtifactRepo{artifactsCol: col}
}

// SaveArtifacts upserts by (job_id, name) so a regenerated file replaces
// the previous record instead of accumulating duplicates.
func (r *MongoArtifactRepo) SaveArtifacts(ctx context.Context, artifacts []*entity.Artifact) error {
	metrics.IncStoreOp("put")

	for _, a := range artifacts {
		filter := bson.M{"job_id": a.JobID, "name": a.Name}
		_, err := r.artifactsCol.ReplaceOne(ctx, filter, a, options.Replace().SetUpsert(true))
		if err != nil {
			metrics.IncError("mongo_artifact_repo", "save_error")
			return fmt.Errorf("save artifact %s for job %s: %w", a.Name, a.JobID, err)
		}
	}
	return nil
}

func (r *MongoArtifactRepo) GetByJobID(ctx context.Context, jobID string) ([]*entity.Artifact, error) {
	metrics.IncStoreOp("get")

	cur, err := r.artifactsCol.Find(ctx, bson.M{"job_id": jobID})
	if err != nil {
		metrics.IncError("mongo_artifact_repo", "get_error")
		return nil, err
	}
	defer func() {
		if err := cur.Close(ctx); err != nil {
			metrics.IncError("mongo_artifact_repo", "cursor_close_error")
		}
	}()

	var artifacts []*entity.Artifact
	for cur.Next(ctx) {
		var a entity.Artifact
		if err := cur.Decode(&a); err != nil {
			metrics.IncError("mongo_artifact_repo", "decode_error")
			return nil, err
		}
		artifacts = append(artifacts, &a)
	}
	return artifacts, cur.Err()
}

func (r *MongoArtifactRepo) DeleteByJobID(ctx context.Context, jobID string) error {
	metrics.IncStoreOp("delete")

	_, err := r.artifactsCol.DeleteMany(ctx, bson.M{"job_id": jobID})
	if err != nil {
		metrics.IncError("mongo_artifact_repo", "delete_error")
		return fmt.Errorf("delete artifacts for job %s: %w", jobID, err)
	}
	return nil
}
