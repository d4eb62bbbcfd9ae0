package repositories

import (
	"context"
	"fmt"

	"taskboard/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TaskRepo struct {
	tasks *mongo.Collection
}

func NewTaskRepo(db *mongo.Database) *TaskRepo {
	return &TaskRepo{tasks: db.Collection("tasks")}
}

func (tr *TaskRepo) Insert(ctx context.Context, task *models.Task) error {
	result, err := tr.tasks.InsertOne(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (tr *TaskRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := tr.tasks.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, err
	}
	return &task, nil
}

func (tr *TaskRepo) findSorted(ctx context.Context, filter bson.M) ([]models.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := tr.tasks.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

// FindAll returns every task, newest first.
func (tr *TaskRepo) FindAll(ctx context.Context) ([]models.Task, error) {
	return tr.findSorted(ctx, bson.M{})
}

// FindByCreator returns the tasks created by the given user, newest first.
func (tr *TaskRepo) FindByCreator(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return tr.findSorted(ctx, bson.M{"createdBy": userID})
}

// FindByAssignee returns the tasks the given user is assigned to, newest first.
func (tr *TaskRepo) FindByAssignee(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return tr.findSorted(ctx, bson.M{"assignedTo": userID})
}

// FindTitlesByIDs returns the title of every task in the given id set.
func (tr *TaskRepo) FindTitlesByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	opts := options.Find().SetProjection(bson.M{"title": 1})
	cursor, err := tr.tasks.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task titles: %w", err)
	}
	defer cursor.Close(ctx)

	titles := make(map[primitive.ObjectID]string)
	for cursor.Next(ctx) {
		var doc struct {
			ID    primitive.ObjectID `bson:"_id"`
			Title string             `bson:"title"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode task title: %w", err)
		}
		titles[doc.ID] = doc.Title
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return titles, nil
}

// UpdateFields applies the given field set to a task document.
func (tr *TaskRepo) UpdateFields(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	result, err := tr.tasks.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (tr *TaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := tr.tasks.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
