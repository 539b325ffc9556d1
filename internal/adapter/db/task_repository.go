package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"taskboard/internal/core/domain"
	"taskboard/internal/core/ports"
	"taskboard/internal/core/query"
)

type TaskRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	DueDate     *time.Time         `bson:"dueDate,omitempty"`
	Priority    string             `bson:"priority"`
	Status      string             `bson:"status"`
	Tags        string             `bson:"tags,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(collection *mongo.Collection) *TaskRepository {
	return &TaskRepository{collection: collection, now: time.Now}
}

// Find returns the matching tasks, newest first.
func (r *TaskRepository) Find(ctx context.Context, filter query.Filter) ([]domain.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter.BSON(), opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}

	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, mapTaskDocumentToDomainTask(doc))
	}
	return tasks, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (domain.Task, error) {
	objectID, err := parseID(id)
	if err != nil {
		return domain.Task{}, err
	}

	var doc taskDocument
	err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: objectID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("find task %s: %w", id, err)
	}
	return mapTaskDocumentToDomainTask(doc), nil
}

func (r *TaskRepository) Create(ctx context.Context, fields domain.TaskFields) (domain.Task, error) {
	now := r.now().UTC()
	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       fields.Title,
		Description: fields.Description,
		DueDate:     fields.DueDate,
		Priority:    string(fields.Priority),
		Status:      string(fields.Status),
		Tags:        fields.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return mapTaskDocumentToDomainTask(doc), nil
}

func (r *TaskRepository) UpdateByID(ctx context.Context, id string, fields domain.TaskFields) (domain.Task, error) {
	objectID, err := parseID(id)
	if err != nil {
		return domain.Task{}, err
	}

	set := bson.D{
		{Key: "title", Value: fields.Title},
		{Key: "description", Value: fields.Description},
		{Key: "priority", Value: string(fields.Priority)},
		{Key: "status", Value: string(fields.Status)},
		{Key: "tags", Value: fields.Tags},
		{Key: "updatedAt", Value: r.now().UTC()},
	}
	update := bson.D{}
	if fields.DueDate != nil {
		set = append(set, bson.E{Key: "dueDate", Value: *fields.DueDate})
	} else {
		update = append(update, bson.E{Key: "$unset", Value: bson.D{{Key: "dueDate", Value: ""}}})
	}
	update = append(update, bson.E{Key: "$set", Value: set})

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.D{{Key: "_id", Value: objectID}}, update, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	if err != nil {
		return domain.Task{}, fmt.Errorf("update task %s: %w", id, err)
	}
	return mapTaskDocumentToDomainTask(doc), nil
}

func (r *TaskRepository) DeleteByID(ctx context.Context, id string) error {
	objectID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.collection.DeleteOne(ctx, bson.D{{Key: "_id", Value: objectID}})
	if err != nil {
		return fmt.Errorf("delete task %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteByIDs removes every listed task in one batch. Ids that do not exist
// are ignored; a malformed id rejects the whole batch before anything is deleted.
func (r *TaskRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := parseID(id)
		if err != nil {
			return err
		}
		objectIDs = append(objectIDs, objectID)
	}

	filter := bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: objectIDs}}}}
	if _, err := r.collection.DeleteMany(ctx, filter); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}

func parseID(id string) (primitive.ObjectID, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrInvalidTaskID
	}
	return objectID, nil
}

func mapTaskDocumentToDomainTask(doc taskDocument) domain.Task {
	task := domain.Task{
		ID:          doc.ID.Hex(),
		Title:       doc.Title,
		Description: doc.Description,
		Priority:    domain.TaskPriority(doc.Priority),
		Status:      domain.TaskStatus(doc.Status),
		Tags:        doc.Tags,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}

	if doc.DueDate != nil {
		value := doc.DueDate.UTC()
		task.DueDate = &value
	}

	return task
}
