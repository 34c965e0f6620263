package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskhub/task-manager-api/internal/core/domain"
	"github.com/taskhub/task-manager-api/internal/core/ports"
)

const tasksCollection = "tasks"

type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type taskDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description,omitempty"`
	DueDate         time.Time          `bson:"due_date"`
	Completed       bool               `bson:"completed"`
	CalendarEventID string             `bson:"calendar_event_id,omitempty"`
	OwnerID         primitive.ObjectID `bson:"owner_id"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

func (d taskDoc) toDomain() *domain.Task {
	return &domain.Task{
		ID:              d.ID.Hex(),
		Title:           d.Title,
		Description:     d.Description,
		DueDate:         d.DueDate,
		Completed:       d.Completed,
		CalendarEventID: d.CalendarEventID,
		OwnerID:         d.OwnerID.Hex(),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// ownedFilter builds the combined existence+ownership predicate. Folding the
// ownership check into the query keeps "not yours" indistinguishable from
// "does not exist" and leaves no race window between two separate checks.
func ownedFilter(id, ownerID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.NewValidationError("Invalid task ID")
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}
	return bson.M{"_id": oid, "owner_id": owner}, nil
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(task.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("invalid owner id %q", task.OwnerID)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := taskDoc{
		Title:           task.Title,
		Description:     task.Description,
		DueDate:         task.DueDate,
		Completed:       task.Completed,
		CalendarEventID: task.CalendarEventID,
		OwnerID:         owner,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TaskRepository) FindOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return doc.toDomain(), nil
}

// ListOwned returns one page of the owner's tasks sorted by due date, plus
// the total match count for pagination.
func (r *TaskRepository) ListOwned(ctx context.Context, ownerID string, q ports.TaskQuery) ([]domain.Task, int64, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, 0, domain.ErrUserNotFound
	}

	filter := bson.M{"owner_id": owner}
	if q.Search != "" {
		filter["title"] = bson.M{"$regex": q.Search, "$options": "i"}
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "due_date", Value: 1}}).
		SetSkip(int64(q.Page-1) * int64(q.Limit)).
		SetLimit(int64(q.Limit))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, *d.toDomain())
	}
	return tasks, total, nil
}

func (r *TaskRepository) UpdateOwned(ctx context.Context, id, ownerID string, patch ports.TaskPatch) (*domain.Task, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.DueDate != nil {
		set["due_date"] = patch.DueDate.UTC()
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}
	if patch.CalendarEventID != nil {
		set["calendar_event_id"] = *patch.CalendarEventID
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	err = r.coll.FindOneAndUpdate(
		ctx,
		filter,
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *TaskRepository) DeleteOwned(ctx context.Context, id, ownerID string) (*domain.Task, error) {
	filter, err := ownedFilter(id, ownerID)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc taskDoc
	if err := r.coll.FindOneAndDelete(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("delete task: %w", err)
	}
	return doc.toDomain(), nil
}

// taskWithOwnerDoc is the $lookup projection joining a task to its owner.
type taskWithOwnerDoc struct {
	taskDoc `bson:",inline"`
	Owner   []userDoc `bson:"owner"`
}

// ListAll returns every task newest first, each with its owner resolved in a
// single aggregation round-trip.
func (r *TaskRepository) ListAll(ctx context.Context) ([]domain.TaskWithOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollection},
			{Key: "localField", Value: "owner_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "owner"},
		}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskWithOwnerDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	out := make([]domain.TaskWithOwner, 0, len(docs))
	for _, d := range docs {
		item := domain.TaskWithOwner{Task: *d.taskDoc.toDomain()}
		// An orphaned task (owner deleted) keeps an empty owner summary.
		if len(d.Owner) > 0 {
			item.Owner = *d.Owner[0].toDomain()
			item.Owner.PasswordHash = ""
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Task, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(
		ctx,
		bson.M{"owner_id": owner},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []taskDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	tasks := make([]domain.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, *d.toDomain())
	}
	return tasks, nil
}

// EnsureIndexes creates the indexes backing owner-scoped queries.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "due_date", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
