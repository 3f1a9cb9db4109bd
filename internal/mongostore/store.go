package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	teamsCollection    = "teams"
	projectsCollection = "projects"
	tasksCollection    = "tasks"
	usersCollection    = "users"
)

// Connect opens a client against uri and verifies it with a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}
	return client, nil
}

// NewStore wires the MongoDB repositories over db.
func NewStore(db *mongo.Database) repository.Store {
	return repository.Store{
		Teams:    &TeamRepository{db: db},
		Projects: &ProjectRepository{db: db},
		Tasks:    &TaskRepository{db: db},
		Users:    &UserRepository{db: db},
	}
}

// EnsureIndexes creates the indexes the aggregate queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if _, err := db.Collection(tasksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "projectId", Value: 1}, {Key: "isDeleted", Value: 1}, {Key: "updatedAt", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create task index: %w", err)
	}
	if _, err := db.Collection(projectsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "teamIds", Value: 1}},
	}); err != nil {
		return fmt.Errorf("failed to create project index: %w", err)
	}
	return nil
}

var (
	_ repository.TeamRepository    = (*TeamRepository)(nil)
	_ repository.ProjectRepository = (*ProjectRepository)(nil)
	_ repository.TaskRepository    = (*TaskRepository)(nil)
	_ repository.UserRepository    = (*UserRepository)(nil)
)

// TeamRepository implements repository.TeamRepository on the teams collection.
type TeamRepository struct {
	db *mongo.Database
}

func (r *TeamRepository) FindByID(ctx context.Context, id models.ID) (*models.Team, error) {
	var doc teamDocument
	if err := r.db.Collection(teamsCollection).FindOne(ctx, byID(id)).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	team := doc.toModel()
	return &team, nil
}

// CreateWithProjects verifies every listed project exists, inserts the team
// and then adds the team id to each project's teamIds. There is no
// transaction: a failure after the insert leaves a drift that repair heals.
func (r *TeamRepository) CreateWithProjects(ctx context.Context, team *models.Team) error {
	if team.ID.IsZero() {
		team.ID = models.NewID()
	}
	now := time.Now().UTC()
	if team.CreatedAt.IsZero() {
		team.CreatedAt = now
	}
	team.UpdatedAt = now

	projectIDs := models.UniqueIDs(team.ProjectIDs)
	projects := r.db.Collection(projectsCollection)
	if len(projectIDs) > 0 {
		count, err := projects.CountDocuments(ctx, byIDs(projectIDs))
		if err != nil {
			return fmt.Errorf("count projects: %w", err)
		}
		if int(count) < len(projectIDs) {
			return fmt.Errorf("one or more projects: %w", repository.ErrNotFound)
		}
	}

	if _, err := r.db.Collection(teamsCollection).InsertOne(ctx, newTeamDocument(team)); err != nil {
		return fmt.Errorf("create team: %w", err)
	}

	if len(projectIDs) == 0 {
		return nil
	}
	if _, err := projects.UpdateMany(ctx, byIDs(projectIDs), bson.M{
		"$addToSet": bson.M{"teamIds": string(team.ID)},
		"$set":      bson.M{"updatedAt": now},
	}); err != nil {
		return fmt.Errorf("link projects: %w", err)
	}
	return nil
}

func (r *TeamRepository) AppendProjectID(ctx context.Context, teamID, projectID models.ID) error {
	res, err := r.db.Collection(teamsCollection).UpdateOne(ctx, byID(teamID), bson.M{
		"$addToSet": bson.M{"projectIds": string(projectID.Canonical())},
		"$set":      bson.M{"updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ProjectRepository implements repository.ProjectRepository on the projects collection.
type ProjectRepository struct {
	db *mongo.Database
}

func (r *ProjectRepository) ListWithTeams(ctx context.Context) ([]models.Project, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "teamIds": 1}).
		SetSort(bson.D{{Key: "_id", Value: 1}})
	return r.find(ctx, projectsWithTeamsFilter(), opts)
}

func (r *ProjectRepository) ListByIDs(ctx context.Context, ids []models.ID) ([]models.Project, error) {
	if len(ids) == 0 {
		return []models.Project{}, nil
	}
	return r.find(ctx, byIDs(ids), options.Find())
}

func (r *ProjectRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Project, error) {
	cursor, err := r.db.Collection(projectsCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []projectDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	projects := make([]models.Project, 0, len(docs))
	for _, doc := range docs {
		projects = append(projects, doc.toModel())
	}
	return projects, nil
}

// TaskRepository implements repository.TaskRepository on the tasks collection.
type TaskRepository struct {
	db *mongo.Database
}

func (r *TaskRepository) ListByProjectIDs(ctx context.Context, projectIDs []models.ID, filter repository.TaskFilter) ([]models.Task, error) {
	if len(projectIDs) == 0 {
		return []models.Task{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.db.Collection(tasksCollection).Find(ctx, taskFilter(projectIDs, filter), opts)
	if err != nil {
		return nil, err
	}
	var docs []taskDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.toModel())
	}
	return tasks, nil
}

// UserRepository implements repository.UserRepository on the users collection.
type UserRepository struct {
	db *mongo.Database
}

func (r *UserRepository) ListByIDs(ctx context.Context, ids []models.ID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	cursor, err := r.db.Collection(usersCollection).Find(ctx, byIDs(ids))
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(docs))
	for _, doc := range docs {
		users = append(users, doc.toModel())
	}
	return users, nil
}
