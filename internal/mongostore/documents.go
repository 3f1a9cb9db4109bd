package mongostore

import (
	"strconv"
	"time"

	"github.com/yukikurage/team-insights-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents decode identifiers as interface{} because collections written by
// different services mix ObjectIDs, strings and numbers for the same field.

type teamDocument struct {
	ID         interface{}   `bson:"_id"`
	Name       string        `bson:"name"`
	MemberIDs  []interface{} `bson:"memberIds"`
	ProjectIDs []interface{} `bson:"projectIds"`
	CreatedAt  time.Time     `bson:"createdAt"`
	UpdatedAt  time.Time     `bson:"updatedAt"`
}

func (d teamDocument) toModel() models.Team {
	return models.Team{
		ID:         models.NormalizeID(d.ID),
		Name:       d.Name,
		MemberIDs:  models.NormalizeIDs(d.MemberIDs),
		ProjectIDs: models.NormalizeIDs(d.ProjectIDs),
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

func newTeamDocument(team *models.Team) teamDocument {
	return teamDocument{
		ID:         string(team.ID),
		Name:       team.Name,
		MemberIDs:  idValues(team.MemberIDs),
		ProjectIDs: idValues(team.ProjectIDs),
		CreatedAt:  team.CreatedAt,
		UpdatedAt:  team.UpdatedAt,
	}
}

type projectDocument struct {
	ID        interface{}   `bson:"_id"`
	Name      string        `bson:"name"`
	TeamIDs   []interface{} `bson:"teamIds"`
	CreatedAt time.Time     `bson:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt"`
}

func (d projectDocument) toModel() models.Project {
	return models.Project{
		ID:        models.NormalizeID(d.ID),
		Name:      d.Name,
		TeamIDs:   models.NormalizeIDs(d.TeamIDs),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type taskDocument struct {
	ID          interface{}   `bson:"_id"`
	Title       string        `bson:"title"`
	ProjectID   interface{}   `bson:"projectId"`
	Status      string        `bson:"status"`
	AssigneeIDs []interface{} `bson:"assigneeIds"`
	ActualCost  interface{}   `bson:"actualCost"`
	DueDate     *time.Time    `bson:"dueDate"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
	IsDeleted   bool          `bson:"isDeleted"`
}

func (d taskDocument) toModel() models.Task {
	return models.Task{
		ID:          models.NormalizeID(d.ID),
		Title:       d.Title,
		ProjectID:   models.NormalizeID(d.ProjectID),
		Status:      models.TaskStatus(d.Status),
		AssigneeIDs: models.NormalizeIDs(d.AssigneeIDs),
		ActualCost:  numericValue(d.ActualCost),
		DueDate:     d.DueDate,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		IsDeleted:   d.IsDeleted,
	}
}

type userDocument struct {
	ID       interface{} `bson:"_id"`
	Name     string      `bson:"name"`
	JobTitle string      `bson:"jobTitle"`
	Avatar   string      `bson:"avatar"`
}

func (d userDocument) toModel() models.User {
	return models.User{
		ID:       models.NormalizeID(d.ID),
		Name:     d.Name,
		JobTitle: d.JobTitle,
		Avatar:   d.Avatar,
	}
}

// numericValue reads a cost stored as any BSON numeric type. Non-numeric
// values are treated as missing.
func numericValue(v interface{}) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	case primitive.Decimal128:
		parsed, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return nil
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	return &f
}

func idValues(ids []models.ID) []interface{} {
	values := make([]interface{}, 0, len(ids))
	for _, id := range models.UniqueIDs(ids) {
		values = append(values, string(id))
	}
	return values
}

// idCandidates expands each id into every stored form it may take: the plain
// string and, for 24-char hex ids, the ObjectID.
func idCandidates(ids ...models.ID) []interface{} {
	candidates := make([]interface{}, 0, len(ids)*2)
	for _, id := range models.UniqueIDs(ids) {
		candidates = append(candidates, string(id))
		if oid, err := primitive.ObjectIDFromHex(string(id)); err == nil {
			candidates = append(candidates, oid)
		}
	}
	return candidates
}
