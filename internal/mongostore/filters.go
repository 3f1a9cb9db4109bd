package mongostore

import (
	"regexp"
	"strings"

	"github.com/yukikurage/team-insights-api/internal/models"
	"github.com/yukikurage/team-insights-api/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func byID(id models.ID) bson.M {
	return bson.M{"_id": bson.M{"$in": idCandidates(id)}}
}

func byIDs(ids []models.ID) bson.M {
	return bson.M{"_id": bson.M{"$in": idCandidates(ids...)}}
}

// projectsWithTeamsFilter matches projects whose teamIds array has a first element.
func projectsWithTeamsFilter() bson.M {
	return bson.M{"teamIds.0": bson.M{"$exists": true}}
}

// taskFilter translates a repository.TaskFilter into a tasks collection query.
func taskFilter(projectIDs []models.ID, filter repository.TaskFilter) bson.M {
	query := bson.M{"projectId": bson.M{"$in": idCandidates(projectIDs...)}}

	if filter.ExcludeDeleted {
		query["isDeleted"] = bson.M{"$ne": true}
	}

	if len(filter.Statuses) > 0 {
		alternatives := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			alternatives[i] = regexp.QuoteMeta(string(s.Normalize()))
		}
		query["status"] = primitive.Regex{
			Pattern: "^(?:" + strings.Join(alternatives, "|") + ")$",
			Options: "i",
		}
	}

	updated := bson.M{}
	if filter.UpdatedFrom != nil {
		updated["$gte"] = filter.UpdatedFrom.UTC()
	}
	if filter.UpdatedTo != nil {
		updated["$lt"] = filter.UpdatedTo.UTC()
	}
	if len(updated) > 0 {
		query["updatedAt"] = updated
	}

	return query
}
