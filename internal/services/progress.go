package services

import (
	"math"

	"github.com/yukikurage/team-insights-api/internal/models"
)

var statusWeights = map[models.TaskStatus]int{
	models.TaskStatusBacklog:    0,
	models.TaskStatusTodo:       0,
	models.TaskStatusInProgress: 50,
	models.TaskStatusInReview:   80,
	models.TaskStatusQA:         90,
	models.TaskStatusCompleted:  100,
	models.TaskStatusCanceled:   0,
	models.TaskStatusPostpone:   0,
}

// StatusWeight returns the completion percentage credited to a task in the
// given status. Matching ignores case; unknown statuses weigh 0.
func StatusWeight(status models.TaskStatus) int {
	return statusWeights[status.Normalize()]
}

// TeamProgress averages the status weights of the tasks assigned to at least
// one of memberIDs, rounded half up. It returns 0 when no task qualifies.
func TeamProgress(tasks []models.Task, memberIDs []models.ID) int {
	members := models.NewIDSet(memberIDs...)

	total, count := 0, 0
	for _, task := range tasks {
		if !members.Intersects(task.AssigneeIDs) {
			continue
		}
		total += StatusWeight(task.Status)
		count++
	}

	if count == 0 {
		return 0
	}
	return int(math.Floor(float64(total)/float64(count) + 0.5))
}
