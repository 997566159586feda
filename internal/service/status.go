package service

import "zen-dashboard/internal/model"

// ComputeStatus summarises how a category is doing. High-priority tasks
// decide the colour when there are any; otherwise a category with work and
// nothing done is a warning. An empty category is reported as success.
func ComputeStatus(tasks []model.Task, category model.Category) model.CategoryStatus {
	st := model.CategoryStatus{Category: category}
	for _, task := range tasks {
		if task.Category != category {
			continue
		}
		st.Total++
		if task.Completed {
			st.Completed++
		}
		if task.Priority == model.PriorityHigh {
			st.HighPriorityTotal++
			if task.Completed {
				st.HighPriorityCompleted++
			}
		}
	}

	switch {
	case st.HighPriorityTotal > 0:
		switch st.HighPriorityCompleted {
		case 0:
			st.Status = model.StatusDanger
		case st.HighPriorityTotal:
			st.Status = model.StatusSuccess
		default:
			st.Status = model.StatusWarning
		}
	case st.Total > 0 && st.Completed == 0:
		st.Status = model.StatusWarning
	default:
		st.Status = model.StatusSuccess
	}
	return st
}

// ComputeAll returns the status of every category in display order.
func ComputeAll(tasks []model.Task) []model.CategoryStatus {
	out := make([]model.CategoryStatus, 0, len(model.Categories()))
	for _, c := range model.Categories() {
		out = append(out, ComputeStatus(tasks, c))
	}
	return out
}
