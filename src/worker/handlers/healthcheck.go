package handlers

import (
	"net/http"
	"sort"
)

type taskStatus struct {
	Name    string `json:"name"`
	NextRun string `json:"next_run"`
}

// Healthcheck reports the worker as alive along with each scheduled task and
// when it fires next.
func (h *Handler) Healthcheck(w http.ResponseWriter, r *http.Request) {
	tasks := []taskStatus{}
	for name, task := range h.Controller.GetSchedulers() {
		tasks = append(tasks, taskStatus{Name: name, NextRun: task.Next()})
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].Name < tasks[j].Name })

	h.respond(w, r, map[string]interface{}{"status": "alive", "tasks": tasks}, http.StatusOK)
}
