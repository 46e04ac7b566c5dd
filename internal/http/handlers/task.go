package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"sort"
	"strings"

	"taskmanager/internal/domain"
	"taskmanager/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgBadTaskID = "Invalid task ID format"

var (
	stringType = reflect.TypeOf("")
	boolType   = reflect.TypeOf(true)
)

// patchFields lists the keys accepted by UpdateTask, in reporting order.
var patchFields = []string{"title", "description", "completed", "dueDate", "priority"}

func (h *Handler) ListTasks(c *gin.Context) {
	owner, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return
	}

	var f domain.TaskFilter
	if v, present := c.GetQuery("completed"); present {
		completed := strings.EqualFold(v, "true")
		f.Completed = &completed
	}

	tasks, err := h.Tasks.List(c.Request.Context(), owner, f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) GetTask(c *gin.Context) {
	owner, id, ok := h.taskParams(c)
	if !ok {
		return
	}

	task, err := h.Tasks.Get(c.Request.Context(), owner, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) CreateTask(c *gin.Context) {
	owner, ok := getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return
	}

	var req domain.TaskInput
	if err := bindJSON(c, &req); err != nil {
		respondError(c, err)
		return
	}

	task, err := h.Tasks.Create(c.Request.Context(), owner, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *Handler) UpdateTask(c *gin.Context) {
	owner, id, ok := h.taskParams(c)
	if !ok {
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		respondError(c, domain.Validation("Malformed JSON body"))
		return
	}
	patch, err := parsePatch(body)
	if err != nil {
		respondError(c, err)
		return
	}

	task, err := h.Tasks.Update(c.Request.Context(), owner, id, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	owner, id, ok := h.taskParams(c)
	if !ok {
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), owner, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// taskParams resolves the caller and the :id path parameter, writing the
// error response itself when either is missing or malformed.
func (h *Handler) taskParams(c *gin.Context) (owner, id uuid.UUID, ok bool) {
	owner, ok = getUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondError(c, domain.Validation(msgBadTaskID))
		return uuid.Nil, uuid.Nil, false
	}
	return owner, id, true
}

// parsePatch decodes an update body key by key so that absent fields, null
// and zero values stay distinguishable.
func parsePatch(body []byte) (domain.TaskPatch, error) {
	var p domain.TaskPatch
	if len(bytes.TrimSpace(body)) == 0 {
		return p, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return p, domain.Validation(`"value" must be of type object`)
		}
		return p, validation.DecodeError(err)
	}

	var unknown []string
	for k := range raw {
		if !isPatchField(k) {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return p, domain.Validation(fmt.Sprintf("%q is not allowed", unknown[0]))
	}

	for _, field := range patchFields {
		v, ok := raw[field]
		if !ok {
			continue
		}
		isNull := bytes.Equal(bytes.TrimSpace(v), []byte("null"))

		switch field {
		case "title", "description", "priority":
			var s string
			if isNull || json.Unmarshal(v, &s) != nil {
				return p, domain.Validation(validation.TypeMessage(field, stringType))
			}
			switch field {
			case "title":
				p.Title = &s
			case "description":
				p.Description = &s
			default:
				prio := domain.Priority(s)
				p.Priority = &prio
			}
		case "completed":
			var b bool
			if isNull || json.Unmarshal(v, &b) != nil {
				return p, domain.Validation(validation.TypeMessage(field, boolType))
			}
			p.Completed = &b
		case "dueDate":
			p.DueDateSet = true
			if isNull {
				continue
			}
			var d domain.DueDate
			if err := json.Unmarshal(v, &d); err != nil {
				return p, domain.Validation(`"dueDate" must be a valid date`)
			}
			due := d.Time
			p.DueDate = &due
		}
	}
	return p, nil
}

func isPatchField(k string) bool {
	for _, f := range patchFields {
		if f == k {
			return true
		}
	}
	return false
}
