package handlers

import (
	"net/http"
	"strings"
	"time"

	"homestock/internal/chores"
	"homestock/internal/database"
	"homestock/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type choreRequest struct {
	Name          string `json:"name"`
	FrequencyDays *int   `json:"frequencyDays"`
}

type completeChoreRequest struct {
	Notes string `json:"notes"`
}

// choreScheduleEntry is one chore's derived schedule state as returned by the
// schedule endpoint.
type choreScheduleEntry struct {
	Chore             models.Chore `json:"chore"`
	Status            string       `json:"status"`
	NextDue           *time.Time   `json:"nextDue,omitempty"`
	DaysSinceLastDone *int         `json:"daysSinceLastDone,omitempty"`
	Occurrences       []time.Time  `json:"occurrences,omitempty"`
}

func validateChoreRequest(c *gin.Context, req *choreRequest) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		badRequest(c, "Chore name is required")
		return false
	}
	if req.FrequencyDays != nil && *req.FrequencyDays < 1 {
		badRequest(c, "Frequency must be at least one day")
		return false
	}
	return true
}

func handleCreateChore(c *gin.Context) {
	var req choreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid chore payload")
		return
	}
	if !validateChoreRequest(c, &req) {
		return
	}

	now := time.Now().UTC()
	chore := models.Chore{
		ID:            uuid.New().String(),
		Name:          req.Name,
		FrequencyDays: req.FrequencyDays,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	all, err := database.LoadChores(db)
	if err != nil {
		internalError(c, "Failed to load chores")
		return
	}
	all = append(all, chore)
	if err := database.SaveChores(db, all); err != nil {
		internalError(c, "Failed to save chores")
		return
	}

	c.JSON(http.StatusCreated, chore)
}

func handleUpdateChore(c *gin.Context) {
	var req choreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid chore payload")
		return
	}
	if !validateChoreRequest(c, &req) {
		return
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	all, err := database.LoadChores(db)
	if err != nil {
		internalError(c, "Failed to load chores")
		return
	}

	chore := findChore(all, c.Param("id"))
	if chore == nil {
		notFound(c, "Chore not found")
		return
	}

	chore.Name = req.Name
	chore.FrequencyDays = req.FrequencyDays
	chore.UpdatedAt = time.Now().UTC()

	if err := database.SaveChores(db, all); err != nil {
		internalError(c, "Failed to save chores")
		return
	}
	c.JSON(http.StatusOK, chore)
}

func handleDeleteChore(c *gin.Context) {
	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	all, err := database.LoadChores(db)
	if err != nil {
		internalError(c, "Failed to load chores")
		return
	}

	kept := all[:0]
	found := false
	for _, chore := range all {
		if chore.ID == c.Param("id") {
			found = true
			continue
		}
		kept = append(kept, chore)
	}
	if !found {
		notFound(c, "Chore not found")
		return
	}

	// Completions keep their chore name snapshot, so history stays readable
	// after the chore is gone.
	if err := database.SaveChores(db, kept); err != nil {
		internalError(c, "Failed to save chores")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func handleCompleteChore(c *gin.Context) {
	var req completeChoreRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, "Invalid completion payload")
			return
		}
	}

	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	all, err := database.LoadChores(db)
	if err != nil {
		internalError(c, "Failed to load chores")
		return
	}

	chore := findChore(all, c.Param("id"))
	if chore == nil {
		notFound(c, "Chore not found")
		return
	}

	completion := models.ChoreCompletion{
		ID:          uuid.New().String(),
		ChoreID:     chore.ID,
		ChoreName:   chore.Name,
		CompletedAt: time.Now().UTC(),
		Notes:       strings.TrimSpace(req.Notes),
	}

	history, err := database.LoadChoreHistory(db)
	if err != nil {
		internalError(c, "Failed to load chore history")
		return
	}
	history = append([]models.ChoreCompletion{completion}, history...)
	if err := database.SaveChoreHistory(db, history); err != nil {
		internalError(c, "Failed to save chore history")
		return
	}

	c.JSON(http.StatusCreated, completion)
}

func handleDeleteCompletion(c *gin.Context) {
	writeMu.Lock()
	defer writeMu.Unlock()

	db := getDB(c)
	history, err := database.LoadChoreHistory(db)
	if err != nil {
		internalError(c, "Failed to load chore history")
		return
	}

	kept := history[:0]
	found := false
	for _, completion := range history {
		if completion.ID == c.Param("id") {
			found = true
			continue
		}
		kept = append(kept, completion)
	}
	if !found {
		notFound(c, "Completion not found")
		return
	}

	if err := database.SaveChoreHistory(db, kept); err != nil {
		internalError(c, "Failed to save chore history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// handleChoreSchedule returns every chore's derived schedule state. With
// from/to query parameters it also projects the due dates falling in that
// range, which is what the calendar view renders.
func handleChoreSchedule(c *gin.Context) {
	db := getDB(c)
	all, err := database.LoadChores(db)
	if err != nil {
		internalError(c, "Failed to load chores")
		return
	}
	history, err := database.LoadChoreHistory(db)
	if err != nil {
		internalError(c, "Failed to load chore history")
		return
	}

	var from, to time.Time
	haveRange := false
	if fromParam := c.Query("from"); fromParam != "" {
		toParam := c.Query("to")
		if toParam == "" {
			badRequest(c, "Both from and to are required for a range")
			return
		}
		from, err = parseRangeParam(fromParam)
		if err != nil {
			badRequest(c, "Invalid from date")
			return
		}
		to, err = parseRangeParam(toParam)
		if err != nil {
			badRequest(c, "Invalid to date")
			return
		}
		if to.Before(from) {
			badRequest(c, "Range end must not precede its start")
			return
		}
		haveRange = true
	}

	now := time.Now().UTC()
	entries := make([]choreScheduleEntry, 0, len(all))
	for i := range all {
		chore := &all[i]
		entry := choreScheduleEntry{
			Chore:             *chore,
			Status:            chores.Status(chore, history, now),
			NextDue:           chores.NextDueDate(chore, history),
			DaysSinceLastDone: chores.DaysSinceLastDone(chore.ID, history, now),
		}
		if haveRange {
			entry.Occurrences = chores.DueDatesInRange(chore, history, from, to)
		}
		entries = append(entries, entry)
	}

	c.JSON(http.StatusOK, entries)
}

func findChore(all []models.Chore, id string) *models.Chore {
	for i := range all {
		if all[i].ID == id {
			return &all[i]
		}
	}
	return nil
}
