package note

import (
	"net/http"
	"testing"

	"github.com/studydesk/core/internal/models"
	"github.com/studydesk/core/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerNoteLifecycle(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")
	r, api := testutil.NewRouter()
	NewHandler(NewService(db)).RegisterRoutes(api, testutil.AuthAs(alice.ID))

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/notes", map[string]interface{}{
		"title":   "Cells",
		"content": "mitochondria",
		"tags":    []string{"Bio"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := testutil.DecodeJSON[models.NoteModel](t, w)
	assert.Equal(t, "bio", created.Tags[0].Name)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/notes/search?q=MITO", nil)
	require.Equal(t, http.StatusOK, w.Code)
	hits := testutil.DecodeJSON[struct {
		Data []models.NoteModel `json:"data"`
	}](t, w)
	assert.Len(t, hits.Data, 1)

	w = testutil.DoJSON(t, r, http.MethodPut, "/api/notes/"+created.ID, `{"title":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, testutil.DecodeJSON[models.NoteModel](t, w).Title)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/notes?page=1&size=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pagination"`)

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/notes/"+created.ID+"/export?format=markdown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mitochondria\n", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/markdown")

	w = testutil.DoJSON(t, r, http.MethodGet, "/api/notes/"+created.ID+"/export?format=pdf", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = testutil.DoJSON(t, r, http.MethodDelete, "/api/notes/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = testutil.DoJSON(t, r, http.MethodGet, "/api/notes/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandlerImportRequiresMarkdown(t *testing.T) {
	db := testutil.NewDB(t)
	alice := testutil.CreateUser(t, db, "alice", "alice@example.com")
	r, api := testutil.NewRouter()
	NewHandler(NewService(db)).RegisterRoutes(api, testutil.AuthAs(alice.ID))

	w := testutil.DoJSON(t, r, http.MethodPost, "/api/notes/import", map[string]string{"markdown": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "markdown")
}
