package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/anuj452005/excalidraw/internal/domain"
	"github.com/anuj452005/excalidraw/internal/imagehost"
	"github.com/anuj452005/excalidraw/internal/runner"
)

// In-memory stores backing handler tests. Map iteration order is hidden by
// sorting in the list methods.

type memUsers struct{ byID map[string]domain.User }

func (m *memUsers) CreateUser(u *domain.User) error { m.byID[u.ID] = *u; return nil }
func (m *memUsers) GetUser(id string) (*domain.User, error) {
	if u, ok := m.byID[id]; ok {
		return &u, nil
	}
	return nil, domain.ErrNotFound
}
func (m *memUsers) GetUserByEmail(email string) (*domain.User, error) {
	for _, u := range m.byID {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

type memPages struct {
	pages   map[string]domain.Page
	folders map[string]domain.Folder
}

func (m *memPages) CreatePage(p *domain.Page) error { m.pages[p.ID] = *p; return nil }
func (m *memPages) GetPage(id string) (*domain.Page, error) {
	if p, ok := m.pages[id]; ok {
		return &p, nil
	}
	return nil, domain.ErrNotFound
}
func (m *memPages) ListPages(userID string) ([]domain.Page, error) {
	var out []domain.Page
	for _, p := range m.pages {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (m *memPages) UpdatePage(p *domain.Page) error {
	if _, ok := m.pages[p.ID]; !ok {
		return domain.ErrNotFound
	}
	m.pages[p.ID] = *p
	return nil
}
func (m *memPages) DeletePage(id string) error {
	if _, ok := m.pages[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.pages, id)
	return nil
}
func (m *memPages) CreateFolder(f *domain.Folder) error { m.folders[f.ID] = *f; return nil }
func (m *memPages) GetFolder(id string) (*domain.Folder, error) {
	if f, ok := m.folders[id]; ok {
		return &f, nil
	}
	return nil, domain.ErrNotFound
}
func (m *memPages) ListFolders(userID string) ([]domain.Folder, error) {
	var out []domain.Folder
	for _, f := range m.folders {
		if f.UserID == userID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
func (m *memPages) UpdateFolder(f *domain.Folder) error { m.folders[f.ID] = *f; return nil }
func (m *memPages) DeleteFolder(id string) error        { delete(m.folders, id); return nil }

type memBlocks struct{ byID map[string]domain.Block }

func (m *memBlocks) CreateBlock(b *domain.Block) error { m.byID[b.ID] = *b; return nil }
func (m *memBlocks) GetBlock(id string) (*domain.Block, error) {
	if b, ok := m.byID[id]; ok {
		return &b, nil
	}
	return nil, domain.ErrNotFound
}
func (m *memBlocks) ListBlocks(pageID string) ([]domain.Block, error) {
	var out []domain.Block
	for _, b := range m.byID {
		if b.PageID == pageID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderIndex < out[j].OrderIndex })
	return out, nil
}
func (m *memBlocks) UpdateBlock(b *domain.Block) error {
	if _, ok := m.byID[b.ID]; !ok {
		return domain.ErrNotFound
	}
	m.byID[b.ID] = *b
	return nil
}
func (m *memBlocks) DeleteBlock(id string) error {
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
func (m *memBlocks) DeleteBlocksByPage(pageID string) error {
	for id, b := range m.byID {
		if b.PageID == pageID {
			delete(m.byID, id)
		}
	}
	return nil
}
func (m *memBlocks) DeleteOrphanBlocks() (int64, error) { return 0, nil }

func newTestServer() (*Server, *memBlocks) {
	blocks := &memBlocks{byID: map[string]domain.Block{}}
	s := New(
		&memUsers{byID: map[string]domain.User{}},
		&memPages{pages: map[string]domain.Page{}, folders: map[string]domain.Folder{}},
		blocks,
		runner.New("http://localhost:0"),
		imagehost.New("", ""),
		"test-secret",
	)
	return s, blocks
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": email, "password": "hunter2hunter2"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d: %s", email, rec.Code, rec.Body)
	}
	var out authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	return out.Token
}

func TestRegisterAndLogin(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()
	register(t, h, "ana@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ana@example.com", "password": "hunter2hunter2"})
	if rec.Code != http.StatusOK {
		t.Fatalf("login: status %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "ana@example.com", "password": "wrong-password"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad login: status %d, want 401", rec.Code)
	}
}

func TestRegisterValidation(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "ana@example.com", "password": "short"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("short password: status %d, want 400", rec.Code)
	}

	register(t, h, "ana@example.com")
	rec = doJSON(t, h, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "ana@example.com", "password": "hunter2hunter2"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate email: status %d, want 400", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()

	if rec := doJSON(t, h, http.MethodGet, "/api/pages", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", rec.Code)
	}
	if rec := doJSON(t, h, http.MethodGet, "/api/pages", "garbage", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: status %d, want 401", rec.Code)
	}
}

func createPage(t *testing.T, h http.Handler, token, title string) domain.Page {
	t.Helper()
	rec := doJSON(t, h, http.MethodPost, "/api/pages", token, map[string]string{"title": title})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create page: status %d: %s", rec.Code, rec.Body)
	}
	var p domain.Page
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestPageLifecycle(t *testing.T) {
	s, blocks := newTestServer()
	h := s.Handler()
	token := register(t, h, "ana@example.com")

	p := createPage(t, h, token, "Plans")

	rec := doJSON(t, h, http.MethodPost, "/api/blocks", token, map[string]any{
		"pageId": p.ID, "type": "text", "orderIndex": 0,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create block: status %d: %s", rec.Code, rec.Body)
	}
	var b domain.Block
	json.Unmarshal(rec.Body.Bytes(), &b)
	if b.ID == "" {
		t.Fatal("server did not assign a block id")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/pages/"+p.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get page: status %d", rec.Code)
	}
	var state domain.PageState
	json.Unmarshal(rec.Body.Bytes(), &state)
	if len(state.Blocks) != 1 || state.Page.Title != "Plans" {
		t.Fatalf("page state = %+v", state)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/pages/"+p.ID, token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete page: status %d", rec.Code)
	}
	if len(blocks.byID) != 0 {
		t.Fatalf("page delete left %d blocks behind", len(blocks.byID))
	}
}

func TestOwnershipEnforced(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()
	anaToken := register(t, h, "ana@example.com")
	bobToken := register(t, h, "bob@example.com")

	p := createPage(t, h, anaToken, "Private")

	for _, tc := range []struct {
		method, path string
		body         any
	}{
		{http.MethodGet, "/api/pages/" + p.ID, nil},
		{http.MethodPut, "/api/pages/" + p.ID, map[string]string{"title": "Stolen"}},
		{http.MethodDelete, "/api/pages/" + p.ID, nil},
		{http.MethodPost, "/api/blocks", map[string]any{"pageId": p.ID, "type": "text"}},
	} {
		rec := doJSON(t, h, tc.method, tc.path, bobToken, tc.body)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s as non-owner: status %d, want 403", tc.method, tc.path, rec.Code)
		}
	}
}

func TestBlockUpdateMergesContent(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()
	token := register(t, h, "ana@example.com")
	p := createPage(t, h, token, "Plans")

	rec := doJSON(t, h, http.MethodPost, "/api/blocks", token, map[string]any{
		"pageId": p.ID, "type": "text",
		"content": json.RawMessage(`{"text":"old","position":{"x":100,"y":100,"width":400,"height":150}}`),
	})
	var b domain.Block
	json.Unmarshal(rec.Body.Bytes(), &b)

	rec = doJSON(t, h, http.MethodPut, "/api/blocks/"+b.ID, token, map[string]any{
		"content": json.RawMessage(`{"text":"new"}`),
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update block: status %d: %s", rec.Code, rec.Body)
	}
	var updated domain.Block
	json.Unmarshal(rec.Body.Bytes(), &updated)
	var content domain.TextContent
	json.Unmarshal(updated.Content, &content)
	if content.Text != "new" || content.Position == nil {
		t.Fatalf("merge result = %s", updated.Content)
	}
}

func TestCreateBlockRejectsUnknownType(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()
	token := register(t, h, "ana@example.com")
	p := createPage(t, h, token, "Plans")

	rec := doJSON(t, h, http.MethodPost, "/api/blocks", token, map[string]any{
		"pageId": p.ID, "type": "spreadsheet",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unknown type: status %d, want 400", rec.Code)
	}
}

func TestMissingPageIs404(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()
	token := register(t, h, "ana@example.com")

	if rec := doJSON(t, h, http.MethodGet, "/api/pages/nope", token, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("missing page: status %d, want 404", rec.Code)
	}
}

func TestFolderValidation(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()
	token := register(t, h, "ana@example.com")

	rec := doJSON(t, h, http.MethodPost, "/api/folders", token, map[string]string{"name": "   "})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("blank folder name: status %d, want 400", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/folders", token, map[string]string{"name": "Work"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create folder: status %d: %s", rec.Code, rec.Body)
	}
}

func TestImageUploadFallsBackToLocal(t *testing.T) {
	s, _ := newTestServer() // image host unconfigured
	h := s.Handler()
	token := register(t, h, "ana@example.com")

	data := "data:image/png;base64,aGVsbG8="
	rec := doJSON(t, h, http.MethodPost, "/api/images", token, map[string]string{"data": data})
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: status %d: %s", rec.Code, rec.Body)
	}
	var out uploadResponse
	json.Unmarshal(rec.Body.Bytes(), &out)
	if out.LocalData != data || out.URL != "" {
		t.Fatalf("fallback response = %+v", out)
	}
}

func TestExportPDF(t *testing.T) {
	s, _ := newTestServer()
	h := s.Handler()
	token := register(t, h, "ana@example.com")
	p := createPage(t, h, token, "Plans")

	doJSON(t, h, http.MethodPost, "/api/blocks", token, map[string]any{
		"pageId": p.ID, "type": "text",
		"content": json.RawMessage(`{"text":"hello"}`),
	})

	rec := doJSON(t, h, http.MethodGet, fmt.Sprintf("/api/pages/%s/export.pdf", p.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status %d: %s", rec.Code, rec.Body)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("content type = %q", ct)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatal("response is not a PDF document")
	}
}
