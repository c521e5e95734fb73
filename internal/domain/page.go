package domain

import "time"

type Folder struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Page struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	FolderID  string    `json:"folderId,omitempty"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PageState is a page plus its blocks in order index order. Returned to the
// editor to render the full canvas.
type PageState struct {
	Page   Page    `json:"page"`
	Blocks []Block `json:"blocks"`
}

type PageStore interface {
	CreatePage(p *Page) error
	GetPage(id string) (*Page, error)
	ListPages(userID string) ([]Page, error)
	UpdatePage(p *Page) error
	DeletePage(id string) error

	CreateFolder(f *Folder) error
	GetFolder(id string) (*Folder, error)
	ListFolders(userID string) ([]Folder, error)
	UpdateFolder(f *Folder) error
	DeleteFolder(id string) error
}
