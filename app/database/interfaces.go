package database

type PageRepository interface {
	CreatePage(title, url, externalRunID string, payload []byte) (*SavedPage, error)
	GetPage(id int64) (*SavedPage, error)
	GetAllPages() ([]SavedPage, error)
	SearchPages(substr string) ([]SavedPage, error)
	GetPageCount() (int, error)
}
