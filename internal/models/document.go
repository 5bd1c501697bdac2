package models

// Metadata of a stored document. Path points to the bytes, which are kept elsewhere
type DocumentFile struct {
	ID        int64 // zero until the document is persisted
	OwnerName string
	Type      string
	Path      string
}
