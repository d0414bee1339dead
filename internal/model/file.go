package model

// File holds the content of a locally stored upload (avatar, resume or logo)
// together with its original extension. Remote uploads never produce a File
// row; their FileRef points at the object store URL instead.
type File struct {
	ID        int `gorm:"primaryKey"`
	Content   []byte
	Extension string
}
