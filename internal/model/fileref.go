package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// FileKind tags where a stored file reference points.
type FileKind string

const (
	// FileKindLocal references a File row served by this API
	FileKindLocal FileKind = "local"
	// FileKindRemote references a full external URL
	FileKindRemote FileKind = "remote"
)

// FileRef is a tagged reference to an uploaded file. The database stores it
// as a single text column; the URL-scheme prefix is resolved exactly once,
// when the value is scanned, instead of at every read site.
type FileRef struct {
	Kind FileKind `json:"kind"`
	Raw  string   `json:"value"`
}

// LocalFileRef builds a reference to a File row stored by this API.
func LocalFileRef(path string) FileRef {
	return FileRef{Kind: FileKindLocal, Raw: path}
}

// RemoteFileRef builds a reference to an external object URL.
func RemoteFileRef(url string) FileRef {
	return FileRef{Kind: FileKindRemote, Raw: url}
}

// ParseFileRef resolves a raw stored string into a tagged reference.
func ParseFileRef(raw string) FileRef {
	if raw == "" {
		return FileRef{}
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return RemoteFileRef(raw)
	}
	return LocalFileRef(raw)
}

// IsZero reports whether no file has been attached.
func (f FileRef) IsZero() bool {
	return f.Raw == ""
}

// Scan implements sql.Scanner.
func (f *FileRef) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*f = FileRef{}
	case string:
		*f = ParseFileRef(v)
	case []byte:
		*f = ParseFileRef(string(v))
	default:
		return fmt.Errorf("cannot scan %T into FileRef", src)
	}
	return nil
}

// Value implements driver.Valuer, storing the raw string form.
func (f FileRef) Value() (driver.Value, error) {
	return f.Raw, nil
}

// MarshalJSON renders an empty reference as null and everything else as
// the tagged {kind, value} object.
func (f FileRef) MarshalJSON() ([]byte, error) {
	if f.IsZero() {
		return []byte("null"), nil
	}
	type alias FileRef
	return json.Marshal(alias(f))
}

// UnmarshalJSON accepts either the tagged object or a bare string, since
// older clients submit file references as plain strings.
func (f *FileRef) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = FileRef{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*f = ParseFileRef(raw)
		return nil
	}
	type alias FileRef
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*f = FileRef(a)
	return nil
}
