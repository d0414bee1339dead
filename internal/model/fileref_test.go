package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileRef(t *testing.T) {
	cases := []struct {
		raw  string
		kind FileKind
	}{
		{"https://storage.googleapis.com/bucket/resumes/a.pdf", FileKindRemote},
		{"http://cdn.example/logo.png", FileKindRemote},
		{"/api/v1/files/42", FileKindLocal},
		{"files/42", FileKindLocal},
	}
	for _, tc := range cases {
		ref := ParseFileRef(tc.raw)
		assert.Equal(t, tc.kind, ref.Kind, tc.raw)
		assert.Equal(t, tc.raw, ref.Raw)
	}

	assert.True(t, ParseFileRef("").IsZero())
}

func TestFileRefScan(t *testing.T) {
	var ref FileRef
	require.NoError(t, ref.Scan("https://cdn.example/a.png"))
	assert.Equal(t, FileKindRemote, ref.Kind)

	require.NoError(t, ref.Scan([]byte("/api/v1/files/7")))
	assert.Equal(t, FileKindLocal, ref.Kind)

	require.NoError(t, ref.Scan(nil))
	assert.True(t, ref.IsZero())

	assert.Error(t, ref.Scan(42))
}

func TestFileRefValue(t *testing.T) {
	v, err := RemoteFileRef("https://cdn.example/a.png").Value()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/a.png", v)

	v, err = FileRef{}.Value()
	require.NoError(t, err)
	assert.Equal(t, "", v)
}

func TestFileRefJSON(t *testing.T) {
	out, err := json.Marshal(LocalFileRef("/api/v1/files/3"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"local","value":"/api/v1/files/3"}`, string(out))

	out, err = json.Marshal(FileRef{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	// Tagged object form round-trips.
	var ref FileRef
	require.NoError(t, json.Unmarshal(out, &ref))
	assert.True(t, ref.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`{"kind":"remote","value":"https://cdn.example/b.png"}`), &ref))
	assert.Equal(t, RemoteFileRef("https://cdn.example/b.png"), ref)

	// Legacy bare string form is still accepted.
	require.NoError(t, json.Unmarshal([]byte(`"https://cdn.example/c.png"`), &ref))
	assert.Equal(t, FileKindRemote, ref.Kind)
}
