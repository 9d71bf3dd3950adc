package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{"watch url with timestamp", "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=5s", "dQw4w9WgXcQ", true},
		{"watch url", "https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"mobile watch url", "https://m.youtube.com/watch?v=dQw4w9WgXcQ&feature=share", "dQw4w9WgXcQ", true},
		{"embed url", "https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"nocookie embed url", "https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ?start=10", "dQw4w9WgXcQ", true},
		{"short link", "https://youtu.be/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"short link with share id", "https://youtu.be/dQw4w9WgXcQ?si=abcdef", "dQw4w9WgXcQ", true},
		{"shorts url", "https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"live url", "https://www.youtube.com/live/dQw4w9WgXcQ?feature=share", "dQw4w9WgXcQ", true},
		{"v param not first", "https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"bare id", "dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"bare id with dash and underscore", "a-b_c-d_e-f", "a-b_c-d_e-f", true},
		{"surrounding whitespace", "  dQw4w9WgXcQ \n", "dQw4w9WgXcQ", true},
		{"id too short", "https://www.youtube.com/watch?v=dQw4w9WgXc", "", false},
		{"id too long", "https://www.youtube.com/watch?v=dQw4w9WgXcQQ", "", false},
		{"bare id too short", "dQw4w9WgXc", "", false},
		{"bare id too long", "dQw4w9WgXcQQ", "", false},
		{"bare id with invalid character", "dQw4w9WgXc!", "", false},
		{"channel url", "https://www.youtube.com/@golang", "", false},
		{"plain words", "not a url", "", false},
		{"empty", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractVideoID(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestIsValidVideoID(t *testing.T) {
	assert.True(t, IsValidVideoID("dQw4w9WgXcQ"))
	assert.True(t, IsValidVideoID("___________"))
	assert.False(t, IsValidVideoID(""))
	assert.False(t, IsValidVideoID("dQw4w9WgXc"))
	assert.False(t, IsValidVideoID("dQw4w9WgXcQ "))
	assert.False(t, IsValidVideoID("dQw4w9WgX.Q"))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		input string
		want  InputKind
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", InputKindVideo},
		{"https://youtu.be/dQw4w9WgXcQ", InputKindVideo},
		{"https://www.youtube-nocookie.com/embed/dQw4w9WgXcQ", InputKindVideo},
		{"HTTPS://WWW.YOUTUBE.COM/watch?v=dQw4w9WgXcQ", InputKindVideo},
		// host match alone decides, extraction may still fail later
		{"https://www.youtube.com/watch?v=short", InputKindVideo},
		{"dQw4w9WgXcQ", InputKindVideo},
		// any 11 character token from the ID alphabet is treated as an ID
		{"programming", InputKindVideo},
		{"golang concurrency patterns", InputKindSearch},
		{"not a url", InputKindSearch},
		{"https://vimeo.com/12345", InputKindSearch},
		{"", InputKindUnknown},
		{"  ", InputKindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.input))
		})
	}
}

func TestNewVideoRef(t *testing.T) {
	ref, err := NewVideoRef("https://youtu.be/dQw4w9WgXcQ", "Never Gonna Give You Up")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", ref.ID)
	assert.Equal(t, "https://www.youtube.com/watch?v=dQw4w9WgXcQ", ref.URL)
	assert.Equal(t, "Never Gonna Give You Up (dQw4w9WgXcQ)", ref.String())

	_, err = NewVideoRef("not a url", "")
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
