package cloudinary

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_PublicIDFromURL(t *testing.T) {
	typ, id, ok := PublicIDFromURL("https://res.cloudinary.com/demo/image/upload/v1712345678/hireboard/avatars/7/avatar_ab12.jpg")
	assert.True(t, ok)
	assert.Equal(t, "image", typ)
	assert.Equal(t, "hireboard/avatars/7/avatar_ab12", id)

	typ, id, ok = PublicIDFromURL("https://res.cloudinary.com/demo/raw/upload/v1/hireboard/resumes/3/cv_99.pdf")
	assert.True(t, ok)
	assert.Equal(t, "raw", typ)
	assert.Equal(t, "hireboard/resumes/3/cv_99.pdf", id)

	_, _, ok = PublicIDFromURL("https://example.com/file.pdf")
	assert.False(t, ok)
}

func Test_BuildOptimizedImageURL(t *testing.T) {
	assert.Equal(t, "https://res.cloudinary.com/demo/image/upload/q_auto,f_auto,w_800,c_fill/a/b",
		BuildOptimizedImageURL("demo", "a/b", 0))
}
