package article_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"pressroom/internal/domain/entity"
	"pressroom/internal/handler/http/article"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToResource_WireFormat(t *testing.T) {
	got, err := article.Marshal(entity.Article{ID: 7, AuthorID: 3, Title: "Hello"})

	require.NoError(t, err)
	assert.Equal(t, `{"type":"articles","id":"7","attribute":{"title":"Hello"}}`, string(got))
}

func TestToResource_IgnoresOtherFields(t *testing.T) {
	a := entity.Article{ID: 12, AuthorID: 4, Title: "Quiet morning", CreatedAt: time.Now(), UpdatedAt: time.Now()}

	got := article.ToResource(a)

	assert.Equal(t, article.Resource{Type: "articles", ID: "12", Attribute: article.Attribute{Title: "Quiet morning"}}, got)
}

func TestMarshal_Deterministic(t *testing.T) {
	a := entity.Article{ID: 99, Title: `Quotes "and" <tags> & ünïcode`}

	first, err := article.Marshal(a)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := article.Marshal(a)
		require.NoError(t, err)
		assert.True(t, bytes.Equal(first, again))
	}

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(first, &decoded))
	assert.Equal(t, "99", decoded["id"])
}

func TestToResource_ZeroID(t *testing.T) {
	assert.Equal(t, "0", article.ToResource(entity.Article{}).ID)
}

func TestTransform(t *testing.T) {
	a := entity.Article{ID: 3, Title: "Pointer or value"}

	byValue, err := article.Transform(a)
	require.NoError(t, err)
	byPointer, err := article.Transform(&a)
	require.NoError(t, err)
	assert.Equal(t, byValue, byPointer)

	_, err = article.Transform(entity.Person{FirstName: "Ann"})
	assert.ErrorIs(t, err, entity.ErrInvalidEntityType)

	_, err = article.Transform(entity.Comment{ArticleID: 1, AuthorID: 1, Body: "x"})
	assert.ErrorIs(t, err, entity.ErrInvalidEntityType)

	var nilArticle *entity.Article
	_, err = article.Transform(nilArticle)
	assert.ErrorIs(t, err, entity.ErrInvalidEntityType)
}

func TestToCollection(t *testing.T) {
	got, err := json.Marshal(article.ToCollection([]entity.Article{
		{ID: 1, Title: "One"},
		{ID: 2, Title: "Two"},
	}))
	require.NoError(t, err)
	assert.Equal(t,
		`{"data":[{"type":"articles","id":"1","attribute":{"title":"One"}},{"type":"articles","id":"2","attribute":{"title":"Two"}}]}`,
		string(got))

	empty, err := json.Marshal(article.ToCollection(nil))
	require.NoError(t, err)
	assert.Equal(t, `{"data":[]}`, string(empty))
}
