package notion

import (
	"context"
	"strings"
	"testing"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClient struct {
	lastCreate *notionapi.PageCreateRequest
	createErr  error
}

func (f *fakeClient) CreatePage(_ context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error) {
	f.lastCreate = req
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &notionapi.Page{URL: "https://notion.so/fake-page"}, nil
}

func (f *fakeClient) AppendBlocks(context.Context, string, []notionapi.Block) error {
	return nil
}

func TestPublishPage(t *testing.T) {
	t.Parallel()
	fc := &fakeClient{}

	url, err := PublishPage(context.Background(), fc, "parent-id", "HepatoBurn Email Sequence", []Section{
		{Heading: "Email 1", Subtitle: "Subject: Tired all the time?", Body: "Body copy."},
		{Heading: "Email 2", Subtitle: "Subject: It gets worse", Body: "More body copy."},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://notion.so/fake-page", url)

	req := fc.lastCreate
	require.NotNil(t, req)
	assert.Equal(t, notionapi.PageID("parent-id"), req.Parent.PageID)

	title, ok := req.Properties["title"].(notionapi.TitleProperty)
	require.True(t, ok)
	require.Len(t, title.Title, 1)
	assert.Equal(t, "HepatoBurn Email Sequence", title.Title[0].Text.Content)

	// heading + subtitle + one paragraph per section
	assert.Len(t, req.Children, 6)
}

func TestPublishPage_RequiresParent(t *testing.T) {
	t.Parallel()
	_, err := PublishPage(context.Background(), &fakeClient{}, "", "t", nil)
	require.Error(t, err)
}

func TestPublishPage_SplitsLongBodies(t *testing.T) {
	t.Parallel()
	fc := &fakeClient{}
	long := strings.Repeat("line of body copy\n", 300) // ~5400 chars

	_, err := PublishPage(context.Background(), fc, "parent-id", "t", []Section{
		{Heading: "Email 1", Body: long},
	})
	require.NoError(t, err)

	paragraphs := 0
	for _, b := range fc.lastCreate.Children {
		if p, ok := b.(*notionapi.ParagraphBlock); ok {
			paragraphs++
			require.Len(t, p.Paragraph.RichText, 1)
			assert.LessOrEqual(t, len(p.Paragraph.RichText[0].Text.Content), maxRichTextLen)
		}
	}
	assert.GreaterOrEqual(t, paragraphs, 3)
}

func TestSplitChunks(t *testing.T) {
	t.Parallel()
	assert.Nil(t, splitChunks("", 10))
	assert.Equal(t, []string{"short"}, splitChunks("short", 10))

	chunks := splitChunks("aaaa\nbbbb\ncccc", 6)
	joined := strings.Join(chunks, "")
	assert.Equal(t, "aaaa\nbbbb\ncccc", joined)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 6)
	}
}
