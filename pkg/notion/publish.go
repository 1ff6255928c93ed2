package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// Section is one titled block of content on a published page.
type Section struct {
	Heading  string
	Subtitle string
	Body     string
}

// Notion rejects rich text over 2000 characters per element.
const maxRichTextLen = 2000

// PublishPage creates a child page under parentPageID with one heading,
// optional subtitle, and paragraph per section. Returns the created page
// URL.
func PublishPage(ctx context.Context, client Client, parentPageID, title string, sections []Section) (string, error) {
	if parentPageID == "" {
		return "", eris.New("notion: parent page id required")
	}

	blocks := make([]notionapi.Block, 0, len(sections)*3)
	for _, sec := range sections {
		if sec.Heading != "" {
			blocks = append(blocks, &notionapi.Heading2Block{
				BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeHeading2},
				Heading2:   notionapi.Heading{RichText: richText(sec.Heading)},
			})
		}
		if sec.Subtitle != "" {
			blocks = append(blocks, &notionapi.Heading3Block{
				BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeHeading3},
				Heading3:   notionapi.Heading{RichText: richText(sec.Subtitle)},
			})
		}
		for _, chunk := range splitChunks(sec.Body, maxRichTextLen) {
			blocks = append(blocks, &notionapi.ParagraphBlock{
				BasicBlock: notionapi.BasicBlock{Object: notionapi.ObjectTypeBlock, Type: notionapi.BlockTypeParagraph},
				Paragraph:  notionapi.Paragraph{RichText: richText(chunk)},
			})
		}
	}

	page, err := client.CreatePage(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{Type: notionapi.ParentTypePageID, PageID: notionapi.PageID(parentPageID)},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: richText(title),
			},
		},
		Children: blocks,
	})
	if err != nil {
		return "", err
	}
	return page.URL, nil
}

func richText(content string) []notionapi.RichText {
	return []notionapi.RichText{
		{Type: notionapi.ObjectTypeText, Text: &notionapi.Text{Content: content}},
	}
}

// splitChunks breaks s into pieces no longer than n bytes, preferring to
// split at newlines.
func splitChunks(s string, n int) []string {
	if s == "" {
		return nil
	}
	var chunks []string
	for len(s) > n {
		cut := n
		for i := n; i > n/2; i-- {
			if s[i-1] == '\n' {
				cut = i
				break
			}
		}
		chunks = append(chunks, s[:cut])
		s = s[cut:]
	}
	return append(chunks, s)
}
