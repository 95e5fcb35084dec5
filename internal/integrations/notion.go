package integrations

import (
	"context"
	"fmt"
	"strings"

	"github.com/jomei/notionapi"

	"github.com/barenakeddev/intelliplan-sub000/internal/models"
)

// Ensure NotionDeliverer implements the Deliverer interface.
var _ Deliverer = (*NotionDeliverer)(nil)

// notionTextLimit is Notion's per-rich-text content cap; longer documents are
// split across paragraph blocks.
const notionTextLimit = 1900

// NotionDeliverer exports generated RFPs as pages under a configured parent
// page in the team's Notion workspace.
type NotionDeliverer struct {
	client       *notionapi.Client
	parentPageID string
}

// NewNotionDeliverer creates a Notion delivery target.
func NewNotionDeliverer(apiKey, parentPageID string) *NotionDeliverer {
	return &NotionDeliverer{
		client:       notionapi.NewClient(notionapi.Token(apiKey)),
		parentPageID: parentPageID,
	}
}

func (n *NotionDeliverer) Name() string { return "notion" }

// Deliver creates a child page titled after the conversation and fills it
// with the document text as paragraph blocks.
func (n *NotionDeliverer) Deliver(ctx context.Context, doc *models.RFPDocument) error {
	title := fmt.Sprintf("Venue RFP - %s", doc.ConversationID)

	children := make([]notionapi.Block, 0)
	for _, chunk := range splitByLimit(doc.Text, notionTextLimit) {
		children = append(children, &notionapi.ParagraphBlock{
			BasicBlock: notionapi.BasicBlock{
				Object: notionapi.ObjectTypeBlock,
				Type:   notionapi.BlockTypeParagraph,
			},
			Paragraph: notionapi.Paragraph{
				RichText: []notionapi.RichText{
					{Text: &notionapi.Text{Content: chunk}},
				},
			},
		})
	}

	_, err := n.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:   notionapi.ParentTypePageID,
			PageID: notionapi.PageID(n.parentPageID),
		},
		Properties: notionapi.Properties{
			"title": notionapi.TitleProperty{
				Title: []notionapi.RichText{
					{Text: &notionapi.Text{Content: title}},
				},
			},
		},
		Children: children,
	})
	if err != nil {
		return fmt.Errorf("creating notion page under %s: %w", n.parentPageID, err)
	}
	return nil
}

// splitByLimit breaks text into chunks of at most limit bytes, preferring to
// split at newlines.
func splitByLimit(text string, limit int) []string {
	if text == "" {
		return []string{""}
	}

	var chunks []string
	for len(text) > limit {
		cut := strings.LastIndexByte(text[:limit], '\n')
		if cut <= 0 {
			cut = limit
		}
		chunks = append(chunks, text[:cut])
		text = strings.TrimPrefix(text[cut:], "\n")
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
