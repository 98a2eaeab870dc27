package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func basePosted() domain.ProjectUpdatePosted {
	return domain.ProjectUpdatePosted{
		ProjectID:      7,
		SenderID:       3,
		SenderUsername: "marco",
		CreatedAt:      time.Date(2026, 8, 27, 15, 45, 0, 0, time.UTC),
	}
}

func TestTemplateRenderer_TimelineItem(t *testing.T) {
	r := NewTemplateRenderer()

	posted := basePosted()
	posted.Title = strPtr("Sprint review")
	posted.Remarks = strPtr("Demoed the new dashboard")
	posted.SenderProfilePhoto = strPtr("/media/photos/marco.png")

	html, err := r.RenderTimelineItem(posted)
	require.NoError(t, err)

	assert.Contains(t, html, `class="timeline-item"`)
	assert.Contains(t, html, `<span class="timeline-title">Sprint review</span>`)
	assert.Contains(t, html, `<span class="timeline-time">03:45 PM</span>`)
	assert.Contains(t, html, "Demoed the new dashboard")
	assert.Contains(t, html, `src="/media/photos/marco.png"`)
	assert.Contains(t, html, `<span class="sender-name">marco</span>`)
	assert.NotContains(t, html, "chat-bubble")
}

func TestTemplateRenderer_ChatBubble(t *testing.T) {
	r := NewTemplateRenderer()

	posted := basePosted()
	posted.Remarks = strPtr("shipping tonight")

	html, err := r.RenderChatBubble(posted)
	require.NoError(t, err)

	assert.Contains(t, html, `data-sender-id="3"`)
	assert.Contains(t, html, `<p class="chat-message">shipping tonight</p>`)
	assert.Contains(t, html, `<span class="chat-time">03:45 PM</span>`)
	assert.NotContains(t, html, "timeline-item")
	// No photo on the account, so no img tag at all.
	assert.NotContains(t, html, "sender-photo")
}

func TestTemplateRenderer_EscapesUserContent(t *testing.T) {
	r := NewTemplateRenderer()

	posted := basePosted()
	posted.Remarks = strPtr(`<script>alert("xss")</script>`)
	posted.SenderUsername = `<b>marco</b>`

	html, err := r.RenderChatBubble(posted)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>marco</b>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestTemplateRenderer_FileAttachment(t *testing.T) {
	r := NewTemplateRenderer()

	t.Run("uses the stored file name", func(t *testing.T) {
		posted := basePosted()
		posted.FileURL = strPtr("/media/files/report.pdf")
		posted.FileName = strPtr("report.pdf")

		html, err := r.RenderChatBubble(posted)
		require.NoError(t, err)
		assert.Contains(t, html, `<a class="chat-file" href="/media/files/report.pdf">report.pdf</a>`)
	})

	t.Run("falls back when the name is missing", func(t *testing.T) {
		posted := basePosted()
		posted.FileURL = strPtr("/media/files/blob")

		html, err := r.RenderChatBubble(posted)
		require.NoError(t, err)
		assert.Contains(t, html, `>attachment</a>`)
	})

	t.Run("omits the link without a URL", func(t *testing.T) {
		posted := basePosted()
		posted.ImageURL = strPtr("/media/images/shot.png")

		html, err := r.RenderTimelineItem(posted)
		require.NoError(t, err)
		assert.Contains(t, html, `<img class="timeline-image" src="/media/images/shot.png"`)
		assert.NotContains(t, html, "timeline-file")
	})
}
