// Package render produces the pre-rendered HTML fragments carried on
// project update frames. Clients inject the fragment into the page as-is,
// so everything user-supplied goes through html/template escaping.
package render

import (
	"html/template"
	"strings"

	"github.com/savithru/pms-backend/internal/core/domain"
	"github.com/savithru/pms-backend/internal/core/ports"
)

const fragmentTimestampLayout = "03:04 PM"

const timelineItemTemplate = `<div class="timeline-item">
  <div class="timeline-header">
    <span class="timeline-title">{{.Title}}</span>
    <span class="timeline-time">{{.Timestamp}}</span>
  </div>
  {{if .Remarks}}<p class="timeline-remarks">{{.Remarks}}</p>{{end}}
  {{if .ImageURL}}<img class="timeline-image" src="{{.ImageURL}}" alt="">{{end}}
  {{if .FileURL}}<a class="timeline-file" href="{{.FileURL}}">{{.FileName}}</a>{{end}}
  <div class="timeline-sender">
    {{if .ProfilePhoto}}<img class="sender-photo" src="{{.ProfilePhoto}}" alt="">{{end}}
    <span class="sender-name">{{.SenderUsername}}</span>
  </div>
</div>`

const chatBubbleTemplate = `<div class="chat-bubble" data-sender-id="{{.SenderID}}">
  <div class="chat-meta">
    {{if .ProfilePhoto}}<img class="sender-photo" src="{{.ProfilePhoto}}" alt="">{{end}}
    <span class="sender-name">{{.SenderUsername}}</span>
    <span class="chat-time">{{.Timestamp}}</span>
  </div>
  {{if .Message}}<p class="chat-message">{{.Message}}</p>{{end}}
  {{if .ImageURL}}<img class="chat-image" src="{{.ImageURL}}" alt="">{{end}}
  {{if .FileURL}}<a class="chat-file" href="{{.FileURL}}">{{.FileName}}</a>{{end}}
</div>`

type fragmentData struct {
	Title          string
	Message        string
	Remarks        string
	SenderID       int64
	SenderUsername string
	ProfilePhoto   string
	Timestamp      string
	ImageURL       string
	FileURL        string
	FileName       string
}

// TemplateRenderer renders update fragments from templates parsed once at
// construction time.
type TemplateRenderer struct {
	timeline *template.Template
	chat     *template.Template
}

var _ ports.UpdateRenderer = (*TemplateRenderer)(nil)

// NewTemplateRenderer parses the fragment templates. The templates are
// compiled in, so a parse failure is a programming error and panics.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		timeline: template.Must(template.New("timeline_item").Parse(timelineItemTemplate)),
		chat:     template.Must(template.New("chat_bubble").Parse(chatBubbleTemplate)),
	}
}

// RenderTimelineItem renders the titled timeline layout.
func (r *TemplateRenderer) RenderTimelineItem(u domain.ProjectUpdatePosted) (string, error) {
	return render(r.timeline, u)
}

// RenderChatBubble renders the untitled chat layout.
func (r *TemplateRenderer) RenderChatBubble(u domain.ProjectUpdatePosted) (string, error) {
	return render(r.chat, u)
}

func render(t *template.Template, u domain.ProjectUpdatePosted) (string, error) {
	data := fragmentData{
		Title:          deref(u.Title),
		Message:        deref(u.Remarks),
		Remarks:        deref(u.Remarks),
		SenderID:       u.SenderID,
		SenderUsername: u.SenderUsername,
		ProfilePhoto:   deref(u.SenderProfilePhoto),
		Timestamp:      u.CreatedAt.Format(fragmentTimestampLayout),
		ImageURL:       deref(u.ImageURL),
		FileURL:        deref(u.FileURL),
		FileName:       deref(u.FileName),
	}
	if data.FileURL != "" && data.FileName == "" {
		data.FileName = "attachment"
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
