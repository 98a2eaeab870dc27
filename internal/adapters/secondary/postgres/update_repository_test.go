package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/savithru/pms-backend/internal/core/domain"
)

func strPtr(s string) *string { return &s }

func TestUpdateRepository_Create_WithAttachments(t *testing.T) {
	ctx := context.Background()
	repo := NewUpdateRepository(testPool)

	creator := seedUser(t, domain.RoleManagement)
	project := seedProject(t, creator.ID)

	created, err := repo.Create(ctx, &domain.ProjectUpdate{
		ProjectID: project.ID,
		UserID:    creator.ID,
		Category:  domain.CategoryUpdate,
		Title:     strPtr("Sprint 4 review"),
		Remarks:   strPtr("All pages signed off"),
		CreatedAt: time.Now().UTC(),
		Attachments: []domain.UpdateAttachment{
			{FileURL: "https://files.example/report.pdf"},
			{FileURL: "https://files.example/burndown.png"},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Len(t, created.Attachments, 2)
	assert.Equal(t, created.ID, created.Attachments[0].ProjectUpdateID)
	assert.False(t, created.Attachments[0].UploadedAt.IsZero())
}

func TestUpdateRepository_ChatAndTimelineSplit(t *testing.T) {
	ctx := context.Background()
	repo := NewUpdateRepository(testPool)

	creator := seedUser(t, domain.RoleManagement)
	project := seedProject(t, creator.ID)

	base := time.Now().UTC().Add(-time.Hour)

	// Two chat messages, then a titled timeline update.
	for i, msg := range []string{"first message", "second message"} {
		_, err := repo.Create(ctx, &domain.ProjectUpdate{
			ProjectID: project.ID,
			UserID:    creator.ID,
			Category:  domain.CategoryUpdate,
			Remarks:   strPtr(msg),
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &domain.ProjectUpdate{
		ProjectID: project.ID,
		UserID:    creator.ID,
		Category:  domain.CategoryUpdate,
		Title:     strPtr("Milestone reached"),
		CreatedAt: base.Add(10 * time.Minute),
	})
	require.NoError(t, err)

	chat, err := repo.ListChatByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, chat, 2)
	// Chat reads oldest first.
	assert.Equal(t, "first message", *chat[0].Remarks)
	assert.Equal(t, "second message", *chat[1].Remarks)
	for _, m := range chat {
		assert.False(t, m.HasTitle())
	}

	timeline, err := repo.ListTimelineByProject(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, timeline, 1)
	assert.Equal(t, "Milestone reached", *timeline[0].Title)
}
