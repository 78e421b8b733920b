package services

import (
	"context"
	"testing"

	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/database/dbtest"
	"github.com/SaaiSiddarth/Content-Scratch-Pad/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate_DefaultsToDraft(t *testing.T) {
	ctx := context.Background()
	svc, notifier, db := newIdeaTestEnv(t)
	owner := seedUser(t, db, "a@x.com")

	idea, err := svc.Create(ctx, owner.ID, IdeaInput{Title: "T1", Description: "d", Platform: "Twitter"})
	require.NoError(t, err)
	assert.NotEmpty(t, idea.ID)
	assert.Equal(t, models.StatusDraft, idea.Status)
	assert.Equal(t, owner.ID, idea.OwnerID)

	ideas, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, idea.ID, ideas[0].ID)
	assert.Equal(t, "T1", ideas[0].Title)
	assert.Equal(t, "d", ideas[0].Description)
	assert.Equal(t, "Twitter", ideas[0].Platform)
	assert.Equal(t, models.StatusDraft, ideas[0].Status)
	assert.True(t, ideas[0].CreatedAt.Equal(idea.CreatedAt))

	assert.Equal(t, []string{EventIdeaCreated}, notifier.actions(owner.ID))
}

func TestCreate_EmptyTitleIsRejected(t *testing.T) {
	ctx := context.Background()
	svc, notifier, db := newIdeaTestEnv(t)
	owner := seedUser(t, db, "a@x.com")

	for _, title := range []string{"", "   "} {
		_, err := svc.Create(ctx, owner.ID, IdeaInput{Title: title, Description: "d"})
		assert.ErrorIs(t, err, ErrValidation)
	}

	ideas, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, ideas)
	assert.Empty(t, notifier.actions(owner.ID))
}

func TestListMine_NewestFirstAndNeverNil(t *testing.T) {
	ctx := context.Background()
	svc, _, db := newIdeaTestEnv(t)
	owner := seedUser(t, db, "a@x.com")
	other := seedUser(t, db, "b@x.com")

	empty, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Len(t, empty, 0)

	var created []string
	for _, title := range []string{"first", "second", "third"} {
		idea, err := svc.Create(ctx, owner.ID, IdeaInput{Title: title})
		require.NoError(t, err)
		created = append(created, idea.ID)
	}
	_, err = svc.Create(ctx, other.ID, IdeaInput{Title: "not mine"})
	require.NoError(t, err)

	ideas, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, ideas, 3)
	assert.Equal(t, []string{created[2], created[1], created[0]}, []string{ideas[0].ID, ideas[1].ID, ideas[2].ID})
	for _, idea := range ideas {
		assert.Equal(t, owner.ID, idea.OwnerID)
	}
}

func TestUpdateStatus_ForwardTransitions(t *testing.T) {
	ctx := context.Background()
	svc, notifier, db := newIdeaTestEnv(t)
	owner := seedUser(t, db, "a@x.com")

	idea, err := svc.Create(ctx, owner.ID, IdeaInput{Title: "T1"})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(ctx, owner.ID, idea.ID, models.StatusScheduled))
	require.NoError(t, svc.UpdateStatus(ctx, owner.ID, idea.ID, models.StatusScheduled), "same status is a no-op")
	require.NoError(t, svc.UpdateStatus(ctx, owner.ID, idea.ID, models.StatusPublished))

	ideas, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, models.StatusPublished, ideas[0].Status)

	assert.Equal(t, []string{EventIdeaCreated, EventIdeaUpdated, EventIdeaUpdated}, notifier.actions(owner.ID))
}

func TestUpdateStatus_RejectsBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _, db := newIdeaTestEnv(t)
	owner := seedUser(t, db, "a@x.com")

	idea, err := svc.Create(ctx, owner.ID, IdeaInput{Title: "T1"})
	require.NoError(t, err)

	err = svc.UpdateStatus(ctx, owner.ID, idea.ID, "archived")
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.UpdateStatus(ctx, owner.ID, idea.ID, models.StatusPublished)
	assert.ErrorIs(t, err, ErrInvalidTransition, "draft cannot skip to published")
	assert.ErrorIs(t, err, ErrValidation)

	require.NoError(t, svc.UpdateStatus(ctx, owner.ID, idea.ID, models.StatusScheduled))
	err = svc.UpdateStatus(ctx, owner.ID, idea.ID, models.StatusDraft)
	assert.ErrorIs(t, err, ErrInvalidTransition, "no backward transitions")

	ideas, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusScheduled, ideas[0].Status)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, db := newIdeaTestEnv(t)
	owner := seedUser(t, db, "a@x.com")

	assert.ErrorIs(t, svc.UpdateStatus(ctx, owner.ID, uuid.NewString(), models.StatusScheduled), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, owner.ID, "not-a-uuid", models.StatusScheduled), ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, notifier, db := newIdeaTestEnv(t)
	owner := seedUser(t, db, "a@x.com")

	idea, err := svc.Create(ctx, owner.ID, IdeaInput{Title: "T1"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, owner.ID, idea.ID))
	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, idea.ID), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, owner.ID, "not-a-uuid"), ErrNotFound)

	ideas, err := svc.ListMine(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, ideas)
	assert.Equal(t, []string{EventIdeaCreated, EventIdeaDeleted}, notifier.actions(owner.ID))
}

func TestOwnershipIsolation(t *testing.T) {
	ctx := context.Background()
	svc, notifier, db := newIdeaTestEnv(t)
	alice := seedUser(t, db, "alice@x.com")
	bob := seedUser(t, db, "bob@x.com")

	bobsIdea, err := svc.Create(ctx, bob.ID, IdeaInput{Title: "bob's"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, mine)

	assert.ErrorIs(t, svc.UpdateStatus(ctx, alice.ID, bobsIdea.ID, models.StatusScheduled), ErrNotFound)
	assert.ErrorIs(t, svc.UpdateStatus(ctx, alice.ID, bobsIdea.ID, "archived"), ErrValidation)
	assert.ErrorIs(t, svc.Delete(ctx, alice.ID, bobsIdea.ID), ErrNotFound)

	theirs, err := svc.ListMine(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, theirs, 1)
	assert.Equal(t, models.StatusDraft, theirs[0].Status, "bob's idea must be untouched")

	assert.Empty(t, notifier.actions(alice.ID))
	assert.Equal(t, []string{EventIdeaCreated}, notifier.actions(bob.ID))
}

func TestNewIdeaService_NilNotifier(t *testing.T) {
	ctx := context.Background()
	db := dbtest.New(t)
	owner := seedUser(t, db, "a@x.com")
	svc := NewIdeaService(db, nil)

	idea, err := svc.Create(ctx, owner.ID, IdeaInput{Title: "T1"})
	require.NoError(t, err)
	require.NoError(t, svc.UpdateStatus(ctx, owner.ID, idea.ID, models.StatusScheduled))
	require.NoError(t, svc.Delete(ctx, owner.ID, idea.ID))
}
