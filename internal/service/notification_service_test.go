package service

import (
	"context"
	"fmt"
	"testing"

	"hireboard/internal/domain"
	"hireboard/internal/repository"
	"hireboard/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_NotificationService_CreateValidates(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)

	n, err := e.notifications.Create(ctx, CreateNotificationInput{
		RecipientID: u.ID, Type: domain.NotificationSystem, Title: "Welcome", Message: "Hi there",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityNormal, n.Priority)
	assert.False(t, n.IsRead)
	assert.Equal(t, []string{"notification"}, e.hub.sentTo(u.ID))

	_, err = e.notifications.Create(ctx, CreateNotificationInput{
		RecipientID: u.ID, Type: "promo", Title: "x", Message: "y",
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	_, err = e.notifications.Create(ctx, CreateNotificationInput{
		RecipientID: u.ID, Type: domain.NotificationSystem, Title: "x", Message: "y", Priority: "urgent",
	})
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func Test_NotificationService_UnreadCountIgnoresPaging(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	u := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	for i := 0; i < 5; i++ {
		_, err := e.notifications.Create(ctx, CreateNotificationInput{
			RecipientID: u.ID, Type: domain.NotificationSystem, Title: fmt.Sprintf("n%d", i), Message: "m",
		})
		require.NoError(t, err)
	}

	page, err := e.notifications.ListForUser(ctx, u.ID, repository.NotificationFilter{}, repository.Page{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.EqualValues(t, 5, page.Total)
	assert.EqualValues(t, 5, page.UnreadCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 2, page.Page)

	read := true
	page, err = e.notifications.ListForUser(ctx, u.ID, repository.NotificationFilter{IsRead: &read}, repository.Page{Limit: 1})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 5, page.UnreadCount)
}

func Test_NotificationService_ReadAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	owner := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	other := testutil.CreateUser(t, e.db, domain.RoleJobSeeker)
	create := func() uint {
		n, err := e.notifications.Create(ctx, CreateNotificationInput{
			RecipientID: owner.ID, Type: domain.NotificationSystem, Title: "t", Message: "m",
		})
		require.NoError(t, err)
		return n.ID
	}
	first, second, third := create(), create(), create()

	_, err := e.notifications.MarkRead(ctx, first, other.ID)
	assert.True(t, domain.IsKind(err, domain.KindForbidden))
	_, err = e.notifications.MarkRead(ctx, 9999, owner.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))

	n, err := e.notifications.MarkRead(ctx, first, owner.ID)
	require.NoError(t, err)
	assert.True(t, n.IsRead)
	assert.NotNil(t, n.ReadAt)

	count, err := e.notifications.UnreadCount(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	assert.True(t, domain.IsKind(e.notifications.Delete(ctx, second, other.ID), domain.KindForbidden))
	require.NoError(t, e.notifications.Delete(ctx, second, owner.ID))

	updated, err := e.notifications.MarkAllRead(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, updated)

	cleared, err := e.notifications.ClearRead(ctx, owner.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, cleared)
	_, err = e.notifications.MarkRead(ctx, third, owner.ID)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
}
