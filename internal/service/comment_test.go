package service

import (
	"context"
	"testing"

	"github.com/BloggingApp/feed-service/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComment_AddAndList(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")
	ann := env.user(t, "ann")
	post := env.post(t, leo, "discuss", nil)

	first, err := env.svc.Comment.Add(ctx, ann, "leo", post.ID, dto.CreateCommentRequest{Text: "first!"})
	require.NoError(t, err)
	assert.Equal(t, post.ID, first.PostID)
	assert.Equal(t, ann.ID, first.AuthorID)

	_, err = env.svc.Comment.Add(ctx, leo, "leo", post.ID, dto.CreateCommentRequest{Text: "thanks"})
	require.NoError(t, err)

	comments, err := env.svc.Comment.List(ctx, "leo", post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first!", comments[0].Comment.Text)
	assert.Equal(t, "thanks", comments[1].Comment.Text)
}

func TestComment_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	leo := env.user(t, "leo")
	post := env.post(t, leo, "discuss", nil)

	_, err := env.svc.Comment.Add(ctx, nil, "leo", post.ID, dto.CreateCommentRequest{Text: "hi"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.svc.Comment.Add(ctx, leo, "leo", post.ID+1, dto.CreateCommentRequest{Text: "hi"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.Comment.Add(ctx, leo, "leo", post.ID, dto.CreateCommentRequest{Text: " "})
	requireValidationField(t, err, "text")

	_, err = env.svc.Comment.List(ctx, "nobody", post.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	comments, err := env.svc.Comment.List(ctx, "leo", post.ID)
	require.NoError(t, err)
	assert.NotNil(t, comments)
	assert.Empty(t, comments)
}
