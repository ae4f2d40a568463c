package forum

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xyz-asif/tradehub/internal/lifecycle"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var epoch = time.Date(2025, 5, 10, 8, 0, 0, 0, time.UTC)

type fixture struct {
	svc    *Service
	store  *memStore
	clock  *lifecycle.ManualClock
	author primitive.ObjectID
}

func newFixture() *fixture {
	author := primitive.NewObjectID()
	f := &fixture{
		store:  newMemStore(),
		clock:  lifecycle.NewManualClock(epoch),
		author: author,
	}
	f.svc = NewService(f.store, directory{author: true}, f.clock)
	return f
}

func sampleImage() Image {
	return Image{
		Filename:     "a1b2c3.png",
		OriginalName: "screenshot.png",
		Path:         "https://res.cloudinary.com/demo/image/upload/a1b2c3.png",
		Size:         20480,
		Mimetype:     "image/png",
	}
}

func (f *fixture) post(t *testing.T) *Post {
	t.Helper()
	post, err := f.svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: f.author,
		Category: CategoryTradingTips,
		Title:    "Spotting fair offers",
		Content:  "Check recent values before accepting.",
	})
	require.NoError(t, err)
	return post
}

func TestCreatePostDefaults(t *testing.T) {
	f := newFixture()
	post := f.post(t)

	require.False(t, post.ID.IsZero())
	require.Zero(t, post.Upvotes)
	require.Zero(t, post.Downvotes)
	require.NotNil(t, post.Images)
	require.Empty(t, post.Images)
	require.Equal(t, epoch, post.CreatedAt)
}

func TestCreatePostValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	valid := func() CreatePostInput {
		return CreatePostInput{
			AuthorID: f.author,
			Category: CategoryGeneral,
			Title:    "Hello",
			Content:  "First post",
		}
	}

	tests := []struct {
		name   string
		mutate func(in *CreatePostInput)
		field  string
	}{
		{"unknown category", func(in *CreatePostInput) { in.Category = "memes" }, "category"},
		{"blank title", func(in *CreatePostInput) { in.Title = "   " }, "title"},
		{"blank content", func(in *CreatePostInput) { in.Content = "" }, "content"},
		{"missing author", func(in *CreatePostInput) { in.AuthorID = primitive.NilObjectID }, "authorId"},
		{"image without mimetype", func(in *CreatePostInput) {
			img := sampleImage()
			img.Mimetype = ""
			in.Images = []Image{sampleImage(), img}
		}, "images[1]"},
		{"image with zero size", func(in *CreatePostInput) {
			img := sampleImage()
			img.Size = 0
			in.Images = []Image{img}
		}, "images[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid()
			tt.mutate(&in)
			_, err := f.svc.CreatePost(ctx, in)
			require.ErrorIs(t, err, apperrors.ErrValidation)

			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
		})
	}
}

func TestCreatePostKeepsCompleteImages(t *testing.T) {
	f := newFixture()
	post, err := f.svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: f.author,
		Category: CategoryScammerReports,
		Title:    "Watch out",
		Content:  "Proof attached.",
		Images:   []Image{sampleImage()},
	})
	require.NoError(t, err)
	require.Equal(t, []Image{sampleImage()}, post.Images)
}

func TestCreatePostUnknownAuthor(t *testing.T) {
	f := newFixture()
	_, err := f.svc.CreatePost(context.Background(), CreatePostInput{
		AuthorID: primitive.NewObjectID(),
		Category: CategoryGeneral,
		Title:    "Ghost",
		Content:  "Boo",
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestVoteCountsEveryCall(t *testing.T) {
	f := newFixture()
	post := f.post(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.svc.Vote(ctx, post.ID, Up)
		require.NoError(t, err)
	}
	updated, err := f.svc.Vote(ctx, post.ID, Down)
	require.NoError(t, err)
	require.Equal(t, 3, updated.Upvotes)
	require.Equal(t, 1, updated.Downvotes)

	_, err = f.svc.Vote(ctx, post.ID, "sideways")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.Vote(ctx, primitive.NewObjectID(), Up)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestConcurrentVotesAreNotLost(t *testing.T) {
	f := newFixture()
	post := f.post(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Vote(context.Background(), post.ID, Up)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := f.svc.GetPost(context.Background(), post.ID)
	require.NoError(t, err)
	require.Equal(t, 50, got.Upvotes)
}

func TestComments(t *testing.T) {
	f := newFixture()
	post := f.post(t)
	ctx := context.Background()

	first, err := f.svc.CreateComment(ctx, post.ID, f.author, "  Great tip  ")
	require.NoError(t, err)
	require.Equal(t, "Great tip", first.Content)
	require.Equal(t, post.ID, first.PostID)

	f.clock.Advance(time.Minute)
	_, err = f.svc.CreateComment(ctx, post.ID, f.author, "Follow-up")
	require.NoError(t, err)

	comments, err := f.svc.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "Great tip", comments[0].Content)

	_, err = f.svc.CreateComment(ctx, post.ID, f.author, " ")
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.CreateComment(ctx, post.ID, primitive.NewObjectID(), "who am I")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, f.svc.DeleteComment(ctx, first.ID))
	require.ErrorIs(t, f.svc.DeleteComment(ctx, first.ID), apperrors.ErrNotFound)
}

func TestCommentOnMissingPost(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.svc.CreateComment(ctx, primitive.NewObjectID(), f.author, "Hello?")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	require.Contains(t, err.Error(), "post")

	post := f.post(t)
	require.NoError(t, f.svc.DeletePost(ctx, post.ID))
	_, err = f.svc.CreateComment(ctx, post.ID, f.author, "Too late")
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = f.svc.ListComments(ctx, post.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
