package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/mentorconnect/mentorconnect-api/internal/models"
	"github.com/mentorconnect/mentorconnect-api/internal/services"
	apperrors "github.com/mentorconnect/mentorconnect-api/pkg/errors"
)

func samplePost() *models.Post {
	return &models.Post{
		ID:         "post-1",
		AuthorID:   "alumni-1",
		Title:      "Hiring interns",
		Content:    "We are hiring",
		Category:   "opportunities",
		LikedBy:    []string{},
		LikesCount: 0,
	}
}

func TestCreatePost_AlumniOnly(t *testing.T) {
	postRepo := new(MockPostRepository)
	profileRepo := new(MockProfileRepository)
	svc := services.NewPostService(postRepo, profileRepo)

	_, err := svc.CreatePost(context.Background(), studentSession(), &models.CreatePostRequest{
		Title:    "t",
		Content:  "c",
		Category: "general",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	profileRepo.On("GetByID", mock.Anything, "alumni-1").Return(alumniProfile(), nil)
	postRepo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Post) bool {
		return p.AuthorID == "alumni-1" && p.AuthorName == "Ava Alum" && p.LikedBy != nil
	})).Return(nil)

	post, err := svc.CreatePost(context.Background(), alumniSession(), &models.CreatePostRequest{
		Title:    "Hiring interns",
		Content:  "We are hiring",
		Category: "opportunities",
	})
	assert.NoError(t, err)
	assert.NotEmpty(t, post.ID)
	assert.Zero(t, post.LikesCount)
}

func TestToggleLike_AddsThenRemoves(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := services.NewPostService(postRepo, new(MockProfileRepository))

	post := samplePost()
	postRepo.On("GetByID", mock.Anything, "post-1").Return(post, nil).Once()
	postRepo.On("UpdateLikeState", mock.Anything, "post-1", []string{"student-1"}).Return(nil).Once()

	result, err := svc.ToggleLike(context.Background(), studentSession(), "post-1")
	assert.NoError(t, err)
	assert.True(t, result.Liked)
	assert.Equal(t, 1, result.LikesCount)

	liked := samplePost()
	liked.LikedBy = []string{"student-1"}
	liked.LikesCount = 1
	postRepo.On("GetByID", mock.Anything, "post-1").Return(liked, nil).Once()
	postRepo.On("UpdateLikeState", mock.Anything, "post-1", []string{}).Return(nil).Once()

	result, err = svc.ToggleLike(context.Background(), studentSession(), "post-1")
	assert.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 0, result.LikesCount)
	postRepo.AssertExpectations(t)
}

func TestToggleLike_PreservesOtherLikers(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := services.NewPostService(postRepo, new(MockProfileRepository))

	post := samplePost()
	post.LikedBy = []string{"student-9", "student-1", "alumni-2"}
	post.LikesCount = 3
	postRepo.On("GetByID", mock.Anything, "post-1").Return(post, nil)
	postRepo.On("UpdateLikeState", mock.Anything, "post-1", []string{"student-9", "alumni-2"}).Return(nil)

	result, err := svc.ToggleLike(context.Background(), studentSession(), "post-1")
	assert.NoError(t, err)
	assert.False(t, result.Liked)
	assert.Equal(t, 2, result.LikesCount)
}

func TestUpdatePost_AuthorOnlyAndPartial(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := services.NewPostService(postRepo, new(MockProfileRepository))

	postRepo.On("GetByID", mock.Anything, "post-1").Return(samplePost(), nil)

	newTitle := "Hiring senior interns"
	_, err := svc.UpdatePost(context.Background(), studentSession(), "post-1", &models.UpdatePostRequest{
		Title: &newTitle,
	})
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	postRepo.On("Update", mock.Anything, "post-1", mock.MatchedBy(func(set bson.M) bool {
		_, hasTitle := set["title"]
		_, hasContent := set["content"]
		_, hasUpdatedAt := set["updatedAt"]
		return hasTitle && hasUpdatedAt && !hasContent
	})).Return(nil)

	_, err = svc.UpdatePost(context.Background(), alumniSession(), "post-1", &models.UpdatePostRequest{
		Title: &newTitle,
	})
	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
}

func TestDeletePost_AuthorOnly(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := services.NewPostService(postRepo, new(MockProfileRepository))

	postRepo.On("GetByID", mock.Anything, "post-1").Return(samplePost(), nil)

	err := svc.DeletePost(context.Background(), studentSession(), "post-1")
	assert.ErrorIs(t, err, apperrors.ErrAccessDenied)

	postRepo.On("Delete", mock.Anything, "post-1").Return(nil)
	err = svc.DeletePost(context.Background(), alumniSession(), "post-1")
	assert.NoError(t, err)
}

func TestAddComment_DenormalizesAuthor(t *testing.T) {
	postRepo := new(MockPostRepository)
	profileRepo := new(MockProfileRepository)
	svc := services.NewPostService(postRepo, profileRepo)

	postRepo.On("GetByID", mock.Anything, "post-1").Return(samplePost(), nil)
	profileRepo.On("GetByID", mock.Anything, "student-1").Return(studentProfile(), nil)
	postRepo.On("AddComment", mock.Anything, mock.MatchedBy(func(c *models.PostComment) bool {
		return c.PostID == "post-1" &&
			c.AuthorName == "Sana Student" &&
			c.AuthorRole == models.RoleStudent
	})).Return(nil)

	comment, err := svc.AddComment(context.Background(), studentSession(), "post-1", &models.AddCommentRequest{
		Content: "Great opportunity",
	})

	assert.NoError(t, err)
	assert.NotEmpty(t, comment.ID)
	postRepo.AssertExpectations(t)
}

func TestAddComment_MissingPost(t *testing.T) {
	postRepo := new(MockPostRepository)
	svc := services.NewPostService(postRepo, new(MockProfileRepository))

	postRepo.On("GetByID", mock.Anything, "missing").
		Return(nil, apperrors.NotFoundError("post missing"))

	_, err := svc.AddComment(context.Background(), studentSession(), "missing", &models.AddCommentRequest{
		Content: "hi",
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestListPosts_FilterPassthrough(t *testing.T) {
	postRepo := new(MockPostRepository)
	profileRepo := new(MockProfileRepository)
	svc := services.NewPostService(postRepo, profileRepo)

	posts := []*models.Post{{ID: "p1", Category: "career"}}
	postRepo.On("List", mock.Anything, "career", 20).Return(posts, nil)

	got, err := svc.ListPosts(context.Background(), "career", 20)

	assert.NoError(t, err)
	assert.Equal(t, posts, got)
	postRepo.AssertExpectations(t)
}
