package controllers

import (
	"context"
	"medportal-service/internal/app/contracts"
	"medportal-service/internal/pkg/constvars"
	"medportal-service/internal/pkg/dto/requests"
	"medportal-service/internal/pkg/exceptions"
	"medportal-service/internal/pkg/utils"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type FeedController struct {
	Log         *zap.Logger
	FeedUsecase contracts.FeedUsecase
	timeout     time.Duration
}

func NewFeedController(logger *zap.Logger, feedUsecase contracts.FeedUsecase, timeoutSeconds int) *FeedController {
	return &FeedController{
		Log:         logger,
		FeedUsecase: feedUsecase,
		timeout:     requestTimeout(timeoutSeconds),
	}
}

func postIDParam(r *http.Request) (string, error) {
	postID := strings.TrimSpace(chi.URLParam(r, "postId"))
	err := utils.ValidateUrlParamID(postID)
	if err != nil {
		return "", exceptions.ErrURLParamValidation(err, "postId")
	}
	return postID, nil
}

func (ctrl *FeedController) GetFeed(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	feed, err := ctrl.FeedUsecase.GetFeed(ctx, sessionContext, utils.BuildPaginationRequest(r))
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildPaginationSuccessResponse(w, constvars.StatusOK, constvars.GetFeedSuccessMessage, feed.Pagination, feed.Posts)
}

func (ctrl *FeedController) GetPost(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	postID, err := postIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	post, err := ctrl.FeedUsecase.GetPost(ctx, sessionContext, postID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPostSuccessMessage, post)
}

func (ctrl *FeedController) CreatePost(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}

	// Bind body to request
	request := new(requests.CreatePost)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Sanitize request
	utils.SanitizeCreatePostRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	post, err := ctrl.FeedUsecase.CreatePost(ctx, sessionContext, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreatePostSuccessMessage, post)
}

func (ctrl *FeedController) LikePost(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	postID, err := postIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	result, err := ctrl.FeedUsecase.LikePost(ctx, sessionContext, postID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LikePostSuccessMessage, result)
}

func (ctrl *FeedController) GetComments(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	postID, err := postIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	comments, err := ctrl.FeedUsecase.GetComments(ctx, sessionContext, postID)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetCommentsSuccessMessage, comments)
}

func (ctrl *FeedController) CreateComment(w http.ResponseWriter, r *http.Request) {
	sessionContext, ok := requireSessionContext(ctrl.Log, w, r)
	if !ok {
		return
	}
	postID, err := postIDParam(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// Bind body to request
	request := new(requests.CreateComment)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// Sanitize request
	utils.SanitizeCreateCommentRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ctrl.timeout)
	defer cancel()

	comment, err := ctrl.FeedUsecase.CreateComment(ctx, sessionContext, postID, request)
	if err != nil {
		buildUsecaseErrorResponse(ctrl.Log, w, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateCommentSuccessMessage, comment)
}
