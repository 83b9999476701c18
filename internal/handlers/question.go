package handlers

import (
	"net/http"
	"strconv"

	"askstack/internal/db"
	"askstack/internal/models"
	"askstack/internal/services"
	"askstack/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionHandler struct{}

func NewQuestionHandler() *QuestionHandler {
	return &QuestionHandler{}
}

// voteScoreExpr orders or annotates questions by upvotes minus downvotes.
// Plain correlated subquery so it runs the same on Postgres and sqlite.
const voteScoreExpr = `(SELECT COALESCE(SUM(value), 0) FROM votes WHERE votes.target_id = questions.id AND votes.target_type = 'question')`

// fillQuestionMeta batch-fills answer counts and vote scores for a page of
// questions.
func fillQuestionMeta(questions []models.Question) {
	if len(questions) == 0 {
		return
	}

	ids := make([]uint, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	type countRow struct {
		QuestionID uint
		Count      int
	}
	var answerCounts []countRow
	db.DB.Model(&models.Answer{}).
		Select("question_id, COUNT(*) as count").
		Where("question_id IN ?", ids).
		Group("question_id").
		Scan(&answerCounts)

	type scoreRow struct {
		TargetID uint
		Score    int
	}
	var scores []scoreRow
	db.DB.Model(&models.Vote{}).
		Select("target_id, COALESCE(SUM(value), 0) as score").
		Where("target_id IN ? AND target_type = ?", ids, models.VoteTargetQuestion).
		Group("target_id").
		Scan(&scores)

	countMap := make(map[uint]int, len(answerCounts))
	for _, r := range answerCounts {
		countMap[r.QuestionID] = r.Count
	}
	scoreMap := make(map[uint]int, len(scores))
	for _, r := range scores {
		scoreMap[r.TargetID] = r.Score
	}

	for i := range questions {
		questions[i].AnswerCount = countMap[questions[i].ID]
		questions[i].VoteScore = scoreMap[questions[i].ID]
	}
}

// List supports pagination, text search, tag filter and newest/votes/unanswered sort.
func (h *QuestionHandler) List(c *gin.Context) {
	page := utils.StringToInt(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	perPage := utils.StringToInt(c.DefaultQuery("limit", "20"))
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	query := db.DB.Model(&models.Question{}).Preload("User").Preload("Tags")

	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?)", like, like)
	}

	if tag := c.Query("tag"); tag != "" {
		query = query.Where(
			`EXISTS (SELECT 1 FROM question_tags qt JOIN tags t ON qt.tag_id = t.id
			 WHERE qt.question_id = questions.id AND t.name = ?)`, tag)
	}

	switch c.DefaultQuery("sort", "newest") {
	case "votes":
		query = query.Order(voteScoreExpr + " DESC").Order("created_at DESC")
	case "unanswered":
		query = query.Where("NOT EXISTS (SELECT 1 FROM answers WHERE answers.question_id = questions.id)").
			Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var total int64
	query.Count(&total)

	var questions []models.Question
	if err := query.Limit(perPage).Offset((page - 1) * perPage).Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}
	fillQuestionMeta(questions)

	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"page":      page,
		"limit":     perPage,
		"total":     total,
	})
}

// Detail returns one question by numeric id or slug, bumping the view
// counter. The body comes back both raw and as sanitized HTML.
func (h *QuestionHandler) Detail(c *gin.Context) {
	key := c.Param("id")

	var question models.Question
	var err error
	if id, convErr := strconv.Atoi(key); convErr == nil {
		err = db.DB.Preload("User").Preload("Tags").First(&question, id).Error
	} else {
		err = db.DB.Preload("User").Preload("Tags").Where("slug = ?", key).First(&question).Error
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	db.DB.Model(&question).UpdateColumn("views", gorm.Expr("views + ?", 1))
	question.Views++
	question.VoteScore = services.VoteScore(question.ID, models.VoteTargetQuestion)

	c.JSON(http.StatusOK, gin.H{
		"question":         question,
		"description_html": utils.RenderMarkdown(question.Description),
	})
}

type createQuestionRequest struct {
	Title       string   `json:"title" binding:"required,max=300"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags" binding:"max=5"`
}

func (h *QuestionHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var input createQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := services.CreateQuestion(user.ID, input.Title, input.Description, input.Tags)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}

	utils.GetCache().Delete(popularTagsCacheKey)

	c.JSON(http.StatusCreated, question)
}

type updateQuestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (h *QuestionHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var input updateQuestionRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := services.UpdateQuestion(id, user.ID, input.Title, input.Description)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if err := services.DeleteQuestion(id, user.ID); err != nil {
		AbortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// Answers lists a question's answers, accepted first, with rendered bodies.
func (h *QuestionHandler) Answers(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	answers, err := services.ListAnswers(id)
	if err != nil {
		AbortWithServiceError(c, err)
		return
	}

	responses := make([]gin.H, 0, len(answers))
	for _, answer := range answers {
		responses = append(responses, gin.H{
			"id":           answer.ID,
			"question_id":  answer.QuestionID,
			"user":         answer.User,
			"content":      answer.Content,
			"content_html": utils.RenderMarkdown(answer.Content),
			"is_accepted":  answer.IsAccepted,
			"vote_score":   answer.VoteScore,
			"created_at":   answer.CreatedAt,
			"updated_at":   answer.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, responses)
}
